package registration

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nimbusgate/ccfleet/internal/sizeclass"
)

const tg = "arn:aws:elasticloadbalancing:eu-central-1:123456789012:targetgroup/cc-tg/abc"

func TestCompute_PolicyTable(t *testing.T) {
	sets := AddressSets{
		{"10.0.1.5", "10.0.1.6"},
		{"10.0.2.5"},
		{"10.0.3.5", "10.0.3.6", "10.0.3.7"},
	}

	tests := []struct {
		class sizeclass.Class
		want  int
	}{
		{sizeclass.Small, 2},  // slot 1 only
		{sizeclass.Medium, 3}, // slots 1-2
		{sizeclass.Large, 6},  // slots 1-3
	}

	for _, tt := range tests {
		t.Run(tt.class.String(), func(t *testing.T) {
			regs, _ := Compute(tt.class, sets, tg)
			assert.Len(t, regs, tt.want)
			for _, r := range regs {
				assert.Equal(t, tg, r.TargetGroupID)
				assert.LessOrEqual(t, r.Slot, tt.class.Interfaces())
			}
		})
	}
}

func TestCompute_LargeEndToEnd(t *testing.T) {
	sets := AddressSets{
		{"10.0.1.5"},
		{"10.0.2.5"},
		{"10.0.3.5", "10.0.3.6"},
	}

	regs, ignored := Compute(sizeclass.Large, sets, tg)
	require.Len(t, regs, 4)
	assert.Empty(t, ignored)

	wantOrder := []string{"10.0.1.5", "10.0.2.5", "10.0.3.5", "10.0.3.6"}
	assert.Equal(t, wantOrder, Addresses(regs))

	wantSlots := []int{1, 2, 3, 3}
	for i, r := range regs {
		assert.Equal(t, wantSlots[i], r.Slot)
	}
}

func TestCompute_SmallMisconfiguredSlot(t *testing.T) {
	// Slot 1 empty, slot 2 populated for a class that never consumes it.
	sets := AddressSets{
		nil,
		{"10.0.2.9"},
		nil,
	}

	regs, ignored := Compute(sizeclass.Small, sets, tg)
	assert.Empty(t, regs)
	require.Len(t, ignored, 1)
	assert.Equal(t, 2, ignored[0].Slot)
	assert.Equal(t, 1, ignored[0].Addresses)
}

func TestCompute_EmptySets(t *testing.T) {
	regs, ignored := Compute(sizeclass.Large, AddressSets{}, tg)
	assert.Empty(t, regs)
	assert.Empty(t, ignored)
}

func TestCompute_Idempotent(t *testing.T) {
	sets := AddressSets{
		{"10.0.1.5", "10.0.1.9"},
		{"10.0.2.5"},
		{"10.0.3.5"},
	}

	first, _ := Compute(sizeclass.Medium, sets, tg)
	second, _ := Compute(sizeclass.Medium, sets, tg)
	assert.Equal(t, first, second, "identical inputs must produce identical, order-equal outputs")
}

func TestCompute_DowngradeIsStrictSubset(t *testing.T) {
	sets := AddressSets{
		{"10.0.1.5", "10.0.1.6"},
		{"10.0.2.5", "10.0.2.6"},
		nil,
	}

	medium, _ := Compute(sizeclass.Medium, sets, tg)
	small, _ := Compute(sizeclass.Small, sets, tg)

	require.Less(t, len(small), len(medium))
	// Small's set is exactly Medium's slot-1 prefix.
	assert.Equal(t, medium[:len(small)], small)
	for _, r := range small {
		assert.Equal(t, 1, r.Slot)
	}
}

func TestDiff(t *testing.T) {
	sets := AddressSets{
		{"10.0.1.5"},
		{"10.0.2.5", "10.0.2.6"},
		nil,
	}

	medium, _ := Compute(sizeclass.Medium, sets, tg)
	small, _ := Compute(sizeclass.Small, sets, tg)

	t.Run("unchanged inputs produce empty delta", func(t *testing.T) {
		assert.True(t, Diff(medium, medium).Empty())
	})

	t.Run("downgrade removes exactly the dropped slots", func(t *testing.T) {
		delta := Diff(medium, small)
		assert.Empty(t, delta.Add)
		require.Len(t, delta.Remove, 2)
		assert.Equal(t, []string{"10.0.2.5", "10.0.2.6"}, Addresses(delta.Remove))
	})

	t.Run("upgrade adds exactly the new slots", func(t *testing.T) {
		delta := Diff(small, medium)
		assert.Empty(t, delta.Remove)
		assert.Equal(t, []string{"10.0.2.5", "10.0.2.6"}, Addresses(delta.Add))
	})

	t.Run("fresh deployment adds everything", func(t *testing.T) {
		delta := Diff(nil, medium)
		assert.Equal(t, medium, delta.Add)
		assert.Empty(t, delta.Remove)
	})
}

func TestDiff_SameAddressDifferentSlot(t *testing.T) {
	prev := []Registration{{TargetGroupID: tg, Address: "10.0.1.5", Slot: 1}}
	want := []Registration{{TargetGroupID: tg, Address: "10.0.1.5", Slot: 2}}

	delta := Diff(prev, want)
	assert.Len(t, delta.Add, 1)
	assert.Len(t, delta.Remove, 1)
}
