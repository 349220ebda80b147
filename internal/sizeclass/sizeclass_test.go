package sizeclass

import "testing"

func TestParse(t *testing.T) {
	tests := []struct {
		input   string
		want    Class
		wantErr bool
	}{
		{"small", Small, false},
		{"medium", Medium, false},
		{"large", Large, false},
		{"xlarge", "", true},
		{"", "", true},
		{"Small", "", true}, // case-sensitive by design of the config surface
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := Parse(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("Parse(%q) expected error, got %q", tt.input, got)
				}
				return
			}
			if err != nil {
				t.Fatalf("Parse(%q) failed: %v", tt.input, err)
			}
			if got != tt.want {
				t.Errorf("Parse(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestInterfaces(t *testing.T) {
	tests := []struct {
		class Class
		want  int
	}{
		{Small, 1},
		{Medium, 2},
		{Large, 3},
		{Class("bogus"), 0},
	}

	for _, tt := range tests {
		if got := tt.class.Interfaces(); got != tt.want {
			t.Errorf("%s.Interfaces() = %d, want %d", tt.class, got, tt.want)
		}
	}
}
