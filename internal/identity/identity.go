package identity

import (
	"crypto/rand"
	"fmt"
	"io"
	"strings"
)

// Standard tag keys applied to every resource in a deployment.
// Using the ccfleet.io prefix for clear namespacing of the cluster key.
const (
	// KeyDeployment identifies which deployment a resource belongs to.
	KeyDeployment = "ccfleet.io/deployment"

	// KeyOwner records the owning team or user.
	KeyOwner = "Owner"

	// KeyManagedBy identifies the management system.
	KeyManagedBy = "ManagedBy"

	// KeyVendor identifies the appliance vendor.
	KeyVendor = "Vendor"
)

// ManagedBy and Vendor values.
const (
	ManagedByCcfleet = "ccfleet"
	VendorNimbusgate = "nimbusgate"
)

// SuffixLength is the fixed length of the random deployment suffix.
const SuffixLength = 6

// suffixAlphabet is restricted to lowercase letters and digits so the
// suffix stays valid inside every downstream naming scheme (several
// forbid uppercase, underscores, or separators).
const suffixAlphabet = "abcdefghijklmnopqrstuvwxyz0123456789"

// Deployment is the immutable identity of one connector deployment.
type Deployment struct {
	NamePrefix string
	Suffix     string
	Tags       map[string]string
}

// Generate creates a new deployment identity. The suffix is drawn from
// crypto/rand and must be generated exactly once per deployment:
// regenerating it for different components breaks cross-resource name
// correlation.
//
// Extra tags merge last-writer-wins, except the reserved keys
// (deployment, Owner, ManagedBy, Vendor), which always win.
func Generate(namePrefix, owner string, extra map[string]string) (*Deployment, error) {
	if namePrefix == "" {
		return nil, fmt.Errorf("name prefix is required")
	}

	suffix, err := randomSuffix(rand.Reader, SuffixLength)
	if err != nil {
		return nil, fmt.Errorf("failed to generate deployment suffix: %w", err)
	}

	d := &Deployment{
		NamePrefix: namePrefix,
		Suffix:     suffix,
	}
	d.Tags = mergeTags(d.Name(), owner, extra)
	return d, nil
}

// FromName reconstructs a deployment identity from its canonical name,
// for operations against an existing deployment: converging it on
// re-apply, or tearing it down. Tags are rebuilt from the name, owner,
// and extra tags the same way Generate builds them, so a resumed apply
// tags resources identically to the first one.
func FromName(name, owner string, extra map[string]string) (*Deployment, error) {
	idx := strings.LastIndex(name, "-")
	if idx <= 0 || len(name)-idx-1 != SuffixLength {
		return nil, fmt.Errorf("deployment name %q does not end in a %d-character suffix", name, SuffixLength)
	}
	suffix := name[idx+1:]
	for _, r := range suffix {
		if !strings.ContainsRune(suffixAlphabet, r) {
			return nil, fmt.Errorf("deployment name %q has an invalid suffix character %q", name, r)
		}
	}
	d := &Deployment{
		NamePrefix: name[:idx],
		Suffix:     suffix,
	}
	d.Tags = mergeTags(d.Name(), owner, extra)
	return d, nil
}

// Name returns the canonical deployment name, the value of the
// deployment tag on every resource.
func (d *Deployment) Name() string {
	return fmt.Sprintf("%s-%s", d.NamePrefix, d.Suffix)
}

// TagsWith returns the deployment tag set merged with additional
// per-resource tags. Reserved keys still win.
func (d *Deployment) TagsWith(extra map[string]string) map[string]string {
	merged := make(map[string]string, len(d.Tags)+len(extra))
	for k, v := range d.Tags {
		merged[k] = v
	}
	for k, v := range extra {
		if isReserved(k) {
			continue
		}
		merged[k] = v
	}
	return merged
}

func mergeTags(deploymentName, owner string, extra map[string]string) map[string]string {
	tags := make(map[string]string, len(extra)+4)
	for k, v := range extra {
		tags[k] = v
	}
	// Reserved keys are written last so they always win.
	tags[KeyDeployment] = deploymentName
	tags[KeyOwner] = owner
	tags[KeyManagedBy] = ManagedByCcfleet
	tags[KeyVendor] = VendorNimbusgate
	return tags
}

func isReserved(key string) bool {
	switch key {
	case KeyDeployment, KeyOwner, KeyManagedBy, KeyVendor:
		return true
	}
	return false
}

func randomSuffix(r io.Reader, length int) (string, error) {
	// 256 is not a multiple of the alphabet size, so a plain modulo
	// would skew towards the low characters. Bytes past the largest
	// multiple are rejected and redrawn, keeping the draw uniform.
	limit := byte(256 - 256%len(suffixAlphabet))
	buf := make([]byte, length)
	out := make([]byte, 0, length)
	for len(out) < length {
		if _, err := io.ReadFull(r, buf); err != nil {
			return "", err
		}
		for _, b := range buf {
			if b >= limit {
				continue
			}
			out = append(out, suffixAlphabet[int(b)%len(suffixAlphabet)])
			if len(out) == length {
				break
			}
		}
	}
	return string(out), nil
}
