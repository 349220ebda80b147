package sizeclass

import (
	"strings"
	"testing"
)

func TestValidateProfile_AllowedSets(t *testing.T) {
	// Every profile in a class's allowed set must validate, and every
	// profile from another class's set must not.
	for class, allowed := range compatTable {
		for profile := range allowed {
			res := ValidateProfile(class, profile)
			if !res.OK {
				t.Errorf("ValidateProfile(%s, %s) = %q, want success", class, profile, res.Diagnostic)
			}
		}
	}

	crossPairs := []struct {
		class   Class
		profile string
	}{
		{Small, "m5.2xlarge"},
		{Small, "m5.4xlarge"},
		{Medium, "t3.medium"},
		{Medium, "c5.4xlarge"},
		{Large, "m5.large"},
		{Large, "m5n.2xlarge"},
	}
	for _, pair := range crossPairs {
		res := ValidateProfile(pair.class, pair.profile)
		if res.OK {
			t.Errorf("ValidateProfile(%s, %s) succeeded, want failure", pair.class, pair.profile)
		}
	}
}

func TestValidateProfile_UnknownProfile(t *testing.T) {
	res := ValidateProfile(Small, "z9.mega")
	if res.OK {
		t.Fatal("expected failure for unknown profile")
	}
	if !strings.Contains(res.Diagnostic, "z9.mega") || !strings.Contains(res.Diagnostic, "small") {
		t.Errorf("diagnostic should name the profile and class, got: %s", res.Diagnostic)
	}
	// The diagnostic must be actionable: it lists what would be accepted.
	if !strings.Contains(res.Diagnostic, "m5.large") {
		t.Errorf("diagnostic should list allowed profiles, got: %s", res.Diagnostic)
	}
}

func TestValidateProfile_UnknownClass(t *testing.T) {
	res := ValidateProfile(Class("huge"), "m5.large")
	if res.OK {
		t.Fatal("expected failure for unknown class")
	}
}

func TestValidateProfile_Pure(t *testing.T) {
	// Same inputs, same result, no hidden state.
	first := ValidateProfile(Medium, "m5.2xlarge")
	for range 100 {
		if got := ValidateProfile(Medium, "m5.2xlarge"); got != first {
			t.Fatalf("ValidateProfile is not deterministic: %+v != %+v", got, first)
		}
	}
}
