package identity

import "testing"

func TestNamingFunctions(t *testing.T) {
	d := &Deployment{NamePrefix: "cc", Suffix: "a1b2c3"}

	tests := []struct {
		name     string
		got      string
		expected string
	}{
		{
			name:     "GatewayLoadBalancer",
			got:      d.GatewayLoadBalancer(),
			expected: "cc-gwlb-a1b2c3",
		},
		{
			name:     "TargetGroup",
			got:      d.TargetGroup(),
			expected: "cc-tg-a1b2c3",
		},
		{
			name:     "Fleet",
			got:      d.Fleet(),
			expected: "cc-fleet-a1b2c3",
		},
		{
			name:     "LaunchTemplate",
			got:      d.LaunchTemplate(),
			expected: "cc-lt-a1b2c3",
		},
		{
			name:     "EndpointService",
			got:      d.EndpointService(),
			expected: "cc-gwlbe-svc-a1b2c3",
		},
		{
			name:     "Endpoint",
			got:      d.Endpoint(2),
			expected: "cc-gwlbe-2-a1b2c3",
		},
		{
			name:     "Bastion",
			got:      d.Bastion(),
			expected: "cc-bastion-a1b2c3",
		},
		{
			name:     "BastionKey",
			got:      d.BastionKey(),
			expected: "cc-bastion-key-a1b2c3",
		},
		{
			name:     "ResolverRule",
			got:      d.ResolverRule(0),
			expected: "cc-fwd-0-a1b2c3",
		},
		{
			name:     "StateRecordKey",
			got:      d.StateRecordKey(),
			expected: "deployments/cc-a1b2c3/registrations.json",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.got != tt.expected {
				t.Errorf("Expected %q, got %q", tt.expected, tt.got)
			}
		})
	}
}
