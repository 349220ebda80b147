package identity

import "fmt"

// Naming functions for deployment resources.
// All resource names derive purely from (prefix, suffix) so that
// re-planning with the same identity reproduces the same names.

func (d *Deployment) GatewayLoadBalancer() string {
	return fmt.Sprintf("%s-gwlb-%s", d.NamePrefix, d.Suffix)
}

func (d *Deployment) TargetGroup() string {
	return fmt.Sprintf("%s-tg-%s", d.NamePrefix, d.Suffix)
}

func (d *Deployment) Fleet() string {
	return fmt.Sprintf("%s-fleet-%s", d.NamePrefix, d.Suffix)
}

func (d *Deployment) LaunchTemplate() string {
	return fmt.Sprintf("%s-lt-%s", d.NamePrefix, d.Suffix)
}

func (d *Deployment) EndpointService() string {
	return fmt.Sprintf("%s-gwlbe-svc-%s", d.NamePrefix, d.Suffix)
}

func (d *Deployment) Endpoint(subnetIndex int) string {
	return fmt.Sprintf("%s-gwlbe-%d-%s", d.NamePrefix, subnetIndex, d.Suffix)
}

func (d *Deployment) Bastion() string {
	return fmt.Sprintf("%s-bastion-%s", d.NamePrefix, d.Suffix)
}

func (d *Deployment) BastionKey() string {
	return fmt.Sprintf("%s-bastion-key-%s", d.NamePrefix, d.Suffix)
}

func (d *Deployment) ResolverRule(domainIndex int) string {
	return fmt.Sprintf("%s-fwd-%d-%s", d.NamePrefix, domainIndex, d.Suffix)
}

func (d *Deployment) StateRecordKey() string {
	return fmt.Sprintf("deployments/%s/registrations.json", d.Name())
}
