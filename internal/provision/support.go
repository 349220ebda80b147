package provision

import (
	"context"

	"github.com/nimbusgate/ccfleet/internal/plan"
	"github.com/nimbusgate/ccfleet/internal/util/keygen"
)

// Support carries the opaque handles the fleet consumes plus the bastion
// access keypair. The handles come from external providers and pass
// through unmodified; only the keypair is generated here.
type Support struct {
	InstanceProfileARN string
	SecurityGroupIDs   []string

	BastionKeyName       string
	BastionAuthorizedKey string
	BastionPrivateKeyPEM string
}

func (d *Deployer) provisionSupport(_ context.Context, in plan.Inputs) (any, error) {
	dep, err := deployment(in)
	if err != nil {
		return nil, err
	}

	pair, err := keygen.Generate(d.cfg.Support.BastionKeyBits)
	if err != nil {
		return nil, err
	}

	return Support{
		InstanceProfileARN:   d.cfg.Support.InstanceProfileARN,
		SecurityGroupIDs:     d.cfg.Support.SecurityGroupIDs,
		BastionKeyName:       dep.BastionKey(),
		BastionAuthorizedKey: pair.AuthorizedKey,
		BastionPrivateKeyPEM: pair.PrivateKeyPEM,
	}, nil
}
