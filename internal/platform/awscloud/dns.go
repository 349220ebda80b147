package awscloud

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/route53resolver"
	resolvertypes "github.com/aws/aws-sdk-go-v2/service/route53resolver/types"
)

// EnsureResolverRule ensures a forward rule exists for the domain,
// targeting the deployment's endpoint addresses, and returns its ID.
func (c *Client) EnsureResolverRule(ctx context.Context, spec ResolverRuleSpec) (string, error) {
	existing, err := c.resolver.ListResolverRules(ctx, &route53resolver.ListResolverRulesInput{
		Filters: []resolvertypes.Filter{
			{
				Name:   aws.String("Name"),
				Values: []string{spec.Name},
			},
		},
	})
	if err != nil {
		return "", fmt.Errorf("failed to list resolver rules: %w", err)
	}
	if len(existing.ResolverRules) > 0 {
		return aws.ToString(existing.ResolverRules[0].Id), nil
	}

	targets := make([]resolvertypes.TargetAddress, 0, len(spec.TargetIPs))
	for _, ip := range spec.TargetIPs {
		targets = append(targets, resolvertypes.TargetAddress{Ip: aws.String(ip)})
	}

	input := &route53resolver.CreateResolverRuleInput{
		// The rule name doubles as the idempotency token: retrying the
		// same deployment never creates a second rule.
		CreatorRequestId: aws.String(spec.Name),
		Name:             aws.String(spec.Name),
		RuleType:         resolvertypes.RuleTypeOptionForward,
		DomainName:       aws.String(spec.Domain),
		TargetIps:        targets,
		Tags:             toResolverTags(spec.Tags),
	}
	if spec.ResolverEndpointID != "" {
		input.ResolverEndpointId = aws.String(spec.ResolverEndpointID)
	}

	created, err := c.resolver.CreateResolverRule(ctx, input)
	if err != nil {
		return "", fmt.Errorf("failed to create resolver rule %s: %w", spec.Name, err)
	}
	return aws.ToString(created.ResolverRule.Id), nil
}

// AssociateResolverRule binds a rule to the VPC. An existing
// association is success.
func (c *Client) AssociateResolverRule(ctx context.Context, ruleID, vpcID, name string) error {
	_, err := c.resolver.AssociateResolverRule(ctx, &route53resolver.AssociateResolverRuleInput{
		ResolverRuleId: aws.String(ruleID),
		VPCId:          aws.String(vpcID),
		Name:           aws.String(name),
	})
	if err != nil && !isAlreadyExists(err) {
		return fmt.Errorf("failed to associate resolver rule %s with %s: %w", ruleID, vpcID, err)
	}
	return nil
}

func toResolverTags(tags map[string]string) []resolvertypes.Tag {
	if len(tags) == 0 {
		return nil
	}
	out := make([]resolvertypes.Tag, 0, len(tags))
	for k, v := range tags {
		out = append(out, resolvertypes.Tag{Key: aws.String(k), Value: aws.String(v)})
	}
	return out
}
