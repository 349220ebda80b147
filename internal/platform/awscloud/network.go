package awscloud

import (
	"context"
	"fmt"
	"sort"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ec2"
	ec2types "github.com/aws/aws-sdk-go-v2/service/ec2/types"
)

// LookupVPC finds the VPC carrying the given tag.
func (c *Client) LookupVPC(ctx context.Context, tagKey, tagValue string) (string, error) {
	out, err := c.ec2.DescribeVpcs(ctx, &ec2.DescribeVpcsInput{
		Filters: []ec2types.Filter{
			{
				Name:   aws.String("tag:" + tagKey),
				Values: []string{tagValue},
			},
		},
	})
	if err != nil {
		return "", fmt.Errorf("failed to look up VPC by %s=%s: %w", tagKey, tagValue, err)
	}
	if len(out.Vpcs) == 0 {
		return "", fmt.Errorf("no VPC tagged %s=%s", tagKey, tagValue)
	}
	if len(out.Vpcs) > 1 {
		return "", fmt.Errorf("%d VPCs tagged %s=%s, expected exactly one", len(out.Vpcs), tagKey, tagValue)
	}
	return aws.ToString(out.Vpcs[0].VpcId), nil
}

// LookupSubnets finds the connector subnets in the VPC carrying the
// given tag, ordered by availability zone for stable downstream naming.
func (c *Client) LookupSubnets(ctx context.Context, vpcID, tagKey, tagValue string) ([]string, error) {
	out, err := c.ec2.DescribeSubnets(ctx, &ec2.DescribeSubnetsInput{
		Filters: []ec2types.Filter{
			{
				Name:   aws.String("vpc-id"),
				Values: []string{vpcID},
			},
			{
				Name:   aws.String("tag:" + tagKey),
				Values: []string{tagValue},
			},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to look up subnets by %s=%s: %w", tagKey, tagValue, err)
	}

	subnets := append([]ec2types.Subnet(nil), out.Subnets...)
	sort.Slice(subnets, func(i, j int) bool {
		azi, azj := aws.ToString(subnets[i].AvailabilityZone), aws.ToString(subnets[j].AvailabilityZone)
		if azi != azj {
			return azi < azj
		}
		return aws.ToString(subnets[i].SubnetId) < aws.ToString(subnets[j].SubnetId)
	})

	ids := make([]string, 0, len(subnets))
	for _, s := range subnets {
		ids = append(ids, aws.ToString(s.SubnetId))
	}
	return ids, nil
}
