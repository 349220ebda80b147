package awscloud

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ec2"
	ec2types "github.com/aws/aws-sdk-go-v2/service/ec2/types"
)

// EnsureEndpointService publishes the gateway load balancer as an
// endpoint service.
func (c *Client) EnsureEndpointService(ctx context.Context, spec EndpointServiceSpec) (EndpointService, error) {
	existing, err := c.ec2.DescribeVpcEndpointServiceConfigurations(ctx, &ec2.DescribeVpcEndpointServiceConfigurationsInput{
		Filters: nameTagFilter(spec.Name),
	})
	if err != nil {
		return EndpointService{}, fmt.Errorf("failed to describe endpoint service %s: %w", spec.Name, err)
	}
	if len(existing.ServiceConfigurations) > 0 {
		svc := existing.ServiceConfigurations[0]
		return EndpointService{
			ID:          aws.ToString(svc.ServiceId),
			ServiceName: aws.ToString(svc.ServiceName),
		}, nil
	}

	created, err := c.ec2.CreateVpcEndpointServiceConfiguration(ctx, &ec2.CreateVpcEndpointServiceConfigurationInput{
		AcceptanceRequired:      aws.Bool(false),
		GatewayLoadBalancerArns: []string{spec.GWLBARN},
		TagSpecifications: []ec2types.TagSpecification{
			{
				ResourceType: ec2types.ResourceTypeVpcEndpointService,
				Tags:         toEC2Tags(withNameTag(spec.Tags, spec.Name)),
			},
		},
	})
	if err != nil {
		return EndpointService{}, fmt.Errorf("failed to create endpoint service %s: %w", spec.Name, err)
	}

	svc := created.ServiceConfiguration
	return EndpointService{
		ID:          aws.ToString(svc.ServiceId),
		ServiceName: aws.ToString(svc.ServiceName),
	}, nil
}

// EnsureEndpoint places one gateway-load-balancer endpoint into a
// subnet and returns its ID.
func (c *Client) EnsureEndpoint(ctx context.Context, spec EndpointSpec) (string, error) {
	existing, err := c.ec2.DescribeVpcEndpoints(ctx, &ec2.DescribeVpcEndpointsInput{
		Filters: nameTagFilter(spec.Name),
	})
	if err != nil {
		return "", fmt.Errorf("failed to describe endpoint %s: %w", spec.Name, err)
	}
	if len(existing.VpcEndpoints) > 0 {
		return aws.ToString(existing.VpcEndpoints[0].VpcEndpointId), nil
	}

	created, err := c.ec2.CreateVpcEndpoint(ctx, &ec2.CreateVpcEndpointInput{
		VpcEndpointType: ec2types.VpcEndpointTypeGatewayLoadBalancer,
		VpcId:           aws.String(spec.VPCID),
		ServiceName:     aws.String(spec.ServiceName),
		SubnetIds:       []string{spec.SubnetID},
		TagSpecifications: []ec2types.TagSpecification{
			{
				ResourceType: ec2types.ResourceTypeVpcEndpoint,
				Tags:         toEC2Tags(withNameTag(spec.Tags, spec.Name)),
			},
		},
	})
	if err != nil {
		return "", fmt.Errorf("failed to create endpoint %s in %s: %w", spec.Name, spec.SubnetID, err)
	}
	return aws.ToString(created.VpcEndpoint.VpcEndpointId), nil
}

func nameTagFilter(name string) []ec2types.Filter {
	return []ec2types.Filter{
		{
			Name:   aws.String("tag:Name"),
			Values: []string{name},
		},
	}
}

func withNameTag(tags map[string]string, name string) map[string]string {
	merged := make(map[string]string, len(tags)+1)
	for k, v := range tags {
		merged[k] = v
	}
	merged["Name"] = name
	return merged
}
