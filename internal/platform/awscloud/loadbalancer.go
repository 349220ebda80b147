package awscloud

import (
	"context"
	"fmt"
	"strconv"

	"github.com/aws/aws-sdk-go-v2/aws"
	elbv2 "github.com/aws/aws-sdk-go-v2/service/elasticloadbalancingv2"
	elbv2types "github.com/aws/aws-sdk-go-v2/service/elasticloadbalancingv2/types"

	"github.com/nimbusgate/ccfleet/internal/util/retry"
)

// EnsureGatewayLoadBalancer ensures a gateway-type load balancer exists
// with the requested cross-zone setting and returns its ARN.
func (c *Client) EnsureGatewayLoadBalancer(ctx context.Context, spec GatewayLoadBalancerSpec) (string, error) {
	arn, err := c.findLoadBalancer(ctx, spec.Name)
	if err != nil {
		return "", err
	}

	if arn == "" {
		out, err := c.elb.CreateLoadBalancer(ctx, &elbv2.CreateLoadBalancerInput{
			Name:    aws.String(spec.Name),
			Type:    elbv2types.LoadBalancerTypeEnumGateway,
			Subnets: spec.SubnetIDs,
			Tags:    toELBTags(spec.Tags),
		})
		if err != nil {
			return "", fmt.Errorf("failed to create gateway load balancer %s: %w", spec.Name, err)
		}
		if len(out.LoadBalancers) == 0 {
			return "", fmt.Errorf("create load balancer %s returned no handle", spec.Name)
		}
		arn = aws.ToString(out.LoadBalancers[0].LoadBalancerArn)
	}

	// Cross-zone balancing is an attribute, applied on update too so a
	// config change converges on re-plan.
	_, err = c.elb.ModifyLoadBalancerAttributes(ctx, &elbv2.ModifyLoadBalancerAttributesInput{
		LoadBalancerArn: aws.String(arn),
		Attributes: []elbv2types.LoadBalancerAttribute{
			{
				Key:   aws.String("load_balancing.cross_zone.enabled"),
				Value: aws.String(strconv.FormatBool(spec.CrossZone)),
			},
		},
	})
	if err != nil {
		return "", fmt.Errorf("failed to set cross-zone attribute on %s: %w", spec.Name, err)
	}

	return arn, nil
}

func (c *Client) findLoadBalancer(ctx context.Context, name string) (string, error) {
	out, err := c.elb.DescribeLoadBalancers(ctx, &elbv2.DescribeLoadBalancersInput{
		Names: []string{name},
	})
	if err != nil {
		if isNotFound(err) {
			return "", nil
		}
		return "", fmt.Errorf("failed to describe load balancer %s: %w", name, err)
	}
	if len(out.LoadBalancers) == 0 {
		return "", nil
	}
	return aws.ToString(out.LoadBalancers[0].LoadBalancerArn), nil
}

// EnsureTargetGroup ensures a GENEVE target group exists in the VPC and
// returns its ARN.
func (c *Client) EnsureTargetGroup(ctx context.Context, spec TargetGroupSpec) (string, error) {
	out, err := c.elb.DescribeTargetGroups(ctx, &elbv2.DescribeTargetGroupsInput{
		Names: []string{spec.Name},
	})
	if err == nil && len(out.TargetGroups) > 0 {
		return aws.ToString(out.TargetGroups[0].TargetGroupArn), nil
	}
	if err != nil && !isNotFound(err) {
		return "", fmt.Errorf("failed to describe target group %s: %w", spec.Name, err)
	}

	created, err := c.elb.CreateTargetGroup(ctx, &elbv2.CreateTargetGroupInput{
		Name:                       aws.String(spec.Name),
		Protocol:                   elbv2types.ProtocolEnumGeneve,
		Port:                       aws.Int32(GenevePort),
		VpcId:                      aws.String(spec.VPCID),
		TargetType:                 elbv2types.TargetTypeEnumIp,
		HealthCheckProtocol:        elbv2types.ProtocolEnumHttp,
		HealthCheckPort:            aws.String(strconv.Itoa(spec.HealthCheck.Port)),
		HealthCheckPath:            aws.String(spec.HealthCheck.Path),
		HealthCheckIntervalSeconds: aws.Int32(int32(spec.HealthCheck.IntervalSeconds)),
		HealthyThresholdCount:      aws.Int32(int32(spec.HealthCheck.HealthyThreshold)),
		UnhealthyThresholdCount:    aws.Int32(int32(spec.HealthCheck.UnhealthyThreshold)),
		Tags:                       toELBTags(spec.Tags),
	})
	if err != nil {
		return "", fmt.Errorf("failed to create target group %s: %w", spec.Name, err)
	}
	if len(created.TargetGroups) == 0 {
		return "", fmt.Errorf("create target group %s returned no handle", spec.Name)
	}
	return aws.ToString(created.TargetGroups[0].TargetGroupArn), nil
}

// ListTargets returns the addresses currently registered with the
// target group.
func (c *Client) ListTargets(ctx context.Context, targetGroupARN string) ([]string, error) {
	out, err := c.elb.DescribeTargetHealth(ctx, &elbv2.DescribeTargetHealthInput{
		TargetGroupArn: aws.String(targetGroupARN),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list targets: %w", err)
	}

	addrs := make([]string, 0, len(out.TargetHealthDescriptions))
	for _, desc := range out.TargetHealthDescriptions {
		if desc.Target != nil {
			addrs = append(addrs, aws.ToString(desc.Target.Id))
		}
	}
	return addrs, nil
}

// RegisterTargets registers the addresses with the target group.
// Registration converges the deployment's traffic path, so transient
// API errors are retried with backoff.
func (c *Client) RegisterTargets(ctx context.Context, targetGroupARN string, addresses []string) error {
	if len(addresses) == 0 {
		return nil
	}
	err := retry.Do(ctx, func() error {
		_, err := c.elb.RegisterTargets(ctx, &elbv2.RegisterTargetsInput{
			TargetGroupArn: aws.String(targetGroupARN),
			Targets:        toTargetDescriptions(addresses),
		})
		if err != nil && isNotFound(err) {
			return retry.Fatal(err)
		}
		return err
	}, retry.WithMaxRetries(3))
	if err != nil {
		return fmt.Errorf("failed to register %d targets: %w", len(addresses), err)
	}
	return nil
}

// DeregisterTargets removes the addresses from the target group.
func (c *Client) DeregisterTargets(ctx context.Context, targetGroupARN string, addresses []string) error {
	if len(addresses) == 0 {
		return nil
	}
	err := retry.Do(ctx, func() error {
		_, err := c.elb.DeregisterTargets(ctx, &elbv2.DeregisterTargetsInput{
			TargetGroupArn: aws.String(targetGroupARN),
			Targets:        toTargetDescriptions(addresses),
		})
		if err != nil && isNotFound(err) {
			return retry.Fatal(err)
		}
		return err
	}, retry.WithMaxRetries(3))
	if err != nil {
		return fmt.Errorf("failed to deregister %d targets: %w", len(addresses), err)
	}
	return nil
}

// DeleteLoadBalancer removes the gateway load balancer by name. A
// missing load balancer is success.
func (c *Client) DeleteLoadBalancer(ctx context.Context, name string) error {
	arn, err := c.findLoadBalancer(ctx, name)
	if err != nil {
		return err
	}
	if arn == "" {
		return nil
	}
	_, err = c.elb.DeleteLoadBalancer(ctx, &elbv2.DeleteLoadBalancerInput{
		LoadBalancerArn: aws.String(arn),
	})
	if err != nil && !isNotFound(err) {
		return fmt.Errorf("failed to delete load balancer %s: %w", name, err)
	}
	return nil
}

// DeleteTargetGroup removes the target group by name. A missing group
// is success.
func (c *Client) DeleteTargetGroup(ctx context.Context, name string) error {
	out, err := c.elb.DescribeTargetGroups(ctx, &elbv2.DescribeTargetGroupsInput{
		Names: []string{name},
	})
	if err != nil {
		if isNotFound(err) {
			return nil
		}
		return fmt.Errorf("failed to describe target group %s: %w", name, err)
	}
	if len(out.TargetGroups) == 0 {
		return nil
	}
	_, err = c.elb.DeleteTargetGroup(ctx, &elbv2.DeleteTargetGroupInput{
		TargetGroupArn: out.TargetGroups[0].TargetGroupArn,
	})
	if err != nil && !isNotFound(err) {
		return fmt.Errorf("failed to delete target group %s: %w", name, err)
	}
	return nil
}

func toTargetDescriptions(addresses []string) []elbv2types.TargetDescription {
	targets := make([]elbv2types.TargetDescription, 0, len(addresses))
	for _, addr := range addresses {
		targets = append(targets, elbv2types.TargetDescription{Id: aws.String(addr)})
	}
	return targets
}

func toELBTags(tags map[string]string) []elbv2types.Tag {
	if len(tags) == 0 {
		return nil
	}
	out := make([]elbv2types.Tag, 0, len(tags))
	for k, v := range tags {
		out = append(out, elbv2types.Tag{Key: aws.String(k), Value: aws.String(v)})
	}
	return out
}
