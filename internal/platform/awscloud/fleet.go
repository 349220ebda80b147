package awscloud

import (
	"context"
	"encoding/base64"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/autoscaling"
	asgtypes "github.com/aws/aws-sdk-go-v2/service/autoscaling/types"
	"github.com/aws/aws-sdk-go-v2/service/ec2"
	ec2types "github.com/aws/aws-sdk-go-v2/service/ec2/types"
)

// EnsureLaunchTemplate ensures the connector launch template exists and
// returns its ID. The bootstrap payload is base64-encoded into user
// data without inspection.
func (c *Client) EnsureLaunchTemplate(ctx context.Context, spec LaunchTemplateSpec) (string, error) {
	out, err := c.ec2.DescribeLaunchTemplates(ctx, &ec2.DescribeLaunchTemplatesInput{
		LaunchTemplateNames: []string{spec.Name},
	})
	if err == nil && len(out.LaunchTemplates) > 0 {
		return aws.ToString(out.LaunchTemplates[0].LaunchTemplateId), nil
	}
	if err != nil && !isNotFound(err) {
		return "", fmt.Errorf("failed to describe launch template %s: %w", spec.Name, err)
	}

	data := &ec2types.RequestLaunchTemplateData{
		ImageId:          aws.String(spec.ImageID),
		InstanceType:     ec2types.InstanceType(spec.InstanceType),
		UserData:         aws.String(base64.StdEncoding.EncodeToString(spec.BootstrapPayload)),
		SecurityGroupIds: spec.SecurityGroupIDs,
	}
	if spec.InstanceProfileARN != "" {
		data.IamInstanceProfile = &ec2types.LaunchTemplateIamInstanceProfileSpecificationRequest{
			Arn: aws.String(spec.InstanceProfileARN),
		}
	}
	if len(spec.Tags) > 0 {
		data.TagSpecifications = []ec2types.LaunchTemplateTagSpecificationRequest{
			{
				ResourceType: ec2types.ResourceTypeInstance,
				Tags:         toEC2Tags(spec.Tags),
			},
		}
	}

	created, err := c.ec2.CreateLaunchTemplate(ctx, &ec2.CreateLaunchTemplateInput{
		LaunchTemplateName: aws.String(spec.Name),
		LaunchTemplateData: data,
		TagSpecifications: []ec2types.TagSpecification{
			{
				ResourceType: ec2types.ResourceTypeLaunchTemplate,
				Tags:         toEC2Tags(spec.Tags),
			},
		},
	})
	if err != nil {
		return "", fmt.Errorf("failed to create launch template %s: %w", spec.Name, err)
	}
	return aws.ToString(created.LaunchTemplate.LaunchTemplateId), nil
}

// EnsureFleet ensures the autoscaling group exists with the requested
// sizing. An existing group is updated in place so sizing changes
// converge on re-plan.
func (c *Client) EnsureFleet(ctx context.Context, spec FleetSpec) error {
	out, err := c.asg.DescribeAutoScalingGroups(ctx, &autoscaling.DescribeAutoScalingGroupsInput{
		AutoScalingGroupNames: []string{spec.Name},
	})
	if err != nil {
		return fmt.Errorf("failed to describe autoscaling group %s: %w", spec.Name, err)
	}

	if len(out.AutoScalingGroups) > 0 {
		_, err = c.asg.UpdateAutoScalingGroup(ctx, &autoscaling.UpdateAutoScalingGroupInput{
			AutoScalingGroupName: aws.String(spec.Name),
			MinSize:              aws.Int32(int32(spec.MinSize)),
			MaxSize:              aws.Int32(int32(spec.MaxSize)),
			DesiredCapacity:      aws.Int32(int32(spec.DesiredCapacity)),
			VPCZoneIdentifier:    aws.String(strings.Join(spec.SubnetIDs, ",")),
		})
		if err != nil {
			return fmt.Errorf("failed to update autoscaling group %s: %w", spec.Name, err)
		}
		return nil
	}

	input := &autoscaling.CreateAutoScalingGroupInput{
		AutoScalingGroupName: aws.String(spec.Name),
		MinSize:              aws.Int32(int32(spec.MinSize)),
		MaxSize:              aws.Int32(int32(spec.MaxSize)),
		DesiredCapacity:      aws.Int32(int32(spec.DesiredCapacity)),
		VPCZoneIdentifier:    aws.String(strings.Join(spec.SubnetIDs, ",")),
		LaunchTemplate: &asgtypes.LaunchTemplateSpecification{
			LaunchTemplateId: aws.String(spec.LaunchTemplateID),
			Version:          aws.String("$Latest"),
		},
		Tags: toASGTags(spec.Tags),
	}
	if spec.TargetGroupARN != "" {
		input.TargetGroupARNs = []string{spec.TargetGroupARN}
	}
	_, err = c.asg.CreateAutoScalingGroup(ctx, input)
	if err != nil {
		if isAlreadyExists(err) {
			return nil
		}
		return fmt.Errorf("failed to create autoscaling group %s: %w", spec.Name, err)
	}
	return nil
}

// DeleteFleet removes the autoscaling group and its instances.
func (c *Client) DeleteFleet(ctx context.Context, name string) error {
	_, err := c.asg.DeleteAutoScalingGroup(ctx, &autoscaling.DeleteAutoScalingGroupInput{
		AutoScalingGroupName: aws.String(name),
		ForceDelete:          aws.Bool(true),
	})
	if err != nil && !isNotFound(err) {
		return fmt.Errorf("failed to delete autoscaling group %s: %w", name, err)
	}
	return nil
}

// DeleteLaunchTemplate removes the launch template by name.
func (c *Client) DeleteLaunchTemplate(ctx context.Context, name string) error {
	_, err := c.ec2.DeleteLaunchTemplate(ctx, &ec2.DeleteLaunchTemplateInput{
		LaunchTemplateName: aws.String(name),
	})
	if err != nil && !isNotFound(err) {
		return fmt.Errorf("failed to delete launch template %s: %w", name, err)
	}
	return nil
}

func toEC2Tags(tags map[string]string) []ec2types.Tag {
	if len(tags) == 0 {
		return nil
	}
	out := make([]ec2types.Tag, 0, len(tags))
	for k, v := range tags {
		out = append(out, ec2types.Tag{Key: aws.String(k), Value: aws.String(v)})
	}
	return out
}

func toASGTags(tags map[string]string) []asgtypes.Tag {
	if len(tags) == 0 {
		return nil
	}
	out := make([]asgtypes.Tag, 0, len(tags))
	for k, v := range tags {
		out = append(out, asgtypes.Tag{
			Key:               aws.String(k),
			Value:             aws.String(v),
			PropagateAtLaunch: aws.Bool(true),
		})
	}
	return out
}
