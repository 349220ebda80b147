package awscloud

import (
	"context"
	"fmt"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/autoscaling"
	"github.com/aws/aws-sdk-go-v2/service/ec2"
	elbv2 "github.com/aws/aws-sdk-go-v2/service/elasticloadbalancingv2"
	"github.com/aws/aws-sdk-go-v2/service/route53resolver"
)

// Client is the real AWS-backed implementation of API.
type Client struct {
	elb      *elbv2.Client
	asg      *autoscaling.Client
	ec2      *ec2.Client
	resolver *route53resolver.Client
}

var _ API = (*Client)(nil)

// ClientOption customizes client construction.
type ClientOption func(*clientOptions)

type clientOptions struct {
	accessKey string
	secretKey string
}

// WithStaticCredentials overrides the default credential chain, mainly
// for isolated test accounts.
func WithStaticCredentials(accessKey, secretKey string) ClientOption {
	return func(o *clientOptions) {
		o.accessKey = accessKey
		o.secretKey = secretKey
	}
}

// NewClient creates a client for the given region using the default
// credential chain unless static credentials are supplied.
func NewClient(ctx context.Context, region string, opts ...ClientOption) (*Client, error) {
	var o clientOptions
	for _, opt := range opts {
		opt(&o)
	}

	loadOpts := []func(*awsconfig.LoadOptions) error{
		awsconfig.WithRegion(region),
	}
	if o.accessKey != "" {
		loadOpts = append(loadOpts,
			awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(o.accessKey, o.secretKey, "")))
	}

	cfg, err := awsconfig.LoadDefaultConfig(ctx, loadOpts...)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	return &Client{
		elb:      elbv2.NewFromConfig(cfg),
		asg:      autoscaling.NewFromConfig(cfg),
		ec2:      ec2.NewFromConfig(cfg),
		resolver: route53resolver.NewFromConfig(cfg),
	}, nil
}
