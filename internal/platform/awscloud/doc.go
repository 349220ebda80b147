// Package awscloud wraps the AWS control-plane APIs the deployment
// touches: gateway load balancers and target groups (ELBv2),
// autoscaling groups and launch templates, VPC endpoints, resolver
// rules, and VPC/subnet discovery.
//
// Every Ensure* operation is idempotent: it looks the resource up by
// name first and only creates what is missing, so re-running a plan
// against an already-materialized deployment produces no new side
// effects.
package awscloud
