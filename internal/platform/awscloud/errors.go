package awscloud

import (
	"errors"

	elbv2types "github.com/aws/aws-sdk-go-v2/service/elasticloadbalancingv2/types"
	resolvertypes "github.com/aws/aws-sdk-go-v2/service/route53resolver/types"
	"github.com/aws/smithy-go"
)

// isNotFound reports whether the error means "resource does not exist",
// which the Ensure* operations treat as "create it".
func isNotFound(err error) bool {
	if err == nil {
		return false
	}

	var lbnf *elbv2types.LoadBalancerNotFoundException
	if errors.As(err, &lbnf) {
		return true
	}
	var tgnf *elbv2types.TargetGroupNotFoundException
	if errors.As(err, &tgnf) {
		return true
	}
	var rnf *resolvertypes.ResourceNotFoundException
	if errors.As(err, &rnf) {
		return true
	}

	// Fall back to API error codes; EC2 has no typed not-found errors.
	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		switch apiErr.ErrorCode() {
		case "LoadBalancerNotFound",
			"TargetGroupNotFound",
			"ResourceNotFoundException",
			"InvalidLaunchTemplateName.NotFoundException",
			"InvalidLaunchTemplateId.NotFound",
			"InvalidVpcEndpointId.NotFound",
			"InvalidVpcEndpointServiceId.NotFound":
			return true
		}
	}

	return false
}

// isAlreadyExists reports whether the error means the resource or
// association is already in place, which the Ensure* operations treat
// as success.
func isAlreadyExists(err error) bool {
	if err == nil {
		return false
	}

	var ree *resolvertypes.ResourceExistsException
	if errors.As(err, &ree) {
		return true
	}

	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		switch apiErr.ErrorCode() {
		case "ResourceExistsException",
			"AlreadyExists",
			"DuplicateTargetGroupName",
			"DuplicateLoadBalancerName",
			"InvalidLaunchTemplateName.AlreadyExistsException":
			return true
		}
	}

	return false
}
