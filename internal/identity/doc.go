// Package identity generates the deployment identity shared by every
// resource in one connector deployment.
//
// The identity couples a caller-chosen name prefix with a random
// fixed-length suffix and a canonical tag set. It is generated exactly
// once per deployment; every resource name and tag set downstream is a
// pure function of it, which is what keeps resources correlatable
// across resource groups.
package identity
