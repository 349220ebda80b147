// Package provision builds and executes the deployment plan.
//
// A Deployer turns a validated configuration into an explicit dependency
// graph of provisioning steps and hands it to the plan executor.
// Independent branches run concurrently; a failed step skips exactly its
// transitive consumers. Re-running the same deployment converges: every
// step ensures rather than creates, and the registration step applies
// only the delta against what was previously registered.
package provision
