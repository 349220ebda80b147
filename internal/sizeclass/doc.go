// Package sizeclass defines the connector capacity tiers and the
// compatibility gate between a tier and a compute profile.
//
// A connector's size class controls how many service interfaces it
// exposes (and therefore how many address slots participate in target
// registration). The compatibility table is static: each tier admits a
// fixed set of compute profiles, and a mismatch refuses the whole fleet
// branch before any resource is created.
package sizeclass
