// Package types defines the tweet entity, the Pubkey and Seed identities, the
// SlotStore and Caller interfaces, and the standard errors shared by the
// tweetbox packages.
//
// See pkg/layout for the on-disk slot format, pkg/address for slot address
// derivation, and pkg/program for the create/update/delete lifecycle.
package types
