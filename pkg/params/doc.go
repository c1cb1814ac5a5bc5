// Package params holds the immutable parameter records produced by the wizard
// prompts and the syntactic checks applied to them before any remote call is
// made.
package params
