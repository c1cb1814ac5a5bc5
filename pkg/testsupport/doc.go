// Package testsupport provides deterministic doubles for the wizard's
// terminal, subprocess and network collaborators.
package testsupport
