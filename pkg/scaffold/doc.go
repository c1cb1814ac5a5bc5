// Package scaffold holds the side-effecting steps that turn run parameters
// into a generated project: the generator subprocess, the secrets file, the
// manifest dependency merge, dependency installation and the git commit. Plan
// arranges them into pipeline steps.
package scaffold
