// Package orchestrator wires the prompt groups, the connection acquisition
// loop and the generation pipeline into one end-to-end run, providing
// dependency injection friendly options so every collaborator can be
// replaced in tests.
package orchestrator
