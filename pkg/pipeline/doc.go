// Package pipeline runs an ordered list of labelled steps strictly one after
// another. Every step emits a start event followed by a success or failure
// event. The first failing fail-fast step stops the run and its cause is
// returned untouched; best-effort steps record their failure and let the run
// continue. Nothing is retried and nothing already applied is rolled back.
package pipeline
