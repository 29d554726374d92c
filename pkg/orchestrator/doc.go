// Package orchestrator simulates a multi-agent pipeline without calling any
// model. Given a blueprint and a form submission it selects the workers whose
// trigger keywords occur in the submission, grades severity, and assembles a
// canned analysis (timeline, root cause, resolution) from fixed rule tables.
//
// Process is a pure function of its input and the read-only tables; the only
// non-deterministic part is the identifier, which comes from a pluggable
// IDGenerator. ProcessStream replays the same work as a sequence of progress
// events separated by fixed delays and always runs to completion.
package orchestrator
