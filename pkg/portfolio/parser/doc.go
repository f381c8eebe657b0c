// Package parser loads portfolio scenarios from YAML documents.
//
// Parsing is two-phased: YAML decoding with unknown-field rejection,
// then structural validation that accumulates every breach instead of
// stopping at the first, so one parse reports all problems in a
// document. Cross-reference and feasibility checks are out of scope
// here; the constraint evaluators own those.
package parser
