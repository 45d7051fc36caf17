// Package event defines the canonical Event record shared by every pipeline
// stage, along with stable id derivation, date helpers, and the completeness
// score used to break ties between duplicate records.
package event
