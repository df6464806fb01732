package events

import "time"

// RuleValidation is emitted after the rules wrapper validated the arguments
// of one wrapped field resolution, whether or not violations were found.
type RuleValidation struct {
	ObjectType string
	Field      string
	Violations int
	Duration   time.Duration
}
