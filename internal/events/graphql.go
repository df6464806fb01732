package events

import "time"

// GraphQLStart is emitted before executing one GraphQL operation.
type GraphQLStart struct {
	OperationName string
	OperationType string
}

// GraphQLFinish is emitted after executing one GraphQL operation.
// ErrorCount covers execution errors and rule violations alike.
type GraphQLFinish struct {
	OperationName string
	OperationType string
	ErrorCount    int
	Duration      time.Duration
}
