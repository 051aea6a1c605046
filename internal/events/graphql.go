// Package events defines the events the engine publishes on the event bus.
package events

import "time"

// ValidationStart is emitted before a document is validated.
type ValidationStart struct {
	Query string
}

// ValidationFinish is emitted after a document is validated.
type ValidationFinish struct {
	Query    string
	Errors   []error
	Duration time.Duration
}

// ExecutionStart is emitted before an operation is executed.
type ExecutionStart struct {
	Query         string
	OperationName string
	OperationType string
}

// ExecutionFinish is emitted after an operation is executed. Errors holds
// both request errors and field errors.
type ExecutionFinish struct {
	Query         string
	OperationName string
	OperationType string
	Errors        []error
	Duration      time.Duration
}
