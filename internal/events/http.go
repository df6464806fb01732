package events

import "time"

// HTTPStart is emitted when the GraphQL endpoint receives a request.
// Context carries the request ID.
type HTTPStart struct {
	Method string
	Path   string
}

// HTTPFinish is emitted after the response has been written.
type HTTPFinish struct {
	Method   string
	Path     string
	Status   int
	Duration time.Duration
}
