package telemetry

import (
	"time"
)

// MsgSessionBegin announces the resolved session to the UI.
type MsgSessionBegin struct {
	Product       string
	Configuration string
}

// MsgStepStart indicates a new step (span) has started.
type MsgStepStart struct {
	SpanID    string
	ParentID  string // empty for the session root
	Name      string
	StartTime time.Time
}

// MsgStepComplete indicates a step (span) has finished.
type MsgStepComplete struct {
	SpanID  string
	EndTime time.Time
	Err     error
}

// MsgStepLog carries a chunk of log output for a specific step.
type MsgStepLog struct {
	SpanID string
	Data   []byte
}
