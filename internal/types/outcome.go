// Package types defines common types used across the application.
package types

import "net"

// OutcomeKind is the closed classification of one target's processing result.
type OutcomeKind string

const (
	OutcomeSuccess           OutcomeKind = "Success"
	OutcomeSkippedAlreadySet OutcomeKind = "SkippedAlreadySet"
	OutcomeRolledBack        OutcomeKind = "RolledBack"
	OutcomeError             OutcomeKind = "Error"
	OutcomeNoAdapterFound    OutcomeKind = "NoAdapterFound"
	OutcomeConnectionFailed  OutcomeKind = "ConnectionFailed"
)

// Category groups outcome kinds for summary reporting.
type Category string

const (
	CategorySucceeded Category = "succeeded"
	CategoryFailed    Category = "failed"
	CategorySkipped   Category = "skipped"
)

// Category maps an outcome kind to its summary category. The mapping is by
// enum tag, never by string prefix matching.
func (k OutcomeKind) Category() Category {
	switch k {
	case OutcomeSuccess:
		return CategorySucceeded
	case OutcomeSkippedAlreadySet:
		return CategorySkipped
	default:
		return CategoryFailed
	}
}

// AdapterSnapshot captures the IPv4 addressing state of one adapter at the
// start of a reconfiguration attempt. It is never persisted beyond that
// attempt; rollback restores exactly these values.
type AdapterSnapshot struct {
	InterfaceAlias string
	IPAddress      net.IP
	PrefixLength   int
	Gateway        net.IP   // nil when no default route exists for the adapter
	DNSServers     []net.IP // ordered
}

// ReconfigurationRequest is built once per target before dispatch.
type ReconfigurationRequest struct {
	Target              string
	DesiredPrefixLength int
}

// ReconfigurationOutcome is the immutable result of processing one target.
// Its JSON encoding is the wire format of the remote-execution boundary.
type ReconfigurationOutcome struct {
	Target          string      `json:"target"`
	OldPrefixLength *int        `json:"old_prefix,omitempty"`
	NewPrefixLength int         `json:"new_prefix"`
	Kind            OutcomeKind `json:"result"`
	Message         string      `json:"message,omitempty"`
}
