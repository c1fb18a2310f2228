// Package journal appends session diagnostics for post-session inspection.
// It is observability only: the client never reads it back, and no domain
// state lives here.
package journal

// FetchEvent records one resource fetch and its outcome.
type FetchEvent struct {
	RequestID string
	Resource  string
	Company   string
	Outcome   string // "OK" or "FAIL"
	Error     string
}

// MutationEvent records one submitted mutation and its outcome.
type MutationEvent struct {
	RequestID string
	Op        string // "ADD", "REMOVE", "LIQUIDATE", "DEPOSIT", "WITHDRAW"
	Company   string
	Quantity  int64
	Price     float64
	Amount    int64
	Outcome   string
	Error     string
}

// RefreshEvent records one refresh fan-out.
type RefreshEvent struct {
	Trigger  string // the mutation or command that caused it
	Views    string // comma-joined refreshed views
	Failures int
}

// Journal persists session events.
type Journal interface {
	RecordFetch(evt *FetchEvent) error
	RecordMutation(evt *MutationEvent) error
	RecordRefresh(evt *RefreshEvent) error
	Close() error
}
