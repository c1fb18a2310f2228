// Package filter narrows cached record snapshots without re-fetching. It
// always works on the last successfully loaded snapshot, so a stale snapshot
// yields stale filtered results by design.
package filter

import (
	"errors"
	"strings"

	"PortfolioDeck/internal/model"
)

// ErrNoActiveClause rejects a filter submission with zero active clauses.
// The caller treats it as a user-input error, not a silent no-op.
var ErrNoActiveClause = errors.New("at least one filter clause must be set")

// Criteria is a conjunction of optional clauses. An empty field is an
// inactive clause: company matches exactly, action matches ignoring case,
// date matches the calendar-date portion of the record timestamp.
type Criteria struct {
	Company string
	Action  string
	Date    string
}

// Active reports whether any clause is set.
func (c Criteria) Active() bool {
	return c.Company != "" || c.Action != "" || c.Date != ""
}

func (c Criteria) matches(company, action, stamp string) bool {
	if c.Company != "" && company != c.Company {
		return false
	}
	if c.Action != "" && !strings.EqualFold(action, c.Action) {
		return false
	}
	if c.Date != "" && model.DateOf(stamp) != c.Date {
		return false
	}
	return true
}

// Transactions returns the snapshot rows satisfying every active clause.
func Transactions(snapshot []model.Transaction, c Criteria) ([]model.Transaction, error) {
	if !c.Active() {
		return nil, ErrNoActiveClause
	}
	out := make([]model.Transaction, 0, len(snapshot))
	for _, tx := range snapshot {
		if c.matches(tx.Company, tx.Action, tx.TimeStamp) {
			out = append(out, tx)
		}
	}
	return out, nil
}

// Statement returns the snapshot rows satisfying every active clause.
// Statement entries carry no ticker, so only action and date clauses apply.
func Statement(snapshot []model.StatementEntry, c Criteria) ([]model.StatementEntry, error) {
	c.Company = ""
	if !c.Active() {
		return nil, ErrNoActiveClause
	}
	out := make([]model.StatementEntry, 0, len(snapshot))
	for _, entry := range snapshot {
		if c.matches("", entry.Action, entry.TimeStamp) {
			out = append(out, entry)
		}
	}
	return out, nil
}
