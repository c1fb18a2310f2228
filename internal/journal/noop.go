package journal

// NoopJournal is used when no journal database is configured.
type NoopJournal struct{}

func NewNoopJournal() *NoopJournal { return &NoopJournal{} }

func (n *NoopJournal) RecordFetch(_ *FetchEvent) error       { return nil }
func (n *NoopJournal) RecordMutation(_ *MutationEvent) error { return nil }
func (n *NoopJournal) RecordRefresh(_ *RefreshEvent) error   { return nil }
func (n *NoopJournal) Close() error                          { return nil }
