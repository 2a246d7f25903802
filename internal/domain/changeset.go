package domain

import "context"

// Table names for change-set operations
const (
	TableCandidates   = "candidates"
	TableInterviews   = "interviews"
	TableOffers       = "offers"
	TableConsultants  = "consultants"
	TableRequirements = "requirements"
	TableProjects     = "projects"
	TableMissions     = "missions"
	TableApprovals    = "approval_requests"
	TableHrTickets    = "hr_tickets"
)

// GuardedUpdate is one declared mutation of an existing row. When
// ExpectedStatus is non-empty the committer re-validates it against the
// row's status column (or GuardColumn when set) inside the write itself; a
// row that moved since the snapshot read aborts the whole change set with a
// conflict.
type GuardedUpdate struct {
	Table          string
	ID             string
	ExpectedStatus string
	GuardColumn    string // defaults to "status"
	Set            map[string]any
}

// Insert is one declared row creation
type Insert struct {
	Table   string
	Columns map[string]any
}

// ChangeSet is the full list of mutations one workflow decision produces.
// Decision functions build it without touching storage; a single committer
// applies it all-or-nothing.
type ChangeSet struct {
	Updates []GuardedUpdate
	Inserts []Insert
}

// Update appends a guarded row update
func (cs *ChangeSet) Update(table, id, expectedStatus string, set map[string]any) {
	cs.Updates = append(cs.Updates, GuardedUpdate{
		Table:          table,
		ID:             id,
		ExpectedStatus: expectedStatus,
		Set:            set,
	})
}

// Insert appends a row creation
func (cs *ChangeSet) Insert(table string, columns map[string]any) {
	cs.Inserts = append(cs.Inserts, Insert{Table: table, Columns: columns})
}

// Empty reports whether the change set declares no mutations
func (cs *ChangeSet) Empty() bool {
	return len(cs.Updates) == 0 && len(cs.Inserts) == 0
}

// Committer applies a change set atomically: every guarded update must
// match its expected status or nothing is written.
type Committer interface {
	Commit(ctx context.Context, cs ChangeSet) error
}
