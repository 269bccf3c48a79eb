package submission

// TransitionPolicy decides whether a submission may move from one status to another.
type TransitionPolicy interface {
	Allowed(from, to Status) bool
	Name() string
}

// TransitionTable is a policy backed by an explicit (from, to) table.
type TransitionTable struct {
	name  string
	edges map[Status]map[Status]bool
}

func (t *TransitionTable) Name() string { return t.name }

func (t *TransitionTable) Allowed(from, to Status) bool {
	if !to.Valid() {
		return false
	}
	return t.edges[from][to]
}

// PermissivePolicy lets an authorized reviewer set any status from any status.
func PermissivePolicy() *TransitionTable {
	edges := make(map[Status]map[Status]bool, len(Statuses))
	for _, from := range Statuses {
		edges[from] = make(map[Status]bool, len(Statuses))
		for _, to := range Statuses {
			edges[from][to] = true
		}
	}
	return &TransitionTable{name: "permissive", edges: edges}
}

// StrictPolicy only allows forward progress, a return from under_review to
// pending, reopening an approval, and re-recording the current status.
func StrictPolicy() *TransitionTable {
	edges := map[Status]map[Status]bool{
		StatusPending:     {StatusUnderReview: true, StatusApproved: true, StatusRejected: true},
		StatusUnderReview: {StatusApproved: true, StatusRejected: true, StatusPending: true},
		StatusApproved:    {StatusCompleted: true, StatusUnderReview: true},
		StatusRejected:    {},
		StatusCompleted:   {},
	}
	for _, s := range Statuses {
		edges[s][s] = true
	}
	return &TransitionTable{name: "strict", edges: edges}
}
