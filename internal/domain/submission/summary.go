package submission

import "strings"

// Summarize counts submissions by status.
func Summarize(subs []Submission) Summary {
	sum := Summary{Total: len(subs)}
	for _, s := range subs {
		switch s.Status {
		case StatusPending:
			sum.Pending++
		case StatusUnderReview:
			sum.UnderReview++
		case StatusApproved:
			sum.Approved++
		case StatusRejected:
			sum.Rejected++
		case StatusCompleted:
			sum.Completed++
		}
	}
	return sum
}

// Matches reports whether s passes the filter. The query is a case-insensitive
// substring match over title, student name, roll number and email.
func (f ListFilter) Matches(s Submission) bool {
	if f.Status != nil && s.Status != *f.Status {
		return false
	}
	q := strings.ToLower(strings.TrimSpace(f.Query))
	if q == "" {
		return true
	}
	for _, field := range []string{s.ProjectTitle, s.StudentName, s.RollNumber, s.StudentEmail} {
		if strings.Contains(strings.ToLower(field), q) {
			return true
		}
	}
	return false
}
