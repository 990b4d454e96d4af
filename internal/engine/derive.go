package engine

import (
	"sort"

	"github.com/rgaitan/wotrack/internal/domain"
)

// ActiveSessions derives the set of currently open sessions for one finding
// by folding its events in (timestamp, seq) order: a START opens or refreshes
// the employee's session, a STOP closes it. A STOP with no matching open
// START is ignored rather than treated as corruption. The result is ordered
// by when each surviving session was first opened.
func ActiveSessions(events []domain.ManhourEvent, findingID string) []domain.ActiveSession {
	scoped := make([]domain.ManhourEvent, 0, len(events))
	for _, e := range events {
		if e.FindingID == findingID {
			scoped = append(scoped, e)
		}
	}
	return fold(scoped)
}

// ActiveByFinding runs the same derivation across the whole log, grouped by
// finding. Findings with no open sessions are absent from the map.
func ActiveByFinding(events []domain.ManhourEvent) map[string][]domain.ActiveSession {
	byFinding := make(map[string][]domain.ManhourEvent)
	for _, e := range events {
		byFinding[e.FindingID] = append(byFinding[e.FindingID], e)
	}

	result := make(map[string][]domain.ActiveSession)
	for findingID, scoped := range byFinding {
		if sessions := fold(scoped); len(sessions) > 0 {
			result[findingID] = sessions
		}
	}
	return result
}

// IsActiveAnywhere reports whether the employee holds an open session on any
// finding in the log, and on which finding.
func IsActiveAnywhere(events []domain.ManhourEvent, employeeID string) (string, bool) {
	for findingID, sessions := range ActiveByFinding(events) {
		for _, s := range sessions {
			if s.EmployeeID == employeeID {
				return findingID, true
			}
		}
	}
	return "", false
}

// fold replays events already scoped to a single finding. Events are sorted
// by timestamp with the store-assigned seq breaking ties, so derivation is
// deterministic regardless of input order.
func fold(events []domain.ManhourEvent) []domain.ActiveSession {
	sorted := make([]domain.ManhourEvent, len(events))
	copy(sorted, events)
	sort.SliceStable(sorted, func(i, j int) bool {
		if !sorted[i].Timestamp.Equal(sorted[j].Timestamp) {
			return sorted[i].Timestamp.Before(sorted[j].Timestamp)
		}
		return sorted[i].Seq < sorted[j].Seq
	})

	open := make(map[string]domain.ActiveSession)
	var order []string

	for _, e := range sorted {
		switch e.Action {
		case domain.ActionStart:
			if _, exists := open[e.EmployeeID]; !exists {
				order = append(order, e.EmployeeID)
			}
			open[e.EmployeeID] = domain.ActiveSession{
				FindingID:  e.FindingID,
				EmployeeID: e.EmployeeID,
				TaskCode:   e.TaskCode,
				StartedAt:  e.Timestamp,
			}
		case domain.ActionStop:
			if _, exists := open[e.EmployeeID]; exists {
				delete(open, e.EmployeeID)
				order = removeID(order, e.EmployeeID)
			}
		}
	}

	sessions := make([]domain.ActiveSession, 0, len(open))
	for _, id := range order {
		sessions = append(sessions, open[id])
	}
	return sessions
}

func removeID(ids []string, id string) []string {
	for i, v := range ids {
		if v == id {
			return append(ids[:i], ids[i+1:]...)
		}
	}
	return ids
}
