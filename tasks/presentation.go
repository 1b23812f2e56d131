package tasks

import (
	"sort"
	"time"
)

// Urgency is a derived, non-persisted label computed at presentation time
// from a task's due date and completion state.
type Urgency string

const (
	// UrgencyOverdue marks an incomplete task whose due date has passed.
	UrgencyOverdue Urgency = "overdue"
	// UrgencyDueSoon marks an incomplete task due within the next two days.
	UrgencyDueSoon Urgency = "due-soon"
	// UrgencyDueLater marks an incomplete task due further out.
	UrgencyDueLater Urgency = "due-later"
)

// dueSoonWindow is how far ahead a due date still counts as "due soon".
const dueSoonWindow = 48 * time.Hour

// TaskView is a task annotated with its urgency for display. Completed and
// undated tasks carry no urgency label.
type TaskView struct {
	Task
	Urgency Urgency `json:"urgency,omitempty"`
}

// ClassifyAndOrder maps a set of tasks into a deterministic, display-ready
// ordering with urgency labels. It is a pure function: the caller supplies
// the current time, so results are reproducible.
//
// Ordering:
//  1. incomplete tasks before completed tasks;
//  2. within incomplete tasks: ascending by due date, undated last;
//  3. within completed tasks: descending by due date, undated last.
//
// Ties keep their incoming relative order.
func ClassifyAndOrder(ts []Task, now time.Time) []TaskView {
	ordered := make([]Task, len(ts))
	copy(ordered, ts)

	sort.SliceStable(ordered, func(i, j int) bool {
		return taskLess(ordered[i], ordered[j])
	})

	views := make([]TaskView, len(ordered))
	for i, t := range ordered {
		views[i] = TaskView{Task: t, Urgency: classify(t, now)}
	}
	return views
}

// taskLess implements the total order over tasks described on ClassifyAndOrder.
func taskLess(a, b Task) bool {
	if a.IsCompleted != b.IsCompleted {
		return !a.IsCompleted
	}
	if a.DueDate == nil && b.DueDate == nil {
		return false
	}
	// Undated tasks sort after all dated tasks in both groups.
	if a.DueDate == nil {
		return false
	}
	if b.DueDate == nil {
		return true
	}
	if a.IsCompleted {
		return a.DueDate.After(*b.DueDate)
	}
	return a.DueDate.Before(*b.DueDate)
}

// classify derives the urgency label for a task. Only incomplete tasks with
// a due date are labelled.
func classify(t Task, now time.Time) Urgency {
	if t.IsCompleted || t.DueDate == nil {
		return ""
	}
	if t.DueDate.Before(now) {
		return UrgencyOverdue
	}
	if t.DueDate.Sub(now) <= dueSoonWindow {
		return UrgencyDueSoon
	}
	return UrgencyDueLater
}
