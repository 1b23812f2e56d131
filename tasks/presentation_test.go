package tasks

import (
	"testing"
	"time"
)

func datePtr(t time.Time) *time.Time { return &t }

func TestClassifyAndOrderOrdering(t *testing.T) {
	now := time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)

	// Deliberately shuffled input covering every ordering bucket:
	// incomplete dated, incomplete undated, completed dated, completed undated.
	input := []Task{
		{ID: 1, Title: "completed undated", IsCompleted: true},
		{ID: 2, Title: "incomplete undated"},
		{ID: 3, Title: "completed late", IsCompleted: true, DueDate: datePtr(now.Add(-24 * time.Hour))},
		{ID: 4, Title: "incomplete far", DueDate: datePtr(now.Add(96 * time.Hour))},
		{ID: 5, Title: "completed early", IsCompleted: true, DueDate: datePtr(now.Add(-72 * time.Hour))},
		{ID: 6, Title: "incomplete near", DueDate: datePtr(now.Add(12 * time.Hour))},
	}

	got := ClassifyAndOrder(input, now)

	wantIDs := []int{6, 4, 2, 3, 5, 1}
	if len(got) != len(wantIDs) {
		t.Fatalf("got %d tasks, want %d", len(got), len(wantIDs))
	}
	for i, want := range wantIDs {
		if got[i].ID != want {
			t.Errorf("position %d: got task %d, want task %d", i, got[i].ID, want)
		}
	}
}

func TestClassifyAndOrderDoesNotMutateInput(t *testing.T) {
	now := time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)
	input := []Task{
		{ID: 1, IsCompleted: true},
		{ID: 2, DueDate: datePtr(now.Add(time.Hour))},
	}

	ClassifyAndOrder(input, now)

	if input[0].ID != 1 || input[1].ID != 2 {
		t.Errorf("input slice was reordered: %v, %v", input[0].ID, input[1].ID)
	}
}

func TestClassifyAndOrderStableForTies(t *testing.T) {
	now := time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)
	due := now.Add(24 * time.Hour)
	input := []Task{
		{ID: 10, DueDate: datePtr(due)},
		{ID: 11, DueDate: datePtr(due)},
		{ID: 12, DueDate: datePtr(due)},
	}

	got := ClassifyAndOrder(input, now)

	for i, want := range []int{10, 11, 12} {
		if got[i].ID != want {
			t.Errorf("position %d: got task %d, want task %d; equal due dates must keep input order", i, got[i].ID, want)
		}
	}
}

func TestClassifyUrgency(t *testing.T) {
	now := time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		task Task
		want Urgency
	}{
		{"overdue by a minute", Task{DueDate: datePtr(now.Add(-time.Minute))}, UrgencyOverdue},
		{"overdue by days", Task{DueDate: datePtr(now.Add(-120 * time.Hour))}, UrgencyOverdue},
		{"due exactly now is not overdue", Task{DueDate: datePtr(now)}, UrgencyDueSoon},
		{"due within the window", Task{DueDate: datePtr(now.Add(47 * time.Hour))}, UrgencyDueSoon},
		{"due at the window boundary", Task{DueDate: datePtr(now.Add(48 * time.Hour))}, UrgencyDueSoon},
		{"due past the window", Task{DueDate: datePtr(now.Add(48*time.Hour + time.Second))}, UrgencyDueLater},
		{"completed carries no urgency", Task{IsCompleted: true, DueDate: datePtr(now.Add(-time.Hour))}, ""},
		{"undated carries no urgency", Task{}, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := classify(tt.task, now); got != tt.want {
				t.Errorf("classify() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestClassifyAndOrderEmpty(t *testing.T) {
	got := ClassifyAndOrder(nil, time.Now())
	if len(got) != 0 {
		t.Errorf("got %d views for no tasks", len(got))
	}
}
