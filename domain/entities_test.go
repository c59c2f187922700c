package domain

import "testing"

func TestParseStatus(t *testing.T) {
	tests := []struct {
		raw      string
		expected Status
		ok       bool
	}{
		{raw: "", expected: StatusPending, ok: true},
		{raw: "pending", expected: StatusPending, ok: true},
		{raw: "todo", expected: StatusPending, ok: true},
		{raw: "in-progress", expected: StatusInProgress, ok: true},
		{raw: "in_progress", expected: StatusInProgress, ok: true},
		{raw: "IN PROGRESS", expected: StatusInProgress, ok: true},
		{raw: "completed", expected: StatusCompleted, ok: true},
		{raw: "DONE", expected: StatusCompleted, ok: true},
		{raw: " done ", expected: StatusCompleted, ok: true},
		{raw: "cancelled", ok: false},
		{raw: "finished", ok: false},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			got, ok := ParseStatus(tt.raw)
			if ok != tt.ok {
				t.Fatalf("ParseStatus(%q) ok = %v, want %v", tt.raw, ok, tt.ok)
			}
			if ok && got != tt.expected {
				t.Errorf("ParseStatus(%q) = %s, want %s", tt.raw, got, tt.expected)
			}
		})
	}
}

func TestParsePriority(t *testing.T) {
	tests := []struct {
		raw      string
		expected Priority
		ok       bool
	}{
		{raw: "", expected: PriorityMedium, ok: true},
		{raw: "low", expected: PriorityLow, ok: true},
		{raw: "MEDIUM", expected: PriorityMedium, ok: true},
		{raw: " High ", expected: PriorityHigh, ok: true},
		{raw: "urgent", ok: false},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			got, ok := ParsePriority(tt.raw)
			if ok != tt.ok {
				t.Fatalf("ParsePriority(%q) ok = %v, want %v", tt.raw, ok, tt.ok)
			}
			if ok && got != tt.expected {
				t.Errorf("ParsePriority(%q) = %s, want %s", tt.raw, got, tt.expected)
			}
		})
	}
}

func TestTaskPatch_IsStatusOnly(t *testing.T) {
	status := "done"
	title := "x"
	completed := true

	tests := []struct {
		name     string
		patch    TaskPatch
		expected bool
	}{
		{name: "status alone", patch: TaskPatch{Status: &status}, expected: true},
		{name: "empty patch", patch: TaskPatch{}, expected: false},
		{name: "status with title", patch: TaskPatch{Status: &status, Title: &title}, expected: false},
		{name: "status with completed", patch: TaskPatch{Status: &status, Completed: &completed}, expected: false},
		{name: "title alone", patch: TaskPatch{Title: &title}, expected: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.patch.IsStatusOnly(); got != tt.expected {
				t.Errorf("IsStatusOnly() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestTeamMembershipHelpers(t *testing.T) {
	team := &Team{
		OwnerID: 1,
		Members: []User{{ID: 1}, {ID: 2}},
	}

	if !team.IsOwner(1) || team.IsOwner(2) {
		t.Error("IsOwner must match the owner id only")
	}
	if !team.HasMember(2) || team.HasMember(3) {
		t.Error("HasMember must match listed members only")
	}
}
