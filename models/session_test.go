package models

import "testing"

func TestValidateTransition(t *testing.T) {
	tests := []struct {
		name    string
		from    SessionStatus
		to      SessionStatus
		allowed bool
	}{
		{"scheduled to completed", StatusScheduled, StatusCompleted, true},
		{"scheduled to cancelled", StatusScheduled, StatusCancelled, true},
		{"scheduled to scheduled", StatusScheduled, StatusScheduled, false},
		{"completed is terminal", StatusCompleted, StatusCancelled, false},
		{"completed cannot reopen", StatusCompleted, StatusScheduled, false},
		{"cancelled is terminal", StatusCancelled, StatusCompleted, false},
		{"unknown source status", SessionStatus("limbo"), StatusCompleted, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateTransition(tt.from, tt.to)
			if tt.allowed && err != nil {
				t.Fatalf("expected %s -> %s to be allowed, got %v", tt.from, tt.to, err)
			}
			if !tt.allowed && err == nil {
				t.Fatalf("expected %s -> %s to be rejected", tt.from, tt.to)
			}
		})
	}
}

func TestStatusVocabularies(t *testing.T) {
	sessionStatuses := []string{"scheduled", "completed", "cancelled"}
	requestStatuses := []string{"pending", "accepted", "declined", "rescheduled"}

	for _, s := range sessionStatuses {
		if !IsSessionStatus(s) {
			t.Fatalf("expected %q in session vocabulary", s)
		}
		if IsRequestStatus(s) {
			t.Fatalf("did not expect %q in request vocabulary", s)
		}
	}
	for _, s := range requestStatuses {
		if !IsRequestStatus(s) {
			t.Fatalf("expected %q in request vocabulary", s)
		}
		if IsSessionStatus(s) {
			t.Fatalf("did not expect %q in session vocabulary", s)
		}
	}
	if IsSessionStatus("all") || IsRequestStatus("all") {
		t.Fatal("'all' is a filter keyword, not a stored status")
	}
}
