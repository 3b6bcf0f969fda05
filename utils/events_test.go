package utils

import (
	"testing"
	"time"

	"github.com/mindmatch/therapy-api/models"
)

func TestStatusFilterPartition(t *testing.T) {
	tests := []struct {
		filter       string
		wantSessions bool
		wantRequests bool
	}{
		{"", true, true},
		{"all", true, true},
		{"scheduled", true, false},
		{"completed", true, false},
		{"cancelled", true, false},
		{"pending", false, true},
		{"accepted", false, true},
		{"declined", false, true},
		{"rescheduled", false, true},
		{"bogus", false, false},
		{"PENDING", false, false},
	}

	for _, tt := range tests {
		t.Run(tt.filter, func(t *testing.T) {
			if got := WantSessions(tt.filter); got != tt.wantSessions {
				t.Fatalf("WantSessions(%q) = %t, want %t", tt.filter, got, tt.wantSessions)
			}
			if got := WantRequests(tt.filter); got != tt.wantRequests {
				t.Fatalf("WantRequests(%q) = %t, want %t", tt.filter, got, tt.wantRequests)
			}
		})
	}
}

func TestMergeEventsSortsDescending(t *testing.T) {
	t1 := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)
	t2 := t1.Add(24 * time.Hour)
	t3 := t1.Add(48 * time.Hour)

	sessions := []models.Session{
		{ExpertID: 1, SessionType: "Online Sessions", StartTime: t2, Status: models.StatusCompleted},
	}
	requests := []models.SessionRequest{
		{ExpertID: 1, SessionType: "Online Sessions", RequestedTime: t1, Status: models.RequestPending},
		{ExpertID: 2, SessionType: "In-Person", RequestedTime: t3, Status: models.RequestPending},
	}

	events := MergeEvents(sessions, requests)
	if len(events) != 3 {
		t.Fatalf("expected 3 events, got %d", len(events))
	}

	want := []time.Time{t3, t2, t1}
	for i, e := range events {
		if !e.EffectiveTime().Equal(want[i]) {
			t.Fatalf("event %d at %v, want %v", i, e.EffectiveTime(), want[i])
		}
	}

	// The session is ordered by its start_time, not the request vocabulary
	if events[1].Kind != models.EventSession {
		t.Fatalf("expected middle event to be the session, got %s", events[1].Kind)
	}
}

func TestMergeEventsBothKindsPresent(t *testing.T) {
	start := time.Date(2025, 3, 12, 10, 0, 0, 0, time.UTC)
	sessions := []models.Session{
		{ExpertID: 7, SessionType: "Online Sessions", StartTime: start, Status: models.StatusCompleted},
	}
	requests := []models.SessionRequest{
		{ExpertID: 7, SessionType: "Online Sessions", RequestedTime: start.Add(-time.Hour), Status: models.RequestPending},
	}

	events := MergeEvents(sessions, requests)
	if len(events) != 2 {
		t.Fatalf("expected 2 events, got %d", len(events))
	}
	if events[0].Kind != models.EventSession || events[1].Kind != models.EventRequest {
		t.Fatalf("unexpected kinds: %s, %s", events[0].Kind, events[1].Kind)
	}
}

func TestDedupEventsCollapsesAcceptedRequestWithSession(t *testing.T) {
	at := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)

	session := models.Session{ExpertID: 3, SessionType: "Online Sessions", StartTime: at, Status: models.StatusScheduled}
	request := models.SessionRequest{ExpertID: 3, SessionType: "Online Sessions", RequestedTime: at, Status: models.RequestAccepted}

	events := MergeEvents([]models.Session{session}, []models.SessionRequest{request})
	deduped := DedupEvents(events)

	if len(deduped) != 1 {
		t.Fatalf("expected 1 event after dedup, got %d", len(deduped))
	}
	// First-seen entry wins
	if deduped[0].Kind != events[0].Kind {
		t.Fatalf("dedup kept %s, want first-seen %s", deduped[0].Kind, events[0].Kind)
	}
}

func TestDedupEventsKeepsDistinctBookings(t *testing.T) {
	at := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		session models.Session
		request models.SessionRequest
	}{
		{
			name:    "different expert",
			session: models.Session{ExpertID: 1, SessionType: "Online Sessions", StartTime: at, Status: models.StatusScheduled},
			request: models.SessionRequest{ExpertID: 2, SessionType: "Online Sessions", RequestedTime: at, Status: models.RequestAccepted},
		},
		{
			name:    "different session type",
			session: models.Session{ExpertID: 1, SessionType: "Online Sessions", StartTime: at, Status: models.StatusScheduled},
			request: models.SessionRequest{ExpertID: 1, SessionType: "In-Person", RequestedTime: at, Status: models.RequestAccepted},
		},
		{
			name:    "different time",
			session: models.Session{ExpertID: 1, SessionType: "Online Sessions", StartTime: at, Status: models.StatusScheduled},
			request: models.SessionRequest{ExpertID: 1, SessionType: "Online Sessions", RequestedTime: at.Add(time.Hour), Status: models.RequestAccepted},
		},
		{
			name:    "pending does not normalize to scheduled",
			session: models.Session{ExpertID: 1, SessionType: "Online Sessions", StartTime: at, Status: models.StatusScheduled},
			request: models.SessionRequest{ExpertID: 1, SessionType: "Online Sessions", RequestedTime: at, Status: models.RequestPending},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			events := MergeEvents([]models.Session{tt.session}, []models.SessionRequest{tt.request})
			deduped := DedupEvents(events)
			if len(deduped) != 2 {
				t.Fatalf("expected 2 events, got %d", len(deduped))
			}
		})
	}
}

func TestDedupEventsIdempotent(t *testing.T) {
	at := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)

	sessions := []models.Session{
		{ExpertID: 1, SessionType: "Online Sessions", StartTime: at, Status: models.StatusScheduled},
		{ExpertID: 2, SessionType: "In-Person", StartTime: at.Add(time.Hour), Status: models.StatusCompleted},
	}
	requests := []models.SessionRequest{
		{ExpertID: 1, SessionType: "Online Sessions", RequestedTime: at, Status: models.RequestAccepted},
		{ExpertID: 3, SessionType: "Online Sessions", RequestedTime: at.Add(2 * time.Hour), Status: models.RequestPending},
	}

	once := DedupEvents(MergeEvents(sessions, requests))
	twice := DedupEvents(once)

	if len(once) != len(twice) {
		t.Fatalf("dedup not idempotent: %d vs %d", len(once), len(twice))
	}
	for i := range once {
		if once[i].Kind != twice[i].Kind || !once[i].EffectiveTime().Equal(twice[i].EffectiveTime()) {
			t.Fatalf("dedup not idempotent at index %d", i)
		}
	}
}
