package utils

import (
	"fmt"
	"sort"
	"strings"

	"github.com/mindmatch/therapy-api/models"
)

// WantSessions reports whether a status filter admits confirmed sessions
func WantSessions(statusFilter string) bool {
	return statusFilter == "" || statusFilter == "all" || models.IsSessionStatus(statusFilter)
}

// WantRequests reports whether a status filter admits session requests
func WantRequests(statusFilter string) bool {
	return statusFilter == "" || statusFilter == "all" || models.IsRequestStatus(statusFilter)
}

// MergeEvents concatenates sessions and requests into one feed sorted
// strictly descending by effective timestamp.
func MergeEvents(sessions []models.Session, requests []models.SessionRequest) []models.Event {
	events := make([]models.Event, 0, len(sessions)+len(requests))
	for i := range sessions {
		events = append(events, models.Event{Kind: models.EventSession, Session: &sessions[i]})
	}
	for i := range requests {
		events = append(events, models.Event{Kind: models.EventRequest, Request: &requests[i]})
	}
	sort.SliceStable(events, func(i, j int) bool {
		return events[i].EffectiveTime().After(events[j].EffectiveTime())
	})
	return events
}

// DedupEvents collapses entries representing the same logical booking: an
// accepted request and the session created from it both appear in the feed.
// The key is (expert_id, session_type, ISO-8601 timestamp, status) with
// "accepted" normalized to "scheduled"; the first-seen entry per key wins.
func DedupEvents(events []models.Event) []models.Event {
	seen := make(map[string]bool, len(events))
	out := make([]models.Event, 0, len(events))
	for _, e := range events {
		status := strings.ToLower(e.Status())
		if status == string(models.RequestAccepted) {
			status = string(models.StatusScheduled)
		}
		key := fmt.Sprintf("%d|%s|%s|%s",
			e.ExpertID(), e.SessionType(), e.EffectiveTime().UTC().Format("2006-01-02T15:04:05Z07:00"), status)
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, e)
	}
	return out
}
