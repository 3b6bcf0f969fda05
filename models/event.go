package models

import "time"

type EventKind string

const (
	EventSession EventKind = "session"
	EventRequest EventKind = "request"
)

// Event is one entry of the merged calendar feed: either a confirmed Session
// or a pending SessionRequest, carried with an explicit kind tag so callers
// never duck-type on field presence.
type Event struct {
	Kind    EventKind       `json:"kind"`
	Session *Session        `json:"session,omitempty"`
	Request *SessionRequest `json:"request,omitempty"`
}

// EffectiveTime is the timestamp the feed is ordered by: a Session's
// start time, a Request's requested time.
func (e Event) EffectiveTime() time.Time {
	if e.Kind == EventSession && e.Session != nil {
		return e.Session.StartTime
	}
	if e.Request != nil {
		return e.Request.RequestedTime
	}
	return time.Time{}
}

// ExpertID returns the referenced expert regardless of kind
func (e Event) ExpertID() uint {
	if e.Kind == EventSession && e.Session != nil {
		return e.Session.ExpertID
	}
	if e.Request != nil {
		return e.Request.ExpertID
	}
	return 0
}

// SessionType returns the session-type tag regardless of kind
func (e Event) SessionType() string {
	if e.Kind == EventSession && e.Session != nil {
		return e.Session.SessionType
	}
	if e.Request != nil {
		return e.Request.SessionType
	}
	return ""
}

// Status returns the raw status string regardless of kind
func (e Event) Status() string {
	if e.Kind == EventSession && e.Session != nil {
		return string(e.Session.Status)
	}
	if e.Request != nil {
		return string(e.Request.Status)
	}
	return ""
}
