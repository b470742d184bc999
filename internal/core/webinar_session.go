package core

import "sync"

// WebinarStatus is the last known state of the webinar pushed by the server
type WebinarStatus string

const (
	WebinarIdle       WebinarStatus = "idle"
	WebinarPracticing WebinarStatus = "practicing"
	WebinarStreaming  WebinarStatus = "streaming"
)

// PracticeSessionStatus is the practice-session state pushed by the server
type PracticeSessionStatus struct {
	Enabled bool `json:"enabled"`
}

// WebinarSession is the in-memory state of the local participant within
// a webinar attached to a meeting. It lives and dies with the meeting,
// nothing here is persisted.
type WebinarSession struct {
	mu sync.RWMutex

	controlURL string
	webcastURL string

	selfIsPanelist   bool
	selfIsAttendee   bool
	canManageWebcast bool

	practiceSessionEnabled *bool
	status                 WebinarStatus
}

// WebinarSnapshot is a read-only copy of the session state
type WebinarSnapshot struct {
	ControlURL             string        `json:"control_url,omitempty"`
	WebcastURL             string        `json:"webcast_url,omitempty"`
	SelfIsPanelist         bool          `json:"self_is_panelist"`
	SelfIsAttendee         bool          `json:"self_is_attendee"`
	CanManageWebcast       bool          `json:"can_manage_webcast"`
	PracticeSessionEnabled *bool         `json:"practice_session_enabled,omitempty"`
	Status                 WebinarStatus `json:"status,omitempty"`
}

// NewWebinarSession creates an empty session
func NewWebinarSession() *WebinarSession {
	return &WebinarSession{status: WebinarIdle}
}

// SetControlURL updates the base URL for session-level control operations
func (s *WebinarSession) SetControlURL(url string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.controlURL = url
}

// ControlURL returns the base URL for session-level control operations,
// empty string means unset
func (s *WebinarSession) ControlURL() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.controlURL
}

// UpdateWebcastURL extracts resources.webcastInstance.url from a
// resource-update event payload. Any other payload shape leaves the
// URL unchanged.
func (s *WebinarSession) UpdateWebcastURL(payload map[string]interface{}) {
	url, ok := stringAtPath(payload, "resources", "webcastInstance", "url")
	if !ok {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.webcastURL = url
}

// WebcastURL returns the base URL of the webcast sub-resource,
// empty string means unset
func (s *WebinarSession) WebcastURL() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.webcastURL
}

// SetRoleFlags updates the three capability flags in one assignment
func (s *WebinarSession) SetRoleFlags(panelist, attendee, manageWebcast bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.selfIsPanelist = panelist
	s.selfIsAttendee = attendee
	s.canManageWebcast = manageWebcast
}

func (s *WebinarSession) SelfIsPanelist() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.selfIsPanelist
}

func (s *WebinarSession) SelfIsAttendee() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.selfIsAttendee
}

func (s *WebinarSession) CanManageWebcast() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.canManageWebcast
}

// UpdatePracticeSessionStatus mirrors the practice-session status pushed
// by the server, no validation
func (s *WebinarSession) UpdatePracticeSessionStatus(status PracticeSessionStatus) {
	s.mu.Lock()
	defer s.mu.Unlock()
	enabled := status.Enabled
	s.practiceSessionEnabled = &enabled
	if enabled {
		s.status = WebinarPracticing
	} else if s.status == WebinarPracticing {
		s.status = WebinarIdle
	}
}

// PracticeSessionEnabled returns the last known practice-session state;
// known is false until the server pushed a status at least once
func (s *WebinarSession) PracticeSessionEnabled() (enabled, known bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.practiceSessionEnabled == nil {
		return false, false
	}
	return *s.practiceSessionEnabled, true
}

// SetStatus updates the webinar status pushed by the server
func (s *WebinarSession) SetStatus(status WebinarStatus) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.status = status
}

func (s *WebinarSession) Status() WebinarStatus {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.status
}

// Snapshot returns a copy of the session state for the diagnostics API
func (s *WebinarSession) Snapshot() WebinarSnapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snapshot := WebinarSnapshot{
		ControlURL:       s.controlURL,
		WebcastURL:       s.webcastURL,
		SelfIsPanelist:   s.selfIsPanelist,
		SelfIsAttendee:   s.selfIsAttendee,
		CanManageWebcast: s.canManageWebcast,
		Status:           s.status,
	}
	if s.practiceSessionEnabled != nil {
		enabled := *s.practiceSessionEnabled
		snapshot.PracticeSessionEnabled = &enabled
	}
	return snapshot
}

// stringAtPath walks nested objects of a JSON-like payload and returns the
// string at the given path. Missing or mistyped segments never raise.
func stringAtPath(node map[string]interface{}, path ...string) (string, bool) {
	if node == nil || len(path) == 0 {
		return "", false
	}
	for _, key := range path[:len(path)-1] {
		next, ok := node[key].(map[string]interface{})
		if !ok {
			return "", false
		}
		node = next
	}
	value, ok := node[path[len(path)-1]].(string)
	return value, ok
}
