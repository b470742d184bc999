package eventbus

import (
	"bytes"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/isqad/livelook-webinar/internal/core"
)

const mockMeetingID = "0c4038d6-da68-11ec-9d64-0242ac120002"

type MockCallbacks struct {
	RoleChangeFired      bool
	RoleChangeParams     RoleChangeParams
	ResourceUpdateFired  bool
	ResourceParams       map[string]interface{}
	PracticeStatusFired  bool
	PracticeStatusParams core.PracticeSessionStatus
	WebcastStatusFired   bool
}

func (m *MockCallbacks) OnRoleChange(params RoleChangeParams) error {
	m.RoleChangeFired = true
	m.RoleChangeParams = params

	return nil
}

func (m *MockCallbacks) OnResourceUpdate(params map[string]interface{}) error {
	m.ResourceUpdateFired = true
	m.ResourceParams = params

	return nil
}

func (m *MockCallbacks) OnPracticeSessionStatus(params core.PracticeSessionStatus) error {
	m.PracticeStatusFired = true
	m.PracticeStatusParams = params

	return nil
}

func (m *MockCallbacks) OnWebcastStatus(params WebcastStatusParams) error {
	m.WebcastStatusFired = true

	return nil
}

func mockEventPayload(method Method, params string) []byte {
	return []byte(fmt.Sprintf(`{"method":"%s","params":%s}`, method, params))
}

func TestNewRouter(t *testing.T) {
	mockBus := NewMockBus()
	defer mockBus.Close()

	s := NewMockSubscriber(mockBus)

	_, err := NewRouter(s, mockMeetingID)
	assert.Nil(t, err)

	assert.Equal(t, true, s.Subscribed)
	assert.Equal(t, mockMeetingID, s.MeetingID)
}

func TestEventFromReader(t *testing.T) {
	payload := mockEventPayload(RoleChangeMethod, `{"oldRoles":["ATTENDEE"],"newRoles":["PANELIST"]}`)

	event, err := EventFromReader(bytes.NewReader(payload))
	assert.Nil(t, err)
	assert.Equal(t, RoleChangeMethod, event.GetMethod())

	roleChange, ok := event.(*RoleChangeEvent)
	assert.Equal(t, true, ok)
	assert.Equal(t, []string{"ATTENDEE"}, roleChange.Params.OldRoles)
	assert.Equal(t, []string{"PANELIST"}, roleChange.Params.NewRoles)

	_, err = EventFromReader(bytes.NewReader(mockEventPayload("join", "{}")))
	assert.Equal(t, ErrUnknownEventType, err)
}

func TestOnRoleChange(t *testing.T) {
	callbacks := &MockCallbacks{}
	mockBus := NewMockBus()

	router, err := NewRouter(NewMockSubscriber(mockBus), mockMeetingID)
	assert.Nil(t, err)

	router.OnRoleChange(callbacks.OnRoleChange)

	<-router.Start()
	mockBus.Messages <- mockEventPayload(RoleChangeMethod, `{"oldRoles":["PANELIST"],"newRoles":["MODERATOR"]}`)
	<-router.Stop()

	assert.Equal(t, true, callbacks.RoleChangeFired)
	assert.Equal(t, []string{"PANELIST"}, callbacks.RoleChangeParams.OldRoles)
	assert.Equal(t, []string{"MODERATOR"}, callbacks.RoleChangeParams.NewRoles)
}

func TestOnResourceUpdate(t *testing.T) {
	callbacks := &MockCallbacks{}
	mockBus := NewMockBus()

	router, err := NewRouter(NewMockSubscriber(mockBus), mockMeetingID)
	assert.Nil(t, err)

	router.OnResourceUpdate(callbacks.OnResourceUpdate)

	<-router.Start()
	mockBus.Messages <- mockEventPayload(ResourceUpdateMethod, `{"resources":{"webcastInstance":{"url":"https://webcast.example.com"}}}`)
	<-router.Stop()

	assert.Equal(t, true, callbacks.ResourceUpdateFired)

	session := core.NewWebinarSession()
	session.UpdateWebcastURL(callbacks.ResourceParams)
	assert.Equal(t, "https://webcast.example.com", session.WebcastURL())
}

func TestOnPracticeSessionStatus(t *testing.T) {
	callbacks := &MockCallbacks{}
	mockBus := NewMockBus()

	router, err := NewRouter(NewMockSubscriber(mockBus), mockMeetingID)
	assert.Nil(t, err)

	router.OnPracticeSessionStatus(callbacks.OnPracticeSessionStatus)

	<-router.Start()
	mockBus.Messages <- mockEventPayload(PracticeSessionStatusMethod, `{"enabled":true}`)
	<-router.Stop()

	assert.Equal(t, true, callbacks.PracticeStatusFired)
	assert.Equal(t, true, callbacks.PracticeStatusParams.Enabled)
}

func TestOnWebcastStatus(t *testing.T) {
	callbacks := &MockCallbacks{}
	mockBus := NewMockBus()

	router, err := NewRouter(NewMockSubscriber(mockBus), mockMeetingID)
	assert.Nil(t, err)

	router.OnWebcastStatus(callbacks.OnWebcastStatus)

	<-router.Start()
	mockBus.Messages <- mockEventPayload(WebcastStatusMethod, `{"status":"streaming"}`)
	<-router.Stop()

	assert.Equal(t, true, callbacks.WebcastStatusFired)
}

func TestRouterClose(t *testing.T) {
	mockBus := NewMockBus()

	router, err := NewRouter(NewMockSubscriber(mockBus), mockMeetingID)
	assert.Nil(t, err)

	<-router.Start()
	<-router.Stop()

	assert.Nil(t, router.Close())
	assert.Equal(t, true, mockBus.Closed)
}

func TestUnknownMethodIsSkipped(t *testing.T) {
	callbacks := &MockCallbacks{}
	mockBus := NewMockBus()

	router, err := NewRouter(NewMockSubscriber(mockBus), mockMeetingID)
	assert.Nil(t, err)

	router.OnRoleChange(callbacks.OnRoleChange)

	<-router.Start()
	mockBus.Messages <- mockEventPayload("join", "{}")
	mockBus.Messages <- []byte("not json at all")
	mockBus.Messages <- mockEventPayload(RoleChangeMethod, `{"oldRoles":[],"newRoles":["ATTENDEE"]}`)
	<-router.Stop()

	assert.Equal(t, true, callbacks.RoleChangeFired)
}
