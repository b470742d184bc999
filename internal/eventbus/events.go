package eventbus

import (
	"encoding/json"
	"errors"
	"io"

	"github.com/isqad/livelook-webinar/internal/core"
)

type Method string

const (
	RoleChangeMethod            Method = "role_change"
	ResourceUpdateMethod        Method = "resource_update"
	PracticeSessionStatusMethod Method = "practice_session_status"
	WebcastStatusMethod         Method = "webcast_status"
)

var (
	ErrUnknownEventType = errors.New("unknown event type")
)

// Event is a typed meeting event delivered over a feed
type Event interface {
	GetMethod() Method
	ToJSON() ([]byte, error)
}

type eventHead struct {
	Method Method `json:"method"`
}

type rawEvent struct {
	eventHead
	Params map[string]interface{} `json:"params"`
}

// EventFromReader decodes an event envelope into its typed form
func EventFromReader(reader io.Reader) (Event, error) {
	event := &rawEvent{}

	if err := json.NewDecoder(reader).Decode(event); err != nil {
		return nil, err
	}

	params, err := json.Marshal(event.Params)
	if err != nil {
		return nil, err
	}

	switch event.Method {
	case RoleChangeMethod:
		p := RoleChangeParams{}
		if err := json.Unmarshal(params, &p); err != nil {
			return nil, err
		}

		return NewRoleChangeEvent(p), nil
	case ResourceUpdateMethod:
		return NewResourceUpdateEvent(event.Params), nil
	case PracticeSessionStatusMethod:
		p := core.PracticeSessionStatus{}
		if err := json.Unmarshal(params, &p); err != nil {
			return nil, err
		}

		return NewPracticeSessionStatusEvent(p), nil
	case WebcastStatusMethod:
		p := WebcastStatusParams{}
		if err := json.Unmarshal(params, &p); err != nil {
			return nil, err
		}

		return NewWebcastStatusEvent(p), nil
	default:
		return nil, ErrUnknownEventType
	}
}

// RoleChangeParams is the role snapshots of the local participant
// before and after a role change
type RoleChangeParams struct {
	OldRoles []string `json:"oldRoles"`
	NewRoles []string `json:"newRoles"`
}

type RoleChangeEvent struct {
	eventHead
	Params RoleChangeParams `json:"params"`
}

func NewRoleChangeEvent(params RoleChangeParams) *RoleChangeEvent {
	return &RoleChangeEvent{
		eventHead: eventHead{Method: RoleChangeMethod},
		Params:    params,
	}
}

func (e RoleChangeEvent) GetMethod() Method {
	return e.Method
}

func (e RoleChangeEvent) ToJSON() ([]byte, error) {
	return json.Marshal(e)
}

// ResourceUpdateEvent carries an arbitrary nested resource payload;
// consumers probe only the paths they understand
type ResourceUpdateEvent struct {
	eventHead
	Params map[string]interface{} `json:"params"`
}

func NewResourceUpdateEvent(params map[string]interface{}) *ResourceUpdateEvent {
	return &ResourceUpdateEvent{
		eventHead: eventHead{Method: ResourceUpdateMethod},
		Params:    params,
	}
}

func (e ResourceUpdateEvent) GetMethod() Method {
	return e.Method
}

func (e ResourceUpdateEvent) ToJSON() ([]byte, error) {
	return json.Marshal(e)
}

type PracticeSessionStatusEvent struct {
	eventHead
	Params core.PracticeSessionStatus `json:"params"`
}

func NewPracticeSessionStatusEvent(params core.PracticeSessionStatus) *PracticeSessionStatusEvent {
	return &PracticeSessionStatusEvent{
		eventHead: eventHead{Method: PracticeSessionStatusMethod},
		Params:    params,
	}
}

func (e PracticeSessionStatusEvent) GetMethod() Method {
	return e.Method
}

func (e PracticeSessionStatusEvent) ToJSON() ([]byte, error) {
	return json.Marshal(e)
}

type WebcastStatusParams struct {
	Status core.WebinarStatus `json:"status"`
}

type WebcastStatusEvent struct {
	eventHead
	Params WebcastStatusParams `json:"params"`
}

func NewWebcastStatusEvent(params WebcastStatusParams) *WebcastStatusEvent {
	return &WebcastStatusEvent{
		eventHead: eventHead{Method: WebcastStatusMethod},
		Params:    params,
	}
}

func (e WebcastStatusEvent) GetMethod() Method {
	return e.Method
}

func (e WebcastStatusEvent) ToJSON() ([]byte, error) {
	return json.Marshal(e)
}
