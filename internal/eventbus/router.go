package eventbus

import (
	"bytes"
	"errors"

	"github.com/rs/zerolog/log"

	"github.com/isqad/livelook-webinar/internal/core"
)

var (
	errConvertRoleChange     = errors.New("can't convert to role_change event")
	errConvertResourceUpdate = errors.New("can't convert to resource_update event")
	errConvertPracticeStatus = errors.New("can't convert to practice_session_status event")
	errConvertWebcastStatus  = errors.New("can't convert to webcast_status event")
	errUndefinedMethod       = errors.New("undefined method")
)

// Router consumes the meeting event feed and dispatches typed events
// to the registered callbacks. Malformed payloads are logged and
// skipped, the feed keeps running.
type Router struct {
	feed Feed

	onRoleChange            func(RoleChangeParams) error
	onResourceUpdate        func(map[string]interface{}) error
	onPracticeSessionStatus func(core.PracticeSessionStatus) error
	onWebcastStatus         func(WebcastStatusParams) error

	stop    chan struct{}
	stopped chan struct{}
}

func NewRouter(sub Subscriber, meetingID string) (*Router, error) {
	feed, err := sub.Subscribe(meetingID)
	if err != nil {
		return nil, err
	}

	return &Router{
		feed:    feed,
		stop:    make(chan struct{}),
		stopped: make(chan struct{}),
	}, nil
}

func (router *Router) Start() <-chan struct{} {
	log.Debug().Str("service", "router").Msg("start")

	started := make(chan struct{})

	go func() {
		close(started)

		for {
			select {
			case payload, ok := <-router.feed.Events():
				if !ok {
					close(router.stopped)
					return
				}
				router.route(payload)
			case <-router.stop:
				close(router.stopped)
				return
			}
		}
	}()

	return started
}

func (router *Router) Stop() <-chan struct{} {
	close(router.stop)
	return router.stopped
}

// Close tears down the underlying feed. Call after Stop has drained.
func (router *Router) Close() error {
	return router.feed.Close()
}

func (router *Router) route(payload []byte) {
	event, err := EventFromReader(bytes.NewReader(payload))
	if err != nil {
		log.Error().Err(err).Str("service", "router").Msg("")
		return
	}

	switch event.GetMethod() {
	case RoleChangeMethod:
		msg, ok := event.(*RoleChangeEvent)
		if !ok {
			log.Error().Err(errConvertRoleChange).Str("service", "router").Msg("")
			return
		}

		if router.onRoleChange == nil {
			return
		}
		if err := router.onRoleChange(msg.Params); err != nil {
			log.Error().Err(err).Str("service", "router").Msg("role change error")
		}
	case ResourceUpdateMethod:
		msg, ok := event.(*ResourceUpdateEvent)
		if !ok {
			log.Error().Err(errConvertResourceUpdate).Str("service", "router").Msg("")
			return
		}

		if router.onResourceUpdate == nil {
			return
		}
		if err := router.onResourceUpdate(msg.Params); err != nil {
			log.Error().Err(err).Str("service", "router").Msg("resource update error")
		}
	case PracticeSessionStatusMethod:
		msg, ok := event.(*PracticeSessionStatusEvent)
		if !ok {
			log.Error().Err(errConvertPracticeStatus).Str("service", "router").Msg("")
			return
		}

		if router.onPracticeSessionStatus == nil {
			return
		}
		if err := router.onPracticeSessionStatus(msg.Params); err != nil {
			log.Error().Err(err).Str("service", "router").Msg("practice session status error")
		}
	case WebcastStatusMethod:
		msg, ok := event.(*WebcastStatusEvent)
		if !ok {
			log.Error().Err(errConvertWebcastStatus).Str("service", "router").Msg("")
			return
		}

		if router.onWebcastStatus == nil {
			return
		}
		if err := router.onWebcastStatus(msg.Params); err != nil {
			log.Error().Err(err).Str("service", "router").Msg("webcast status error")
		}
	default:
		log.Error().Err(errUndefinedMethod).Str("eventMethod", string(event.GetMethod())).Str("service", "router").Msg("")
	}
}

func (router *Router) OnRoleChange(callback func(RoleChangeParams) error) {
	router.onRoleChange = callback
}

func (router *Router) OnResourceUpdate(callback func(map[string]interface{}) error) {
	router.onResourceUpdate = callback
}

func (router *Router) OnPracticeSessionStatus(callback func(core.PracticeSessionStatus) error) {
	router.onPracticeSessionStatus = callback
}

func (router *Router) OnWebcastStatus(callback func(WebcastStatusParams) error) {
	router.onWebcastStatus = callback
}
