package webinar

import (
	"context"
	"net/http"
	"net/url"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/isqad/livelook-webinar/internal/auth"
	"github.com/isqad/livelook-webinar/internal/core"
	"github.com/isqad/livelook-webinar/internal/telemetry"
	"github.com/isqad/livelook-webinar/internal/transport"
)

// MeetingInfo identifies the meeting a webcast belongs to
type MeetingInfo struct {
	LocusID       string `json:"locusId"`
	CorrelationID string `json:"correlationId"`
}

// GatewayOptions is options of the control gateway
type GatewayOptions struct {
	Session           *core.WebinarSession
	Sender            transport.Sender
	Credentials       auth.CredentialProvider
	Logger            zerolog.Logger
	TrackingNamespace string
}

// Gateway is the control surface of the webcast sub-resource. Every
// operation resolves a bearer token where required, stamps a fresh
// tracking id, dispatches through the transport and surfaces failures
// verbatim after logging them once. Callers own ordering and retries.
type Gateway struct {
	GatewayOptions
}

func NewGateway(options GatewayOptions) *Gateway {
	return &Gateway{options}
}

// SetPracticeSessionState toggles the pre-event rehearsal mode. This is
// a session-level control, no webcast token involved.
func (g *Gateway) SetPracticeSessionState(ctx context.Context, enabled bool) (*transport.Response, error) {
	req := &transport.Request{
		Method: http.MethodPatch,
		URI:    g.Session.ControlURL() + "/controls",
		Body: map[string]interface{}{
			"practiceSession": map[string]bool{"enabled": enabled},
		},
	}

	return g.dispatch(ctx, "setPracticeSessionState", req, false)
}

// StartWebcast starts broadcasting the meeting with the given layout
func (g *Gateway) StartWebcast(ctx context.Context, meeting MeetingInfo, layout map[string]interface{}) (*transport.Response, error) {
	req := &transport.Request{
		Method: http.MethodPut,
		URI:    g.Session.WebcastURL() + "/streaming",
		Body: map[string]interface{}{
			"action":      "start",
			"meetingInfo": meeting,
			"layout":      layout,
		},
	}

	return g.dispatch(ctx, "startWebcast", req, true)
}

// StopWebcast stops the running broadcast
func (g *Gateway) StopWebcast(ctx context.Context) (*transport.Response, error) {
	req := &transport.Request{
		Method: http.MethodPut,
		URI:    g.Session.WebcastURL() + "/streaming",
		Body: map[string]interface{}{
			"action": "stop",
		},
	}

	return g.dispatch(ctx, "stopWebcast", req, true)
}

// QueryWebcastLayout fetches the current webcast layout
func (g *Gateway) QueryWebcastLayout(ctx context.Context) (*transport.Response, error) {
	req := &transport.Request{
		Method: http.MethodGet,
		URI:    g.Session.WebcastURL() + "/layout",
	}

	return g.dispatch(ctx, "queryWebcastLayout", req, true)
}

// UpdateWebcastLayout replaces the webcast layout
func (g *Gateway) UpdateWebcastLayout(ctx context.Context, layout map[string]interface{}) (*transport.Response, error) {
	req := &transport.Request{
		Method: http.MethodPut,
		URI:    g.Session.WebcastURL() + "/layout",
		Body: map[string]interface{}{
			"layout": layout,
		},
	}

	return g.dispatch(ctx, "updateWebcastLayout", req, true)
}

// SearchWebcastAttendee searches publicly visible attendees by keyword.
// An empty keyword serializes to an empty query value.
func (g *Gateway) SearchWebcastAttendee(ctx context.Context, keyword string) (*transport.Response, error) {
	req := &transport.Request{
		Method: http.MethodGet,
		URI:    g.Session.WebcastURL() + "/attendees?keyword=" + url.QueryEscape(keyword),
	}

	return g.dispatch(ctx, "searchWebcastAttendee", req, true)
}

// ExpelWebcastAttendee removes an attendee from the webcast
func (g *Gateway) ExpelWebcastAttendee(ctx context.Context, attendeeID string) (*transport.Response, error) {
	req := &transport.Request{
		Method: http.MethodDelete,
		URI:    g.Session.WebcastURL() + "/attendees/" + attendeeID,
	}

	return g.dispatch(ctx, "expelWebcastAttendee", req, true)
}

// dispatch is the shared operation template: resolve credentials, stamp
// headers, send, pass the response through unchanged. Credential and
// transport failures follow the same contract: log once, return the
// identical error unwrapped.
func (g *Gateway) dispatch(ctx context.Context, operation string, req *transport.Request, requireToken bool) (*transport.Response, error) {
	if requireToken {
		token, err := g.Credentials.Token(ctx)
		if err != nil {
			return nil, g.fail(operation, err)
		}

		req.Headers = map[string]string{
			"Authorization": "Bearer " + token,
			"TrackingID":    g.trackingID(),
		}
		if req.Body != nil {
			req.Headers["Content-Type"] = "application/json"
		}
	}

	resp, err := g.Sender.Send(ctx, req)
	if err != nil {
		return nil, g.fail(operation, err)
	}

	telemetry.ControlOperationSucceeded(operation)

	return resp, nil
}

func (g *Gateway) fail(operation string, err error) error {
	telemetry.ControlOperationFailed(operation)
	g.Logger.Error().Err(err).Msg("Meeting:webinar#" + operation + " failed")

	return err
}

// trackingID builds a fresh per-request correlation id
func (g *Gateway) trackingID() string {
	return g.TrackingNamespace + "_" + uuid.New().String()
}
