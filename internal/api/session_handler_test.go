package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/isqad/livelook-webinar/internal/core"
)

func TestSessionStateHandler(t *testing.T) {
	session := core.NewWebinarSession()
	session.SetControlURL("https://locus.example.com/meetings/m1")
	session.SetRoleFlags(false, true, false)

	app := NewApp(AppOptions{Session: session})
	ts := httptest.NewServer(app.Router())
	defer ts.Close()

	resp, err := http.Get(ts.URL + "/session")
	assert.Nil(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/json", resp.Header.Get("Content-Type"))

	snapshot := core.WebinarSnapshot{}
	assert.Nil(t, json.NewDecoder(resp.Body).Decode(&snapshot))
	assert.Equal(t, "https://locus.example.com/meetings/m1", snapshot.ControlURL)
	assert.Equal(t, true, snapshot.SelfIsAttendee)
	assert.Equal(t, false, snapshot.SelfIsPanelist)
	assert.Nil(t, snapshot.PracticeSessionEnabled)
}

func TestMetricsHandler(t *testing.T) {
	app := NewApp(AppOptions{Session: core.NewWebinarSession()})
	ts := httptest.NewServer(app.Router())
	defer ts.Close()

	resp, err := http.Get(ts.URL + "/metrics")
	assert.Nil(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
}
