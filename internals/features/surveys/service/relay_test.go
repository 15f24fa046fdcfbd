package service

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memoryAudit struct {
	mu      sync.Mutex
	entries []AuditEntry
	err     error
}

func (m *memoryAudit) Record(_ context.Context, entry AuditEntry) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries = append(m.entries, entry)
	return m.err
}

type capturedRequest struct {
	Method      string
	Path        string
	ContentType string
	Body        string
}

func newBackend(t *testing.T, status int, contentType, body string) (*httptest.Server, *capturedRequest) {
	t.Helper()
	got := &capturedRequest{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw, _ := io.ReadAll(r.Body)
		got.Method = r.Method
		got.Path = r.URL.EscapedPath()
		got.ContentType = r.Header.Get("Content-Type")
		got.Body = string(raw)
		if contentType != "" {
			w.Header().Set("Content-Type", contentType)
		} else {
			w.Header()["Content-Type"] = nil
		}
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv, got
}

func TestRelayForwardPassesUpstreamThrough(t *testing.T) {
	srv, got := newBackend(t, http.StatusCreated, "application/json; charset=utf-8", `{"id":"r1"}`)
	audit := &memoryAudit{}
	relay := NewRelayService(func() string { return srv.URL }, audit)

	ctx := WithRequestID(context.Background(), "req-1")
	reply, err := relay.Forward(ctx, "s1", []byte(`{"consent":true,"responses":[{"subAspectId":"a1","answer":"Ya"}]}`))
	require.NoError(t, err)

	assert.Equal(t, http.StatusCreated, reply.StatusCode)
	assert.Equal(t, "application/json; charset=utf-8", reply.ContentType)
	assert.Equal(t, `{"id":"r1"}`, string(reply.Body))

	assert.Equal(t, http.MethodPost, got.Method)
	assert.Equal(t, "/api/surveys/s1/responses", got.Path)
	assert.Equal(t, "application/json", got.ContentType)
	assert.JSONEq(t, `{"consent":true,"responses":[{"subAspectId":"a1","answer":"Ya"}]}`, got.Body)

	require.Len(t, audit.entries, 1)
	assert.Equal(t, "s1", audit.entries[0].SurveyID)
	assert.Equal(t, "req-1", audit.entries[0].RequestID)
	assert.Equal(t, 1, audit.entries[0].ResponseCount)
	assert.Equal(t, http.StatusCreated, audit.entries[0].StatusCode)
	assert.NoError(t, audit.entries[0].Err)
}

func TestRelayForwardDefaultsContentType(t *testing.T) {
	srv, _ := newBackend(t, http.StatusOK, "", `ok`)
	relay := NewRelayService(func() string { return srv.URL }, nil)

	reply, err := relay.Forward(context.Background(), "s1", []byte(`{}`))
	require.NoError(t, err)
	assert.Equal(t, "application/json", reply.ContentType)
	assert.Equal(t, "ok", string(reply.Body))
}

func TestRelayForwardKeepsUpstreamErrorStatus(t *testing.T) {
	srv, _ := newBackend(t, http.StatusBadRequest, "application/json", `{"error":"Consent is required"}`)
	relay := NewRelayService(func() string { return srv.URL }, nil)

	reply, err := relay.Forward(context.Background(), "s1", []byte(`{"consent":false}`))
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, reply.StatusCode)
	assert.JSONEq(t, `{"error":"Consent is required"}`, string(reply.Body))
}

func TestRelayForwardRejectsInvalidJSON(t *testing.T) {
	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) { calls++ }))
	defer srv.Close()
	relay := NewRelayService(func() string { return srv.URL }, nil)

	for _, body := range []string{"", "{", "not json"} {
		_, err := relay.Forward(context.Background(), "s1", []byte(body))
		assert.ErrorIs(t, err, ErrInvalidJSON, "body %q", body)
	}
	assert.Zero(t, calls)
}

func TestRelayForwardNullBecomesEmptyObject(t *testing.T) {
	srv, got := newBackend(t, http.StatusOK, "application/json", `{}`)
	relay := NewRelayService(func() string { return srv.URL }, nil)

	_, err := relay.Forward(context.Background(), "s1", []byte(`null`))
	require.NoError(t, err)
	assert.JSONEq(t, `{}`, got.Body)
}

func TestRelayForwardEscapesSurveyID(t *testing.T) {
	srv, got := newBackend(t, http.StatusOK, "application/json", `{}`)
	relay := NewRelayService(func() string { return srv.URL }, nil)

	_, err := relay.Forward(context.Background(), "a b/c", []byte(`{}`))
	require.NoError(t, err)
	assert.Equal(t, "/api/surveys/a%20b%2Fc/responses", got.Path)
}

func TestRelayForwardTransportFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := srv.URL
	srv.Close()

	audit := &memoryAudit{}
	relay := NewRelayService(func() string { return url }, audit)

	_, err := relay.Forward(context.Background(), "s1", []byte(`{}`))
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrInvalidJSON)
	require.Len(t, audit.entries, 1)
	assert.Error(t, audit.entries[0].Err)
}

func TestRelayAuditFailureDoesNotFailRelay(t *testing.T) {
	srv, _ := newBackend(t, http.StatusOK, "application/json", `{}`)
	audit := &memoryAudit{err: errors.New("db down")}
	relay := NewRelayService(func() string { return srv.URL }, audit)

	reply, err := relay.Forward(context.Background(), "s1", []byte(`{}`))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, reply.StatusCode)
}

func TestRelaySubmitResponsesAdapter(t *testing.T) {
	srv, _ := newBackend(t, http.StatusAccepted, "application/json", `{"ok":true}`)
	relay := NewRelayService(func() string { return srv.URL }, nil)

	status, body, err := relay.SubmitResponses(context.Background(), "s1", []byte(`{"responses":[]}`))
	require.NoError(t, err)
	assert.Equal(t, http.StatusAccepted, status)
	assert.JSONEq(t, `{"ok":true}`, string(body))
}

func TestRelayClientPostsToSiteRelay(t *testing.T) {
	srv, got := newBackend(t, http.StatusCreated, "application/json", `{"id":"x"}`)
	client := NewRelayClient(srv.URL + "/")

	status, body, err := client.SubmitResponses(context.Background(), "s9", []byte(`{"consent":true}`))
	require.NoError(t, err)
	assert.Equal(t, http.StatusCreated, status)
	assert.JSONEq(t, `{"id":"x"}`, string(body))
	assert.Equal(t, "/api/surveys/s9/responses", got.Path)
	assert.Equal(t, `{"consent":true}`, got.Body)
}
