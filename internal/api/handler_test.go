package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stor-a-gentic/server/internal/agent/booking"
	"github.com/stor-a-gentic/server/internal/agent/chat"
	"github.com/stor-a-gentic/server/internal/agent/health"
	"github.com/stor-a-gentic/server/internal/agent/knowledge"
	"github.com/stor-a-gentic/server/internal/agent/model"
	"github.com/stor-a-gentic/server/internal/agent/resolver"
	"github.com/stor-a-gentic/server/internal/agent/rules"
	"github.com/stor-a-gentic/server/internal/metrics"
	"github.com/stor-a-gentic/server/internal/storage"
)

type nopLogger struct{ calls int }

func (l *nopLogger) Log(string, string, string) { l.calls++ }

type fixture struct {
	handler http.Handler
	kb      *knowledge.Base
	logger  *nopLogger
	health  *health.Checker
}

func setup(t *testing.T) fixture {
	t.Helper()
	gw := storage.NewMock(0)
	kb := knowledge.New(gw)
	kb.Load(context.Background())

	reg := prometheus.NewRegistry()
	m := metrics.New(reg)
	logger := &nopLogger{}
	checker := health.New(gw)

	h := NewHandler(Deps{
		Chat:      chat.New(resolver.NewDefault(kb, nil, resolver.WithMetrics(m)), logger),
		Data:      gw,
		FAQs:      gw,
		Knowledge: kb,
		Booking:   booking.New(gw),
		Health:    checker,
		Gatherer:  reg,
	})
	return fixture{handler: h, kb: kb, logger: logger, health: checker}
}

func do(h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestChatAnswersFromFAQ(t *testing.T) {
	f := setup(t)

	rec := do(f.handler, http.MethodPost, "/api/chat", `{"message":"What are your hours?"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var res model.ResolutionResult
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
	assert.Equal(t, model.SourceFAQ, res.Source)
	assert.Contains(t, res.Text, "Monday to Friday")
	assert.Equal(t, 1, f.logger.calls)
}

func TestChatFallsBackToRules(t *testing.T) {
	f := setup(t)

	rec := do(f.handler, http.MethodPost, "/api/chat", `{"message":"asdlkj random gibberish","user_id":"u-9"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var res model.ResolutionResult
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
	assert.Equal(t, model.ResolutionResult{Text: rules.GenericReply, Source: model.SourceRule}, res)
}

func TestChatRejectsBlankMessage(t *testing.T) {
	f := setup(t)

	for _, body := range []string{`{"message":"   "}`, `{}`, `not json`} {
		rec := do(f.handler, http.MethodPost, "/api/chat", body)
		assert.Equal(t, http.StatusBadRequest, rec.Code, body)
	}
	assert.Zero(t, f.logger.calls)
}

func TestReferenceDataEndpoints(t *testing.T) {
	f := setup(t)

	for path, wantEmpty := range map[string]bool{
		"/api/faqs":             false,
		"/api/locations":        false,
		"/api/collection-slots": false,
		"/api/service-requests": true,
		"/api/inquiries":        true,
	} {
		rec := do(f.handler, http.MethodGet, path, "")
		require.Equal(t, http.StatusOK, rec.Code, path)

		var rows []json.RawMessage
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &rows), path)
		assert.Equal(t, wantEmpty, len(rows) == 0, path)
	}
}

func TestCreateFAQ(t *testing.T) {
	f := setup(t)

	rec := do(f.handler, http.MethodPost, "/api/faqs", `{"question":"Do you sell boxes?","answer":"Yes, at the front desk."}`)
	require.Equal(t, http.StatusCreated, rec.Code)

	var res model.InsertResult
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
	assert.True(t, res.Success)
	assert.NotEmpty(t, res.ID)

	rec = do(f.handler, http.MethodPost, "/api/faqs", `{"question":"","answer":"x"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestBookCollection(t *testing.T) {
	f := setup(t)

	body := `{"name":"Ada","email":"ada@example.com","phone":"555","date":"2026-11-02","time":"9:00 AM","address":"1 Main St","items":"boxes"}`
	rec := do(f.handler, http.MethodPost, "/api/collections", body)
	require.Equal(t, http.StatusCreated, rec.Code)

	var res model.InsertResult
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
	assert.True(t, strings.HasPrefix(res.ID, "booking-"))

	rec = do(f.handler, http.MethodPost, "/api/collections", `{"name":"Ada"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "validation")
}

func TestCreateServiceRequest(t *testing.T) {
	f := setup(t)

	body := `{"name":"Ada","email":"ada@example.com","phone":"555","service_type":"delivery","date":"2026-11-02","time":"2:00 PM"}`
	rec := do(f.handler, http.MethodPost, "/api/service-requests", body)
	assert.Equal(t, http.StatusCreated, rec.Code)
}

func TestHealthProbesOnFirstCall(t *testing.T) {
	f := setup(t)

	rec := do(f.handler, http.MethodGet, "/health", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var status model.HealthStatus
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &status))
	assert.False(t, status.Reachable)
	assert.Equal(t, storage.ModeMock, status.Mode)

	_, ok := f.health.Last()
	assert.True(t, ok)
}

func TestMetricsEndpoint(t *testing.T) {
	f := setup(t)
	do(f.handler, http.MethodPost, "/api/chat", `{"message":"asdlkj"}`)

	rec := do(f.handler, http.MethodGet, "/metrics", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `assistant_resolutions_total{source="rule"} 1`)
}
