package http

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rgdevment/scam-shield/internal/domain"
	"github.com/rgdevment/scam-shield/internal/service"
)

// mockService is a canned-response double for the Service interface.
type mockService struct {
	assessment *domain.RiskAssessment
	overall    *domain.OverallAssessment
	alert      domain.Alert
	risk       *domain.PhoneRisk
	stats      *domain.Statistics
	err        error

	lastCall    *domain.CallInput
	lastMessage *domain.MessageInput
}

func (m *mockService) AnalyzeCall(_ context.Context, in domain.CallInput) (*domain.RiskAssessment, domain.Alert, error) {
	m.lastCall = &in
	return m.assessment, m.alert, m.err
}

func (m *mockService) AnalyzeMessage(_ context.Context, in domain.MessageInput) (*domain.RiskAssessment, domain.Alert, error) {
	m.lastMessage = &in
	return m.assessment, m.alert, m.err
}

func (m *mockService) AnalyzeCombined(_ context.Context, call *domain.CallInput, msg *domain.MessageInput) (*domain.OverallAssessment, domain.Alert, error) {
	m.lastCall = call
	m.lastMessage = msg
	if call == nil && msg == nil {
		return nil, domain.Alert{}, service.ErrNoInput
	}
	return m.overall, m.alert, m.err
}

func (m *mockService) PhoneRisk(_ context.Context, phoneNumber string) (*domain.PhoneRisk, error) {
	return m.risk, m.err
}

func (m *mockService) Statistics(_ context.Context) (*domain.Statistics, error) {
	return m.stats, m.err
}

func newTestRouter(svc service.Service) chi.Router {
	r := chi.NewRouter()
	NewHandler(svc).RegisterRoutes(r)
	return r
}

func testAssessment() *domain.RiskAssessment {
	v := domain.NewFeatureVector(domain.KindCall, []string{"duration"})
	return domain.NewRiskAssessment(domain.KindCall, 80, nil, nil, v, nil)
}

func TestAnalyzeCallEndpoint(t *testing.T) {
	svc := &mockService{
		assessment: testAssessment(),
		alert:      domain.Alert{Level: domain.LevelCritical, Title: "CRITICAL THREAT DETECTED"},
	}
	router := newTestRouter(svc)

	t.Run("valid request", func(t *testing.T) {
		body := `{"phone_number":"+234-555-1234","duration":5,"call_frequency":3,"is_unknown":true,"time_of_day":"night"}`
		req := httptest.NewRequest(http.MethodPost, "/v1/analyze/call", bytes.NewBufferString(body))
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

		var resp AnalysisResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, 80.0, resp.Assessment.Score)
		assert.Equal(t, "CRITICAL THREAT DETECTED", resp.Alert.Title)

		require.NotNil(t, svc.lastCall)
		assert.Equal(t, domain.TimeNight, svc.lastCall.TimeOfDay)
	})

	t.Run("empty time_of_day defaults to business", func(t *testing.T) {
		body := `{"phone_number":"+234-555-1234","duration":5}`
		req := httptest.NewRequest(http.MethodPost, "/v1/analyze/call", bytes.NewBufferString(body))
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		require.NotNil(t, svc.lastCall)
		assert.Equal(t, domain.TimeBusiness, svc.lastCall.TimeOfDay)
	})

	t.Run("invalid json", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/v1/analyze/call", bytes.NewBufferString("{not json"))
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("short phone number", func(t *testing.T) {
		body := `{"phone_number":"123"}`
		req := httptest.NewRequest(http.MethodPost, "/v1/analyze/call", bytes.NewBufferString(body))
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("invalid time bucket", func(t *testing.T) {
		body := `{"phone_number":"+15551234567","time_of_day":"midnight"}`
		req := httptest.NewRequest(http.MethodPost, "/v1/analyze/call", bytes.NewBufferString(body))
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestAnalyzeMessageEndpoint(t *testing.T) {
	svc := &mockService{
		assessment: testAssessment(),
		alert:      domain.Alert{Level: domain.LevelCritical},
	}
	router := newTestRouter(svc)

	t.Run("empty text is a valid message", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/v1/analyze/message", bytes.NewBufferString(`{}`))
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		require.NotNil(t, svc.lastMessage)
		assert.Equal(t, "Unknown", svc.lastMessage.Sender)
	})

	t.Run("service failure maps to 500", func(t *testing.T) {
		broken := &mockService{err: errors.New("boom")}
		req := httptest.NewRequest(http.MethodPost, "/v1/analyze/message", bytes.NewBufferString(`{"message_text":"hi"}`))
		rec := httptest.NewRecorder()
		newTestRouter(broken).ServeHTTP(rec, req)
		assert.Equal(t, http.StatusInternalServerError, rec.Code)
	})
}

func TestAnalyzeCombinedEndpoint(t *testing.T) {
	svc := &mockService{
		overall: &domain.OverallAssessment{Score: 60, Level: domain.LevelHigh, Sources: []domain.Kind{domain.KindSMS}},
		alert:   domain.Alert{Level: domain.LevelHigh},
	}
	router := newTestRouter(svc)

	t.Run("message only", func(t *testing.T) {
		body := `{"message":{"message_text":"hello","sender":"Maria"}}`
		req := httptest.NewRequest(http.MethodPost, "/v1/analyze/combined", bytes.NewBufferString(body))
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Nil(t, svc.lastCall)
		require.NotNil(t, svc.lastMessage)

		var resp CombinedAnalysisResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, 60.0, resp.Assessment.Score)
	})

	t.Run("neither input", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/v1/analyze/combined", bytes.NewBufferString(`{}`))
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestPhoneRiskEndpoint(t *testing.T) {
	t.Run("known number", func(t *testing.T) {
		svc := &mockService{risk: &domain.PhoneRisk{PhoneNumber: "+15551234567", Score: 62, Level: domain.LevelHigh, KnownNumber: true}}
		req := httptest.NewRequest(http.MethodGet, "/v1/phone/+15551234567", nil)
		rec := httptest.NewRecorder()
		newTestRouter(svc).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)

		var risk domain.PhoneRisk
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &risk))
		assert.Equal(t, 62.0, risk.Score)
		assert.True(t, risk.KnownNumber)
	})

	t.Run("number too short", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/v1/phone/123", nil)
		rec := httptest.NewRecorder()
		newTestRouter(&mockService{}).ServeHTTP(rec, req)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("lookup failure maps to 500", func(t *testing.T) {
		svc := &mockService{err: errors.New("scylla down")}
		req := httptest.NewRequest(http.MethodGet, "/v1/phone/+15551234567", nil)
		rec := httptest.NewRecorder()
		newTestRouter(svc).ServeHTTP(rec, req)
		assert.Equal(t, http.StatusInternalServerError, rec.Code)
	})
}

func TestStatisticsEndpoint(t *testing.T) {
	svc := &mockService{stats: &domain.Statistics{TotalCalls: 10, CallScams: 4}}
	req := httptest.NewRequest(http.MethodGet, "/v1/statistics", nil)
	rec := httptest.NewRecorder()
	newTestRouter(svc).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)

	var stats domain.Statistics
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &stats))
	assert.Equal(t, int64(10), stats.TotalCalls)
	assert.Equal(t, int64(4), stats.CallScams)
}
