package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/bytedance/sonic"
	"go.uber.org/zap"
)

var ErrInvalidJSON = errors.New("invalid JSON")

const defaultContentType = "application/json"

// Reply is an upstream response passed back to the caller unmodified.
type Reply struct {
	StatusCode  int
	ContentType string
	Body        []byte
}

// AuditEntry describes one relayed submission. It never carries answers.
type AuditEntry struct {
	SurveyID      string
	RequestID     string
	StatusCode    int
	ResponseCount int
	Duration      time.Duration
	Err           error
	ContentType   string
	BodyBytes     int
}

type AuditRecorder interface {
	Record(ctx context.Context, entry AuditEntry) error
}

// RelayService forwards survey responses to the backend API.
type RelayService struct {
	BaseURL func() string
	HTTP    *http.Client
	Audit   AuditRecorder
}

func NewRelayService(baseURL func() string, audit AuditRecorder) *RelayService {
	return &RelayService{
		BaseURL: baseURL,
		HTTP:    &http.Client{Timeout: 15 * time.Second},
		Audit:   audit,
	}
}

// Forward re-encodes body and posts it to
// {backend}/api/surveys/{surveyID}/responses. Any upstream status is a
// successful Forward; only malformed input and transport failures are errors.
func (s *RelayService) Forward(ctx context.Context, surveyID string, body []byte) (Reply, error) {
	var decoded any
	if err := sonic.Unmarshal(body, &decoded); err != nil {
		return Reply{}, ErrInvalidJSON
	}
	if decoded == nil {
		decoded = map[string]any{}
	}
	forward, err := sonic.Marshal(decoded)
	if err != nil {
		return Reply{}, fmt.Errorf("encode forward payload: %w", err)
	}

	start := time.Now()
	reply, err := s.post(ctx, surveyID, forward)

	s.record(ctx, AuditEntry{
		SurveyID:      surveyID,
		RequestID:     RequestIDFrom(ctx),
		StatusCode:    reply.StatusCode,
		ResponseCount: countResponses(decoded),
		Duration:      time.Since(start),
		Err:           err,
		ContentType:   reply.ContentType,
		BodyBytes:     len(reply.Body),
	})
	return reply, err
}

// SubmitResponses lets a collector session submit through the relay in-process.
func (s *RelayService) SubmitResponses(ctx context.Context, surveyID string, payload []byte) (int, []byte, error) {
	reply, err := s.Forward(ctx, surveyID, payload)
	if err != nil {
		return 0, nil, err
	}
	return reply.StatusCode, reply.Body, nil
}

func (s *RelayService) post(ctx context.Context, surveyID string, payload []byte) (Reply, error) {
	endpoint := fmt.Sprintf("%s/api/surveys/%s/responses", s.BaseURL(), url.PathEscape(surveyID))

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
	if err != nil {
		return Reply{}, fmt.Errorf("gagal membuat request relay: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.HTTP.Do(req)
	if err != nil {
		return Reply{}, fmt.Errorf("relay ke backend gagal: %w", err)
	}
	defer resp.Body.Close()

	text, err := io.ReadAll(resp.Body)
	if err != nil {
		return Reply{StatusCode: resp.StatusCode}, fmt.Errorf("gagal membaca respon backend: %w", err)
	}

	contentType := resp.Header.Get("Content-Type")
	if contentType == "" {
		contentType = defaultContentType
	}
	return Reply{StatusCode: resp.StatusCode, ContentType: contentType, Body: text}, nil
}

func (s *RelayService) record(ctx context.Context, entry AuditEntry) {
	if entry.Err != nil {
		zap.L().Warn("❌ relay respon survey gagal",
			zap.String("survey_id", entry.SurveyID),
			zap.String("request_id", entry.RequestID),
			zap.Error(entry.Err))
	} else {
		zap.L().Info("📨 relay respon survey",
			zap.String("survey_id", entry.SurveyID),
			zap.String("request_id", entry.RequestID),
			zap.Int("status", entry.StatusCode),
			zap.Duration("dur", entry.Duration))
	}
	if s.Audit == nil {
		return
	}
	// audit tidak boleh menggagalkan relay
	if err := s.Audit.Record(context.WithoutCancel(ctx), entry); err != nil {
		zap.L().Warn("gagal menyimpan audit relay", zap.Error(err))
	}
}

func countResponses(decoded any) int {
	obj, ok := decoded.(map[string]any)
	if !ok {
		return 0
	}
	items, _ := obj["responses"].([]any)
	return len(items)
}

type requestIDKey struct{}

// WithRequestID tags ctx with the id of the inbound HTTP request.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey{}, id)
}

func RequestIDFrom(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey{}).(string)
	return id
}
