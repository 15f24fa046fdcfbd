package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"

	"surveikita_web/internals/features/surveys/normalizer"
)

var ErrSurveyNotFound = errors.New("survey not found")

// SurveyClient reads published surveys from the survey API.
type SurveyClient struct {
	BaseURL func() string
	HTTP    *http.Client
}

func NewSurveyClient(baseURL func() string) *SurveyClient {
	return &SurveyClient{
		BaseURL: baseURL,
		HTTP:    &http.Client{Timeout: 10 * time.Second},
	}
}

// FetchBySlug loads GET /api/surveys/slug/{id}/{slug}. A 404 or an empty id or
// slug is ErrSurveyNotFound.
func (c *SurveyClient) FetchBySlug(ctx context.Context, surveyID, slug string) (normalizer.Survey, error) {
	if strings.TrimSpace(surveyID) == "" || strings.TrimSpace(slug) == "" {
		return normalizer.Survey{}, ErrSurveyNotFound
	}

	endpoint := fmt.Sprintf("%s/api/surveys/slug/%s/%s",
		c.BaseURL(), url.PathEscape(surveyID), url.PathEscape(slug))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return normalizer.Survey{}, fmt.Errorf("gagal membuat request survey: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Cache-Control", "no-store")

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return normalizer.Survey{}, fmt.Errorf("gagal mengambil survey: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return normalizer.Survey{}, ErrSurveyNotFound
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		zap.L().Warn("survey API menolak request",
			zap.String("survey_id", surveyID), zap.Int("status", resp.StatusCode))
		return normalizer.Survey{}, fmt.Errorf("failed to load survey. Status: %d", resp.StatusCode)
	}

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return normalizer.Survey{}, fmt.Errorf("gagal membaca body survey: %w", err)
	}
	return normalizer.Parse(raw)
}
