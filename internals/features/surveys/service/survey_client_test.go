package service

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"surveikita_web/internals/features/surveys/normalizer"
)

func TestFetchBySlug(t *testing.T) {
	var gotPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		switch r.URL.Path {
		case "/api/surveys/slug/s1/kepuasan":
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"data":{"title":"Kepuasan","is_active":true,
				"aspects":[{"name":"Layanan","sub_aspects":[{"id":"a1","name":"Ramah"}]}]}}`))
		case "/api/surveys/slug/s1/rusak":
			w.WriteHeader(http.StatusInternalServerError)
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer srv.Close()

	client := NewSurveyClient(func() string { return srv.URL })

	t.Run("found", func(t *testing.T) {
		s, err := client.FetchBySlug(context.Background(), "s1", "kepuasan")
		require.NoError(t, err)
		assert.Equal(t, "/api/surveys/slug/s1/kepuasan", gotPath)
		assert.True(t, s.Active)
		assert.Equal(t, "Kepuasan", s.Title)
		assert.Equal(t, normalizer.ShapeAspects, s.Shape)
		require.Len(t, s.Groups, 1)
		assert.Equal(t, "Ramah", s.Groups[0].SubAspects[0].Label)
	})

	t.Run("not found", func(t *testing.T) {
		_, err := client.FetchBySlug(context.Background(), "s1", "tidak-ada")
		assert.ErrorIs(t, err, ErrSurveyNotFound)
	})

	t.Run("empty slug", func(t *testing.T) {
		_, err := client.FetchBySlug(context.Background(), "s1", " ")
		assert.ErrorIs(t, err, ErrSurveyNotFound)
	})

	t.Run("server error", func(t *testing.T) {
		_, err := client.FetchBySlug(context.Background(), "s1", "rusak")
		require.Error(t, err)
		assert.NotErrorIs(t, err, ErrSurveyNotFound)
		assert.Contains(t, err.Error(), "Status: 500")
	})
}
