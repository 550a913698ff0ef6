package mlclient

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"myMealPlanner/business/recommend"
	"myMealPlanner/domain"
)

func testClient(baseURL string) *Client {
	return NewClient(Config{
		BaseURL:         baseURL,
		ReadTimeout:     2 * time.Second,
		FeedbackTimeout: time.Second,
		TrainTimeout:    2 * time.Second,
	})
}

func TestRecommendParsesCandidates(t *testing.T) {
	similarity := 0.92
	popularity := 35.0

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/recommendations", r.URL.Path)

		var req map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "42", req["user_id"])
		assert.EqualValues(t, 5, req["top_n"])

		json.NewEncoder(w).Encode(map[string]any{
			"success": true,
			"data": map[string]any{
				"recommendations": []map[string]any{
					{
						"meal_id":             "m1",
						"meal_name":           "Nasi Goreng",
						"meal_type":           "dinner",
						"prep_time":           25,
						"difficulty":          "easy",
						"rating":              4.2,
						"recommendation_type": "hybrid",
						"similarity_score":    similarity,
					},
					{
						"item_id":             "m2",
						"meal_name":           "Soto Ayam",
						"recommendation_type": "popular",
						"popularity_score":    popularity,
					},
				},
			},
		})
	}))
	defer srv.Close()

	got, err := testClient(srv.URL).Recommend(context.Background(), recommend.Query{UserID: 42, Limit: 5})
	require.NoError(t, err)
	require.Len(t, got, 2)

	assert.Equal(t, "m1", got[0].ItemID)
	assert.Equal(t, "Nasi Goreng", got[0].DisplayName)
	assert.Equal(t, domain.KindModelPersonalized, got[0].Kind)
	assert.Equal(t, similarity, got[0].RawSignals[domain.SignalSimilarity])

	assert.Equal(t, "m2", got[1].ItemID, "item_id accepted when meal_id is absent")
	assert.Equal(t, domain.KindPopularityBased, got[1].Kind)
	assert.Equal(t, popularity, got[1].RawSignals[domain.SignalPopularity])
}

func TestRecommendConnectionRefusedIsUnavailable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // nothing listens anymore

	_, err := testClient(srv.URL).Recommend(context.Background(), recommend.Query{Limit: 5})
	require.Error(t, err)
	assert.ErrorIs(t, err, recommend.ErrUpstreamUnavailable)
}

func TestRecommendServerErrorIsProtocolError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer srv.Close()

	_, err := testClient(srv.URL).Recommend(context.Background(), recommend.Query{Limit: 5})
	require.Error(t, err)
	assert.True(t, IsProtocolError(err))
	assert.NotErrorIs(t, err, recommend.ErrUpstreamUnavailable)
}

func TestRecommendSuccessFalseIsProtocolError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{"success": false, "error": "model not trained"})
	}))
	defer srv.Close()

	_, err := testClient(srv.URL).Recommend(context.Background(), recommend.Query{Limit: 5})
	require.Error(t, err)
	assert.True(t, IsProtocolError(err))
	assert.Contains(t, err.Error(), "model not trained")
}

func TestRecommendUndecodableBodyIsProtocolError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("<html>not json</html>"))
	}))
	defer srv.Close()

	_, err := testClient(srv.URL).Recommend(context.Background(), recommend.Query{Limit: 5})
	require.Error(t, err)
	assert.True(t, IsProtocolError(err))
}

func TestRecommendEmptyListIsNotAnError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{
			"success": true,
			"data":    map[string]any{"recommendations": []any{}},
		})
	}))
	defer srv.Close()

	got, err := testClient(srv.URL).Recommend(context.Background(), recommend.Query{Limit: 5})
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestBreakerOpensAfterConsecutiveFailures(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close()

	client := testClient(srv.URL)
	for i := 0; i < 5; i++ {
		_, err := client.Recommend(context.Background(), recommend.Query{Limit: 5})
		require.Error(t, err)
	}

	// breaker now rejects without dialing
	_, err := client.Recommend(context.Background(), recommend.Query{Limit: 5})
	require.Error(t, err)
	assert.ErrorIs(t, err, recommend.ErrUpstreamUnavailable)
	assert.Contains(t, err.Error(), "circuit open")
}

func TestSendFeedback(t *testing.T) {
	var got map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/feedback", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		json.NewEncoder(w).Encode(map[string]any{"success": true})
	}))
	defer srv.Close()

	err := testClient(srv.URL).SendFeedback(context.Background(), domain.RecommendationFeedback{
		UserID:       42,
		MealID:       "m1",
		FeedbackType: domain.FeedbackLike,
		Rating:       4.5,
	})
	require.NoError(t, err)
	assert.Equal(t, "42", got["user_id"])
	assert.Equal(t, "m1", got["meal_id"])
	assert.Equal(t, "like", got["feedback_type"])
}

func TestTriggerTraining(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/train", r.URL.Path)
		var req map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, true, req["force"])
		json.NewEncoder(w).Encode(map[string]any{"success": true, "message": "training started"})
	}))
	defer srv.Close()

	resp, err := testClient(srv.URL).TriggerTraining(context.Background(), true)
	require.NoError(t, err)
	assert.Equal(t, "training started", resp["message"])
}

func TestStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodGet, r.Method)
		require.Equal(t, "/status", r.URL.Path)
		json.NewEncoder(w).Encode(map[string]any{"status": "ok", "models_trained": true})
	}))
	defer srv.Close()

	status, err := testClient(srv.URL).Status(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "ok", status["status"])
}
