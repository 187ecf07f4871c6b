package insights

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ukemeuu/mani24-kds/internal/config"
	"github.com/ukemeuu/mani24-kds/internal/domain"
)

func TestFetch(t *testing.T) {
	var gotAuth string
	var gotPayload struct {
		MenuURL string `json:"menu_url"`
		Kitchen []struct {
			Status      string   `json:"status"`
			Items       []string `json:"items"`
			TimeElapsed int      `json:"time_elapsed"`
		} `json:"kitchen"`
	}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotPayload))
		_ = json.NewEncoder(w).Encode([]ChefInsight{
			{Title: "Clear the backlog", Advice: "Start the two oldest tickets first", Urgency: "high"},
		})
	}))
	defer srv.Close()

	client := NewClient(config.InsightsConfig{
		Endpoint: srv.URL, APIKey: "key-1", MenuURL: "https://menu.example/m.pdf",
	})
	require.True(t, client.Enabled())

	now := int64(1700000600000)
	orders := []domain.Order{
		{
			Status: domain.StatusPreparing, CreatedAt: 1700000000000,
			Items: []domain.OrderItem{{Name: "Party Jollof Rice", Quantity: 2}},
		},
		{
			// Dispatched orders never leave the building.
			Status: domain.StatusDispatched, CreatedAt: 1700000000000,
			Items: []domain.OrderItem{{Name: "Puff Puff", Quantity: 1}},
		},
	}

	insights, err := client.Fetch(context.Background(), orders, now)
	require.NoError(t, err)
	require.Len(t, insights, 1)
	assert.Equal(t, "high", insights[0].Urgency)

	assert.Equal(t, "Bearer key-1", gotAuth)
	assert.Equal(t, "https://menu.example/m.pdf", gotPayload.MenuURL)
	require.Len(t, gotPayload.Kitchen, 1)
	assert.Equal(t, "PREPARING", gotPayload.Kitchen[0].Status)
	assert.Equal(t, []string{"Party Jollof Rice"}, gotPayload.Kitchen[0].Items)
	assert.Equal(t, 10, gotPayload.Kitchen[0].TimeElapsed)
}

func TestFetch_RateLimited(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer srv.Close()

	client := NewClient(config.InsightsConfig{Endpoint: srv.URL, APIKey: "key-1"})

	_, err := client.Fetch(context.Background(), nil, 0)
	assert.ErrorIs(t, err, domain.ErrServicePaused)
}

func TestFetch_ServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	client := NewClient(config.InsightsConfig{Endpoint: srv.URL, APIKey: "key-1"})

	_, err := client.Fetch(context.Background(), nil, 0)
	assert.ErrorContains(t, err, "502")
}

func TestEnabled(t *testing.T) {
	assert.False(t, NewClient(config.InsightsConfig{}).Enabled())
	assert.False(t, NewClient(config.InsightsConfig{Endpoint: "https://x"}).Enabled())
	assert.True(t, NewClient(config.InsightsConfig{Endpoint: "https://x", APIKey: "k"}).Enabled())
}
