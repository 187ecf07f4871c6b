package glovo

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ukemeuu/mani24-kds/internal/adapter/logger"
	"github.com/ukemeuu/mani24-kds/internal/config"
	"github.com/ukemeuu/mani24-kds/internal/domain"
)

func TestSyncStatus_MappedStatus(t *testing.T) {
	var gotPath, gotAuth string
	var gotBody map[string]string

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotAuth = r.Header.Get("Authorization")
		require.Equal(t, http.MethodPut, r.Method)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	client := NewClient(config.GlovoConfig{APIURL: srv.URL, AuthToken: "token-1"}, logger.NewNop())

	err := client.SyncStatus(context.Background(), "store-9", "glv-900", domain.StatusReady)
	require.NoError(t, err)
	assert.Equal(t, "/webhook/stores/store-9/orders/glv-900/status", gotPath)
	assert.Equal(t, "token-1", gotAuth)
	assert.Equal(t, map[string]string{"status": "READY_FOR_PICKUP"}, gotBody)
}

func TestSyncStatus_AcceptedOnPreparing(t *testing.T) {
	var gotBody map[string]string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
	}))
	defer srv.Close()

	client := NewClient(config.GlovoConfig{APIURL: srv.URL}, logger.NewNop())

	require.NoError(t, client.SyncStatus(context.Background(), "s", "o", domain.StatusPreparing))
	assert.Equal(t, "ACCEPTED", gotBody["status"])
}

func TestSyncStatus_UnmappedStatusSkipsCall(t *testing.T) {
	called := false
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))
	defer srv.Close()

	client := NewClient(config.GlovoConfig{APIURL: srv.URL}, logger.NewNop())

	for _, status := range []domain.Status{domain.StatusNew, domain.StatusPacking, domain.StatusDispatched} {
		require.NoError(t, client.SyncStatus(context.Background(), "s", "o", status))
	}
	assert.False(t, called)
}

func TestSyncStatus_PlatformRejection(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "unknown order", http.StatusNotFound)
	}))
	defer srv.Close()

	client := NewClient(config.GlovoConfig{APIURL: srv.URL}, logger.NewNop())

	err := client.SyncStatus(context.Background(), "s", "o", domain.StatusReady)
	assert.ErrorContains(t, err, "404")
}
