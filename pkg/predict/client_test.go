package predict

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T, handler http.HandlerFunc) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return srv
}

func TestClientSuggestDecodesRankedCandidates(t *testing.T) {
	var gotBody suggestRequest
	srv := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		json.NewEncoder(w).Encode(map[string][]string{
			"suggestions": {"ស្រលាញ់", "ស្រុក", "ស្រី"},
		})
	})

	client := NewClient(srv.URL, time.Second, nil)
	got, err := client.Suggest(context.Background(), "ខ្ញុំ ស្រ", 5)

	require.NoError(t, err)
	assert.Equal(t, "ខ្ញុំ ស្រ", gotBody.Text)
	require.Len(t, got, 3)
	assert.Equal(t, Suggestion{Word: "ស្រលាញ់", Rank: 1}, got[0])
	assert.Equal(t, Suggestion{Word: "ស្រី", Rank: 3}, got[2])
}

func TestClientSuggestCapsAtLimit(t *testing.T) {
	srv := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string][]string{
			"suggestions": {"ក", "ខ", "គ", "ឃ", "ង", "ច", "ឆ"},
		})
	})

	client := NewClient(srv.URL, time.Second, nil)
	got, err := client.Suggest(context.Background(), "អក្សរ", 5)

	require.NoError(t, err)
	assert.Len(t, got, 5)
}

func TestClientNonSuccessDegradesToEmptyList(t *testing.T) {
	for _, status := range []int{http.StatusBadRequest, http.StatusInternalServerError, http.StatusBadGateway} {
		srv := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "nope", status)
		})

		client := NewClient(srv.URL, time.Second, nil)
		got, err := client.Suggest(context.Background(), "ខ្ញុំ", 5)

		assert.NoError(t, err, "status %d must not be a hard failure", status)
		assert.Empty(t, got, "status %d must yield no suggestions", status)
	}
}

func TestClientUndecodableBodyDegradesToEmptyList(t *testing.T) {
	srv := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("not json"))
	})

	client := NewClient(srv.URL, time.Second, nil)
	got, err := client.Suggest(context.Background(), "ខ្ញុំ", 5)

	assert.NoError(t, err)
	assert.Empty(t, got)
}

func TestClientTransportFailureReturnsError(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	client := NewClient(url, 200*time.Millisecond, nil)
	_, err := client.Suggest(context.Background(), "ខ្ញុំ", 5)

	require.Error(t, err)
}

func TestClientDropsBlankCandidates(t *testing.T) {
	srv := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string][]string{
			"suggestions": {"ស្រលាញ់", "", "ស្រុក"},
		})
	})

	client := NewClient(srv.URL, time.Second, nil)
	got, err := client.Suggest(context.Background(), "ស្រ", 5)

	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "ស្រលាញ់", got[0].Word)
	assert.Equal(t, "ស្រុក", got[1].Word)
}
