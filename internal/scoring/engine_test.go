package scoring

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

func TestHTTPRatingEngine_DecodesPersistVerdictFromResultEnvelope(t *testing.T) {
	var gotMode string
	var gotEntities int
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var payload map[string]interface{}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
		gotMode, _ = payload["mode"].(string)
		entities, _ := payload["entities"].([]interface{})
		gotEntities = len(entities)

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"result":{"runUpdateQuery":true,"message":"rated"}}`))
	}))
	defer server.Close()

	engine := NewHTTPRatingEngine(server.URL, 5*time.Second)

	result, err := engine.Rate(context.Background(), []EnrichedSubmission{{}}, ModeSingleRate)
	require.NoError(t, err)

	assert.Equal(t, ModeSingleRate, gotMode)
	assert.Equal(t, 1, gotEntities)
	assert.True(t, result.RunUpdateQuery)
	assert.Equal(t, "rated", result.Message)
}

func TestHTTPRatingEngine_DecodesDeclinedVerdict(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"result":{"runUpdateQuery":false,"message":"incomplete answers"}}`))
	}))
	defer server.Close()

	engine := NewHTTPRatingEngine(server.URL, 5*time.Second)

	result, err := engine.Rate(context.Background(), []EnrichedSubmission{{}}, ModeSingleRate)
	require.NoError(t, err)

	assert.False(t, result.RunUpdateQuery)
	assert.Equal(t, "incomplete answers", result.Message)
}

func TestHTTPRatingEngine_ErrorStatusFails(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	engine := NewHTTPRatingEngine(server.URL, 5*time.Second)

	_, err := engine.Rate(context.Background(), []EnrichedSubmission{{}}, ModeSingleRate)
	assert.Error(t, err)
}

func TestHTTPRatingEngine_UnreachableFails(t *testing.T) {
	engine := NewHTTPRatingEngine("http://127.0.0.1:1", time.Second)

	_, err := engine.Rate(context.Background(), []EnrichedSubmission{{}}, ModeSingleRate)
	assert.Error(t, err)
}
