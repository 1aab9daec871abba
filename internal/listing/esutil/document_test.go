package esutil

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"material_market_backend/internal/config"
	platformes "material_market_backend/internal/platform/elasticsearch"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestClient(t *testing.T, handler func(w http.ResponseWriter, r *http.Request, body string)) *platformes.ESClientWrapper {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Elastic-Product", "Elasticsearch")
		w.Header().Set("Content-Type", "application/json")
		if r.Method == http.MethodGet && r.URL.Path == "/" {
			_, _ = w.Write([]byte(`{"version":{"number":"8.18.0"},"tagline":"You Know, for Search"}`))
			return
		}
		b, _ := io.ReadAll(r.Body)
		handler(w, r, string(b))
	}))
	t.Cleanup(srv.Close)

	client, err := platformes.NewClient(&config.Config{ElasticsearchURL: srv.URL}, zap.NewNop())
	require.NoError(t, err)
	return client
}

func TestBulkIndex_CountsItemFailures(t *testing.T) {
	var gotBody string
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request, body string) {
		require.Equal(t, "/_bulk", r.URL.Path)
		gotBody = body
		_, _ = w.Write([]byte(`{"errors":true,"items":[
			{"index":{"_id":"1","status":201}},
			{"index":{"_id":"2","status":400,"error":{"type":"mapper_parsing_exception"}}}
		]}`))
	})

	res, err := BulkIndex(context.Background(), client, []IDDocument{
		{ID: "1", Doc: Document{Title: "Beton Bloklar M200"}},
		{ID: "2", Doc: Document{Title: "Armatur Polad 12mm"}},
	}, "false")
	require.NoError(t, err)

	assert.Equal(t, 1, res.Indexed)
	assert.Equal(t, []string{"2"}, res.Failed)
	lines := strings.Split(strings.TrimSpace(gotBody), "\n")
	require.Len(t, lines, 4)
	assert.Contains(t, lines[0], `"_id":"1"`)
	assert.Contains(t, lines[1], `"title":"Beton Bloklar M200"`)
}

func TestBulkIndex_EmptyIsNoop(t *testing.T) {
	res, err := BulkIndex(context.Background(), nil, nil, "false")
	require.NoError(t, err)
	assert.Zero(t, res.Indexed)
}

func TestSearchIDs_ReturnsHitIDsInOrder(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request, body string) {
		require.True(t, strings.HasSuffix(r.URL.Path, "/_search"))
		var q map[string]interface{}
		require.NoError(t, json.Unmarshal([]byte(body), &q))
		assert.Contains(t, body, "beton")
		_, _ = w.Write([]byte(`{"hits":{"hits":[{"_id":"7"},{"_id":"1"}]}}`))
	})

	ids, err := SearchIDs(context.Background(), client, "beton", 50)
	require.NoError(t, err)
	assert.Equal(t, []string{"7", "1"}, ids)
}

func TestIndexDocument_ErrorStatus(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request, body string) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"error":"bad"}`))
	})

	err := IndexDocument(context.Background(), client, "1", Document{Title: "x"}, "false")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "400")
}
