package elasticsearch

import (
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
)

// fakeCluster is a minimal stand-in for an Elasticsearch node.
type fakeCluster struct {
	mu          sync.Mutex
	indexExists bool
	requests    []string
}

func newFakeCluster(t *testing.T, indexExists bool) (*fakeCluster, *httptest.Server) {
	fc := &fakeCluster{indexExists: indexExists}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fc.mu.Lock()
		fc.requests = append(fc.requests, r.Method+" "+r.URL.Path)
		exists := fc.indexExists
		fc.mu.Unlock()

		w.Header().Set("X-Elastic-Product", "Elasticsearch")
		w.Header().Set("Content-Type", "application/json")
		switch {
		case r.Method == http.MethodGet && r.URL.Path == "/":
			_, _ = w.Write([]byte(`{"name":"test","cluster_name":"test","version":{"number":"8.18.0"},"tagline":"You Know, for Search"}`))
		case r.Method == http.MethodHead && r.URL.Path == "/"+ListingsIndexName:
			if exists {
				w.WriteHeader(http.StatusOK)
			} else {
				w.WriteHeader(http.StatusNotFound)
			}
		case r.Method == http.MethodPut && r.URL.Path == "/"+ListingsIndexName:
			fc.mu.Lock()
			fc.indexExists = true
			fc.mu.Unlock()
			_, _ = w.Write([]byte(`{"acknowledged":true,"index":"listings"}`))
		default:
			w.WriteHeader(http.StatusNotFound)
			_, _ = w.Write([]byte(`{}`))
		}
	}))
	t.Cleanup(srv.Close)
	return fc, srv
}

func (fc *fakeCluster) calls() []string {
	fc.mu.Lock()
	defer fc.mu.Unlock()
	return append([]string(nil), fc.requests...)
}
