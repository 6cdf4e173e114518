//go:build e2e

package e2e_test

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"

	"github.com/leiscope/domain-resolver/internal/adapter/postgres"
	batchrepo "github.com/leiscope/domain-resolver/internal/adapter/postgres/batch"
	candidaterepo "github.com/leiscope/domain-resolver/internal/adapter/postgres/candidate"
	taskrepo "github.com/leiscope/domain-resolver/internal/adapter/postgres/task"
	"github.com/leiscope/domain-resolver/internal/adapter/postgres/testhelper"
	"github.com/leiscope/domain-resolver/internal/adapter/provider/extract"
	"github.com/leiscope/domain-resolver/internal/adapter/provider/gleif"
	"github.com/leiscope/domain-resolver/internal/adapter/rediscache"
	"github.com/leiscope/domain-resolver/internal/config"
	"github.com/leiscope/domain-resolver/internal/service/orchestrator"
	"github.com/leiscope/domain-resolver/internal/service/resolution"
	"github.com/leiscope/domain-resolver/internal/service/scoring"
	"github.com/leiscope/domain-resolver/internal/transport/rest"
)

// ---------------------------------------------------------------------------
// Stub extraction service.
// ---------------------------------------------------------------------------

// stubExtractor plays the extraction service. Replies are keyed by
// domain; unknown domains get a "no name found" reply.
type stubExtractor struct {
	mu      sync.Mutex
	replies map[string]map[string]any
}

func newStubExtractor() *stubExtractor {
	return &stubExtractor{replies: make(map[string]map[string]any)}
}

func (s *stubExtractor) reply(domainName string, body map[string]any) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.replies[domainName] = body
}

func (s *stubExtractor) handler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Domain string `json:"domain"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		s.mu.Lock()
		body, ok := s.replies[req.Domain]
		s.mu.Unlock()
		if !ok {
			body = map[string]any{
				"connectivity":     "OK",
				"failure_category": "NO_NAME_EXTRACTED",
				"error":            "no company name found",
			}
		}

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(body)
	})
}

// extractionOK builds a successful extraction reply.
func extractionOK(name, method string, confidence int) map[string]any {
	return map[string]any{
		"company_name": name,
		"method":       method,
		"confidence":   confidence,
		"connectivity": "OK",
	}
}

// ---------------------------------------------------------------------------
// Stub GLEIF registry.
// ---------------------------------------------------------------------------

// stubRegistry plays the GLEIF /lei-records endpoint. Records are keyed
// by the exact legal-name filter value; unknown names return zero hits.
type stubRegistry struct {
	mu      sync.Mutex
	records map[string][]map[string]any
}

func newStubRegistry() *stubRegistry {
	return &stubRegistry{records: make(map[string][]map[string]any)}
}

func (s *stubRegistry) reply(companyName string, records ...map[string]any) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records[companyName] = records
}

func (s *stubRegistry) handler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		name := r.URL.Query().Get("filter[entity.legalName]")

		s.mu.Lock()
		records := s.records[name]
		s.mu.Unlock()
		if records == nil {
			records = []map[string]any{}
		}

		w.Header().Set("Content-Type", "application/vnd.api+json")
		_ = json.NewEncoder(w).Encode(map[string]any{"data": records})
	})
}

// leiRecord builds one active, issued registry record.
func leiRecord(lei, name, jurisdiction, legalForm, city, country string) map[string]any {
	return map[string]any{
		"id": lei,
		"attributes": map[string]any{
			"lei": lei,
			"entity": map[string]any{
				"legalName":    map[string]any{"name": name},
				"legalForm":    map[string]any{"id": legalForm},
				"jurisdiction": jurisdiction,
				"status":       "ACTIVE",
				"legalAddress": map[string]any{"city": city, "country": country},
			},
			"registration": map[string]any{"status": "ISSUED"},
		},
	}
}

// ---------------------------------------------------------------------------
// testServer wraps the full HTTP stack for E2E tests.
// ---------------------------------------------------------------------------

type testServer struct {
	URL       string
	Client    *http.Client
	Pool      *pgxpool.Pool
	Extractor *stubExtractor
	Registry  *stubRegistry
}

// testLogWriter adapts testing.T to io.Writer for slog.
type testLogWriter struct{ t *testing.T }

func (w testLogWriter) Write(p []byte) (int, error) {
	w.t.Helper()
	w.t.Log(string(p))
	return len(p), nil
}

// setupTestServer bootstraps the full application stack backed by a
// real PostgreSQL container (shared via testhelper) and stub providers.
func setupTestServer(t *testing.T) *testServer {
	t.Helper()

	// 1. Pool from the testcontainers-backed helper.
	pool := testhelper.SetupTestDB(t)

	// 2. Infrastructure.
	logger := slog.New(slog.NewTextHandler(testLogWriter{t}, nil))
	txm := postgres.NewTxManager(pool)

	// 3. Repositories.
	batches := batchrepo.New(pool)
	tasks := taskrepo.New(pool)
	candidates := candidaterepo.New(pool)

	// 4. Stub providers.
	extractor := newStubExtractor()
	extractorSrv := httptest.NewServer(extractor.handler())
	t.Cleanup(extractorSrv.Close)

	registry := newStubRegistry()
	registrySrv := httptest.NewServer(registry.handler())
	t.Cleanup(registrySrv.Close)

	// 5. Services. No redis in E2E: cached copies come from postgres.
	resolver := resolution.NewService(
		logger, tasks, candidates,
		extract.NewClientWithURL(extractorSrv.URL, logger),
		gleif.NewClientWithURL(registrySrv.URL, 10, logger),
		(*rediscache.Cache)(nil),
		txm,
		resolution.Config{
			SuccessThreshold: 30,
			CacheThreshold:   85,
			TaskTimeout:      30 * time.Second,
		},
		scoring.DefaultWeights,
	)

	orch := orchestrator.NewService(logger, batches, tasks, candidates, resolver, txm, 4)

	// 6. HTTP server with the production middleware chain.
	srv := rest.NewServer(
		logger,
		config.ServerConfig{SubmitRateLimit: 1000},
		config.CORSConfig{
			AllowedOrigins:   "*",
			AllowedMethods:   "GET,POST,OPTIONS",
			AllowedHeaders:   "Authorization,Content-Type",
			AllowCredentials: true,
			MaxAge:           86400,
		},
		rest.NewBatchHandler(logger, orch),
		rest.NewHealthHandler(pool, nil, "test-version"),
	)
	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(ctx)
	})

	httpSrv := httptest.NewServer(srv.Handler())
	t.Cleanup(httpSrv.Close)

	return &testServer{
		URL:       httpSrv.URL,
		Client:    httpSrv.Client(),
		Pool:      pool,
		Extractor: extractor,
		Registry:  registry,
	}
}

// ---------------------------------------------------------------------------
// HTTP helpers.
// ---------------------------------------------------------------------------

func (ts *testServer) postJSON(t *testing.T, path string, body any) (int, map[string]any) {
	t.Helper()

	payload, err := json.Marshal(body)
	require.NoError(t, err)

	resp, err := ts.Client.Post(ts.URL+path, "application/json", bytes.NewReader(payload))
	require.NoError(t, err)
	defer resp.Body.Close()

	var result map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&result))
	return resp.StatusCode, result
}

func (ts *testServer) getJSON(t *testing.T, path string) (int, map[string]any) {
	t.Helper()

	resp, err := ts.Client.Get(ts.URL + path)
	require.NoError(t, err)
	defer resp.Body.Close()

	var result map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&result))
	return resp.StatusCode, result
}

func (ts *testServer) getJSONList(t *testing.T, path string) (int, []map[string]any) {
	t.Helper()

	resp, err := ts.Client.Get(ts.URL + path)
	require.NoError(t, err)
	defer resp.Body.Close()

	var result []map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&result))
	return resp.StatusCode, result
}

// submitBatch submits a batch and returns its ID.
func submitBatch(t *testing.T, ts *testServer, name string, domains []string) string {
	t.Helper()

	status, body := ts.postJSON(t, "/api/v1/batches", map[string]any{
		"name":    name,
		"domains": domains,
	})
	require.Equal(t, http.StatusCreated, status)

	id, ok := body["id"].(string)
	require.True(t, ok, "expected batch id in response")
	return id
}

// waitForBatch polls the batch until it reaches a terminal status.
func waitForBatch(t *testing.T, ts *testServer, batchID string) map[string]any {
	t.Helper()

	deadline := time.Now().Add(15 * time.Second)
	for time.Now().Before(deadline) {
		status, body := ts.getJSON(t, "/api/v1/batches/"+batchID)
		require.Equal(t, http.StatusOK, status)
		if s, _ := body["status"].(string); s == "COMPLETED" || s == "FAILED" {
			return body
		}
		time.Sleep(50 * time.Millisecond)
	}
	t.Fatalf("batch %s did not reach a terminal status in time", batchID)
	return nil
}

// taskByDomain finds one task in a task list response.
func taskByDomain(t *testing.T, tasks []map[string]any, domainName string) map[string]any {
	t.Helper()
	for _, task := range tasks {
		if task["domain"] == domainName {
			return task
		}
	}
	t.Fatalf("no task for domain %s", domainName)
	return nil
}
