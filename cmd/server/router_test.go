package main

import (
	"context"
	"crypto/rand"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"connectrpc.com/connect"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/mmynk/flouze/internal/metrics"
	"github.com/mmynk/flouze/internal/models"
	"github.com/mmynk/flouze/internal/service"
	"github.com/mmynk/flouze/internal/storage"
	"github.com/mmynk/flouze/internal/storage/memory"
)

func setupTestServer(t *testing.T, withMetrics bool) *httptest.Server {
	t.Helper()

	var (
		m   *metrics.Metrics
		reg *prometheus.Registry
	)
	var repo storage.Repository = memory.New()
	if withMetrics {
		reg = prometheus.NewRegistry()
		m = metrics.New(reg)
		repo = m.Repository(repo)
	}
	svc := service.NewLedgerService(repo, models.NewGenerator(rand.Reader))

	server := httptest.NewServer(newRouter(svc, m, reg))
	t.Cleanup(server.Close)
	return server
}

func get(t *testing.T, url string) (int, string) {
	t.Helper()
	resp, err := http.Get(url)
	if err != nil {
		t.Fatalf("GET %s failed: %v", url, err)
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("failed to read body: %v", err)
	}
	return resp.StatusCode, string(body)
}

func TestHealthz(t *testing.T) {
	server := setupTestServer(t, false)

	status, body := get(t, server.URL+"/healthz")
	if status != http.StatusOK || body != "OK" {
		t.Errorf("got %d %q, want 200 OK", status, body)
	}
}

func TestMetricsEndpoint(t *testing.T) {
	server := setupTestServer(t, true)
	client := service.NewLedgerServiceClient(http.DefaultClient, server.URL)

	if _, err := client.ListAccounts(context.Background(), connect.NewRequest(&service.ListAccountsRequest{})); err != nil {
		t.Fatalf("ListAccounts failed: %v", err)
	}

	status, body := get(t, server.URL+"/metrics")
	if status != http.StatusOK {
		t.Fatalf("status = %d, want 200", status)
	}
	for _, want := range []string{
		`flouze_rpc_requests_total{code="ok",procedure="/flouze.v1.LedgerService/ListAccounts"} 1`,
		`flouze_repository_operations_total{op="list_accounts",result="ok"} 1`,
	} {
		if !strings.Contains(body, want) {
			t.Errorf("metrics output missing %q", want)
		}
	}
}

func TestMetricsDisabled(t *testing.T) {
	server := setupTestServer(t, false)

	if status, _ := get(t, server.URL+"/metrics"); status != http.StatusNotFound {
		t.Errorf("status = %d, want 404", status)
	}
}
