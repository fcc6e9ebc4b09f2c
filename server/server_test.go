package server

import (
	"context"
	"encoding/json"
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	mcpsdk "github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xraph/binspire"
	"github.com/xraph/binspire/metrics"
	"github.com/xraph/binspire/store/memory"
	"github.com/xraph/binspire/store/storetest"
	"github.com/xraph/binspire/tools"
)

func newServer(t *testing.T, cfg Config) (*Server, *metrics.Collector) {
	t.Helper()
	s := memory.New()
	storetest.Seed(t, s)
	collector := metrics.New()
	eng, err := binspire.NewEngine(binspire.WithStore(s), binspire.WithPlugin(collector))
	require.NoError(t, err)
	srv, err := New(eng, cfg, WithMetrics(collector))
	require.NoError(t, err)
	return srv, collector
}

func TestConfigDefaults(t *testing.T) {
	srv, _ := newServer(t, Config{})
	cfg := srv.Config()
	assert.Equal(t, TransportStdio, cfg.Transport)
	assert.Equal(t, ":3000", cfg.Addr)
	assert.Equal(t, "/mcp", cfg.Path)
	assert.Equal(t, 10*time.Second, cfg.ShutdownTimeout)
}

func TestNewRejectsUnknownTransport(t *testing.T) {
	eng, err := binspire.NewEngine(binspire.WithStore(memory.New()))
	require.NoError(t, err)

	_, err = New(eng, Config{Transport: "carrier-pigeon"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown transport")

	_, err = New(nil, Config{})
	require.Error(t, err)
}

func TestTransportFromEnv(t *testing.T) {
	for in, want := range map[string]string{
		"":      TransportStdio,
		"stdio": TransportStdio,
		"STDIO": TransportStdio,
		"http":  TransportHTTP,
		"sse":   TransportHTTP,
	} {
		assert.Equal(t, want, TransportFromEnv(in), "TRANSPORT=%q", in)
	}
}

func TestHealthz(t *testing.T) {
	srv, _ := newServer(t, Config{Transport: TransportHTTP})
	ts := httptest.NewServer(srv.Handler())
	defer ts.Close()

	resp, err := ts.Client().Get(ts.URL + "/healthz")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var body map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "ok", body["status"])
}

func TestStreamableHTTP(t *testing.T) {
	srv, _ := newServer(t, Config{Transport: TransportHTTP})
	ts := httptest.NewServer(srv.Handler())
	defer ts.Close()

	ctx := context.Background()
	client := mcpsdk.NewClient(&mcpsdk.Implementation{Name: "test-client", Version: "0.0.1"}, nil)
	cs, err := client.Connect(ctx, &mcpsdk.StreamableClientTransport{Endpoint: ts.URL + "/mcp"}, nil)
	require.NoError(t, err)
	defer cs.Close()

	assert.Equal(t, ImplementationName, cs.InitializeResult().ServerInfo.Name)

	listed, err := cs.ListTools(ctx, nil)
	require.NoError(t, err)
	names := make([]string, 0, len(listed.Tools))
	for _, tool := range listed.Tools {
		names = append(names, tool.Name)
	}
	assert.ElementsMatch(t, tools.Names(), names)

	res, err := cs.CallTool(ctx, &mcpsdk.CallToolParams{Name: "get-all-organizations"})
	require.NoError(t, err)
	assert.False(t, res.IsError)
	require.NotEmpty(t, res.Content)
	assert.Equal(t, "All organizations retrieved successfully.", res.Content[0].(*mcpsdk.TextContent).Text)
}

func TestMetricsEndpoint(t *testing.T) {
	srv, collector := newServer(t, Config{Transport: TransportHTTP})
	ts := httptest.NewServer(srv.Handler())
	defer ts.Close()

	ctx := context.Background()
	client := mcpsdk.NewClient(&mcpsdk.Implementation{Name: "test-client", Version: "0.0.1"}, nil)
	t1, t2 := mcpsdk.NewInMemoryTransports()
	ss, err := srv.MCP().Connect(ctx, t1, nil)
	require.NoError(t, err)
	defer ss.Close()
	cs, err := client.Connect(ctx, t2, nil)
	require.NoError(t, err)
	defer cs.Close()

	_, err = cs.CallTool(ctx, &mcpsdk.CallToolParams{Name: "get-issue-by-id", Arguments: map[string]any{"id": "issue_missing"}})
	require.NoError(t, err)
	require.NotNil(t, collector)

	resp, err := ts.Client().Get(ts.URL + "/metrics")
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), `binspire_tool_calls_total{outcome="message",tool="get-issue-by-id"} 1`)
}

func TestRESTMounted(t *testing.T) {
	srv, _ := newServer(t, Config{Transport: TransportHTTP})
	ts := httptest.NewServer(srv.Handler())
	defer ts.Close()

	resp, err := ts.Client().Get(ts.URL + "/v1/organizations/org_missing")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestRESTDisabled(t *testing.T) {
	srv, _ := newServer(t, Config{Transport: TransportHTTP, DisableREST: true})
	ts := httptest.NewServer(srv.Handler())
	defer ts.Close()

	resp, err := ts.Client().Get(ts.URL + "/v1/organizations")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestRunHTTPShutsDownOnCancel(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	addr := ln.Addr().String()
	require.NoError(t, ln.Close())

	srv, _ := newServer(t, Config{Transport: TransportHTTP, Addr: addr})
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- srv.Run(ctx) }()

	require.Eventually(t, func() bool {
		resp, err := http.Get("http://" + addr + "/healthz")
		if err != nil {
			return false
		}
		_ = resp.Body.Close()
		return resp.StatusCode == http.StatusOK
	}, 5*time.Second, 20*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(15 * time.Second):
		t.Fatal("server did not stop")
	}
}

func TestRunHTTPListenError(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer ln.Close()

	srv, _ := newServer(t, Config{Transport: TransportHTTP, Addr: ln.Addr().String()})
	err = srv.Run(context.Background())
	require.Error(t, err)
	assert.True(t, strings.Contains(err.Error(), "listen"))
}
