package metrics

import (
	"context"
	"io"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/xraph/binspire/plugin"
)

func TestToolCalls(t *testing.T) {
	ctx := context.Background()
	c := New()

	_ = c.OnToolCalled(ctx, plugin.ToolCall{Name: "create-audit", Outcome: "data", Duration: 3 * time.Millisecond})
	_ = c.OnToolCalled(ctx, plugin.ToolCall{Name: "create-audit", Outcome: "error", Duration: time.Millisecond})
	_ = c.OnToolCalled(ctx, plugin.ToolCall{Name: "create-audit", Outcome: "data", Duration: time.Millisecond})

	if got := testutil.ToFloat64(c.toolCalls.WithLabelValues("create-audit", "data")); got != 2 {
		t.Fatalf("expected 2 data calls, got %v", got)
	}
	if got := testutil.ToFloat64(c.toolCalls.WithLabelValues("create-audit", "error")); got != 1 {
		t.Fatalf("expected 1 error call, got %v", got)
	}
	if n := testutil.CollectAndCount(c.toolDuration); n != 1 {
		t.Fatalf("expected one duration series, got %d", n)
	}
}

func TestEntityEvents(t *testing.T) {
	ctx := context.Background()
	c := New()

	_ = c.OnEntityCreated(ctx, "issue", "issue_1", nil)
	_ = c.OnEntityUpdated(ctx, "issue", "issue_1", nil)
	_ = c.OnEntityDeleted(ctx, "issue", "issue_1")
	_ = c.OnEntityDeleted(ctx, "audit", "audit_1")

	for _, tc := range []struct {
		entity, event string
		want          float64
	}{
		{"issue", "created", 1},
		{"issue", "updated", 1},
		{"issue", "deleted", 1},
		{"audit", "deleted", 1},
		{"audit", "created", 0},
	} {
		if got := testutil.ToFloat64(c.entityEvents.WithLabelValues(tc.entity, tc.event)); got != tc.want {
			t.Fatalf("%s/%s: expected %v, got %v", tc.entity, tc.event, tc.want, got)
		}
	}
}

func TestHandler(t *testing.T) {
	c := New()
	_ = c.OnToolCalled(context.Background(), plugin.ToolCall{Name: "get-all-audits", Outcome: "data"})

	srv := httptest.NewServer(c.Handler())
	defer srv.Close()

	resp, err := srv.Client().Get(srv.URL)
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(body), `binspire_tool_calls_total{outcome="data",tool="get-all-audits"} 1`) {
		t.Fatalf("metric missing from exposition:\n%s", body)
	}
}
