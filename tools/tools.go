// Package tools serves the Binspire engine as MCP tools.
//
// Every entity gets the same five tools: get-all-<plural>,
// get-<entity>-by-id, create-<entity>, update-<entity> and delete-<entity>.
// Arguments are strictly decoded and validated before the engine is
// called, and every outcome is returned as an envelope: a missing row is a
// plain message, any failure an error result. Handlers never return a
// protocol error.
package tools

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	mcpsdk "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/xraph/binspire"
	"github.com/xraph/binspire/envelope"
	"github.com/xraph/binspire/plugin"
)

// Toolkit registers the entity tool sets of an engine on MCP servers.
type Toolkit struct {
	eng    *binspire.Engine
	logger *slog.Logger
}

// New returns a Toolkit serving eng. A nil logger falls back to the
// engine's.
func New(eng *binspire.Engine, logger *slog.Logger) *Toolkit {
	if logger == nil {
		logger = eng.Logger()
	}
	return &Toolkit{eng: eng, logger: logger}
}

// Register adds every tool to srv.
func (k *Toolkit) Register(srv *mcpsdk.Server) {
	registerSet(k, srv, k.organizations())
	registerSet(k, srv, k.users())
	registerSet(k, srv, k.audits())
	registerSet(k, srv, k.histories())
	registerSet(k, srv, k.issues())
}

// Names returns the name of every tool in registration order.
func Names() []string {
	names := make([]string, 0, len(nouns)*5)
	for _, n := range nouns {
		names = append(names, n.listTool(), n.getTool(), n.createTool(), n.updateTool(), n.deleteTool())
	}
	return names
}

// handler produces the envelope of one tool call. A returned error becomes
// an error envelope.
type handler func(ctx context.Context, raw json.RawMessage) (envelope.Result, error)

func (k *Toolkit) add(srv *mcpsdk.Server, tool *mcpsdk.Tool, h handler) {
	name := tool.Name
	srv.AddTool(tool, func(ctx context.Context, req *mcpsdk.CallToolRequest) (*mcpsdk.CallToolResult, error) {
		start := time.Now()
		var raw json.RawMessage
		if req != nil && req.Params != nil {
			raw = req.Params.Arguments
		}
		res := k.call(ctx, name, raw, h)
		k.eng.Plugins().EmitToolCalled(ctx, plugin.ToolCall{
			Name:     name,
			Outcome:  res.Kind.String(),
			Duration: time.Since(start),
		})
		return res.CallToolResult(), nil
	})
}

func (k *Toolkit) call(ctx context.Context, name string, raw json.RawMessage, h handler) (res envelope.Result) {
	defer func() {
		if r := recover(); r != nil {
			res = envelope.Failure(k.logger, name, fmt.Errorf("panic: %v", r))
		}
	}()
	out, err := h(ctx, raw)
	if err != nil {
		return envelope.Failure(k.logger, name, err)
	}
	return out
}
