// Package envelope builds the uniform result returned by every tool.
//
// A Result is exactly one of: data (text blocks plus the structured value),
// a message (text only) or an error (text only, flagged as an error).
package envelope

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"reflect"
	"strings"

	mcpsdk "github.com/modelcontextprotocol/go-sdk/mcp"
)

// Kind tags the populated variant of a Result.
type Kind int

// Result kinds.
const (
	KindData Kind = iota + 1
	KindMessage
	KindError
)

func (k Kind) String() string {
	switch k {
	case KindData:
		return "data"
	case KindMessage:
		return "message"
	case KindError:
		return "error"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Result is the outcome of a tool invocation.
type Result struct {
	Kind Kind
	// Text holds the human-readable blocks, in order.
	Text []string
	// Data is the structured value of a KindData result.
	Data any
}

// Data builds a data result from the given text blocks and value. The
// pretty-printed JSON of v is appended as the last block.
func Data(v any, text ...string) Result {
	blocks := append(text, pretty(v))
	return Result{Kind: KindData, Text: blocks, Data: v}
}

// Message builds a success result that carries no data.
func Message(text string) Result {
	return Result{Kind: KindMessage, Text: []string{text}}
}

// Err builds an error result.
func Err(text string) Result {
	return Result{Kind: KindError, Text: []string{text}}
}

// List reports a retrieved collection.
func List[T any](plural string, items []T) Result {
	if items == nil {
		items = []T{}
	}
	return Result{
		Kind: KindData,
		Text: []string{
			fmt.Sprintf("All %s retrieved successfully.", strings.ToLower(plural)),
			fmt.Sprintf("Data Size: %d", len(items)),
			pretty(items),
		},
		Data: listPayload[T]{Items: items, Count: len(items)},
	}
}

// listPayload wraps list data, since structured content must be an object.
type listPayload[T any] struct {
	Items []T `json:"items"`
	Count int `json:"count"`
}

// Found reports a single retrieved row.
func Found(entity, id string, v any) Result {
	return Data(v, fmt.Sprintf("%s with ID: %s retrieved successfully.", entity, id))
}

// Created reports a newly inserted row.
func Created(entity, id string, v any) Result {
	return Data(v, fmt.Sprintf("%s %s created successfully.", entity, id))
}

// Updated reports a changed row.
func Updated(entity, id string, v any) Result {
	return Data(v, fmt.Sprintf("%s with ID: %s updated successfully.", entity, id))
}

// Deleted reports a removed row.
func Deleted(entity, id string) Result {
	return Message(fmt.Sprintf("%s with ID: %s deleted successfully.", entity, id))
}

// NotFound reports a missing row. It is a soft outcome, not an error.
func NotFound(entity, id string) Result {
	return Message(fmt.Sprintf("No %s found with ID: %s", entity, id))
}

// Failure logs err against op and converts it into an error result.
func Failure(logger *slog.Logger, op string, err error) Result {
	msg := "Unknown error"
	if err != nil {
		msg = err.Error()
	}
	if logger != nil {
		logger.Error("Error in "+op+": "+msg, slog.String("op", op))
	}
	return Err("Error: " + msg)
}

// CallToolResult converts r to the MCP wire result.
func (r Result) CallToolResult() *mcpsdk.CallToolResult {
	content := make([]mcpsdk.Content, len(r.Text))
	for i, t := range r.Text {
		content[i] = &mcpsdk.TextContent{Text: t}
	}
	res := &mcpsdk.CallToolResult{Content: content}
	switch r.Kind {
	case KindData:
		if isObject(r.Data) {
			res.StructuredContent = r.Data
		}
	case KindError:
		res.IsError = true
	}
	return res
}

// IsError reports whether r is an error result.
func (r Result) IsError() bool { return r.Kind == KindError }

func pretty(v any) string {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Sprintf("%+v", v)
	}
	return string(b)
}

// isObject reports whether v marshals to a JSON object.
func isObject(v any) bool {
	rv := reflect.ValueOf(v)
	for rv.Kind() == reflect.Pointer || rv.Kind() == reflect.Interface {
		if rv.IsNil() {
			return false
		}
		rv = rv.Elem()
	}
	return rv.Kind() == reflect.Struct || rv.Kind() == reflect.Map
}
