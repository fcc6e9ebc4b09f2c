package tools

import (
	"context"
	"encoding/json"
	"errors"

	mcpsdk "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/xraph/binspire"
	"github.com/xraph/binspire/envelope"
	"github.com/xraph/binspire/validate"
)

// noun names an entity in tool names and messages.
type noun struct {
	entity        string // "history"
	plural        string // "histories"
	display       string // "History"
	displayPlural string // "Histories"
	article       string // "a"
	record        string // "history record"
}

func (n noun) listTool() string   { return "get-all-" + n.plural }
func (n noun) getTool() string    { return "get-" + n.entity + "-by-id" }
func (n noun) createTool() string { return "create-" + n.entity }
func (n noun) updateTool() string { return "update-" + n.entity }
func (n noun) deleteTool() string { return "delete-" + n.entity }

// set binds the five tools of one entity E, created from C and patched
// with U, to engine operations.
type set[E, C, U any] struct {
	noun
	// paginated lists take limit and offset; the others take no input.
	paginated bool

	id       func(*E) string
	fetchAll func(ctx context.Context, limit, offset int) ([]*E, error)
	fetchOne func(ctx context.Context, id string) (*E, error)
	insert   func(ctx context.Context, in *C) (*E, error)
	patch    func(ctx context.Context, id string, in *U) (*E, error)
	remove   func(ctx context.Context, id string) error
}

func registerSet[E, C, U any](k *Toolkit, srv *mcpsdk.Server, s set[E, C, U]) {
	listSchema := validate.MustSchema[validate.Empty]()
	if s.paginated {
		listSchema = validate.MustSchema[validate.Pagination]()
	}

	k.add(srv, &mcpsdk.Tool{
		Name:        s.listTool(),
		Title:       "Get All " + s.displayPlural,
		Description: "Retrieve a list of all " + s.plural + ".",
		InputSchema: listSchema,
	}, s.handleList)
	k.add(srv, &mcpsdk.Tool{
		Name:        s.getTool(),
		Title:       "Get " + s.display + " by ID",
		Description: "Retrieve " + s.article + " " + s.entity + " by its ID.",
		InputSchema: validate.MustSchema[validate.IDInput](),
	}, s.handleGet)
	k.add(srv, &mcpsdk.Tool{
		Name:        s.createTool(),
		Title:       "Create " + s.display,
		Description: "Create a new " + s.record + ".",
		InputSchema: validate.MustSchema[C](),
	}, s.handleCreate)
	k.add(srv, &mcpsdk.Tool{
		Name:        s.updateTool(),
		Title:       "Update " + s.display,
		Description: "Update an existing " + s.record + ".",
		InputSchema: validate.MustSchema[validate.UpdateRequest[U]](),
	}, s.handleUpdate)
	k.add(srv, &mcpsdk.Tool{
		Name:        s.deleteTool(),
		Title:       "Delete " + s.display,
		Description: "Delete " + s.article + " " + s.record + " by its ID.",
		InputSchema: validate.MustSchema[validate.IDInput](),
	}, s.handleDelete)
}

func (s set[E, C, U]) handleList(ctx context.Context, raw json.RawMessage) (envelope.Result, error) {
	var limit, offset int
	if s.paginated {
		page, err := validate.Decode[validate.Pagination](raw)
		if err != nil {
			return envelope.Result{}, err
		}
		limit, offset = page.LimitOrDefault(), page.OffsetOrDefault()
	} else if _, err := validate.Decode[validate.Empty](raw); err != nil {
		return envelope.Result{}, err
	}

	items, err := s.fetchAll(ctx, limit, offset)
	if err != nil {
		return envelope.Result{}, err
	}
	return envelope.List(s.displayPlural, items), nil
}

func (s set[E, C, U]) handleGet(ctx context.Context, raw json.RawMessage) (envelope.Result, error) {
	in, err := validate.Decode[validate.IDInput](raw)
	if err != nil {
		return envelope.Result{}, err
	}
	v, err := s.fetchOne(ctx, *in.ID)
	if errors.Is(err, binspire.ErrNotFound) {
		return envelope.NotFound(s.display, *in.ID), nil
	}
	if err != nil {
		return envelope.Result{}, err
	}
	return envelope.Found(s.display, *in.ID, v), nil
}

func (s set[E, C, U]) handleCreate(ctx context.Context, raw json.RawMessage) (envelope.Result, error) {
	in, err := validate.Decode[C](raw)
	if err != nil {
		return envelope.Result{}, err
	}
	v, err := s.insert(ctx, in)
	if err != nil {
		return envelope.Result{}, err
	}
	return envelope.Created(s.display, s.id(v), v), nil
}

func (s set[E, C, U]) handleUpdate(ctx context.Context, raw json.RawMessage) (envelope.Result, error) {
	req, err := validate.Decode[validate.UpdateRequest[U]](raw)
	if err != nil {
		return envelope.Result{}, err
	}
	v, err := s.patch(ctx, *req.ID, req.Data)
	if errors.Is(err, binspire.ErrNotFound) {
		return envelope.NotFound(s.display, *req.ID), nil
	}
	if err != nil {
		return envelope.Result{}, err
	}
	return envelope.Updated(s.display, *req.ID, v), nil
}

func (s set[E, C, U]) handleDelete(ctx context.Context, raw json.RawMessage) (envelope.Result, error) {
	in, err := validate.Decode[validate.IDInput](raw)
	if err != nil {
		return envelope.Result{}, err
	}
	err = s.remove(ctx, *in.ID)
	if errors.Is(err, binspire.ErrNotFound) {
		return envelope.NotFound(s.display, *in.ID), nil
	}
	if err != nil {
		return envelope.Result{}, err
	}
	return envelope.Deleted(s.display, *in.ID), nil
}
