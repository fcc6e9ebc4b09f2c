package api

import (
	"net/http"

	"github.com/xraph/forge"

	"github.com/xraph/binspire/history"
)

func (a *API) registerHistoryRoutes(router forge.Router) error {
	g := router.Group("/v1", forge.WithGroupTags("histories"))

	if err := g.POST("/histories", a.createHistory,
		forge.WithSummary("Create history"),
		forge.WithDescription("Creates a new history entry."),
		forge.WithOperationID("createHistory"),
		forge.WithRequestSchema(CreateHistoryRequest{}),
		forge.WithCreatedResponse(&history.History{}),
		forge.WithErrorResponses(),
	); err != nil {
		return err
	}

	if err := g.GET("/histories/:id", a.getHistory,
		forge.WithSummary("Get history"),
		forge.WithDescription("Returns a history entry by its ID."),
		forge.WithOperationID("getHistory"),
		forge.WithResponseSchema(http.StatusOK, "History details", &history.History{}),
		forge.WithErrorResponses(),
	); err != nil {
		return err
	}

	if err := g.PUT("/histories/:id", a.updateHistory,
		forge.WithSummary("Update history"),
		forge.WithDescription("Updates an existing history entry. Omitted fields keep their value."),
		forge.WithOperationID("updateHistory"),
		forge.WithRequestSchema(UpdateHistoryRequest{}),
		forge.WithResponseSchema(http.StatusOK, "Updated history", &history.History{}),
		forge.WithErrorResponses(),
	); err != nil {
		return err
	}

	if err := g.DELETE("/histories/:id", a.deleteHistory,
		forge.WithSummary("Delete history"),
		forge.WithDescription("Deletes a history entry by its ID."),
		forge.WithOperationID("deleteHistory"),
		forge.WithNoContentResponse(),
		forge.WithErrorResponses(),
	); err != nil {
		return err
	}

	return g.GET("/histories", a.listHistories,
		forge.WithSummary("List histories"),
		forge.WithDescription("Lists history entries, newest first."),
		forge.WithOperationID("listHistories"),
		forge.WithRequestSchema(ListHistoriesRequest{}),
		forge.WithResponseSchema(http.StatusOK, "History list", ListResponse[*history.History]{}),
		forge.WithErrorResponses(),
	)
}

func (a *API) createHistory(ctx forge.Context, req *CreateHistoryRequest) (*history.History, error) {
	in := history.CreateInput(*req)
	if err := checkInput(&in); err != nil {
		return nil, err
	}
	row, err := a.eng.CreateHistory(ctx.Context(), &in)
	if err != nil {
		return nil, mapError(err)
	}
	return nil, ctx.JSON(http.StatusCreated, row)
}

func (a *API) getHistory(ctx forge.Context, _ *IDRequest) (*history.History, error) {
	row, err := a.eng.GetHistory(ctx.Context(), ctx.Param("id"))
	if err != nil {
		return nil, mapError(err)
	}
	return row, nil
}

func (a *API) updateHistory(ctx forge.Context, req *UpdateHistoryRequest) (*history.History, error) {
	in := history.UpdateInput(*req)
	if err := checkInput(&in); err != nil {
		return nil, err
	}
	row, err := a.eng.UpdateHistory(ctx.Context(), ctx.Param("id"), &in)
	if err != nil {
		return nil, mapError(err)
	}
	return row, nil
}

func (a *API) deleteHistory(ctx forge.Context, _ *IDRequest) (*struct{}, error) {
	if err := a.eng.DeleteHistory(ctx.Context(), ctx.Param("id")); err != nil {
		return nil, mapError(err)
	}
	return nil, ctx.NoContent(http.StatusNoContent)
}

func (a *API) listHistories(ctx forge.Context, req *ListHistoriesRequest) (*ListResponse[*history.History], error) {
	filter := &history.ListFilter{
		OrgID:  req.OrgID,
		UserID: req.UserID,
		Limit:  defaultLimit(req.Limit),
		Offset: defaultOffset(req.Offset),
	}

	rows, err := a.eng.ListHistories(ctx.Context(), filter)
	if err != nil {
		return nil, mapError(err)
	}
	total, err := a.eng.CountHistories(ctx.Context(), &history.ListFilter{OrgID: filter.OrgID, UserID: filter.UserID})
	if err != nil {
		return nil, mapError(err)
	}

	resp := &ListResponse[*history.History]{Items: rows, Total: total, Limit: filter.Limit, Offset: filter.Offset}
	return resp, nil
}
