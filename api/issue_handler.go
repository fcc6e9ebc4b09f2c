package api

import (
	"net/http"

	"github.com/xraph/forge"

	"github.com/xraph/binspire/issue"
)

func (a *API) registerIssueRoutes(router forge.Router) error {
	g := router.Group("/v1", forge.WithGroupTags("issues"))

	if err := g.POST("/issues", a.createIssue,
		forge.WithSummary("Create issue"),
		forge.WithDescription("Creates a new issue."),
		forge.WithOperationID("createIssue"),
		forge.WithRequestSchema(CreateIssueRequest{}),
		forge.WithCreatedResponse(&issue.Issue{}),
		forge.WithErrorResponses(),
	); err != nil {
		return err
	}

	if err := g.GET("/issues/:id", a.getIssue,
		forge.WithSummary("Get issue"),
		forge.WithDescription("Returns an issue by its ID."),
		forge.WithOperationID("getIssue"),
		forge.WithResponseSchema(http.StatusOK, "Issue details", &issue.Issue{}),
		forge.WithErrorResponses(),
	); err != nil {
		return err
	}

	if err := g.PUT("/issues/:id", a.updateIssue,
		forge.WithSummary("Update issue"),
		forge.WithDescription("Updates an existing issue. Omitted fields keep their value."),
		forge.WithOperationID("updateIssue"),
		forge.WithRequestSchema(UpdateIssueRequest{}),
		forge.WithResponseSchema(http.StatusOK, "Updated issue", &issue.Issue{}),
		forge.WithErrorResponses(),
	); err != nil {
		return err
	}

	if err := g.DELETE("/issues/:id", a.deleteIssue,
		forge.WithSummary("Delete issue"),
		forge.WithDescription("Deletes an issue by its ID."),
		forge.WithOperationID("deleteIssue"),
		forge.WithNoContentResponse(),
		forge.WithErrorResponses(),
	); err != nil {
		return err
	}

	return g.GET("/issues", a.listIssues,
		forge.WithSummary("List issues"),
		forge.WithDescription("Lists issues, newest first, optionally filtered by status."),
		forge.WithOperationID("listIssues"),
		forge.WithRequestSchema(ListIssuesRequest{}),
		forge.WithResponseSchema(http.StatusOK, "Issue list", ListResponse[*issue.Issue]{}),
		forge.WithErrorResponses(),
	)
}

func (a *API) createIssue(ctx forge.Context, req *CreateIssueRequest) (*issue.Issue, error) {
	in := issue.CreateInput(*req)
	if err := checkInput(&in); err != nil {
		return nil, err
	}
	row, err := a.eng.CreateIssue(ctx.Context(), &in)
	if err != nil {
		return nil, mapError(err)
	}
	return nil, ctx.JSON(http.StatusCreated, row)
}

func (a *API) getIssue(ctx forge.Context, _ *IDRequest) (*issue.Issue, error) {
	row, err := a.eng.GetIssue(ctx.Context(), ctx.Param("id"))
	if err != nil {
		return nil, mapError(err)
	}
	return row, nil
}

func (a *API) updateIssue(ctx forge.Context, req *UpdateIssueRequest) (*issue.Issue, error) {
	in := issue.UpdateInput(*req)
	if err := checkInput(&in); err != nil {
		return nil, err
	}
	row, err := a.eng.UpdateIssue(ctx.Context(), ctx.Param("id"), &in)
	if err != nil {
		return nil, mapError(err)
	}
	return row, nil
}

func (a *API) deleteIssue(ctx forge.Context, _ *IDRequest) (*struct{}, error) {
	if err := a.eng.DeleteIssue(ctx.Context(), ctx.Param("id")); err != nil {
		return nil, mapError(err)
	}
	return nil, ctx.NoContent(http.StatusNoContent)
}

func (a *API) listIssues(ctx forge.Context, req *ListIssuesRequest) (*ListResponse[*issue.Issue], error) {
	if req.Status != "" && !req.Status.IsValid() {
		return nil, forge.BadRequest("invalid status: " + string(req.Status))
	}
	filter := &issue.ListFilter{
		OrgID:  req.OrgID,
		UserID: req.UserID,
		Status: req.Status,
		Limit:  defaultLimit(req.Limit),
		Offset: defaultOffset(req.Offset),
	}

	rows, err := a.eng.ListIssues(ctx.Context(), filter)
	if err != nil {
		return nil, mapError(err)
	}
	total, err := a.eng.CountIssues(ctx.Context(), &issue.ListFilter{OrgID: filter.OrgID, UserID: filter.UserID, Status: filter.Status})
	if err != nil {
		return nil, mapError(err)
	}

	resp := &ListResponse[*issue.Issue]{Items: rows, Total: total, Limit: filter.Limit, Offset: filter.Offset}
	return resp, nil
}
