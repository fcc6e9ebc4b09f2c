package api

import (
	"net/http"

	"github.com/xraph/forge"

	"github.com/xraph/binspire/audit"
)

func (a *API) registerAuditRoutes(router forge.Router) error {
	g := router.Group("/v1", forge.WithGroupTags("audits"))

	if err := g.POST("/audits", a.createAudit,
		forge.WithSummary("Create audit"),
		forge.WithDescription("Creates a new audit entry."),
		forge.WithOperationID("createAudit"),
		forge.WithRequestSchema(CreateAuditRequest{}),
		forge.WithCreatedResponse(&audit.Audit{}),
		forge.WithErrorResponses(),
	); err != nil {
		return err
	}

	if err := g.GET("/audits/:id", a.getAudit,
		forge.WithSummary("Get audit"),
		forge.WithDescription("Returns an audit entry by its ID."),
		forge.WithOperationID("getAudit"),
		forge.WithResponseSchema(http.StatusOK, "Audit details", &audit.Audit{}),
		forge.WithErrorResponses(),
	); err != nil {
		return err
	}

	if err := g.PUT("/audits/:id", a.updateAudit,
		forge.WithSummary("Update audit"),
		forge.WithDescription("Updates an existing audit entry. Omitted fields keep their value."),
		forge.WithOperationID("updateAudit"),
		forge.WithRequestSchema(UpdateAuditRequest{}),
		forge.WithResponseSchema(http.StatusOK, "Updated audit", &audit.Audit{}),
		forge.WithErrorResponses(),
	); err != nil {
		return err
	}

	if err := g.DELETE("/audits/:id", a.deleteAudit,
		forge.WithSummary("Delete audit"),
		forge.WithDescription("Deletes an audit entry by its ID."),
		forge.WithOperationID("deleteAudit"),
		forge.WithNoContentResponse(),
		forge.WithErrorResponses(),
	); err != nil {
		return err
	}

	return g.GET("/audits", a.listAudits,
		forge.WithSummary("List audits"),
		forge.WithDescription("Lists audit entries, newest first."),
		forge.WithOperationID("listAudits"),
		forge.WithRequestSchema(ListAuditsRequest{}),
		forge.WithResponseSchema(http.StatusOK, "Audit list", ListResponse[*audit.Audit]{}),
		forge.WithErrorResponses(),
	)
}

func (a *API) createAudit(ctx forge.Context, req *CreateAuditRequest) (*audit.Audit, error) {
	in := audit.CreateInput(*req)
	if err := checkInput(&in); err != nil {
		return nil, err
	}
	row, err := a.eng.CreateAudit(ctx.Context(), &in)
	if err != nil {
		return nil, mapError(err)
	}
	return nil, ctx.JSON(http.StatusCreated, row)
}

func (a *API) getAudit(ctx forge.Context, _ *IDRequest) (*audit.Audit, error) {
	row, err := a.eng.GetAudit(ctx.Context(), ctx.Param("id"))
	if err != nil {
		return nil, mapError(err)
	}
	return row, nil
}

func (a *API) updateAudit(ctx forge.Context, req *UpdateAuditRequest) (*audit.Audit, error) {
	in := audit.UpdateInput(*req)
	if err := checkInput(&in); err != nil {
		return nil, err
	}
	row, err := a.eng.UpdateAudit(ctx.Context(), ctx.Param("id"), &in)
	if err != nil {
		return nil, mapError(err)
	}
	return row, nil
}

func (a *API) deleteAudit(ctx forge.Context, _ *IDRequest) (*struct{}, error) {
	if err := a.eng.DeleteAudit(ctx.Context(), ctx.Param("id")); err != nil {
		return nil, mapError(err)
	}
	return nil, ctx.NoContent(http.StatusNoContent)
}

func (a *API) listAudits(ctx forge.Context, req *ListAuditsRequest) (*ListResponse[*audit.Audit], error) {
	filter := &audit.ListFilter{
		OrgID:  req.OrgID,
		UserID: req.UserID,
		Limit:  defaultLimit(req.Limit),
		Offset: defaultOffset(req.Offset),
	}

	rows, err := a.eng.ListAudits(ctx.Context(), filter)
	if err != nil {
		return nil, mapError(err)
	}
	total, err := a.eng.CountAudits(ctx.Context(), &audit.ListFilter{OrgID: filter.OrgID, UserID: filter.UserID})
	if err != nil {
		return nil, mapError(err)
	}

	resp := &ListResponse[*audit.Audit]{Items: rows, Total: total, Limit: filter.Limit, Offset: filter.Offset}
	return resp, nil
}
