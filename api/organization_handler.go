package api

import (
	"net/http"

	"github.com/xraph/forge"

	"github.com/xraph/binspire/organization"
)

func (a *API) registerOrganizationRoutes(router forge.Router) error {
	g := router.Group("/v1", forge.WithGroupTags("organizations"))

	if err := g.POST("/organizations", a.createOrganization,
		forge.WithSummary("Create organization"),
		forge.WithDescription("Creates a new organization."),
		forge.WithOperationID("createOrganization"),
		forge.WithRequestSchema(CreateOrganizationRequest{}),
		forge.WithCreatedResponse(&organization.Organization{}),
		forge.WithErrorResponses(),
	); err != nil {
		return err
	}

	if err := g.GET("/organizations/:id", a.getOrganization,
		forge.WithSummary("Get organization"),
		forge.WithDescription("Returns an organization by its ID."),
		forge.WithOperationID("getOrganization"),
		forge.WithResponseSchema(http.StatusOK, "Organization details", &organization.Organization{}),
		forge.WithErrorResponses(),
	); err != nil {
		return err
	}

	if err := g.PUT("/organizations/:id", a.updateOrganization,
		forge.WithSummary("Update organization"),
		forge.WithDescription("Updates an existing organization. Omitted fields keep their value."),
		forge.WithOperationID("updateOrganization"),
		forge.WithRequestSchema(UpdateOrganizationRequest{}),
		forge.WithResponseSchema(http.StatusOK, "Updated organization", &organization.Organization{}),
		forge.WithErrorResponses(),
	); err != nil {
		return err
	}

	if err := g.DELETE("/organizations/:id", a.deleteOrganization,
		forge.WithSummary("Delete organization"),
		forge.WithDescription("Deletes an organization by its ID. Fails while users still belong to it."),
		forge.WithOperationID("deleteOrganization"),
		forge.WithNoContentResponse(),
		forge.WithErrorResponses(),
	); err != nil {
		return err
	}

	return g.GET("/organizations", a.listOrganizations,
		forge.WithSummary("List organizations"),
		forge.WithDescription("Lists organizations, newest first."),
		forge.WithOperationID("listOrganizations"),
		forge.WithRequestSchema(PageRequest{}),
		forge.WithResponseSchema(http.StatusOK, "Organization list", ListResponse[*organization.Organization]{}),
		forge.WithErrorResponses(),
	)
}

func (a *API) createOrganization(ctx forge.Context, req *CreateOrganizationRequest) (*organization.Organization, error) {
	in := organization.CreateInput(*req)
	if err := checkInput(&in); err != nil {
		return nil, err
	}
	row, err := a.eng.CreateOrganization(ctx.Context(), &in)
	if err != nil {
		return nil, mapError(err)
	}
	return nil, ctx.JSON(http.StatusCreated, row)
}

func (a *API) getOrganization(ctx forge.Context, _ *IDRequest) (*organization.Organization, error) {
	row, err := a.eng.GetOrganization(ctx.Context(), ctx.Param("id"))
	if err != nil {
		return nil, mapError(err)
	}
	return row, nil
}

func (a *API) updateOrganization(ctx forge.Context, req *UpdateOrganizationRequest) (*organization.Organization, error) {
	in := organization.UpdateInput(*req)
	if err := checkInput(&in); err != nil {
		return nil, err
	}
	row, err := a.eng.UpdateOrganization(ctx.Context(), ctx.Param("id"), &in)
	if err != nil {
		return nil, mapError(err)
	}
	return row, nil
}

func (a *API) deleteOrganization(ctx forge.Context, _ *IDRequest) (*struct{}, error) {
	if err := a.eng.DeleteOrganization(ctx.Context(), ctx.Param("id")); err != nil {
		return nil, mapError(err)
	}
	return nil, ctx.NoContent(http.StatusNoContent)
}

func (a *API) listOrganizations(ctx forge.Context, req *PageRequest) (*ListResponse[*organization.Organization], error) {
	filter := &organization.ListFilter{
		Limit:  defaultLimit(req.Limit),
		Offset: defaultOffset(req.Offset),
	}

	rows, err := a.eng.ListOrganizations(ctx.Context(), filter)
	if err != nil {
		return nil, mapError(err)
	}
	total, err := a.eng.CountOrganizations(ctx.Context(), nil)
	if err != nil {
		return nil, mapError(err)
	}

	resp := &ListResponse[*organization.Organization]{Items: rows, Total: total, Limit: filter.Limit, Offset: filter.Offset}
	return resp, nil
}
