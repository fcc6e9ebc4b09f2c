package api

import (
	"net/http"

	"github.com/xraph/forge"

	"github.com/xraph/binspire/user"
)

func (a *API) registerUserRoutes(router forge.Router) error {
	g := router.Group("/v1", forge.WithGroupTags("users"))

	if err := g.POST("/users", a.createUser,
		forge.WithSummary("Create user"),
		forge.WithDescription("Creates a new user."),
		forge.WithOperationID("createUser"),
		forge.WithRequestSchema(CreateUserRequest{}),
		forge.WithCreatedResponse(&user.User{}),
		forge.WithErrorResponses(),
	); err != nil {
		return err
	}

	if err := g.GET("/users/:id", a.getUser,
		forge.WithSummary("Get user"),
		forge.WithDescription("Returns a user by its ID."),
		forge.WithOperationID("getUser"),
		forge.WithResponseSchema(http.StatusOK, "User details", &user.User{}),
		forge.WithErrorResponses(),
	); err != nil {
		return err
	}

	if err := g.PUT("/users/:id", a.updateUser,
		forge.WithSummary("Update user"),
		forge.WithDescription("Updates an existing user. Omitted fields keep their value."),
		forge.WithOperationID("updateUser"),
		forge.WithRequestSchema(UpdateUserRequest{}),
		forge.WithResponseSchema(http.StatusOK, "Updated user", &user.User{}),
		forge.WithErrorResponses(),
	); err != nil {
		return err
	}

	if err := g.DELETE("/users/:id", a.deleteUser,
		forge.WithSummary("Delete user"),
		forge.WithDescription("Deletes a user by its ID."),
		forge.WithOperationID("deleteUser"),
		forge.WithNoContentResponse(),
		forge.WithErrorResponses(),
	); err != nil {
		return err
	}

	return g.GET("/users", a.listUsers,
		forge.WithSummary("List users"),
		forge.WithDescription("Lists users, newest first."),
		forge.WithOperationID("listUsers"),
		forge.WithRequestSchema(ListUsersRequest{}),
		forge.WithResponseSchema(http.StatusOK, "User list", ListResponse[*user.User]{}),
		forge.WithErrorResponses(),
	)
}

func (a *API) createUser(ctx forge.Context, req *CreateUserRequest) (*user.User, error) {
	in := user.CreateInput(*req)
	if err := checkInput(&in); err != nil {
		return nil, err
	}
	row, err := a.eng.CreateUser(ctx.Context(), &in)
	if err != nil {
		return nil, mapError(err)
	}
	return nil, ctx.JSON(http.StatusCreated, row)
}

func (a *API) getUser(ctx forge.Context, _ *IDRequest) (*user.User, error) {
	row, err := a.eng.GetUser(ctx.Context(), ctx.Param("id"))
	if err != nil {
		return nil, mapError(err)
	}
	return row, nil
}

func (a *API) updateUser(ctx forge.Context, req *UpdateUserRequest) (*user.User, error) {
	in := user.UpdateInput(*req)
	if err := checkInput(&in); err != nil {
		return nil, err
	}
	row, err := a.eng.UpdateUser(ctx.Context(), ctx.Param("id"), &in)
	if err != nil {
		return nil, mapError(err)
	}
	return row, nil
}

func (a *API) deleteUser(ctx forge.Context, _ *IDRequest) (*struct{}, error) {
	if err := a.eng.DeleteUser(ctx.Context(), ctx.Param("id")); err != nil {
		return nil, mapError(err)
	}
	return nil, ctx.NoContent(http.StatusNoContent)
}

func (a *API) listUsers(ctx forge.Context, req *ListUsersRequest) (*ListResponse[*user.User], error) {
	filter := &user.ListFilter{
		OrgID:  req.OrgID,
		Limit:  defaultLimit(req.Limit),
		Offset: defaultOffset(req.Offset),
	}

	rows, err := a.eng.ListUsers(ctx.Context(), filter)
	if err != nil {
		return nil, mapError(err)
	}
	total, err := a.eng.CountUsers(ctx.Context(), &user.ListFilter{OrgID: filter.OrgID})
	if err != nil {
		return nil, mapError(err)
	}

	resp := &ListResponse[*user.User]{Items: rows, Total: total, Limit: filter.Limit, Offset: filter.Offset}
	return resp, nil
}
