package handler

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/techhive/users-api/internal/api/metrics"
	"github.com/techhive/users-api/internal/core/domain"
	"github.com/techhive/users-api/internal/core/ports"
)

// UserHandler handles HTTP requests for user CRUD and queries.
type UserHandler struct {
	service ports.UserService
}

func NewUserHandler(service ports.UserService) *UserHandler {
	return &UserHandler{service: service}
}

// Create handles POST /users.
//
// @Summary      Create a new user
// @Tags         users
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createUserRequest  true  "User details"
// @Success      201   {object}  Envelope{data=domain.User}
// @Failure      400   {object}  Envelope
// @Failure      409   {object}  Envelope
// @Router       /users [post]
func (h *UserHandler) Create(c echo.Context) error {
	var req createUserRequest
	if err := c.Bind(&req); err != nil {
		return domain.ErrInvalidJSON
	}

	req.Name = strings.TrimSpace(req.Name)
	req.Email = strings.TrimSpace(req.Email)
	if err := c.Validate(&req); err != nil {
		return err
	}

	input := ports.CreateUserInput{Name: req.Name, Email: req.Email, Age: *req.Age}
	if req.Role != nil {
		role, _ := domain.ParseRole(*req.Role)
		input.Role = role
	}

	user, err := h.service.Create(c.Request().Context(), input)
	if err != nil {
		return err
	}

	metrics.UsersCreatedTotal.Inc()
	return Respond(c, http.StatusCreated, user, "user created")
}

// List handles GET /users with optional active/role/minAge/maxAge/search filters.
//
// @Summary      List users
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Param        active  query     bool    false  "Active flag"
// @Param        role    query     string  false  "Role"
// @Param        minAge  query     int     false  "Minimum age"
// @Param        maxAge  query     int     false  "Maximum age"
// @Param        search  query     string  false  "Free-text term"
// @Success      200     {object}  Envelope{data=listUsersResponse}
// @Failure      400     {object}  Envelope
// @Router       /users [get]
func (h *UserHandler) List(c echo.Context) error {
	filters, echoed, err := parseFilters(c)
	if err != nil {
		return err
	}

	users, err := h.service.List(c.Request().Context(), filters)
	if err != nil {
		return err
	}

	return Respond(c, http.StatusOK, listUsersResponse{
		Users:   users,
		Count:   len(users),
		Filters: echoed,
	}, "")
}

// Stats handles GET /users/stats.
func (h *UserHandler) Stats(c echo.Context) error {
	stats, err := h.service.Stats(c.Request().Context())
	if err != nil {
		return err
	}
	return Respond(c, http.StatusOK, stats, "")
}

// Search handles GET /users/search?q=. A missing or blank q is a 400, not a
// full scan.
func (h *UserHandler) Search(c echo.Context) error {
	q := c.QueryParam("q")
	if strings.TrimSpace(q) == "" {
		return domain.NewValidationError([]string{"query parameter q is required"})
	}

	users, err := h.service.Search(c.Request().Context(), q)
	if err != nil {
		return err
	}

	return Respond(c, http.StatusOK, searchUsersResponse{
		Users: users,
		Count: len(users),
		Query: strings.TrimSpace(q),
	}, "")
}

// AgeRange handles GET /users/age?minAge=&maxAge=.
func (h *UserHandler) AgeRange(c echo.Context) error {
	minAge, err := queryInt(c, "minAge")
	if err != nil {
		return err
	}
	maxAge, err := queryInt(c, "maxAge")
	if err != nil {
		return err
	}

	users, err := h.service.List(c.Request().Context(), ports.UserFilters{MinAge: minAge, MaxAge: maxAge})
	if err != nil {
		return err
	}

	return Respond(c, http.StatusOK, listUsersResponse{
		Users:   users,
		Count:   len(users),
		Filters: listFilters{MinAge: minAge, MaxAge: maxAge},
	}, "")
}

// ByRole handles GET /users/role/:role.
func (h *UserHandler) ByRole(c echo.Context) error {
	role, ok := domain.ParseRole(c.Param("role"))
	if !ok {
		return domain.NewValidationError([]string{"role must be one of: admin, manager, user"})
	}

	users, err := h.service.ByRole(c.Request().Context(), role)
	if err != nil {
		return err
	}

	roleStr := string(role)
	return Respond(c, http.StatusOK, listUsersResponse{
		Users:   users,
		Count:   len(users),
		Filters: listFilters{Role: &roleStr},
	}, "")
}

// Get handles GET /users/:id.
//
// @Summary      Get a user by id
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "User id"
// @Success      200  {object}  Envelope{data=domain.User}
// @Failure      404  {object}  Envelope
// @Router       /users/{id} [get]
func (h *UserHandler) Get(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}

	user, err := h.service.Get(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return Respond(c, http.StatusOK, user, "")
}

// Update handles PUT /users/:id. Omitted fields are left unchanged.
func (h *UserHandler) Update(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}

	var req updateUserRequest
	if err := c.Bind(&req); err != nil {
		return domain.ErrInvalidJSON
	}
	if req.Name != nil {
		trimmed := strings.TrimSpace(*req.Name)
		req.Name = &trimmed
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	input := ports.UpdateUserInput{
		Name:     req.Name,
		Email:    req.Email,
		Age:      req.Age,
		IsActive: req.IsActive,
	}
	if req.Role != nil {
		role, _ := domain.ParseRole(*req.Role)
		input.Role = &role
	}

	user, err := h.service.Update(c.Request().Context(), id, input)
	if err != nil {
		return err
	}
	return Respond(c, http.StatusOK, user, "user updated")
}

// ToggleStatus handles PATCH /users/:id/toggle-status.
func (h *UserHandler) ToggleStatus(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}

	user, err := h.service.ToggleStatus(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return Respond(c, http.StatusOK, user, "user status toggled")
}

// Delete handles DELETE /users/:id.
//
// @Summary      Delete a user
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "User id"
// @Success      200  {object}  Envelope
// @Failure      404  {object}  Envelope
// @Router       /users/{id} [delete]
func (h *UserHandler) Delete(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}

	if err := h.service.Delete(c.Request().Context(), id); err != nil {
		return err
	}

	metrics.UsersDeletedTotal.Inc()
	return Respond(c, http.StatusOK, nil, "user deleted")
}

func parseFilters(c echo.Context) (ports.UserFilters, listFilters, error) {
	minAge, err := queryInt(c, "minAge")
	if err != nil {
		return ports.UserFilters{}, listFilters{}, err
	}
	maxAge, err := queryInt(c, "maxAge")
	if err != nil {
		return ports.UserFilters{}, listFilters{}, err
	}

	filters := ports.UserFilters{
		ActiveOnly: queryBool(c, "active"),
		MinAge:     minAge,
		MaxAge:     maxAge,
		Search:     c.QueryParam("search"),
	}

	echoed := listFilters{
		Active: filters.ActiveOnly,
		MinAge: minAge,
		MaxAge: maxAge,
		Search: strings.TrimSpace(filters.Search),
	}

	if raw := c.QueryParam("role"); raw != "" {
		role, ok := domain.ParseRole(raw)
		if !ok {
			return ports.UserFilters{}, listFilters{}, domain.NewValidationError([]string{"role must be one of: admin, manager, user"})
		}
		filters.Role = &role
		roleStr := string(role)
		echoed.Role = &roleStr
	}

	return filters, echoed, nil
}
