package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/accounthq/accounts-api/internal/core/ports"
)

// UserHandler handles account listing, retrieval, update, and deletion.
type UserHandler struct {
	userService ports.UserService
}

func NewUserHandler(userService ports.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

// List returns all user accounts. Admin only.
//
// @Summary      List all users
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  usersResponse
// @Failure      401  {object}  map[string]string
// @Failure      403  {object}  messageResponse
// @Router       /users [get]
func (h *UserHandler) List(c echo.Context) error {
	users, err := h.userService.ListUsers(c.Request().Context(), currentUser(c))
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, usersResponse{
		Success: true,
		Message: "Successfully retrieved Users",
		Users:   users,
	})
}

// Get returns a single user account. Self or admin.
//
// @Summary      Get a user by id
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "User id"
// @Success      200  {object}  userResponse
// @Failure      403  {object}  messageResponse
// @Failure      404  {object}  messageResponse
// @Router       /users/{id} [get]
func (h *UserHandler) Get(c echo.Context) error {
	user, err := h.userService.GetUser(c.Request().Context(), currentUser(c), c.Param("id"))
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, userResponse{
		Success: true,
		Message: "Successfully retrieved user",
		User:    user,
	})
}

// Update partially updates a user account. Self or admin. Omitted fields are
// left unchanged.
//
// @Summary      Update a user
// @Tags         users
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string             true  "User id"
// @Param        body  body      updateUserRequest  true  "Fields to update"
// @Success      200   {object}  userResponse
// @Failure      403   {object}  messageResponse
// @Failure      404   {object}  messageResponse
// @Failure      422   {object}  map[string]any
// @Router       /users/{id} [put]
func (h *UserHandler) Update(c echo.Context) error {
	var req updateUserRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	user, err := h.userService.UpdateUser(c.Request().Context(), currentUser(c), c.Param("id"), ports.UpdateUserInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, userResponse{
		Success: true,
		Message: "User account updated successfully",
		User:    user,
	})
}

// Delete permanently removes a user account. Admin only, even for the
// caller's own account.
//
// @Summary      Delete a user
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "User id"
// @Success      200  {object}  messageResponse
// @Failure      403  {object}  messageResponse
// @Failure      404  {object}  messageResponse
// @Router       /users/{id} [delete]
func (h *UserHandler) Delete(c echo.Context) error {
	if err := h.userService.DeleteUser(c.Request().Context(), currentUser(c), c.Param("id")); err != nil {
		return err
	}

	return c.JSON(http.StatusOK, messageResponse{
		Success: true,
		Message: "User account deleted successfully",
	})
}
