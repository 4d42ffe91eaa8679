package controllers

import (
	"errors"
	"net/http"

	"github.com/shashiranjanraj/bazaar/app/repositories"
	"github.com/shashiranjanraj/bazaar/app/services"
	"github.com/shashiranjanraj/bazaar/pkg/middleware"
	"github.com/shashiranjanraj/bazaar/pkg/response"
)

type UserController struct {
	service *services.AuthService
	users   *repositories.UserRepository
}

func NewUserController() *UserController {
	return &UserController{
		service: services.NewAuthService(),
		users:   repositories.NewUserRepository(),
	}
}

// Index handles GET /users/ and lists every user. An optional ?role=
// filter narrows to buyers or sellers.
func (c *UserController) Index(w http.ResponseWriter, r *http.Request) {
	role := r.URL.Query().Get("role")

	var err error
	var users interface{}
	if role != "" {
		users, err = c.users.FindByRole(role)
	} else {
		users, err = c.users.All()
	}
	if err != nil {
		response.Error(w, http.StatusInternalServerError, "Internal Server Error")
		return
	}

	response.Success(w, users)
}

// Current handles GET /users/user and returns the caller's own record.
func (c *UserController) Current(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromCtx(r)
	if !ok {
		response.Unauthorized(w)
		return
	}

	user, err := c.service.CurrentUser(userID)
	if err != nil {
		if errors.Is(err, services.ErrUserNotFound) {
			response.NotFound(w, "User not found")
			return
		}
		response.Error(w, http.StatusInternalServerError, "Internal Server Error")
		return
	}

	response.Success(w, user)
}
