package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/km-arc/go-starter/app/services"
	"github.com/km-arc/go-starter/framework/app"
)

type UserController struct {
	app.Controller
	users  *services.UserStore
	mailer *services.Mailer
}

func NewUserController(users *services.UserStore, mailer *services.Mailer) *UserController {
	return &UserController{users: users, mailer: mailer}
}

// Index GET /api/users
func (c *UserController) Index(w http.ResponseWriter, r *http.Request) error {
	c.Response(w).Success(c.users.All())
	return nil
}

// Show GET /api/users/{id}
func (c *UserController) Show(w http.ResponseWriter, r *http.Request, id string) error {
	n, err := strconv.Atoi(id)
	if err != nil {
		c.Response(w).NotFound()
		return nil
	}
	u, ok := c.users.Find(n)
	if !ok {
		c.Response(w).NotFound("User not found.")
		return nil
	}
	c.Response(w).Success(u)
	return nil
}

// Store POST /api/users
func (c *UserController) Store(w http.ResponseWriter, r *http.Request) error {
	var payload struct {
		Name  string `json:"name"`
		Email string `json:"email"`
	}
	if err := c.Request(r).Bind(&payload); err != nil {
		c.Response(w).Error(http.StatusBadRequest, "Malformed request body.")
		return nil
	}

	u, err := c.users.Create(payload.Name, payload.Email)
	if errors.Is(err, services.ErrInvalidUser) {
		c.Response(w).Error(http.StatusUnprocessableEntity, "The name and email fields are required.")
		return nil
	}
	if err != nil {
		return err
	}

	if err := c.mailer.Send(r.Context(), u.Email, "Welcome"); err != nil {
		return err
	}
	c.Response(w).Created(u)
	return nil
}
