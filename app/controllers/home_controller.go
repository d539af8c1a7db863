package controllers

import (
	"net/http"

	"github.com/km-arc/go-starter/framework/app"
	"github.com/km-arc/go-starter/framework/config"
)

type HomeController struct {
	app.Controller
	cfg *config.Config
}

func NewHomeController(cfg *config.Config) *HomeController {
	return &HomeController{cfg: cfg}
}

// Index GET /
func (c *HomeController) Index(w http.ResponseWriter, r *http.Request) {
	c.Response(w).Success(map[string]string{
		"name": c.cfg.App.Name,
		"env":  c.cfg.App.Env,
	})
}
