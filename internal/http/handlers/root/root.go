// Package root отдает приветствие на GET /.
package root

import (
	"net/http"

	"github.com/go-chi/render"

	"github.com/magabrotheeeer/budget-manager/internal/http/response"
)

const welcome = "Bienvenue sur l'API de gestion de budget"

// ServeHTTP godoc
// @Summary Приветствие
// @Tags Service
// @Produce json
// @Success 200 {object} response.Message
// @Router / [get]
func ServeHTTP(w http.ResponseWriter, r *http.Request) {
	render.JSON(w, r, response.Message{Message: welcome})
}
