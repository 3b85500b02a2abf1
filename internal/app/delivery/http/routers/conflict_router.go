package routers

import (
	"campus-service/internal/app/delivery/http/controllers"

	"github.com/go-chi/chi/v5"
)

func attachConflictRouter(router chi.Router, c *controllers.ConflictController) {
	router.Post("/check", c.CheckConflicts)
}
