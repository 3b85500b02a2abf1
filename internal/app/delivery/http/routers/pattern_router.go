package routers

import (
	"fmt"

	"campus-service/internal/app/delivery/http/controllers"
	"campus-service/internal/pkg/constvars"

	"github.com/go-chi/chi/v5"
)

func attachPatternRouter(router chi.Router, c *controllers.PatternController) {
	router.Post("/", c.CreatePattern)
	router.Get("/", c.ListPatterns)

	router.Route(fmt.Sprintf("/{%s}", constvars.URLParamPatternID), func(r chi.Router) {
		r.Get("/", c.GetPattern)
		r.Put("/", c.UpdatePattern)
		r.Delete("/", c.DeletePattern)

		r.Get("/occurrences", c.ListOccurrences)

		r.Post("/exceptions", c.CreateException)
	})

	router.Route(fmt.Sprintf("/exceptions/{%s}", constvars.URLParamExceptionID), func(r chi.Router) {
		r.Put("/", c.UpdateException)
		r.Delete("/", c.DeleteException)
	})
}
