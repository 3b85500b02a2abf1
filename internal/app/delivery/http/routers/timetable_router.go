package routers

import (
	"fmt"

	"campus-service/internal/app/delivery/http/controllers"
	"campus-service/internal/pkg/constvars"

	"github.com/go-chi/chi/v5"
)

func attachTimetableRouter(router chi.Router, c *controllers.TimetableController) {
	router.Post("/", c.CreateTimetable)

	router.Route(fmt.Sprintf("/{%s}", constvars.URLParamTimetableID), func(r chi.Router) {
		r.Get("/", c.GetTimetable)
		r.Put("/", c.UpdateTimetable)
		r.Delete("/", c.DeleteTimetable)

		r.Post("/periods", c.CreatePeriod)
		r.Get("/periods", c.ListPeriods)
	})

	router.Route(fmt.Sprintf("/periods/{%s}", constvars.URLParamPeriodID), func(r chi.Router) {
		r.Put("/", c.UpdatePeriod)
		r.Delete("/", c.DeletePeriod)
	})
}
