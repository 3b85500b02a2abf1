package routers

import (
	"fmt"
	"time"

	"campus-service/internal/app/config"
	"campus-service/internal/app/delivery/http/controllers"
	"campus-service/internal/app/delivery/http/middlewares"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"
)

func SetupRoutes(
	router *chi.Mux,
	internalConfig *config.InternalConfig,
	m *middlewares.Middlewares,
	patternController *controllers.PatternController,
	timetableController *controllers.TimetableController,
	conflictController *controllers.ConflictController,
) {
	corsOptions := cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: true,
		MaxAge:           300,
	}
	router.Use(cors.Handler(corsOptions))

	rateLimiter := httprate.LimitByIP(internalConfig.App.MaxRequests, time.Second)
	router.Use(rateLimiter)

	router.Use(m.RequestIDMiddleware)
	router.Use(m.Logging(m.Log))
	router.Use(m.ErrorHandler)

	endpointPrefix := fmt.Sprintf("/%s", internalConfig.App.EndpointPrefix)
	versionPrefix := fmt.Sprintf("/%s", internalConfig.App.Version)

	router.Route(endpointPrefix, func(r chi.Router) {
		r.Route(versionPrefix, func(r chi.Router) {
			r.Route("/patterns", func(r chi.Router) {
				attachPatternRouter(r, patternController)
			})

			r.Route("/timetables", func(r chi.Router) {
				attachTimetableRouter(r, timetableController)
			})

			r.Route("/conflicts", func(r chi.Router) {
				attachConflictRouter(r, conflictController)
			})
		})
	})
}
