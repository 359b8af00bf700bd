package http

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

func (h *Handler) Init() *chi.Mux {
	router := chi.NewRouter()
	router.Use(h.withTraceID)
	router.Use(h.withLogging)
	router.Use(middleware.Recoverer)
	if h.requestTimeout > 0 {
		router.Use(middleware.Timeout(h.requestTimeout))
	}
	router.Use(middleware.Compress(5, "application/json", "text/plain"))

	router.Get("/api/version/", h.getServerVersion)

	router.Route("/api/v1/auth", func(r chi.Router) {
		// routes without authorization
		r.Group(func(r chi.Router) {
			r.Post("/login", h.login)
			r.Post("/request-otp", h.requestOTP)
			r.Post("/verify-otp-register", h.verifyOTPRegister)
			r.Post("/verify-otp-login", h.verifyOTPLogin)
			r.Post("/check-phone", h.checkPhone)
		})

		// administrative code management
		r.Group(func(r chi.Router) {
			r.Use(h.auth)
			r.Use(requireRole(adminRole))
			r.Get("/otps", h.listOTPs)
			r.Delete("/otps/expired", h.clearExpiredOTPs)
		})
	})

	router.NotFound(notFound)
	router.MethodNotAllowed(CheckHTTPMethod(router))

	return router
}
