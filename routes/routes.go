package routes

import (
	"net/http"

	"harvestharmony/auth"
	"harvestharmony/bookings"
	"harvestharmony/favorites"
	"harvestharmony/home"
	"harvestharmony/machines"
	"harvestharmony/middleware"
	"harvestharmony/notify"
	"harvestharmony/ratelim"

	"github.com/julienschmidt/httprouter"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func AddStaticRoutes(router *httprouter.Router) {
	router.ServeFiles("/static/uploads/*filepath", http.Dir("static/uploads"))
}

func AddAuthRoutes(router *httprouter.Router) {
	router.POST("/api/auth/register", ratelim.RateLimit(auth.Register))
	router.POST("/api/auth/login", ratelim.RateLimit(auth.Login))
	router.GET("/api/auth/me", middleware.OptionalAuth(auth.Me))
	router.POST("/api/auth/logout", middleware.Authenticate(auth.Logout))
}

func AddMachineRoutes(router *httprouter.Router) {
	// Machine CRUD. httprouter cannot mix static and wildcard segments, so
	// /api/machines/status/available is matched through the :id wildcard and
	// verified inside the handler.
	router.GET("/api/machines", machines.GetMachines)
	router.POST("/api/machines", middleware.Authenticate(machines.CreateMachine))
	router.GET("/api/machines/:id/available", machines.GetAvailableMachines)
	router.GET("/api/machines/:id", machines.GetMachine)
	router.PUT("/api/machines/:id", middleware.Authenticate(machines.UpdateMachine))
	router.DELETE("/api/machines/:id", middleware.Authenticate(machines.DeleteMachine))
	router.PATCH("/api/machines/:id/availability", middleware.Authenticate(machines.UpdateAvailability))
	router.POST("/api/machines/:id/image", middleware.Authenticate(machines.UploadImage))

	// Reviews (embedded in machine)
	router.POST("/api/machines/:id/reviews", ratelim.RateLimit(machines.AddReview))
	router.GET("/api/machines/:id/reviews", machines.GetReviews)
	router.DELETE("/api/machines/:id/reviews/:reviewId", middleware.Authenticate(machines.DeleteReview))
}

func AddBookingRoutes(router *httprouter.Router) {
	router.GET("/api/bookings", bookings.GetBookings)
	router.POST("/api/bookings", ratelim.RateLimit(bookings.CreateBooking))
	// /api/bookings/status/:status and /api/bookings/stats/earnings share the
	// :id wildcard; GetSubresource dispatches on the first segment.
	router.GET("/api/bookings/:id/:sub", bookings.GetSubresource)
	router.GET("/api/bookings/:id", bookings.GetBooking)
	router.PUT("/api/bookings/:id", middleware.Authenticate(bookings.UpdateBooking))
	router.PATCH("/api/bookings/:id", middleware.Authenticate(bookings.UpdateStatus))
	router.PATCH("/api/bookings/:id/status", middleware.Authenticate(bookings.UpdateStatus))
	router.DELETE("/api/bookings/:id", middleware.Authenticate(bookings.DeleteBooking))
}

func AddFavoriteRoutes(router *httprouter.Router) {
	router.GET("/api/favorites/farmer/:phone", favorites.GetFarmerFavorites)
	router.POST("/api/favorites", favorites.AddFavorite)
	router.DELETE("/api/favorites", favorites.DeleteFavorite)
	router.POST("/api/favorites/toggle", favorites.ToggleFavorite)
}

func AddHomeRoutes(router *httprouter.Router) {
	router.GET("/api/home/:section", middleware.OptionalAuth(home.GetHomeContent))
}

func AddNotifyRoutes(router *httprouter.Router, hub *notify.Hub) {
	router.GET("/ws/notifications", notify.WebSocketHandler(hub))
}

func AddMetricsRoutes(router *httprouter.Router) {
	router.Handler(http.MethodGet, "/metrics", promhttp.Handler())
}
