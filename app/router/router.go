package router

import (
	"log"
	"net/http"

	"github.com/Acedi-a/Proyecto-hospedaje-programacion4-sub000/app/controller"
	"github.com/Acedi-a/Proyecto-hospedaje-programacion4-sub000/app/middleware"
	"github.com/Acedi-a/Proyecto-hospedaje-programacion4-sub000/app/response"
)

type Controllers struct {
	Booking      *controller.BookingController
	Room         *controller.RoomController
	ExtraService *controller.ExtraServiceController
	Reservation  *controller.ReservationController
	Payment      *controller.PaymentController
	Review       *controller.ReviewController
	Settings     *controller.SettingsController
	Report       *controller.ReportController
	Chat         *controller.ChatController
	Session      *controller.SessionController
	Catalog      *controller.CatalogController
}

// Options configures the middleware around the routes
type Options struct {
	Sessions    middleware.SessionStore
	CORSOrigins []string
	Logger      *log.Logger
}

// pingHandler handles GET /ping
func pingHandler(w http.ResponseWriter, r *http.Request) {
	response.JSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// SetupRoutes registers every endpoint and returns the handler wrapped in CORS and request logging
func SetupRoutes(controllers *Controllers, opts Options) http.Handler {
	mux := http.NewServeMux()

	user := func(h http.HandlerFunc) http.Handler { return middleware.RequireSession(opts.Sessions, h) }
	admin := func(h http.HandlerFunc) http.Handler { return middleware.RequireAdmin(opts.Sessions, h) }

	// Ping endpoint
	mux.HandleFunc("GET /ping", pingHandler)

	// Session
	mux.HandleFunc("POST /session", controllers.Session.Start)
	mux.Handle("GET /session", user(controllers.Session.Get))
	mux.Handle("DELETE /session", user(controllers.Session.End))

	// Public catalog
	mux.HandleFunc("GET /rooms", controllers.Room.List)
	mux.HandleFunc("GET /rooms/{id}", controllers.Room.Get)
	mux.HandleFunc("GET /services", controllers.ExtraService.ListActive)
	mux.HandleFunc("GET /settings", controllers.Settings.Get)
	mux.HandleFunc("GET /reviews", controllers.Review.ListPublished)
	mux.HandleFunc("GET /catalog", controllers.Catalog.Get)
	mux.HandleFunc("GET /catalog/stream", controllers.Catalog.Stream)

	// Assistant
	mux.HandleFunc("POST /chat", controllers.Chat.Chat)

	// Reservation wizard
	mux.Handle("POST /booking/sessions", user(controllers.Booking.Create))
	mux.Handle("GET /booking/sessions/{id}", user(controllers.Booking.Get))
	mux.Handle("DELETE /booking/sessions/{id}", user(controllers.Booking.Discard))
	mux.Handle("POST /booking/sessions/{id}/room", user(controllers.Booking.SelectRoom))
	mux.Handle("PUT /booking/sessions/{id}/details", user(controllers.Booking.SetDetails))
	mux.Handle("POST /booking/sessions/{id}/services/{serviceId}", user(controllers.Booking.ToggleService))
	mux.Handle("POST /booking/sessions/{id}/next", user(controllers.Booking.Next))
	mux.Handle("POST /booking/sessions/{id}/back", user(controllers.Booking.Back))
	mux.Handle("POST /booking/sessions/{id}/payment", user(controllers.Booking.ConfirmPayment))
	mux.Handle("GET /booking/sessions/{id}/confirmation", user(controllers.Booking.Confirmation))

	// Guest reservations and reviews
	mux.Handle("GET /reservations", user(controllers.Reservation.ListMine))
	mux.Handle("GET /reservations/{id}", user(controllers.Reservation.Get))
	mux.Handle("GET /reservations/{id}/receipt", user(controllers.Reservation.Receipt))
	mux.Handle("POST /reviews", user(controllers.Review.Create))

	// Admin: rooms and add-ons
	mux.Handle("POST /admin/rooms", admin(controllers.Room.Create))
	mux.Handle("PUT /admin/rooms/{id}", admin(controllers.Room.Update))
	mux.Handle("DELETE /admin/rooms/{id}", admin(controllers.Room.Delete))
	mux.Handle("POST /admin/rooms/{id}/image", admin(controllers.Room.UploadImage))
	mux.Handle("DELETE /admin/rooms/{id}/image", admin(controllers.Room.ClearImage))
	mux.Handle("GET /admin/services", admin(controllers.ExtraService.ListAll))
	mux.Handle("POST /admin/services", admin(controllers.ExtraService.Create))
	mux.Handle("PUT /admin/services/{id}", admin(controllers.ExtraService.Update))
	mux.Handle("DELETE /admin/services/{id}", admin(controllers.ExtraService.Delete))
	mux.Handle("POST /admin/services/{id}/image", admin(controllers.ExtraService.UploadImage))
	mux.Handle("DELETE /admin/services/{id}/image", admin(controllers.ExtraService.ClearImage))

	// Admin: reservations, payments, reviews and settings
	mux.Handle("GET /admin/reservations", admin(controllers.Reservation.List))
	mux.Handle("PATCH /admin/reservations/{id}/status", admin(controllers.Reservation.UpdateStatus))
	mux.Handle("GET /admin/payments", admin(controllers.Payment.List))
	mux.Handle("PATCH /admin/payments/{id}/status", admin(controllers.Payment.UpdateStatus))
	mux.Handle("GET /admin/reviews", admin(controllers.Review.List))
	mux.Handle("PATCH /admin/reviews/{id}/status", admin(controllers.Review.Moderate))
	mux.Handle("PUT /admin/settings", admin(controllers.Settings.Update))

	// Admin: payments report
	mux.Handle("GET /admin/reports", admin(controllers.Report.Get))
	mux.Handle("GET /admin/reports/render", admin(controllers.Report.Render))
	mux.Handle("GET /admin/reports/export", admin(controllers.Report.Export))
	mux.Handle("POST /admin/reports/aggregate", admin(controllers.Report.Aggregate))

	var handler http.Handler = mux
	handler = middleware.CORS(opts.CORSOrigins, handler)
	handler = middleware.RequestLogger(handler, opts.Logger)
	return handler
}
