package router

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/cors"
	httpSwagger "github.com/swaggo/http-swagger"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gorilla/mux/otelmux"

	"github.com/zml18x/SMS-Backend-sub000/internal/auth"
	"github.com/zml18x/SMS-Backend-sub000/internal/config"
	"github.com/zml18x/SMS-Backend-sub000/internal/handlers"
	"github.com/zml18x/SMS-Backend-sub000/internal/metrics"
	"github.com/zml18x/SMS-Backend-sub000/internal/middleware"
	"github.com/zml18x/SMS-Backend-sub000/internal/models"
)

const serviceName = "sms-backend"

func Setup(app *config.Application, services handlers.Services, tokens *auth.TokenManager) http.Handler {
	router := mux.NewRouter()

	// Create instances of handlers and middleware
	h := handlers.New(app, services)
	mw := middleware.New(app, tokens)

	router.Use(otelmux.Middleware(serviceName))

	// Health and monitoring routes (no authentication required)
	router.HandleFunc("/health", h.Health).Methods("GET")
	router.HandleFunc("/health/detailed", h.HealthDetailed).Methods("GET")
	router.Handle("/metrics", promhttp.Handler()).Methods("GET")
	router.PathPrefix("/swagger/").Handler(httpSwagger.WrapHandler)

	// Public authentication routes
	authRoutes := router.PathPrefix("/auth").Subrouter()
	authRoutes.HandleFunc("/register", h.Register).Methods("POST")
	authRoutes.HandleFunc("/login", h.Login).Methods("POST")
	authRoutes.HandleFunc("/refresh", h.Refresh).Methods("POST")
	authRoutes.HandleFunc("/logout", h.Logout).Methods("POST")

	// Protected API routes
	api := router.PathPrefix("/api/v1").Subrouter()
	api.Use(mw.JWT)

	api.HandleFunc("/profile", h.GetProfile).Methods("GET")
	api.HandleFunc("/profile", h.UpdateProfile).Methods("PUT")
	api.HandleFunc("/password", h.ChangePassword).Methods("PUT")
	api.HandleFunc("/appointments", h.ListMyAppointments).Methods("GET")

	admin := api.NewRoute().Subrouter()
	admin.Use(mw.RequireRole(models.RoleAdmin))
	admin.HandleFunc("/users", h.GetUsers).Methods("GET")
	admin.HandleFunc("/users/{userID}/roles", h.SetUserRoles).Methods("PUT")
	admin.HandleFunc("/admin/db-stats", h.GetDatabaseStats).Methods("GET")

	api.HandleFunc("/salons", h.CreateSalon).Methods("POST")
	api.HandleFunc("/salons", h.ListSalons).Methods("GET")
	api.HandleFunc("/salons/mine", h.ListMySalons).Methods("GET")

	salon := api.PathPrefix("/salons/{salonID}").Subrouter()
	salon.HandleFunc("", h.GetSalon).Methods("GET")
	salon.HandleFunc("", h.UpdateSalon).Methods("PUT")
	salon.HandleFunc("", h.DeleteSalon).Methods("DELETE")
	salon.HandleFunc("/hours", h.GetOpeningHours).Methods("GET")
	salon.HandleFunc("/hours", h.SetOpeningHours).Methods("PUT")

	salon.HandleFunc("/employees", h.CreateEmployee).Methods("POST")
	salon.HandleFunc("/employees", h.ListEmployees).Methods("GET")
	salon.HandleFunc("/employees/{employeeID}", h.GetEmployee).Methods("GET")
	salon.HandleFunc("/employees/{employeeID}", h.UpdateEmployee).Methods("PUT")
	salon.HandleFunc("/employees/{employeeID}", h.DeleteEmployee).Methods("DELETE")
	salon.HandleFunc("/employees/{employeeID}/profile", h.GetEmployeeProfile).Methods("GET")
	salon.HandleFunc("/employees/{employeeID}/profile", h.UpdateEmployeeProfile).Methods("PUT")

	salon.HandleFunc("/services", h.CreateService).Methods("POST")
	salon.HandleFunc("/services", h.ListServices).Methods("GET")
	salon.HandleFunc("/services/{serviceID}", h.GetService).Methods("GET")
	salon.HandleFunc("/services/{serviceID}", h.UpdateService).Methods("PUT")
	salon.HandleFunc("/services/{serviceID}", h.DeleteService).Methods("DELETE")

	salon.HandleFunc("/products", h.CreateProduct).Methods("POST")
	salon.HandleFunc("/products", h.ListProducts).Methods("GET")
	salon.HandleFunc("/products/{productID}", h.GetProduct).Methods("GET")
	salon.HandleFunc("/products/{productID}", h.UpdateProduct).Methods("PUT")
	salon.HandleFunc("/products/{productID}", h.DeleteProduct).Methods("DELETE")
	salon.HandleFunc("/products/{productID}/stock", h.AdjustStock).Methods("POST")

	salon.HandleFunc("/appointments", h.BookAppointment).Methods("POST")
	salon.HandleFunc("/appointments", h.ListSalonAppointments).Methods("GET")
	salon.HandleFunc("/appointments/{appointmentID}", h.GetAppointment).Methods("GET")
	salon.HandleFunc("/appointments/{appointmentID}/status", h.UpdateAppointmentStatus).Methods("PUT")
	salon.HandleFunc("/appointments/{appointmentID}/payments", h.ListAppointmentPayments).Methods("GET")

	salon.HandleFunc("/payments", h.RecordPayment).Methods("POST")
	salon.HandleFunc("/payments", h.ListSalonPayments).Methods("GET")
	salon.HandleFunc("/payments/{paymentID}", h.GetPayment).Methods("GET")
	salon.HandleFunc("/payments/{paymentID}/refund", h.RefundPayment).Methods("POST")

	// CORS configuration
	c := cors.New(cors.Options{
		AllowedOrigins:   app.Config.CORS_Allowed_Origins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Authorization", "Content-Type", "X-Request-ID"},
		ExposedHeaders:   []string{"X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           300, // 5 minutes
	})

	// Global middleware, applied once around the router. The last wrapper runs first.
	var handler http.Handler = router
	handler = c.Handler(handler)
	handler = mw.RateLimit(handler)
	handler = mw.Timeout(app.Config.GetRequestTimeout())(handler)
	handler = middleware.Security(handler)
	handler = mw.Logging(handler)
	handler = mw.Recovery(handler)
	handler = mw.RequestID(handler)

	return promhttp.InstrumentHandlerDuration(metrics.RequestDuration, handler)
}
