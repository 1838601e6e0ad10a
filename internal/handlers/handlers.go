// File: internal/handlers/handlers.go
package handlers

import (
	"time"

	"github.com/zml18x/SMS-Backend-sub000/internal/config"
	"github.com/zml18x/SMS-Backend-sub000/internal/core"
)

// Services bundles the service layer the HTTP handlers call into.
type Services struct {
	Auth         core.AuthService
	Users        core.UserService
	Salons       core.SalonService
	Employees    core.EmployeeService
	Catalog      core.CatalogService
	Appointments core.AppointmentService
	Payments     core.PaymentService
}

type Handlers struct {
	app      *config.Application
	services Services
}

func New(app *config.Application, services Services) *Handlers {
	return &Handlers{app: app, services: services}
}

var startTime = time.Now()

// Version is reported by the health endpoints. main overrides it with the build version.
var Version = "dev"
