package repository

import "github.com/zml18x/SMS-Backend-sub000/internal/core"

// Repositories bundles every repository built on one pool.
type Repositories struct {
	Users        core.UserRepository
	Tokens       core.TokenRepository
	Salons       core.SalonRepository
	Employees    core.EmployeeRepository
	Services     core.ServiceRepository
	Products     core.ProductRepository
	Appointments core.AppointmentRepository
	Payments     core.PaymentRepository
}

func NewRepositories(db DB) *Repositories {
	return &Repositories{
		Users:        NewUserRepository(db),
		Tokens:       NewTokenRepository(db),
		Salons:       NewSalonRepository(db),
		Employees:    NewEmployeeRepository(db),
		Services:     NewServiceRepository(db),
		Products:     NewProductRepository(db),
		Appointments: NewAppointmentRepository(db),
		Payments:     NewPaymentRepository(db),
	}
}
