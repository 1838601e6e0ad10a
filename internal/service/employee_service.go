package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/zml18x/SMS-Backend-sub000/internal/core"
	"github.com/zml18x/SMS-Backend-sub000/internal/models"
	"github.com/zml18x/SMS-Backend-sub000/internal/validation"
)

type EmployeeService struct {
	salons core.SalonService
	repo   core.EmployeeRepository
	now    func() time.Time
}

func NewEmployeeService(salons core.SalonService, repo core.EmployeeRepository) core.EmployeeService {
	return &EmployeeService{salons: salons, repo: repo, now: time.Now}
}

func (s *EmployeeService) CreateEmployee(ctx context.Context, actor models.Actor, salonID string, req models.CreateEmployeeRequest) (*models.EmployeeDetails, error) {
	if _, err := s.salons.Authorize(ctx, actor, salonID); err != nil {
		return nil, err
	}

	now := s.now()
	employee := &models.Employee{
		ID:          uuid.New().String(),
		SalonID:     salonID,
		Email:       strings.TrimSpace(req.Email),
		PhoneNumber: req.PhoneNumber,
		JobTitle:    strings.TrimSpace(req.JobTitle),
		IsActive:    true,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if req.HiredAt != "" {
		hiredAt, err := models.ParseDate(req.HiredAt)
		if err != nil {
			return nil, fmt.Errorf("hired_at must be YYYY-MM-DD: %w", ErrBadRequest)
		}
		employee.HiredAt = &hiredAt
	}

	profile := &models.EmployeeProfile{
		EmployeeID: employee.ID,
		FirstName:  strings.TrimSpace(req.FirstName),
		LastName:   strings.TrimSpace(req.LastName),
		UpdatedAt:  now,
	}

	if err := s.repo.Create(ctx, employee, profile); err != nil {
		return nil, translate(err, "employee with this email")
	}
	return &models.EmployeeDetails{Employee: *employee, Profile: profile}, nil
}

func (s *EmployeeService) GetEmployee(ctx context.Context, salonID, id string) (*models.EmployeeDetails, error) {
	employee, err := s.find(ctx, salonID, id)
	if err != nil {
		return nil, err
	}
	profile, err := s.repo.GetProfile(ctx, id)
	if err != nil {
		return nil, translate(err, "employee profile")
	}
	return &models.EmployeeDetails{Employee: *employee, Profile: profile}, nil
}

func (s *EmployeeService) ListEmployees(ctx context.Context, salonID string) ([]models.Employee, error) {
	if _, err := s.salons.GetSalon(ctx, salonID); err != nil {
		return nil, err
	}
	return s.repo.ListBySalon(ctx, salonID)
}

func (s *EmployeeService) UpdateEmployee(ctx context.Context, actor models.Actor, salonID, id string, req models.UpdateEmployeeRequest) (*models.UpdateResult[*models.Employee], error) {
	if _, err := s.salons.Authorize(ctx, actor, salonID); err != nil {
		return nil, err
	}
	employee, err := s.repo.GetByID(ctx, salonID, id)
	if err != nil {
		return nil, translate(err, "employee")
	}

	if !employee.Apply(req) {
		return &models.UpdateResult[*models.Employee]{Item: employee, Changed: false}, nil
	}
	if err := s.repo.Update(ctx, employee); err != nil {
		return nil, translate(err, "employee with this email")
	}

	updated, err := s.repo.GetByID(ctx, salonID, id)
	if err != nil {
		return nil, translate(err, "employee")
	}
	return &models.UpdateResult[*models.Employee]{Item: updated, Changed: true}, nil
}

func (s *EmployeeService) DeleteEmployee(ctx context.Context, actor models.Actor, salonID, id string) error {
	if _, err := s.salons.Authorize(ctx, actor, salonID); err != nil {
		return err
	}
	return translate(s.repo.Deactivate(ctx, salonID, id), "employee")
}

func (s *EmployeeService) GetEmployeeProfile(ctx context.Context, salonID, id string) (*models.EmployeeProfile, error) {
	if _, err := s.find(ctx, salonID, id); err != nil {
		return nil, err
	}
	profile, err := s.repo.GetProfile(ctx, id)
	if err != nil {
		return nil, translate(err, "employee profile")
	}
	return profile, nil
}

func (s *EmployeeService) UpdateEmployeeProfile(ctx context.Context, actor models.Actor, salonID, id string, req models.UpdateEmployeeProfileRequest) (*models.UpdateResult[*models.EmployeeProfile], error) {
	if _, err := s.salons.Authorize(ctx, actor, salonID); err != nil {
		return nil, err
	}
	if _, err := s.repo.GetByID(ctx, salonID, id); err != nil {
		return nil, translate(err, "employee")
	}
	profile, err := s.repo.GetProfile(ctx, id)
	if err != nil {
		return nil, translate(err, "employee profile")
	}

	if req.Bio != nil {
		bio := validation.SanitizeString(*req.Bio)
		req.Bio = &bio
	}
	if !profile.Apply(req) {
		return &models.UpdateResult[*models.EmployeeProfile]{Item: profile, Changed: false}, nil
	}
	if err := s.repo.UpdateProfile(ctx, profile); err != nil {
		return nil, translate(err, "employee profile")
	}

	updated, err := s.repo.GetProfile(ctx, id)
	if err != nil {
		return nil, translate(err, "employee profile")
	}
	return &models.UpdateResult[*models.EmployeeProfile]{Item: updated, Changed: true}, nil
}

func (s *EmployeeService) find(ctx context.Context, salonID, id string) (*models.Employee, error) {
	if _, err := s.salons.GetSalon(ctx, salonID); err != nil {
		return nil, err
	}
	employee, err := s.repo.GetByID(ctx, salonID, id)
	if err != nil {
		return nil, translate(err, "employee")
	}
	return employee, nil
}
