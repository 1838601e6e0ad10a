package service

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/zml18x/SMS-Backend-sub000/internal/cache"
	"github.com/zml18x/SMS-Backend-sub000/internal/core"
	"github.com/zml18x/SMS-Backend-sub000/internal/metrics"
	"github.com/zml18x/SMS-Backend-sub000/internal/models"
	"github.com/zml18x/SMS-Backend-sub000/internal/validation"
)

type SalonService struct {
	salons core.SalonRepository
	users  core.UserRepository
	cache  core.Cache
	ttl    time.Duration
	now    func() time.Time
}

func NewSalonService(salons core.SalonRepository, users core.UserRepository, c core.Cache, ttl time.Duration) core.SalonService {
	if c == nil {
		c = cache.NoopCache{}
	}
	return &SalonService{salons: salons, users: users, cache: c, ttl: ttl, now: time.Now}
}

// CreateSalon registers a salon owned by the actor and grants the actor the manager role.
func (s *SalonService) CreateSalon(ctx context.Context, actor models.Actor, req models.CreateSalonRequest) (*models.Salon, error) {
	now := s.now()
	salon := &models.Salon{
		ID:          uuid.New().String(),
		OwnerID:     actor.UserID,
		Name:        strings.TrimSpace(req.Name),
		Description: validation.SanitizeString(req.Description),
		Email:       strings.TrimSpace(req.Email),
		PhoneNumber: req.PhoneNumber,
		Address:     strings.TrimSpace(req.Address),
		City:        strings.TrimSpace(req.City),
		Country:     strings.TrimSpace(req.Country),
		PostalCode:  strings.TrimSpace(req.PostalCode),
		IsActive:    true,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.salons.Create(ctx, salon); err != nil {
		return nil, translate(err, "salon")
	}
	if !actor.HasRole(models.RoleManager) {
		if err := s.users.AddRole(ctx, actor.UserID, models.RoleManager); err != nil {
			return nil, err
		}
	}
	return salon, nil
}

// GetSalon reads through the cache. Cache failures fall back to the database.
func (s *SalonService) GetSalon(ctx context.Context, id string) (*models.Salon, error) {
	var cached models.Salon
	if hit, err := s.cache.Get(ctx, cache.SalonKey(id), &cached); err == nil && hit {
		metrics.CacheLookups.WithLabelValues("hit").Inc()
		return &cached, nil
	}
	metrics.CacheLookups.WithLabelValues("miss").Inc()

	salon, err := s.salons.GetByID(ctx, id)
	if err != nil {
		return nil, translate(err, "salon")
	}
	_ = s.cache.Set(ctx, cache.SalonKey(id), salon, s.ttl)
	return salon, nil
}

func (s *SalonService) ListSalons(ctx context.Context, city string, page, limit int) ([]models.Salon, *models.PaginationMetadata, error) {
	page, limit, offset := models.NormalizePage(page, limit)
	city = strings.TrimSpace(city)

	salons, err := s.salons.List(ctx, city, limit, offset)
	if err != nil {
		return nil, nil, err
	}
	total, err := s.salons.Count(ctx, city)
	if err != nil {
		return nil, nil, err
	}
	return salons, models.NewPaginationMetadata(page, limit, total), nil
}

func (s *SalonService) ListMySalons(ctx context.Context, actor models.Actor) ([]models.Salon, error) {
	return s.salons.ListByOwner(ctx, actor.UserID)
}

func (s *SalonService) UpdateSalon(ctx context.Context, actor models.Actor, id string, req models.UpdateSalonRequest) (*models.UpdateResult[*models.Salon], error) {
	salon, err := s.Authorize(ctx, actor, id)
	if err != nil {
		return nil, err
	}

	if req.Description != nil {
		sanitized := validation.SanitizeString(*req.Description)
		req.Description = &sanitized
	}
	if !salon.Apply(req) {
		return &models.UpdateResult[*models.Salon]{Item: salon, Changed: false}, nil
	}

	if err := s.salons.Update(ctx, salon); err != nil {
		return nil, translate(err, "salon")
	}
	s.invalidate(ctx, id)

	updated, err := s.salons.GetByID(ctx, id)
	if err != nil {
		return nil, translate(err, "salon")
	}
	return &models.UpdateResult[*models.Salon]{Item: updated, Changed: true}, nil
}

func (s *SalonService) DeleteSalon(ctx context.Context, actor models.Actor, id string) error {
	if _, err := s.Authorize(ctx, actor, id); err != nil {
		return err
	}
	if err := s.salons.Deactivate(ctx, id); err != nil {
		return translate(err, "salon")
	}
	s.invalidate(ctx, id)
	return nil
}

func (s *SalonService) GetOpeningHours(ctx context.Context, salonID string) ([]models.OpeningHours, error) {
	var cached []models.OpeningHours
	if hit, err := s.cache.Get(ctx, cache.OpeningHoursKey(salonID), &cached); err == nil && hit {
		metrics.CacheLookups.WithLabelValues("hit").Inc()
		return cached, nil
	}
	metrics.CacheLookups.WithLabelValues("miss").Inc()

	if _, err := s.GetSalon(ctx, salonID); err != nil {
		return nil, err
	}
	hours, err := s.salons.GetOpeningHours(ctx, salonID)
	if err != nil {
		return nil, err
	}
	_ = s.cache.Set(ctx, cache.OpeningHoursKey(salonID), hours, s.ttl)
	return hours, nil
}

// SetOpeningHours replaces the salon's whole week. Days not listed are left without hours.
func (s *SalonService) SetOpeningHours(ctx context.Context, actor models.Actor, salonID string, req models.SetOpeningHoursRequest) ([]models.OpeningHours, error) {
	if _, err := s.Authorize(ctx, actor, salonID); err != nil {
		return nil, err
	}

	hours, err := buildOpeningHours(salonID, req.Days)
	if err != nil {
		return nil, err
	}
	if err := s.salons.ReplaceOpeningHours(ctx, salonID, hours); err != nil {
		return nil, translate(err, "opening hours")
	}
	_ = s.cache.Delete(ctx, cache.OpeningHoursKey(salonID))
	return hours, nil
}

// Authorize returns the salon when the actor owns it or is an administrator.
func (s *SalonService) Authorize(ctx context.Context, actor models.Actor, salonID string) (*models.Salon, error) {
	salon, err := s.GetSalon(ctx, salonID)
	if err != nil {
		return nil, err
	}
	if salon.OwnerID != actor.UserID && !actor.IsAdmin() {
		return nil, fmt.Errorf("salon %w", ErrForbidden)
	}
	return salon, nil
}

func (s *SalonService) invalidate(ctx context.Context, id string) {
	_ = s.cache.Delete(ctx, cache.SalonKey(id), cache.OpeningHoursKey(id))
}

func buildOpeningHours(salonID string, days []models.OpeningHoursInput) ([]models.OpeningHours, error) {
	seen := make(map[int]bool, len(days))
	hours := make([]models.OpeningHours, 0, len(days))

	for _, d := range days {
		if d.DayOfWeek < 0 || d.DayOfWeek > 6 {
			return nil, fmt.Errorf("day_of_week %d out of range: %w", d.DayOfWeek, ErrBadRequest)
		}
		if seen[d.DayOfWeek] {
			return nil, fmt.Errorf("day_of_week %d listed more than once: %w", d.DayOfWeek, ErrBadRequest)
		}
		seen[d.DayOfWeek] = true

		h := models.OpeningHours{SalonID: salonID, DayOfWeek: d.DayOfWeek, IsClosed: d.IsClosed}
		if !d.IsClosed {
			if d.OpenTime == "" || d.CloseTime == "" {
				return nil, fmt.Errorf("day_of_week %d needs open_time and close_time: %w", d.DayOfWeek, ErrBadRequest)
			}
			// HH:MM strings order the same way as the times they encode.
			if d.CloseTime <= d.OpenTime {
				return nil, fmt.Errorf("day_of_week %d closes before it opens: %w", d.DayOfWeek, ErrBadRequest)
			}
			h.OpenTime, h.CloseTime = d.OpenTime, d.CloseTime
		}
		hours = append(hours, h)
	}

	slices.SortFunc(hours, func(a, b models.OpeningHours) int { return a.DayOfWeek - b.DayOfWeek })
	return hours, nil
}
