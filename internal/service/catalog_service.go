package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/zml18x/SMS-Backend-sub000/internal/core"
	"github.com/zml18x/SMS-Backend-sub000/internal/models"
	"github.com/zml18x/SMS-Backend-sub000/internal/repository"
	"github.com/zml18x/SMS-Backend-sub000/internal/validation"
)

// CatalogService manages what a salon sells: bookable services and retail products.
type CatalogService struct {
	salons   core.SalonService
	services core.ServiceRepository
	products core.ProductRepository
	now      func() time.Time
}

func NewCatalogService(salons core.SalonService, services core.ServiceRepository, products core.ProductRepository) core.CatalogService {
	return &CatalogService{salons: salons, services: services, products: products, now: time.Now}
}

// --- Services ---

func (s *CatalogService) CreateService(ctx context.Context, actor models.Actor, salonID string, req models.CreateServiceRequest) (*models.Service, error) {
	if _, err := s.salons.Authorize(ctx, actor, salonID); err != nil {
		return nil, err
	}

	now := s.now()
	svc := &models.Service{
		ID:              uuid.New().String(),
		SalonID:         salonID,
		Name:            strings.TrimSpace(req.Name),
		Description:     validation.SanitizeString(req.Description),
		Category:        strings.TrimSpace(req.Category),
		DurationMinutes: req.DurationMinutes,
		PriceCents:      req.PriceCents,
		IsActive:        true,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if err := s.services.Create(ctx, svc); err != nil {
		return nil, translate(err, "service with this name")
	}
	return svc, nil
}

func (s *CatalogService) GetService(ctx context.Context, salonID, id string) (*models.Service, error) {
	if _, err := s.salons.GetSalon(ctx, salonID); err != nil {
		return nil, err
	}
	svc, err := s.services.GetByID(ctx, salonID, id)
	if err != nil {
		return nil, translate(err, "service")
	}
	return svc, nil
}

func (s *CatalogService) ListServices(ctx context.Context, salonID string) ([]models.Service, error) {
	if _, err := s.salons.GetSalon(ctx, salonID); err != nil {
		return nil, err
	}
	return s.services.ListBySalon(ctx, salonID)
}

func (s *CatalogService) UpdateService(ctx context.Context, actor models.Actor, salonID, id string, req models.UpdateServiceRequest) (*models.UpdateResult[*models.Service], error) {
	if _, err := s.salons.Authorize(ctx, actor, salonID); err != nil {
		return nil, err
	}
	svc, err := s.services.GetByID(ctx, salonID, id)
	if err != nil {
		return nil, translate(err, "service")
	}

	if req.Description != nil {
		description := validation.SanitizeString(*req.Description)
		req.Description = &description
	}
	if !svc.Apply(req) {
		return &models.UpdateResult[*models.Service]{Item: svc, Changed: false}, nil
	}
	if err := s.services.Update(ctx, svc); err != nil {
		return nil, translate(err, "service with this name")
	}

	updated, err := s.services.GetByID(ctx, salonID, id)
	if err != nil {
		return nil, translate(err, "service")
	}
	return &models.UpdateResult[*models.Service]{Item: updated, Changed: true}, nil
}

func (s *CatalogService) DeleteService(ctx context.Context, actor models.Actor, salonID, id string) error {
	if _, err := s.salons.Authorize(ctx, actor, salonID); err != nil {
		return err
	}
	return translate(s.services.Deactivate(ctx, salonID, id), "service")
}

// --- Products ---

func (s *CatalogService) CreateProduct(ctx context.Context, actor models.Actor, salonID string, req models.CreateProductRequest) (*models.Product, error) {
	if _, err := s.salons.Authorize(ctx, actor, salonID); err != nil {
		return nil, err
	}

	now := s.now()
	product := &models.Product{
		ID:            uuid.New().String(),
		SalonID:       salonID,
		Name:          strings.TrimSpace(req.Name),
		SKU:           strings.TrimSpace(req.SKU),
		Description:   validation.SanitizeString(req.Description),
		PriceCents:    req.PriceCents,
		StockQuantity: req.StockQuantity,
		IsActive:      true,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := s.products.Create(ctx, product); err != nil {
		return nil, translate(err, "product with this sku")
	}
	return product, nil
}

func (s *CatalogService) GetProduct(ctx context.Context, salonID, id string) (*models.Product, error) {
	if _, err := s.salons.GetSalon(ctx, salonID); err != nil {
		return nil, err
	}
	product, err := s.products.GetByID(ctx, salonID, id)
	if err != nil {
		return nil, translate(err, "product")
	}
	return product, nil
}

func (s *CatalogService) ListProducts(ctx context.Context, salonID string) ([]models.Product, error) {
	if _, err := s.salons.GetSalon(ctx, salonID); err != nil {
		return nil, err
	}
	return s.products.ListBySalon(ctx, salonID)
}

func (s *CatalogService) UpdateProduct(ctx context.Context, actor models.Actor, salonID, id string, req models.UpdateProductRequest) (*models.UpdateResult[*models.Product], error) {
	if _, err := s.salons.Authorize(ctx, actor, salonID); err != nil {
		return nil, err
	}
	product, err := s.products.GetByID(ctx, salonID, id)
	if err != nil {
		return nil, translate(err, "product")
	}

	if req.Description != nil {
		description := validation.SanitizeString(*req.Description)
		req.Description = &description
	}
	if !product.Apply(req) {
		return &models.UpdateResult[*models.Product]{Item: product, Changed: false}, nil
	}
	if err := s.products.Update(ctx, product); err != nil {
		return nil, translate(err, "product with this sku")
	}

	updated, err := s.products.GetByID(ctx, salonID, id)
	if err != nil {
		return nil, translate(err, "product")
	}
	return &models.UpdateResult[*models.Product]{Item: updated, Changed: true}, nil
}

// AdjustStock adds delta units to the product's stock. Stock never drops below zero.
func (s *CatalogService) AdjustStock(ctx context.Context, actor models.Actor, salonID, id string, delta int) (*models.Product, error) {
	if delta == 0 {
		return nil, fmt.Errorf("delta must not be zero: %w", ErrBadRequest)
	}
	if _, err := s.salons.Authorize(ctx, actor, salonID); err != nil {
		return nil, err
	}

	product, err := s.products.AdjustStock(ctx, salonID, id, delta)
	if errors.Is(err, repository.ErrLimitExceeded) {
		return nil, fmt.Errorf("insufficient stock: %w", ErrInvalidState)
	}
	if err != nil {
		return nil, translate(err, "product")
	}
	return product, nil
}

func (s *CatalogService) DeleteProduct(ctx context.Context, actor models.Actor, salonID, id string) error {
	if _, err := s.salons.Authorize(ctx, actor, salonID); err != nil {
		return err
	}
	return translate(s.products.Deactivate(ctx, salonID, id), "product")
}
