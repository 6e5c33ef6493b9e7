package services

import (
	"context"
	"strings"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"hotel-pms/events"
	"hotel-pms/models"
	"hotel-pms/repository"
)

// CatalogService manages the orderable services of a property.
type CatalogService struct {
	core
}

func NewCatalogService(store repository.Store, pub events.Publisher, log *zap.Logger) *CatalogService {
	return &CatalogService{core: newCore(store, pub, log)}
}

type CreateServiceInput struct {
	Name        string             `json:"name"`
	Type        models.ServiceType `json:"type"`
	BasePrice   decimal.Decimal    `json:"basePrice"`
	TaxRate     *decimal.Decimal   `json:"taxRate"`
	Description string             `json:"description"`
}

func (s *CatalogService) CreateService(ctx context.Context, scope Scope, in CreateServiceInput) (*models.Service, error) {
	in.Name = strings.TrimSpace(in.Name)
	switch {
	case in.Name == "":
		return nil, invalidInput("name is required")
	case in.Type == "":
		return nil, invalidInput("type is required")
	case !in.BasePrice.IsPositive():
		return nil, invalidInput("basePrice must be greater than 0")
	case in.TaxRate != nil && in.TaxRate.IsNegative():
		return nil, invalidInput("taxRate must not be negative")
	}
	if err := checkMoney("basePrice", in.BasePrice); err != nil {
		return nil, err
	}
	if in.TaxRate != nil {
		if err := checkMoney("taxRate", *in.TaxRate); err != nil {
			return nil, err
		}
	}
	svc := &models.Service{
		OrganizationID: scope.TenantID,
		Name:           in.Name,
		Type:           in.Type,
		BasePrice:      in.BasePrice,
		TaxRate:        models.DefaultTaxRate,
		IsActive:       true,
		Description:    strings.TrimSpace(in.Description),
	}
	if in.TaxRate != nil {
		svc.TaxRate = *in.TaxRate
	}
	err := s.run(ctx, "catalog.create", scope, func(tx repository.Tx) error {
		if err := tx.CreateService(svc); err != nil {
			return fromRepo(err, "service")
		}
		return s.audit(tx, scope, "service.created", "service", svc.ID, map[string]interface{}{"name": svc.Name})
	})
	if err != nil {
		return nil, err
	}
	return svc, nil
}

func (s *CatalogService) ListServices(ctx context.Context, scope Scope, activeOnly bool) ([]models.Service, error) {
	var out []models.Service
	err := s.run(ctx, "catalog.list", scope, func(tx repository.Tx) error {
		var err error
		out, err = tx.ListServices(scope.TenantID, activeOnly)
		return fromRepo(err, "service")
	})
	return out, err
}

// SetServiceActive hides or restores a service. Existing orders keep their price.
func (s *CatalogService) SetServiceActive(ctx context.Context, scope Scope, id string, active bool) (*models.Service, error) {
	var svc *models.Service
	err := s.run(ctx, "catalog.active", scope, func(tx repository.Tx) error {
		var err error
		svc, err = tx.GetService(scope.TenantID, id)
		if err != nil {
			return fromRepo(err, "service")
		}
		if svc.IsActive == active {
			return nil
		}
		svc.IsActive = active
		if err := tx.SaveService(svc); err != nil {
			return fromRepo(err, "service")
		}
		return s.audit(tx, scope, "service.updated", "service", svc.ID, map[string]interface{}{"isActive": active})
	})
	if err != nil {
		return nil, err
	}
	return svc, nil
}
