package product

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/acarreras/tienda-backend/pkg/db"
	"github.com/acarreras/tienda-backend/pkg/db/models"
	pkgerrors "github.com/acarreras/tienda-backend/pkg/errors"
)

// Service exposes catalog management operations.
type Service interface {
	Create(ctx context.Context, input CreateProductInput) (*ProductDTO, error)
	Update(ctx context.Context, productID uuid.UUID, input UpdateProductInput) (*ProductDTO, error)
	Delete(ctx context.Context, productID uuid.UUID) error
	Get(ctx context.Context, productID uuid.UUID) (*ProductDTO, error)
	List(ctx context.Context) ([]ProductDTO, error)
}

type service struct {
	repo *Repository
}

// NewService constructs a catalog service instance.
func NewService(repo *Repository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("product repository required")
	}
	return &service{repo: repo}, nil
}

func (s *service) Create(ctx context.Context, input CreateProductInput) (*ProductDTO, error) {
	input.Name = strings.TrimSpace(input.Name)
	input.Reference = strings.TrimSpace(input.Reference)
	input.ImageURL = strings.TrimSpace(input.ImageURL)

	if fieldErrs := validateFields(input.Name, input.Reference, input.Price, input.Quantity, input.ImageURL); len(fieldErrs) > 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "validation failed").WithDetails(fieldErrs)
	}

	if err := s.ensureReferenceAvailable(ctx, input.Reference, uuid.Nil); err != nil {
		return nil, err
	}

	created, err := s.repo.Create(ctx, &models.Product{
		ID:        uuid.New(),
		Name:      input.Name,
		Reference: input.Reference,
		Price:     input.Price,
		Quantity:  input.Quantity,
		ImageURL:  input.ImageURL,
	})
	if err != nil {
		if db.IsUniqueViolation(err, "idx_products_reference") {
			return nil, pkgerrors.New(pkgerrors.CodeConflict, "reference already exists")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "create product")
	}
	return FromModel(created), nil
}

func (s *service) Update(ctx context.Context, productID uuid.UUID, input UpdateProductInput) (*ProductDTO, error) {
	existing, err := s.repo.FindByID(ctx, productID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load product")
	}

	if input.Name != nil {
		existing.Name = strings.TrimSpace(*input.Name)
	}
	if input.Reference != nil {
		existing.Reference = strings.TrimSpace(*input.Reference)
	}
	if input.Price != nil {
		existing.Price = *input.Price
	}
	if input.Quantity != nil {
		existing.Quantity = *input.Quantity
	}
	if input.ImageURL != nil {
		existing.ImageURL = strings.TrimSpace(*input.ImageURL)
	}

	if fieldErrs := validateFields(existing.Name, existing.Reference, existing.Price, existing.Quantity, existing.ImageURL); len(fieldErrs) > 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "validation failed").WithDetails(fieldErrs)
	}

	if err := s.ensureReferenceAvailable(ctx, existing.Reference, existing.ID); err != nil {
		return nil, err
	}

	updated, err := s.repo.Update(ctx, existing)
	if err != nil {
		if db.IsUniqueViolation(err, "idx_products_reference") {
			return nil, pkgerrors.New(pkgerrors.CodeConflict, "reference already exists")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "update product")
	}
	return FromModel(updated), nil
}

func (s *service) Delete(ctx context.Context, productID uuid.UUID) error {
	if err := s.repo.Delete(ctx, productID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
		}
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "delete product")
	}
	return nil
}

func (s *service) Get(ctx context.Context, productID uuid.UUID) (*ProductDTO, error) {
	p, err := s.repo.FindByID(ctx, productID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load product")
	}
	return FromModel(p), nil
}

func (s *service) List(ctx context.Context) ([]ProductDTO, error) {
	items, err := s.repo.List(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list products")
	}
	return FromModels(items), nil
}

// ensureReferenceAvailable rejects a reference already carried by a
// different row. excludeID skips the row being updated.
func (s *service) ensureReferenceAvailable(ctx context.Context, reference string, excludeID uuid.UUID) error {
	existing, err := s.repo.FindByReference(ctx, reference)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "check reference")
	}
	if existing.ID != excludeID {
		return pkgerrors.New(pkgerrors.CodeConflict, "reference already exists")
	}
	return nil
}
