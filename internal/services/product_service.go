package services

import (
	"context"
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"

	apperrors "posapi/internal/errors"
	"posapi/internal/logger"
	"posapi/internal/models"
	"posapi/internal/pagination"
	appvalidator "posapi/internal/validator"
)

// productService handles product lookups for terminals.
type productService struct {
	catalog  ProductCatalog
	lister   ProductLister
	validate *validator.Validate
}

// NewProductService creates a new ProductServicer.
func NewProductService(catalog ProductCatalog, lister ProductLister) ProductServicer {
	return &productService{catalog: catalog, lister: lister, validate: appvalidator.New()}
}

// GetProductByCode looks up a product by its JAN/EAN or in-store code.
// Surrounding whitespace from scanners is ignored.
func (s *productService) GetProductByCode(ctx context.Context, code string) (*models.Product, error) {
	code = strings.TrimSpace(code)
	if err := s.validate.Var(code, "product_code"); err != nil {
		return nil, apperrors.WithDetails(
			apperrors.WithMessage(apperrors.ErrValidation, "code must be 8 to 25 digits"),
			map[string]any{"code": code},
		)
	}

	product, err := s.catalog.FindByCode(ctx, code)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			logger.From(ctx).Infow("product lookup miss", "code", code)
			return nil, err
		}
		err = storageFailure(err, "find product by code")
		logger.From(ctx).Errorw("product lookup failed", "code", code, "cause", causeOf(err))
		return nil, err
	}

	logger.From(ctx).Debugw("product lookup hit", "code", code, "prd_id", product.ID)
	return product, nil
}

// ListProducts returns one page of the product master.
func (s *productService) ListProducts(ctx context.Context, page pagination.PageRequest) (*pagination.PageResponse[models.Product], error) {
	page.Defaults()
	if page.Page < 0 || page.PageSize < 0 || page.PageSize > pagination.MaxPageSize {
		return nil, apperrors.WithMessage(apperrors.ErrValidation, "invalid page parameters")
	}

	result, err := s.lister.List(ctx, page)
	if err != nil {
		err = storageFailure(err, "list products")
		logger.From(ctx).Errorw("product listing failed", "cause", causeOf(err))
		return nil, err
	}
	return result, nil
}
