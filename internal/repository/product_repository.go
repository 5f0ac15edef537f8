package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	apperrors "posapi/internal/errors"
	"posapi/internal/models"
	"posapi/internal/pagination"
)

// ProductRepository reads the product master.
type ProductRepository struct {
	db *gorm.DB
}

// NewProductRepository creates a ProductRepository.
func NewProductRepository(db *gorm.DB) *ProductRepository {
	return &ProductRepository{db: db}
}

// FindByIDs loads every existing product among ids in a single query.
func (r *ProductRepository) FindByIDs(ctx context.Context, ids []uint) (map[uint]models.Product, error) {
	result := make(map[uint]models.Product, len(ids))
	if len(ids) == 0 {
		return result, nil
	}

	var products []models.Product
	if err := r.db.WithContext(ctx).Where("prd_id IN ?", ids).Find(&products).Error; err != nil {
		return nil, classify(err, "find products by id")
	}

	for _, p := range products {
		result[p.ID] = p
	}
	return result, nil
}

// FindByCode returns the product registered under code.
func (r *ProductRepository) FindByCode(ctx context.Context, code string) (*models.Product, error) {
	var product models.Product
	if err := r.db.WithContext(ctx).Where("code = ?", code).First(&product).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.WithDetails(
				apperrors.WithMessage(apperrors.ErrProductNotFound, fmt.Sprintf("No product is registered under code %s", code)),
				map[string]any{"code": code},
			)
		}
		return nil, classify(err, "find product by code")
	}
	return &product, nil
}

// List returns one page of products ordered by id.
func (r *ProductRepository) List(ctx context.Context, page pagination.PageRequest) (*pagination.PageResponse[models.Product], error) {
	page.Defaults()

	base := r.db.WithContext(ctx).Model(&models.Product{})

	var totalItems int64
	if err := base.Count(&totalItems).Error; err != nil {
		return nil, classify(err, "count products")
	}

	var products []models.Product
	if err := base.Scopes(pagination.Paginate(page)).
		Order("prd_id ASC").
		Find(&products).Error; err != nil {
		return nil, classify(err, "list products")
	}

	result := pagination.NewPageResponse(products, page.Page, page.PageSize, totalItems)
	return &result, nil
}
