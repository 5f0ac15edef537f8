package testutil

import (
	"fmt"
	"sync/atomic"
	"testing"

	"posapi/internal/models"

	"gorm.io/gorm"
)

// counter provides unique values across fixtures within a test run.
var counter atomic.Int64

func nextID() int64 {
	return counter.Add(1)
}

// CreateTestProduct creates a product with a unique 13 digit code.
func CreateTestProduct(t *testing.T, db *gorm.DB, price int64, taxCode models.TaxCode) *models.Product {
	t.Helper()
	n := nextID()
	return CreateTestProductWithCode(t, db, fmt.Sprintf("49%011d", n), fmt.Sprintf("Test Product %d", n), price, taxCode)
}

// CreateTestProductWithCode creates a product with the given code and name.
func CreateTestProductWithCode(t *testing.T, db *gorm.DB, code, name string, price int64, taxCode models.TaxCode) *models.Product {
	t.Helper()

	product := &models.Product{
		Code:    code,
		Name:    name,
		Price:   price,
		TaxCode: taxCode,
	}
	if err := db.Create(product).Error; err != nil {
		t.Fatalf("failed to create test product: %v", err)
	}
	return product
}

// UpdateTestProductPrice changes a product's price in place.
func UpdateTestProductPrice(t *testing.T, db *gorm.DB, productID uint, price int64) {
	t.Helper()

	if err := db.Model(&models.Product{}).Where("prd_id = ?", productID).Update("price", price).Error; err != nil {
		t.Fatalf("failed to update test product price: %v", err)
	}
}
