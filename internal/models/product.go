package models

// TaxCode is the tax category of a product, stored as a two character code.
type TaxCode string

const (
	TaxCodeStandard TaxCode = "10"
	TaxCodeReduced  TaxCode = "08"
	TaxCodeExempt   TaxCode = "00"
)

// Product is an entry of the product master. Prices are tax-exclusive and
// expressed in the minor currency unit. The validate tags describe a row
// that can be sold.
type Product struct {
	ID      uint    `gorm:"column:prd_id;primaryKey;autoIncrement" json:"prd_id"`
	Code    string  `gorm:"size:25;not null;uniqueIndex:uq_products_code" json:"code" validate:"product_code"`
	Name    string  `gorm:"size:50;not null;index:idx_products_name" json:"name" validate:"required,max=50"`
	Price   int64   `gorm:"not null;check:chk_products_price,price >= 0" json:"price" validate:"gte=0"`
	TaxCode TaxCode `gorm:"column:tax_cd;type:char(2);not null;default:'10';check:chk_products_tax_cd,tax_cd IN ('10','08','00')" json:"tax_cd" validate:"tax_cd"`
}

// TableName sets the database table name.
func (Product) TableName() string { return "products" }
