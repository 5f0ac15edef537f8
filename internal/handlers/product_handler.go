package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"posapi/internal/pagination"
	"posapi/internal/services"
)

// ProductHandler handles product lookups from terminals.
type ProductHandler struct {
	productService services.ProductServicer
}

// NewProductHandler creates a new ProductHandler.
func NewProductHandler(productService services.ProductServicer) *ProductHandler {
	return &ProductHandler{productService: productService}
}

// GetProductByCode looks a product up by its scanned code.
// @Summary     Find a product by code
// @Description Look up the product master by JAN/EAN or in-store code (8 to 25 digits)
// @Tags        products
// @Produce     json
// @Param       code path string true "Product code"
// @Success     200 {object} models.Product
// @Failure     400 {object} respond.ErrorResponse "Malformed code"
// @Failure     404 {object} respond.ErrorResponse "Product not registered"
// @Failure     503 {object} respond.ErrorResponse "Storage unavailable"
// @Router      /products/{code} [get]
func (h *ProductHandler) GetProductByCode(c *gin.Context) {
	product, err := h.productService.GetProductByCode(c.Request.Context(), c.Param("code"))
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, product)
}

// ListProducts returns a page of the product master.
// @Summary     List products
// @Tags        products
// @Produce     json
// @Param       page      query int false "Page number"
// @Param       page_size query int false "Items per page (max 100)"
// @Success     200 {object} pagination.PageResponse[models.Product]
// @Failure     400 {object} respond.ErrorResponse "Invalid page parameters"
// @Router      /products [get]
func (h *ProductHandler) ListProducts(c *gin.Context) {
	var page pagination.PageRequest
	if err := c.ShouldBindQuery(&page); err != nil {
		respondWithError(c, bindingError(err))
		return
	}

	result, err := h.productService.ListProducts(c.Request.Context(), page)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}
