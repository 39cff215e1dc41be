package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/iyhunko/inventory-tracker/internal/http/middleware"
	"github.com/iyhunko/inventory-tracker/internal/model"
	"github.com/iyhunko/inventory-tracker/internal/repository"
	"github.com/iyhunko/inventory-tracker/internal/service"
)

// ProductController handles HTTP requests for product operations.
type ProductController struct {
	productService *service.ProductService
}

// NewProductController creates a new ProductController with the given product service.
func NewProductController(productService *service.ProductService) *ProductController {
	return &ProductController{
		productService: productService,
	}
}

// CreateProductRequest represents the request body for creating a product.
type CreateProductRequest struct {
	Name  string `json:"name" binding:"required"`
	Stock int    `json:"stock" binding:"gte=0"`
}

// UpdateStockRequest represents the request body for adjusting stock.
// Version is the version the client read; a stale value is rejected with 409.
type UpdateStockRequest struct {
	Delta   *int `json:"delta" binding:"required"`
	Version int  `json:"version" binding:"required,gte=1"`
}

// ProductResponse represents the response body for a product.
// Stock and version always travel together so the client can compose the
// next delta/expected-version pair.
type ProductResponse struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Stock     int    `json:"stock"`
	Version   int    `json:"version"`
	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`
}

// CreateProduct handles the HTTP POST request for creating a new product.
func (pc *ProductController) CreateProduct(c *gin.Context) {
	user := currentUser(c)
	if user == nil {
		return
	}

	var req CreateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	product, err := pc.productService.CreateProduct(c.Request.Context(), user.ID, req.Name, req.Stock)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, toProductResponse(product))
}

// ListProductsRequest represents the query parameters for listing products.
type ListProductsRequest struct {
	Limit int32  `form:"limit"`
	Token string `form:"token"`
}

// ListProductsResponse represents the response body for listing products.
type ListProductsResponse struct {
	Products      []ProductResponse `json:"products"`
	NextPageToken string            `json:"next_page_token,omitempty"`
}

// ListProducts handles the HTTP GET request for listing the caller's products.
func (pc *ProductController) ListProducts(c *gin.Context) {
	user := currentUser(c)
	if user == nil {
		return
	}

	var req ListProductsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	query := repository.NewQuery()
	if err := query.ApplyPagination(req.Limit, req.Token); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	products, err := pc.productService.ListProducts(c.Request.Context(), user.ID, *query)
	if err != nil {
		writeError(c, err)
		return
	}

	productResponses := make([]ProductResponse, 0, len(products))
	for _, product := range products {
		productResponses = append(productResponses, toProductResponse(product))
	}

	response := ListProductsResponse{
		Products: productResponses,
	}

	// Generate next page token if the page was full
	if len(products) == query.Limit {
		paginator := repository.Paginator{
			LastID: products[len(products)-1].ID,
		}
		response.NextPageToken = paginator.Encode()
	}

	c.JSON(http.StatusOK, response)
}

// GetProduct handles the HTTP GET request for a single product by ID.
func (pc *ProductController) GetProduct(c *gin.Context) {
	user := currentUser(c)
	if user == nil {
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid product ID"})
		return
	}

	product, err := pc.productService.GetProduct(c.Request.Context(), id, user.ID)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, toProductResponse(product))
}

// UpdateStock handles the HTTP PATCH request for adjusting a product's stock.
func (pc *ProductController) UpdateStock(c *gin.Context) {
	user := currentUser(c)
	if user == nil {
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid product ID"})
		return
	}

	var req UpdateStockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	product, err := pc.productService.AdjustStock(c.Request.Context(), id, user.ID, req.Version, *req.Delta)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, toProductResponse(product))
}

// DeleteProduct handles the HTTP DELETE request for deleting a product by ID.
func (pc *ProductController) DeleteProduct(c *gin.Context) {
	user := currentUser(c)
	if user == nil {
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid product ID"})
		return
	}

	if err := pc.productService.DeleteProduct(c.Request.Context(), id, user.ID); err != nil {
		writeError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// currentUser pulls the authenticated user stored by the auth middleware.
// A missing user means the route was wired without RequireAuth.
func currentUser(c *gin.Context) *model.User {
	value, exists := c.Get(middleware.UserContextKey)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthenticated"})
		c.Abort()
		return nil
	}
	user, ok := value.(*model.User)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthenticated"})
		c.Abort()
		return nil
	}
	return user
}

func toProductResponse(product *model.Product) ProductResponse {
	return ProductResponse{
		ID:        product.ID.String(),
		Name:      product.Name,
		Stock:     product.Stock,
		Version:   product.Version,
		CreatedAt: product.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
		UpdatedAt: product.UpdatedAt.Format("2006-01-02T15:04:05Z07:00"),
	}
}
