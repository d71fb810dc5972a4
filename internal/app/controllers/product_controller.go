package controllers

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/sembesalum/tu-chat-api/internal/app/models/dto"
	"github.com/sembesalum/tu-chat-api/internal/app/services"
	"github.com/sembesalum/tu-chat-api/internal/middleware"
	"github.com/sembesalum/tu-chat-api/internal/pkg/helpers"
)

// ProductController handles marketplace listings
type ProductController struct {
	productService services.ProductService
	logger         zerolog.Logger
}

// NewProductController creates a new ProductController
func NewProductController(productService services.ProductService, logger zerolog.Logger) *ProductController {
	return &ProductController{
		productService: productService,
		logger:         logger,
	}
}

// productImages collects the image1..image4 uploads
func productImages(ctx *gin.Context) (services.ProductImages, error) {
	var images services.ProductImages
	for i := range images {
		fh, err := optionalFile(ctx, fmt.Sprintf("image%d", i+1))
		if err != nil {
			return images, err
		}
		images[i] = fh
	}
	return images, nil
}

// CreateProduct lists a product for sale
// @Summary Create a product
// @Tags products
// @Accept multipart/form-data
// @Produce json
// @Param user_id formData int false "Owner, when not authenticated"
// @Param category formData string true "Category" Enums(electronics, books, clothing, furniture, stationery, accommodation, services, other)
// @Param title formData string true "Title"
// @Param feature1 formData string false "Feature 1"
// @Param feature2 formData string false "Feature 2"
// @Param feature3 formData string false "Feature 3"
// @Param feature4 formData string false "Feature 4"
// @Param warranty formData string false "Warranty"
// @Param price formData number false "Price"
// @Param image1 formData file false "Image 1"
// @Param image2 formData file false "Image 2"
// @Param image3 formData file false "Image 3"
// @Param image4 formData file false "Image 4"
// @Success 201 {object} dto.SuccessResponse{data=dto.ProductResponse} "Product created"
// @Failure 400 {object} dto.ErrorResponse "Invalid data"
// @Failure 413 {object} dto.ErrorResponse "Upload too large"
// @Router /products/add/ [post]
func (c *ProductController) CreateProduct(ctx *gin.Context) {
	var req dto.CreateProductRequest
	if err := ctx.ShouldBind(&req); err != nil {
		middleware.AbortWithValidationError(ctx, err)
		return
	}
	ownerID, err := middleware.ActingUserID(ctx, req.UserID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	images, err := productImages(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	product, err := c.productService.CreateProduct(ctx.Request.Context(), ownerID, &req, images)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respondCreated(ctx, product, "Product created successfully")
}

// ListProducts lists products, newest first
// @Summary List products
// @Tags products
// @Produce json
// @Param type query string false "Category filter"
// @Success 200 {object} dto.SuccessResponse{data=[]dto.ProductResponse} "Products"
// @Router /products/ [get]
func (c *ProductController) ListProducts(ctx *gin.Context) {
	products, err := c.productService.ListProducts(ctx.Request.Context(), ctx.Query("type"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respondOK(ctx, products, "")
}

// ListProductsByCategory lists the products of one category
// @Summary List products by category
// @Tags products
// @Produce json
// @Param category path string true "Category"
// @Success 200 {object} dto.SuccessResponse{data=[]dto.ProductResponse} "Products"
// @Failure 404 {object} dto.ErrorResponse "Invalid product category"
// @Router /products/category/{category}/ [get]
func (c *ProductController) ListProductsByCategory(ctx *gin.Context) {
	products, err := c.productService.ListProductsByCategory(ctx.Request.Context(), ctx.Param("category"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respondOK(ctx, products, "")
}

// UpdateProduct changes the given fields and replaces uploaded image slots
// @Summary Update a product
// @Tags products
// @Accept multipart/form-data
// @Produce json
// @Param id path int true "Product ID"
// @Param user_id formData int false "Owner, when not authenticated"
// @Param category formData string false "Category"
// @Param title formData string false "Title"
// @Param price formData number false "Price"
// @Param image1 formData file false "Image 1"
// @Success 200 {object} dto.SuccessResponse{data=dto.ProductResponse} "Product updated"
// @Failure 403 {object} dto.ErrorResponse "Not the owner"
// @Failure 404 {object} dto.ErrorResponse "Product not found"
// @Router /products/{id}/update/ [put]
func (c *ProductController) UpdateProduct(ctx *gin.Context) {
	productID, err := helpers.ParseIDParam(ctx, "id")
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	var req dto.UpdateProductRequest
	if err := bindOptional(ctx, &req); err != nil {
		middleware.AbortWithValidationError(ctx, err)
		return
	}
	userID, err := middleware.ActingUserID(ctx, req.UserID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	images, err := productImages(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	product, err := c.productService.UpdateProduct(ctx.Request.Context(), productID, userID, &req, images)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respondOK(ctx, product, "Product updated successfully")
}

// MarkAsSold flags a product as sold
// @Summary Mark a product as sold
// @Tags products
// @Accept json
// @Produce json
// @Param id path int true "Product ID"
// @Param request body dto.ProductOwnerRequest false "Owner, when not authenticated"
// @Success 200 {object} dto.SuccessResponse{data=dto.ProductResponse} "Product sold"
// @Failure 403 {object} dto.ErrorResponse "Not the owner"
// @Failure 404 {object} dto.ErrorResponse "Product not found"
// @Router /products/{id}/mark-as-sold/ [post]
func (c *ProductController) MarkAsSold(ctx *gin.Context) {
	productID, userID, ok := bindProductOwner(ctx)
	if !ok {
		return
	}
	product, err := c.productService.MarkAsSold(ctx.Request.Context(), productID, userID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respondOK(ctx, product, "Product marked as sold")
}

// DeleteProduct removes a product and its images
// @Summary Delete a product
// @Tags products
// @Accept json
// @Produce json
// @Param id path int true "Product ID"
// @Param request body dto.ProductOwnerRequest false "Owner, when not authenticated"
// @Success 200 {object} dto.SuccessResponse "Product deleted"
// @Failure 403 {object} dto.ErrorResponse "Not the owner"
// @Failure 404 {object} dto.ErrorResponse "Product not found"
// @Router /products/{id}/delete/ [post]
func (c *ProductController) DeleteProduct(ctx *gin.Context) {
	productID, userID, ok := bindProductOwner(ctx)
	if !ok {
		return
	}
	if err := c.productService.DeleteProduct(ctx.Request.Context(), productID, userID); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	c.logger.Info().Int64("productID", productID).Int64("userID", userID).Msg("Product deleted")
	respondOK(ctx, nil, "Product deleted successfully")
}

func bindProductOwner(ctx *gin.Context) (productID, userID int64, ok bool) {
	productID, err := helpers.ParseIDParam(ctx, "id")
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return 0, 0, false
	}
	var req dto.ProductOwnerRequest
	if err := bindOptional(ctx, &req); err != nil {
		middleware.AbortWithValidationError(ctx, err)
		return 0, 0, false
	}
	userID, err = middleware.ActingUserID(ctx, req.UserID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return 0, 0, false
	}
	return productID, userID, true
}
