package services

import (
	"context"
	"mime/multipart"

	"github.com/rs/zerolog"

	"github.com/sembesalum/tu-chat-api/internal/app/models"
	"github.com/sembesalum/tu-chat-api/internal/app/models/dto"
	"github.com/sembesalum/tu-chat-api/internal/app/repositories"
	"github.com/sembesalum/tu-chat-api/internal/pkg/apperrors"
	"github.com/sembesalum/tu-chat-api/internal/pkg/filestorage"
)

// Marketplace errors
var (
	ErrNotProductOwner      = apperrors.NewForbiddenError("You do not have permission to modify this product.")
	ErrInvalidCategory      = apperrors.NewBadRequestError("Invalid product category")
	ErrUnknownCategoryRoute = apperrors.NewResourceNotFoundError("Invalid product category")
)

// ProductImages holds the optional uploads for the four image slots
type ProductImages [models.ProductImageSlots]*multipart.FileHeader

// ProductService handles marketplace listings
type ProductService interface {
	CreateProduct(ctx context.Context, ownerID int64, req *dto.CreateProductRequest, images ProductImages) (*dto.ProductResponse, error)
	ListProducts(ctx context.Context, category string) ([]dto.ProductResponse, error)
	ListProductsByCategory(ctx context.Context, category string) ([]dto.ProductResponse, error)
	UpdateProduct(ctx context.Context, productID, userID int64, req *dto.UpdateProductRequest, images ProductImages) (*dto.ProductResponse, error)
	MarkAsSold(ctx context.Context, productID, userID int64) (*dto.ProductResponse, error)
	DeleteProduct(ctx context.Context, productID, userID int64) error
}

type productServiceImpl struct {
	productRepo ProductRepository
	storage     filestorage.FileStorage
	logger      zerolog.Logger
}

// NewProductService creates a new ProductService
func NewProductService(productRepo ProductRepository, storage filestorage.FileStorage, logger zerolog.Logger) ProductService {
	return &productServiceImpl{
		productRepo: productRepo,
		storage:     storage,
		logger:      logger,
	}
}

func (s *productServiceImpl) toResponse(ctx context.Context, p *models.Product) dto.ProductResponse {
	return dto.ProductResponse{
		ID:        p.ID,
		User:      p.UserID,
		UserID:    p.UserID,
		Username:  p.Username,
		Category:  string(p.Category),
		Title:     p.Title,
		Feature1:  p.Features[0],
		Feature2:  p.Features[1],
		Feature3:  p.Features[2],
		Feature4:  p.Features[3],
		Warranty:  p.Warranty,
		Price:     p.Price,
		Image1:    mediaURL(ctx, s.storage, p.Images[0]),
		Image2:    mediaURL(ctx, s.storage, p.Images[1]),
		Image3:    mediaURL(ctx, s.storage, p.Images[2]),
		Image4:    mediaURL(ctx, s.storage, p.Images[3]),
		IsSold:    p.IsSold,
		CreatedAt: p.CreatedAt,
	}
}

func (s *productServiceImpl) responses(ctx context.Context, products []models.Product) []dto.ProductResponse {
	resp := make([]dto.ProductResponse, 0, len(products))
	for i := range products {
		resp = append(resp, s.toResponse(ctx, &products[i]))
	}
	return resp
}

// saveImages stores every present upload. On failure the already stored
// files are removed.
func (s *productServiceImpl) saveImages(images ProductImages) ([models.ProductImageSlots]*string, error) {
	var stored [models.ProductImageSlots]*string
	for i, fh := range images {
		path, err := saveOptional(s.storage, fh, filestorage.DirProducts)
		if err != nil {
			discard(s.storage, stored[:]...)
			return [models.ProductImageSlots]*string{}, err
		}
		stored[i] = path
	}
	return stored, nil
}

// ownedProduct loads a product and checks that userID owns it
func (s *productServiceImpl) ownedProduct(ctx context.Context, productID, userID int64) (*models.Product, error) {
	p, err := s.productRepo.GetByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	if p.UserID != userID {
		s.logger.Warn().Int64("productID", productID).Int64("userID", userID).Msg("Rejected product change by non-owner")
		return nil, ErrNotProductOwner
	}
	return p, nil
}

func (s *productServiceImpl) CreateProduct(ctx context.Context, ownerID int64, req *dto.CreateProductRequest, images ProductImages) (*dto.ProductResponse, error) {
	category := models.ProductCategory(req.Category)
	if !category.Valid() {
		return nil, ErrInvalidCategory
	}

	stored, err := s.saveImages(images)
	if err != nil {
		return nil, err
	}

	p := &models.Product{
		UserID:   ownerID,
		Category: category,
		Title:    req.Title,
		Features: [4]string{req.Feature1, req.Feature2, req.Feature3, req.Feature4},
		Warranty: req.Warranty,
		Price:    req.Price,
		Images:   stored,
	}
	if err := s.productRepo.Create(ctx, p); err != nil {
		discard(s.storage, stored[:]...)
		return nil, err
	}

	s.logger.Info().Int64("productID", p.ID).Int64("ownerID", ownerID).Msg("Product created")
	return s.reload(ctx, p.ID)
}

func (s *productServiceImpl) reload(ctx context.Context, id int64) (*dto.ProductResponse, error) {
	p, err := s.productRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := s.toResponse(ctx, p)
	return &resp, nil
}

// ListProducts returns listings newest first. An empty category lists everything.
func (s *productServiceImpl) ListProducts(ctx context.Context, category string) ([]dto.ProductResponse, error) {
	var filter *models.ProductCategory
	if category != "" {
		c := models.ProductCategory(category)
		if !c.Valid() {
			return nil, ErrInvalidCategory
		}
		filter = &c
	}
	products, err := s.productRepo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	return s.responses(ctx, products), nil
}

// ListProductsByCategory serves the category route, where an unknown category is not found
func (s *productServiceImpl) ListProductsByCategory(ctx context.Context, category string) ([]dto.ProductResponse, error) {
	c := models.ProductCategory(category)
	if !c.Valid() {
		return nil, ErrUnknownCategoryRoute
	}
	products, err := s.productRepo.List(ctx, &c)
	if err != nil {
		return nil, err
	}
	return s.responses(ctx, products), nil
}

// UpdateProduct applies a partial update. A new upload for a slot replaces
// the stored file of that slot; other slots are left untouched.
func (s *productServiceImpl) UpdateProduct(ctx context.Context, productID, userID int64, req *dto.UpdateProductRequest, images ProductImages) (*dto.ProductResponse, error) {
	current, err := s.ownedProduct(ctx, productID, userID)
	if err != nil {
		return nil, err
	}

	changes := repositories.ProductChanges{
		Title:    req.Title,
		Features: [4]*string{req.Feature1, req.Feature2, req.Feature3, req.Feature4},
		Warranty: req.Warranty,
		Price:    req.Price,
	}
	if req.Category != nil {
		c := models.ProductCategory(*req.Category)
		if !c.Valid() {
			return nil, ErrInvalidCategory
		}
		changes.Category = &c
	}

	stored, err := s.saveImages(images)
	if err != nil {
		return nil, err
	}
	changes.Images = stored

	if err := s.productRepo.Update(ctx, productID, changes); err != nil {
		discard(s.storage, stored[:]...)
		return nil, err
	}

	for i, replacement := range stored {
		if replacement != nil {
			discard(s.storage, current.Images[i])
		}
	}

	s.logger.Info().Int64("productID", productID).Msg("Product updated")
	return s.reload(ctx, productID)
}

func (s *productServiceImpl) MarkAsSold(ctx context.Context, productID, userID int64) (*dto.ProductResponse, error) {
	if _, err := s.ownedProduct(ctx, productID, userID); err != nil {
		return nil, err
	}
	sold := true
	if err := s.productRepo.Update(ctx, productID, repositories.ProductChanges{IsSold: &sold}); err != nil {
		return nil, err
	}
	return s.reload(ctx, productID)
}

// DeleteProduct removes the listing and its stored images
func (s *productServiceImpl) DeleteProduct(ctx context.Context, productID, userID int64) error {
	p, err := s.ownedProduct(ctx, productID, userID)
	if err != nil {
		return err
	}
	if err := s.productRepo.Delete(ctx, productID); err != nil {
		return err
	}
	discard(s.storage, p.Images[:]...)
	s.logger.Info().Int64("productID", productID).Msg("Product deleted")
	return nil
}
