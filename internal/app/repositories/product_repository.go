package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/sembesalum/tu-chat-api/internal/app/models"
	"github.com/sembesalum/tu-chat-api/internal/pkg/apperrors"
	"github.com/sembesalum/tu-chat-api/internal/pkg/logger"
)

// ErrProductNotFound is returned for unknown product ids
var ErrProductNotFound = apperrors.NewResourceNotFoundError("Product not found")

var (
	featureColumns = [4]string{"feature1", "feature2", "feature3", "feature4"}
	imageColumns   = [models.ProductImageSlots]string{"image1", "image2", "image3", "image4"}
)

// ProductChanges carries the fields of a partial product update. Nil fields are left alone.
type ProductChanges struct {
	Category *models.ProductCategory
	Title    *string
	Features [4]*string
	Warranty *string
	Price    *float64
	Images   [models.ProductImageSlots]*string
	IsSold   *bool
}

// Empty reports whether the update would change nothing
func (c ProductChanges) Empty() bool {
	return len(c.setMap()) == 0
}

func (c ProductChanges) setMap() map[string]interface{} {
	set := map[string]interface{}{}
	if c.Category != nil {
		set["category"] = *c.Category
	}
	if c.Title != nil {
		set["title"] = *c.Title
	}
	for i, f := range c.Features {
		if f != nil {
			set[featureColumns[i]] = *f
		}
	}
	if c.Warranty != nil {
		set["warranty"] = *c.Warranty
	}
	if c.Price != nil {
		set["price"] = *c.Price
	}
	for i, img := range c.Images {
		if img != nil {
			set[imageColumns[i]] = *img
		}
	}
	if c.IsSold != nil {
		set["is_sold"] = *c.IsSold
	}
	return set
}

// ProductRepository handles database operations for marketplace products
type ProductRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewProductRepository creates a new ProductRepository
func NewProductRepository(db *pgxpool.Pool) *ProductRepository {
	return &ProductRepository{
		db: db,
		sb: newBuilder(),
	}
}

// Create inserts a product
func (r *ProductRepository) Create(ctx context.Context, p *models.Product) error {
	sql, args, err := r.sb.Insert("products").
		Columns("user_id", "category", "title",
			"feature1", "feature2", "feature3", "feature4",
			"warranty", "price", "image1", "image2", "image3", "image4", "is_sold").
		Values(p.UserID, p.Category, p.Title,
			p.Features[0], p.Features[1], p.Features[2], p.Features[3],
			p.Warranty, p.Price, p.Images[0], p.Images[1], p.Images[2], p.Images[3], p.IsSold).
		Suffix("RETURNING id, created_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build create product query: %w", err)
	}
	if err := r.db.QueryRow(ctx, sql, args...).Scan(&p.ID, &p.CreatedAt); err != nil {
		logger.Error().Err(err).Msg("Error executing create product query")
		return mapReferenceError(err, "User not found")
	}
	return nil
}

func (r *ProductRepository) selectQuery() squirrel.SelectBuilder {
	return r.sb.Select(
		"p.id", "p.user_id", "p.category", "p.title",
		"p.feature1", "p.feature2", "p.feature3", "p.feature4",
		"p.warranty", "p.price::float8", "p.image1", "p.image2", "p.image3", "p.image4",
		"p.is_sold", "p.created_at", "u.username",
	).
		From("products p").
		Join("users u ON u.id = p.user_id")
}

func scanProduct(row pgx.Row) (models.Product, error) {
	var p models.Product
	err := row.Scan(&p.ID, &p.UserID, &p.Category, &p.Title,
		&p.Features[0], &p.Features[1], &p.Features[2], &p.Features[3],
		&p.Warranty, &p.Price, &p.Images[0], &p.Images[1], &p.Images[2], &p.Images[3],
		&p.IsSold, &p.CreatedAt, &p.Username)
	return p, err
}

func (r *ProductRepository) listQuery(category *models.ProductCategory) squirrel.SelectBuilder {
	q := r.selectQuery().OrderBy("p.created_at DESC", "p.id DESC")
	if category != nil {
		q = q.Where(squirrel.Eq{"p.category": *category})
	}
	return q
}

// List returns products newest first, optionally of one category
func (r *ProductRepository) List(ctx context.Context, category *models.ProductCategory) ([]models.Product, error) {
	sql, args, err := r.listQuery(category).ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build list products query: %w", err)
	}
	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error listing products")
		return nil, fmt.Errorf("error listing products: %w", err)
	}
	return pgx.CollectRows(rows, func(row pgx.CollectableRow) (models.Product, error) {
		return scanProduct(row)
	})
}

// GetByID returns a product
func (r *ProductRepository) GetByID(ctx context.Context, id int64) (*models.Product, error) {
	sql, args, err := r.selectQuery().Where(squirrel.Eq{"p.id": id}).ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get product query: %w", err)
	}
	p, err := scanProduct(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrProductNotFound
		}
		return nil, fmt.Errorf("error retrieving product: %w", err)
	}
	return &p, nil
}

func (r *ProductRepository) updateQuery(id int64, changes ProductChanges) (string, []interface{}, error) {
	return r.sb.Update("products").
		SetMap(changes.setMap()).
		Where(squirrel.Eq{"id": id}).
		ToSql()
}

// Update applies the non-nil fields of changes to the product
func (r *ProductRepository) Update(ctx context.Context, id int64, changes ProductChanges) error {
	if changes.Empty() {
		return nil
	}
	sql, args, err := r.updateQuery(id, changes)
	if err != nil {
		return fmt.Errorf("failed to build update product query: %w", err)
	}
	tag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("error updating product: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrProductNotFound
	}
	return nil
}

// Delete removes a product
func (r *ProductRepository) Delete(ctx context.Context, id int64) error {
	sql, args, err := r.sb.Delete("products").Where(squirrel.Eq{"id": id}).ToSql()
	if err != nil {
		return fmt.Errorf("failed to build delete product query: %w", err)
	}
	tag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("error deleting product: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrProductNotFound
	}
	return nil
}
