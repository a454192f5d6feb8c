package catalog

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/nutrimart/nutrimart-backend/pkg/db/models"
	"github.com/nutrimart/nutrimart-backend/pkg/pagination"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Aggregate subqueries keep grade and stock annotations in SQL instead of
// walking associations row by row.
const (
	viewableGradeJoin = `LEFT JOIN (
  SELECT product_id, AVG(grade) AS avg_grade
  FROM review_logs
  WHERE viewable
  GROUP BY product_id
) rv ON rv.product_id = products.id`

	totalStockJoin = `LEFT JOIN (
  SELECT product_id, SUM(quantity) AS total_stock
  FROM store_inventories
  GROUP BY product_id
) inv ON inv.product_id = products.id`
)

// SortOrder selects catalog ordering.
type SortOrder string

const (
	SortDefault   SortOrder = ""
	SortPriceAsc  SortOrder = "price_asc"
	SortPriceDesc SortOrder = "price_desc"
)

// ListFilters narrows the catalog listing.
type ListFilters struct {
	CategoryID *uuid.UUID
	BrandID    *uuid.UUID
	PriceMin   *decimal.Decimal
	PriceMax   *decimal.Decimal
	Sort       SortOrder
}

// Repository encapsulates catalog persistence.
type Repository struct {
	db *gorm.DB
}

// NewRepository constructs a catalog repository bound to the provided gorm DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

type productSummaryRecord struct {
	ID           uuid.UUID       `gorm:"column:id"`
	Name         string          `gorm:"column:name"`
	Price        decimal.Decimal `gorm:"column:price"`
	Photo        string          `gorm:"column:photo"`
	CategoryName sql.NullString  `gorm:"column:category_name"`
	BrandName    sql.NullString  `gorm:"column:brand_name"`
	AvgGrade     sql.NullFloat64 `gorm:"column:avg_grade"`
	TotalStock   sql.NullInt64   `gorm:"column:total_stock"`
	CreatedAt    time.Time       `gorm:"column:created_at"`
}

func (r productSummaryRecord) toDTO() ProductSummaryDTO {
	return ProductSummaryDTO{
		ID:           r.ID,
		Name:         r.Name,
		Price:        r.Price,
		Photo:        r.Photo,
		CategoryName: nullStringPtr(r.CategoryName),
		BrandName:    nullStringPtr(r.BrandName),
		AverageGrade: nullFloatPtr(r.AvgGrade),
		TotalStock:   int(r.TotalStock.Int64),
	}
}

func (r *Repository) annotatedProducts(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).
		Table("products").
		Select(strings.Join([]string{
			"products.id",
			"products.name",
			"products.price",
			"products.photo",
			"products.created_at",
			"c.name AS category_name",
			"b.name AS brand_name",
			"rv.avg_grade",
			"inv.total_stock",
		}, ", ")).
		Joins("LEFT JOIN product_categories c ON c.id = products.category_id").
		Joins("LEFT JOIN brands b ON b.id = products.brand_id").
		Joins(viewableGradeJoin).
		Joins(totalStockJoin)
}

// List returns one catalog page plus the total row count for the filters.
func (r *Repository) List(ctx context.Context, filters ListFilters, page pagination.Page) ([]ProductSummaryDTO, int64, error) {
	query := r.annotatedProducts(ctx)
	countQuery := r.db.WithContext(ctx).Model(&models.Product{})

	if filters.CategoryID != nil {
		query = query.Where("products.category_id = ?", *filters.CategoryID)
		countQuery = countQuery.Where("category_id = ?", *filters.CategoryID)
	}
	if filters.BrandID != nil {
		query = query.Where("products.brand_id = ?", *filters.BrandID)
		countQuery = countQuery.Where("brand_id = ?", *filters.BrandID)
	}
	if filters.PriceMin != nil {
		query = query.Where("products.price >= ?", *filters.PriceMin)
		countQuery = countQuery.Where("price >= ?", *filters.PriceMin)
	}
	if filters.PriceMax != nil {
		query = query.Where("products.price <= ?", *filters.PriceMax)
		countQuery = countQuery.Where("price <= ?", *filters.PriceMax)
	}

	switch filters.Sort {
	case SortPriceAsc:
		query = query.Order("products.price ASC").Order("products.id ASC")
	case SortPriceDesc:
		query = query.Order("products.price DESC").Order("products.id ASC")
	default:
		query = query.Order("products.created_at ASC").Order("products.id ASC")
	}

	var total int64
	if err := countQuery.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var records []productSummaryRecord
	if err := query.Offset(page.Offset()).Limit(page.Size).Scan(&records).Error; err != nil {
		return nil, 0, err
	}

	return summariesToDTOs(records), total, nil
}

// Search matches the query case-insensitively against name or description.
func (r *Repository) Search(ctx context.Context, q string, page pagination.Page) ([]ProductSummaryDTO, int64, error) {
	pattern := "%" + strings.ToLower(strings.TrimSpace(q)) + "%"
	match := "LOWER(products.name) LIKE ? OR LOWER(products.description) LIKE ?"

	var total int64
	err := r.db.WithContext(ctx).
		Model(&models.Product{}).
		Where("LOWER(name) LIKE ? OR LOWER(description) LIKE ?", pattern, pattern).
		Count(&total).
		Error
	if err != nil {
		return nil, 0, err
	}

	var records []productSummaryRecord
	err = r.annotatedProducts(ctx).
		Where(match, pattern, pattern).
		Order("products.created_at ASC").
		Order("products.id ASC").
		Offset(page.Offset()).
		Limit(page.Size).
		Scan(&records).
		Error
	if err != nil {
		return nil, 0, err
	}

	return summariesToDTOs(records), total, nil
}

// FindByID loads the bare product row.
func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	var product models.Product
	if err := r.db.WithContext(ctx).First(&product, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &product, nil
}

// FindDetail loads the product with taxonomy and composition attached.
func (r *Repository) FindDetail(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	var product models.Product
	err := r.db.WithContext(ctx).
		Preload("Category").
		Preload("Brand").
		Preload("Composition.Nutrient").
		First(&product, "id = ?", id).
		Error
	if err != nil {
		return nil, err
	}
	return &product, nil
}

// ListViewableReviews returns published reviews for a product, newest first.
func (r *Repository) ListViewableReviews(ctx context.Context, productID uuid.UUID) ([]models.ReviewLog, error) {
	var reviews []models.ReviewLog
	err := r.db.WithContext(ctx).
		Preload("User").
		Where("product_id = ? AND viewable", productID).
		Order("reviewed_at DESC").
		Find(&reviews).
		Error
	if err != nil {
		return nil, err
	}
	return reviews, nil
}

// AverageViewableGrade computes the published-review average, nil when unreviewed.
func (r *Repository) AverageViewableGrade(ctx context.Context, productID uuid.UUID) (*float64, error) {
	var row struct {
		AvgGrade sql.NullFloat64 `gorm:"column:avg_grade"`
	}
	err := r.db.WithContext(ctx).
		Model(&models.ReviewLog{}).
		Select("AVG(grade) AS avg_grade").
		Where("product_id = ? AND viewable", productID).
		Scan(&row).
		Error
	if err != nil {
		return nil, err
	}
	return nullFloatPtr(row.AvgGrade), nil
}

// TotalStock sums the product's quantity across all stores.
func (r *Repository) TotalStock(ctx context.Context, productID uuid.UUID) (int, error) {
	var row struct {
		TotalStock sql.NullInt64 `gorm:"column:total_stock"`
	}
	err := r.db.WithContext(ctx).
		Model(&models.StoreInventory{}).
		Select("SUM(quantity) AS total_stock").
		Where("product_id = ?", productID).
		Scan(&row).
		Error
	if err != nil {
		return 0, err
	}
	return int(row.TotalStock.Int64), nil
}

// HasReviewed reports whether the user already reviewed the product,
// published or not.
func (r *Repository) HasReviewed(ctx context.Context, userID, productID uuid.UUID) (bool, error) {
	if userID == uuid.Nil {
		return false, nil
	}
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.ReviewLog{}).
		Where("user_id = ? AND product_id = ?", userID, productID).
		Count(&count).
		Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// ListCategories returns all categories ordered by name.
func (r *Repository) ListCategories(ctx context.Context) ([]models.ProductCategory, error) {
	var categories []models.ProductCategory
	if err := r.db.WithContext(ctx).Order("name ASC").Find(&categories).Error; err != nil {
		return nil, err
	}
	return categories, nil
}

// ListBrands returns all brands ordered by name.
func (r *Repository) ListBrands(ctx context.Context) ([]models.Brand, error) {
	var brands []models.Brand
	if err := r.db.WithContext(ctx).Order("name ASC").Find(&brands).Error; err != nil {
		return nil, err
	}
	return brands, nil
}

// FindBrandsByNames loads the named brands with their countries attached.
func (r *Repository) FindBrandsByNames(ctx context.Context, names []string) ([]models.Brand, error) {
	if len(names) == 0 {
		return nil, nil
	}
	var brands []models.Brand
	err := r.db.WithContext(ctx).
		Preload("Country").
		Where("name IN ?", names).
		Order("name ASC").
		Find(&brands).
		Error
	if err != nil {
		return nil, err
	}
	return brands, nil
}

// TopViewableReviews returns the best published reviews that carry a comment,
// ordered by grade then recency.
func (r *Repository) TopViewableReviews(ctx context.Context, limit int) ([]models.ReviewLog, []models.Product, error) {
	var reviews []models.ReviewLog
	err := r.db.WithContext(ctx).
		Preload("User").
		Where("viewable AND comment <> ''").
		Order("grade DESC").
		Order("reviewed_at DESC").
		Limit(limit).
		Find(&reviews).
		Error
	if err != nil {
		return nil, nil, err
	}

	productIDs := make([]uuid.UUID, 0, len(reviews))
	for _, review := range reviews {
		productIDs = append(productIDs, review.ProductID)
	}
	var products []models.Product
	if len(productIDs) > 0 {
		if err := r.db.WithContext(ctx).Where("id IN ?", productIDs).Find(&products).Error; err != nil {
			return nil, nil, err
		}
	}
	return reviews, products, nil
}

func summariesToDTOs(records []productSummaryRecord) []ProductSummaryDTO {
	dtos := make([]ProductSummaryDTO, 0, len(records))
	for _, record := range records {
		dtos = append(dtos, record.toDTO())
	}
	return dtos
}

func nullStringPtr(value sql.NullString) *string {
	if !value.Valid {
		return nil
	}
	v := value.String
	return &v
}

func nullFloatPtr(value sql.NullFloat64) *float64 {
	if !value.Valid {
		return nil
	}
	v := value.Float64
	return &v
}
