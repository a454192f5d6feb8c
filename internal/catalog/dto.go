package catalog

import (
	"time"

	"github.com/google/uuid"
	"github.com/nutrimart/nutrimart-backend/pkg/pagination"
	"github.com/shopspring/decimal"
)

// ProductSummaryDTO is one catalog or search result row.
type ProductSummaryDTO struct {
	ID           uuid.UUID       `json:"id"`
	Name         string          `json:"name"`
	Price        decimal.Decimal `json:"price"`
	Photo        string          `json:"photo"`
	CategoryName *string         `json:"category_name,omitempty"`
	BrandName    *string         `json:"brand_name,omitempty"`
	AverageGrade *float64        `json:"average_grade,omitempty"`
	TotalStock   int             `json:"total_stock"`
}

// TaxonomyDTO is a category or brand option for the filter UI.
type TaxonomyDTO struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
}

// CatalogPageDTO is the catalog listing response.
type CatalogPageDTO struct {
	Products   []ProductSummaryDTO `json:"products"`
	Categories []TaxonomyDTO       `json:"categories"`
	Brands     []TaxonomyDTO       `json:"brands"`
	Pagination pagination.Meta     `json:"pagination"`
}

// SearchPageDTO is the search response.
type SearchPageDTO struct {
	Query      string              `json:"query"`
	Products   []ProductSummaryDTO `json:"products"`
	Pagination pagination.Meta     `json:"pagination"`
}

// CompositionDTO is one nutrient line on the detail page.
type CompositionDTO struct {
	NutrientName string          `json:"nutrient_name"`
	Amount       decimal.Decimal `json:"amount"`
}

// ReviewDTO is a published review.
type ReviewDTO struct {
	ID         uuid.UUID `json:"id"`
	Username   string    `json:"username"`
	Grade      int       `json:"grade"`
	Comment    string    `json:"comment"`
	ReviewedAt time.Time `json:"reviewed_at"`
}

// ProductDetailDTO is the full product page payload.
type ProductDetailDTO struct {
	ID           uuid.UUID        `json:"id"`
	Name         string           `json:"name"`
	Price        decimal.Decimal  `json:"price"`
	Photo        string           `json:"photo"`
	Certificate  string           `json:"certificate"`
	Description  string           `json:"description"`
	CategoryName *string          `json:"category_name,omitempty"`
	BrandName    *string          `json:"brand_name,omitempty"`
	Composition  []CompositionDTO `json:"composition"`
	Reviews      []ReviewDTO      `json:"reviews"`
	AverageGrade *float64         `json:"average_grade,omitempty"`
	TotalStock   int              `json:"total_stock"`
	HasReviewed  bool             `json:"has_reviewed"`
}

// BrandHighlightDTO is an about-page brand card.
type BrandHighlightDTO struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Photo       string    `json:"photo"`
	CountryName *string   `json:"country_name,omitempty"`
}

// ReviewHighlightDTO is an about-page testimonial.
type ReviewHighlightDTO struct {
	ReviewDTO
	ProductID   uuid.UUID `json:"product_id"`
	ProductName string    `json:"product_name"`
}

// AboutDTO is the about-page payload.
type AboutDTO struct {
	Brands  []BrandHighlightDTO  `json:"brands"`
	Reviews []ReviewHighlightDTO `json:"reviews"`
}
