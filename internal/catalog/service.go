package catalog

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/nutrimart/nutrimart-backend/pkg/db/models"
	pkgerrors "github.com/nutrimart/nutrimart-backend/pkg/errors"
	"github.com/nutrimart/nutrimart-backend/pkg/pagination"
	"gorm.io/gorm"
)

// Store is the persistence surface the catalog service needs.
type Store interface {
	List(ctx context.Context, filters ListFilters, page pagination.Page) ([]ProductSummaryDTO, int64, error)
	Search(ctx context.Context, q string, page pagination.Page) ([]ProductSummaryDTO, int64, error)
	FindDetail(ctx context.Context, id uuid.UUID) (*models.Product, error)
	ListViewableReviews(ctx context.Context, productID uuid.UUID) ([]models.ReviewLog, error)
	AverageViewableGrade(ctx context.Context, productID uuid.UUID) (*float64, error)
	TotalStock(ctx context.Context, productID uuid.UUID) (int, error)
	HasReviewed(ctx context.Context, userID, productID uuid.UUID) (bool, error)
	ListCategories(ctx context.Context) ([]models.ProductCategory, error)
	ListBrands(ctx context.Context) ([]models.Brand, error)
	FindBrandsByNames(ctx context.Context, names []string) ([]models.Brand, error)
	TopViewableReviews(ctx context.Context, limit int) ([]models.ReviewLog, []models.Product, error)
}

const aboutReviewLimit = 2

// ListQuery carries catalog listing inputs after controller parsing.
type ListQuery struct {
	Filters ListFilters
	Page    int
}

// ServiceParams groups dependencies for the catalog service.
type ServiceParams struct {
	CatalogRepo    Store
	FeaturedBrands []string
}

// Service exposes the public storefront browsing surface.
type Service interface {
	List(ctx context.Context, query ListQuery) (CatalogPageDTO, error)
	Search(ctx context.Context, q string, page int) (SearchPageDTO, error)
	GetDetail(ctx context.Context, productID, viewerID uuid.UUID) (ProductDetailDTO, error)
	About(ctx context.Context) (AboutDTO, error)
}

type service struct {
	catalogRepo    Store
	featuredBrands []string
}

// NewService builds a catalog service with the required dependencies.
func NewService(params ServiceParams) (Service, error) {
	if params.CatalogRepo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "catalog repo is required")
	}
	return &service{
		catalogRepo:    params.CatalogRepo,
		featuredBrands: params.FeaturedBrands,
	}, nil
}

// List returns one catalog page with annotations and the filter taxonomy.
func (s *service) List(ctx context.Context, query ListQuery) (CatalogPageDTO, error) {
	page := pagination.New(query.Page, pagination.CatalogPageSize)

	products, total, err := s.catalogRepo.List(ctx, query.Filters, page)
	if err != nil {
		return CatalogPageDTO{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list products")
	}

	categories, err := s.catalogRepo.ListCategories(ctx)
	if err != nil {
		return CatalogPageDTO{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list categories")
	}
	brands, err := s.catalogRepo.ListBrands(ctx)
	if err != nil {
		return CatalogPageDTO{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list brands")
	}

	return CatalogPageDTO{
		Products:   products,
		Categories: categoriesToTaxonomy(categories),
		Brands:     brandsToTaxonomy(brands),
		Pagination: page.MetaFor(total),
	}, nil
}

// Search returns matches for a case-insensitive substring query.
// An empty query yields an empty page rather than the full catalog.
func (s *service) Search(ctx context.Context, q string, pageNumber int) (SearchPageDTO, error) {
	trimmed := strings.TrimSpace(q)
	page := pagination.New(pageNumber, pagination.SearchPageSize)

	if trimmed == "" {
		return SearchPageDTO{
			Query:      trimmed,
			Products:   []ProductSummaryDTO{},
			Pagination: page.MetaFor(0),
		}, nil
	}

	products, total, err := s.catalogRepo.Search(ctx, trimmed, page)
	if err != nil {
		return SearchPageDTO{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "search products")
	}

	return SearchPageDTO{
		Query:      trimmed,
		Products:   products,
		Pagination: page.MetaFor(total),
	}, nil
}

// GetDetail assembles the product page: composition, published reviews,
// aggregates, and whether the viewer already reviewed it.
func (s *service) GetDetail(ctx context.Context, productID, viewerID uuid.UUID) (ProductDetailDTO, error) {
	if productID == uuid.Nil {
		return ProductDetailDTO{}, pkgerrors.New(pkgerrors.CodeValidation, "product id is required")
	}

	product, err := s.catalogRepo.FindDetail(ctx, productID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ProductDetailDTO{}, pkgerrors.Wrap(pkgerrors.CodeNotFound, err, "product not found")
		}
		return ProductDetailDTO{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load product")
	}

	reviews, err := s.catalogRepo.ListViewableReviews(ctx, productID)
	if err != nil {
		return ProductDetailDTO{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load reviews")
	}
	avgGrade, err := s.catalogRepo.AverageViewableGrade(ctx, productID)
	if err != nil {
		return ProductDetailDTO{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load average grade")
	}
	totalStock, err := s.catalogRepo.TotalStock(ctx, productID)
	if err != nil {
		return ProductDetailDTO{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load stock")
	}
	hasReviewed, err := s.catalogRepo.HasReviewed(ctx, viewerID, productID)
	if err != nil {
		return ProductDetailDTO{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "check review state")
	}

	detail := ProductDetailDTO{
		ID:           product.ID,
		Name:         product.Name,
		Price:        product.Price,
		Photo:        product.Photo,
		Certificate:  product.Certificate,
		Description:  product.Description,
		Composition:  compositionToDTOs(product.Composition),
		Reviews:      reviewsToDTOs(reviews),
		AverageGrade: avgGrade,
		TotalStock:   totalStock,
		HasReviewed:  hasReviewed,
	}
	if product.Category != nil {
		detail.CategoryName = &product.Category.Name
	}
	if product.Brand != nil {
		detail.BrandName = &product.Brand.Name
	}
	return detail, nil
}

// About assembles the brand highlights and the top testimonials.
func (s *service) About(ctx context.Context) (AboutDTO, error) {
	brands, err := s.catalogRepo.FindBrandsByNames(ctx, s.featuredBrands)
	if err != nil {
		return AboutDTO{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load featured brands")
	}

	reviews, products, err := s.catalogRepo.TopViewableReviews(ctx, aboutReviewLimit)
	if err != nil {
		return AboutDTO{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load top reviews")
	}

	productNames := make(map[uuid.UUID]string, len(products))
	for _, product := range products {
		productNames[product.ID] = product.Name
	}

	highlights := make([]ReviewHighlightDTO, 0, len(reviews))
	for _, review := range reviews {
		highlights = append(highlights, ReviewHighlightDTO{
			ReviewDTO:   reviewToDTO(review),
			ProductID:   review.ProductID,
			ProductName: productNames[review.ProductID],
		})
	}

	brandCards := make([]BrandHighlightDTO, 0, len(brands))
	for _, brand := range brands {
		card := BrandHighlightDTO{
			ID:          brand.ID,
			Name:        brand.Name,
			Description: brand.Description,
			Photo:       brand.Photo,
		}
		if brand.Country != nil {
			card.CountryName = &brand.Country.Name
		}
		brandCards = append(brandCards, card)
	}

	return AboutDTO{Brands: brandCards, Reviews: highlights}, nil
}

func categoriesToTaxonomy(categories []models.ProductCategory) []TaxonomyDTO {
	dtos := make([]TaxonomyDTO, 0, len(categories))
	for _, category := range categories {
		dtos = append(dtos, TaxonomyDTO{ID: category.ID, Name: category.Name})
	}
	return dtos
}

func brandsToTaxonomy(brands []models.Brand) []TaxonomyDTO {
	dtos := make([]TaxonomyDTO, 0, len(brands))
	for _, brand := range brands {
		dtos = append(dtos, TaxonomyDTO{ID: brand.ID, Name: brand.Name})
	}
	return dtos
}

func compositionToDTOs(rows []models.ProductComposition) []CompositionDTO {
	dtos := make([]CompositionDTO, 0, len(rows))
	for _, row := range rows {
		dto := CompositionDTO{Amount: row.Amount}
		if row.Nutrient != nil {
			dto.NutrientName = row.Nutrient.Name
		}
		dtos = append(dtos, dto)
	}
	return dtos
}

func reviewsToDTOs(reviews []models.ReviewLog) []ReviewDTO {
	dtos := make([]ReviewDTO, 0, len(reviews))
	for _, review := range reviews {
		dtos = append(dtos, reviewToDTO(review))
	}
	return dtos
}

func reviewToDTO(review models.ReviewLog) ReviewDTO {
	dto := ReviewDTO{
		ID:         review.ID,
		Grade:      review.Grade,
		Comment:    review.Comment,
		ReviewedAt: review.ReviewedAt,
	}
	if review.User != nil {
		dto.Username = review.User.Username
	}
	return dto
}
