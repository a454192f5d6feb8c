package controllers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/nutrimart/nutrimart-backend/internal/catalog"
	"github.com/shopspring/decimal"
)

type stubCatalogService struct {
	gotQuery  catalog.ListQuery
	gotSearch string
	gotPage   int
}

func (s *stubCatalogService) List(ctx context.Context, query catalog.ListQuery) (catalog.CatalogPageDTO, error) {
	s.gotQuery = query
	return catalog.CatalogPageDTO{}, nil
}

func (s *stubCatalogService) Search(ctx context.Context, q string, page int) (catalog.SearchPageDTO, error) {
	s.gotSearch = q
	s.gotPage = page
	return catalog.SearchPageDTO{Query: q}, nil
}

func (s *stubCatalogService) GetDetail(ctx context.Context, productID, viewerID uuid.UUID) (catalog.ProductDetailDTO, error) {
	return catalog.ProductDetailDTO{}, nil
}

func (s *stubCatalogService) About(ctx context.Context) (catalog.AboutDTO, error) {
	return catalog.AboutDTO{}, nil
}

func TestCatalogListParsesFilters(t *testing.T) {
	svc := &stubCatalogService{}
	categoryID := uuid.New()

	req := httptest.NewRequest(http.MethodGet,
		"/api/v1/catalog?page=2&category_id="+categoryID.String()+"&price_min=10.50&sort=price_desc", nil)
	rec := httptest.NewRecorder()
	CatalogList(svc, nil)(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if svc.gotQuery.Page != 2 {
		t.Fatalf("expected page 2, got %d", svc.gotQuery.Page)
	}
	if svc.gotQuery.Filters.CategoryID == nil || *svc.gotQuery.Filters.CategoryID != categoryID {
		t.Fatalf("category filter not parsed: %+v", svc.gotQuery.Filters)
	}
	if svc.gotQuery.Filters.PriceMin == nil || !svc.gotQuery.Filters.PriceMin.Equal(decimal.RequireFromString("10.50")) {
		t.Fatalf("price filter not parsed: %+v", svc.gotQuery.Filters)
	}
	if svc.gotQuery.Filters.Sort != catalog.SortPriceDesc {
		t.Fatalf("sort not parsed: %q", svc.gotQuery.Filters.Sort)
	}
}

func TestCatalogListRejectsBadSort(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/api/v1/catalog?sort=sideways", nil)
	rec := httptest.NewRecorder()
	CatalogList(&stubCatalogService{}, nil)(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestCatalogListRejectsBadUUIDFilter(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/api/v1/catalog?brand_id=nope", nil)
	rec := httptest.NewRecorder()
	CatalogList(&stubCatalogService{}, nil)(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestCatalogSearchDefaultsPage(t *testing.T) {
	svc := &stubCatalogService{}
	req := httptest.NewRequest(http.MethodGet, "/api/v1/catalog/search?q=%20whey%20", nil)
	rec := httptest.NewRecorder()
	CatalogSearch(svc, nil)(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if svc.gotPage != 1 {
		t.Fatalf("expected default page 1, got %d", svc.gotPage)
	}
	if svc.gotSearch != "whey" {
		t.Fatalf("query not sanitized: %q", svc.gotSearch)
	}
}
