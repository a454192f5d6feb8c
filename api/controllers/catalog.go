package controllers

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/nutrimart/nutrimart-backend/api/middleware"
	"github.com/nutrimart/nutrimart-backend/api/responses"
	"github.com/nutrimart/nutrimart-backend/api/validators"
	"github.com/nutrimart/nutrimart-backend/internal/catalog"
	pkgerrors "github.com/nutrimart/nutrimart-backend/pkg/errors"
	"github.com/nutrimart/nutrimart-backend/pkg/logger"
)

const maxPageNumber = 1_000_000

// CatalogList serves the paginated product catalog with filters and sorting.
func CatalogList(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		page, err := validators.ParseQueryInt(r, "page", 1, 1, maxPageNumber)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		categoryID, err := validators.ParseQueryUUID(r, "category_id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		brandID, err := validators.ParseQueryUUID(r, "brand_id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		priceMin, err := validators.ParseQueryDecimal(r, "price_min")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		priceMax, err := validators.ParseQueryDecimal(r, "price_max")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		sort, err := parseSortOrder(r.URL.Query().Get("sort"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		result, err := svc.List(r.Context(), catalog.ListQuery{
			Filters: catalog.ListFilters{
				CategoryID: categoryID,
				BrandID:    brandID,
				PriceMin:   priceMin,
				PriceMax:   priceMax,
				Sort:       sort,
			},
			Page: page,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, result)
	}
}

// CatalogSearch serves substring search over product names and descriptions.
func CatalogSearch(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		page, err := validators.ParseQueryInt(r, "page", 1, 1, maxPageNumber)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		q := validators.SanitizeString(r.URL.Query().Get("q"), 200)

		result, err := svc.Search(r.Context(), q, page)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, result)
	}
}

// CatalogDetail serves one product with composition, reviews, and stock.
func CatalogDetail(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		productID, err := validators.ParsePathUUID(chi.URLParam(r, "productId"), "productId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		// Anonymous viewers get the page without the has-reviewed flag.
		viewerID := middleware.UserIDFromContext(r.Context())

		detail, err := svc.GetDetail(r.Context(), productID, viewerID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, detail)
	}
}

// CatalogAbout serves the storefront about page: featured brands and the top
// published reviews.
func CatalogAbout(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		about, err := svc.About(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, about)
	}
}

func parseSortOrder(raw string) (catalog.SortOrder, error) {
	switch strings.TrimSpace(raw) {
	case "":
		return catalog.SortDefault, nil
	case string(catalog.SortPriceAsc):
		return catalog.SortPriceAsc, nil
	case string(catalog.SortPriceDesc):
		return catalog.SortPriceDesc, nil
	}
	return catalog.SortDefault, pkgerrors.New(pkgerrors.CodeValidation, "unknown sort order").
		WithDetails(map[string]any{"field": "sort", "allowed": []string{string(catalog.SortPriceAsc), string(catalog.SortPriceDesc)}})
}
