package routes

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	authsvc "github.com/nutrimart/nutrimart-backend/internal/auth"
	"github.com/nutrimart/nutrimart-backend/internal/cart"
	"github.com/nutrimart/nutrimart-backend/internal/catalog"
	checkoutsvc "github.com/nutrimart/nutrimart-backend/internal/checkout"
	"github.com/nutrimart/nutrimart-backend/internal/orders"
	"github.com/nutrimart/nutrimart-backend/internal/reviews"
	"github.com/nutrimart/nutrimart-backend/internal/stores"
	"github.com/nutrimart/nutrimart-backend/internal/users"
	"github.com/nutrimart/nutrimart-backend/internal/wishlist"
	pkgauth "github.com/nutrimart/nutrimart-backend/pkg/auth"
	"github.com/nutrimart/nutrimart-backend/pkg/config"
)

type stubPinger struct{}

func (stubPinger) Ping(context.Context) error { return nil }

type stubSessionChecker struct{}

func (stubSessionChecker) HasSession(ctx context.Context, accessID string) (bool, error) {
	return true, nil
}

type stubAuthService struct{}

func (stubAuthService) Register(ctx context.Context, input authsvc.RegisterInput) (authsvc.SessionDTO, error) {
	return authsvc.SessionDTO{}, nil
}
func (stubAuthService) Login(ctx context.Context, input authsvc.LoginInput) (authsvc.SessionDTO, error) {
	return authsvc.SessionDTO{}, nil
}
func (stubAuthService) Logout(ctx context.Context, accessID string) error { return nil }
func (stubAuthService) Refresh(ctx context.Context, input authsvc.RefreshInput) (authsvc.TokenPairDTO, error) {
	return authsvc.TokenPairDTO{}, nil
}

type stubCatalogService struct{}

func (stubCatalogService) List(ctx context.Context, query catalog.ListQuery) (catalog.CatalogPageDTO, error) {
	return catalog.CatalogPageDTO{}, nil
}
func (stubCatalogService) Search(ctx context.Context, q string, page int) (catalog.SearchPageDTO, error) {
	return catalog.SearchPageDTO{Query: q}, nil
}
func (stubCatalogService) GetDetail(ctx context.Context, productID, viewerID uuid.UUID) (catalog.ProductDetailDTO, error) {
	return catalog.ProductDetailDTO{}, nil
}
func (stubCatalogService) About(ctx context.Context) (catalog.AboutDTO, error) {
	return catalog.AboutDTO{}, nil
}

type stubReviewService struct{}

func (stubReviewService) Create(ctx context.Context, userID, productID uuid.UUID, input reviews.CreateReviewInput) (reviews.ReviewCreatedDTO, error) {
	return reviews.ReviewCreatedDTO{}, nil
}

type stubStoreService struct{}

func (stubStoreService) List(ctx context.Context) ([]stores.StoreDTO, error) { return nil, nil }

type stubCartService struct{}

func (stubCartService) Get(ctx context.Context, userID uuid.UUID) (cart.CartDTO, error) {
	return cart.CartDTO{}, nil
}
func (stubCartService) AddItem(ctx context.Context, userID, productID uuid.UUID) (cart.CartDTO, error) {
	return cart.CartDTO{}, nil
}
func (stubCartService) UpdateQuantities(ctx context.Context, userID uuid.UUID, quantities map[string]string) (cart.CartDTO, error) {
	return cart.CartDTO{}, nil
}
func (stubCartService) RemoveItem(ctx context.Context, userID, itemID uuid.UUID) (cart.CartDTO, error) {
	return cart.CartDTO{}, nil
}

type stubCheckoutService struct{}

func (stubCheckoutService) Execute(ctx context.Context, userID uuid.UUID, input checkoutsvc.CheckoutInput) (checkoutsvc.ResultDTO, error) {
	return checkoutsvc.ResultDTO{}, nil
}

type stubOrderService struct{}

func (stubOrderService) ListByUser(ctx context.Context, userID uuid.UUID) ([]orders.OrderSummaryDTO, error) {
	return nil, nil
}
func (stubOrderService) GetByID(ctx context.Context, userID, orderID uuid.UUID) (orders.OrderDetailDTO, error) {
	return orders.OrderDetailDTO{}, nil
}

type stubWishlistService struct{}

func (stubWishlistService) List(ctx context.Context, userID uuid.UUID) ([]wishlist.ItemDTO, error) {
	return nil, nil
}
func (stubWishlistService) AddItem(ctx context.Context, userID, productID uuid.UUID) error {
	return nil
}
func (stubWishlistService) RemoveItem(ctx context.Context, userID, itemID uuid.UUID) error {
	return nil
}

type stubUserService struct{}

func (stubUserService) Profile(ctx context.Context, userID uuid.UUID) (users.ProfileDTO, error) {
	return users.ProfileDTO{}, nil
}
func (stubUserService) UpdateProfile(ctx context.Context, userID uuid.UUID, input users.UpdateProfileInput) (users.UserDTO, error) {
	return users.UserDTO{}, nil
}

var routerTestJWT = config.JWTConfig{
	Secret:            "router-secret",
	Issuer:            "nutrimart-test",
	ExpirationMinutes: 5,
}

func newTestRouter(t *testing.T) http.Handler {
	t.Helper()
	cfg := &config.Config{}
	cfg.App.Env = "test"
	cfg.JWT = routerTestJWT

	return NewRouter(Deps{
		Config:          cfg,
		DB:              stubPinger{},
		Sessions:        stubSessionChecker{},
		AuthService:     stubAuthService{},
		CatalogService:  stubCatalogService{},
		ReviewService:   stubReviewService{},
		StoreService:    stubStoreService{},
		CartService:     stubCartService{},
		CheckoutService: stubCheckoutService{},
		OrderService:    stubOrderService{},
		WishlistService: stubWishlistService{},
		UserService:     stubUserService{},
	})
}

func TestPublicRoutesServeWithoutAuth(t *testing.T) {
	router := newTestRouter(t)

	for _, path := range []string{
		"/health/live",
		"/api/v1/catalog",
		"/api/v1/catalog/search?q=whey",
		"/api/v1/about",
		"/api/v1/stores",
		"/api/v1/products/" + uuid.NewString(),
	} {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		if rec.Code != http.StatusOK {
			t.Fatalf("%s: expected 200, got %d", path, rec.Code)
		}
	}
}

func TestProtectedRoutesRequireAuth(t *testing.T) {
	router := newTestRouter(t)

	for _, tc := range []struct {
		method string
		path   string
	}{
		{http.MethodGet, "/api/v1/cart"},
		{http.MethodGet, "/api/v1/orders"},
		{http.MethodGet, "/api/v1/wishlist"},
		{http.MethodGet, "/api/v1/profile"},
		{http.MethodPost, "/api/v1/checkout"},
		{http.MethodPost, "/api/v1/products/" + uuid.NewString() + "/reviews"},
		{http.MethodPost, "/api/v1/auth/logout"},
	} {
		req := httptest.NewRequest(tc.method, tc.path, nil)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("%s %s: expected 401, got %d", tc.method, tc.path, rec.Code)
		}
	}
}

func TestProtectedRouteAcceptsBearerToken(t *testing.T) {
	router := newTestRouter(t)

	token, err := pkgauth.MintAccessToken(routerTestJWT, time.Now(), pkgauth.AccessTokenPayload{
		UserID:   uuid.New(),
		Username: "lifter",
		JTI:      uuid.NewString(),
	})
	if err != nil {
		t.Fatalf("mint token: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/api/v1/cart", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 with valid token, got %d", rec.Code)
	}
}

func TestUnknownRouteIs404(t *testing.T) {
	router := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/nope", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}
