package users

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/nutrimart/nutrimart-backend/internal/orders"
	"github.com/nutrimart/nutrimart-backend/internal/wishlist"
	"github.com/nutrimart/nutrimart-backend/pkg/db"
	"github.com/nutrimart/nutrimart-backend/pkg/db/models"
	pkgerrors "github.com/nutrimart/nutrimart-backend/pkg/errors"
	"gorm.io/gorm"
)

// profileWishlistLimit caps the wishlist preview on the profile page.
const profileWishlistLimit = 3

// UserStore is the persistence surface the service needs.
type UserStore interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.User, error)
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	UpdateFields(ctx context.Context, id uuid.UUID, fields map[string]any) error
}

// WishlistLister provides the profile's wishlist preview.
type WishlistLister interface {
	ListByUser(ctx context.Context, userID uuid.UUID, limit int) ([]models.WishlistItem, error)
}

// OrderLister provides the profile's order history.
type OrderLister interface {
	ListByUser(ctx context.Context, userID uuid.UUID) ([]models.Order, error)
}

// ProfileDTO is the account page: the user, a wishlist preview, and the
// order history newest-first.
type ProfileDTO struct {
	User     UserDTO                  `json:"user"`
	Wishlist []wishlist.ItemDTO       `json:"wishlist"`
	Orders   []orders.OrderSummaryDTO `json:"orders"`
}

// ServiceParams groups dependencies for the user service.
type ServiceParams struct {
	UserRepo     UserStore
	WishlistRepo WishlistLister
	OrderRepo    OrderLister
}

// Service exposes account operations.
type Service interface {
	Profile(ctx context.Context, userID uuid.UUID) (ProfileDTO, error)
	UpdateProfile(ctx context.Context, userID uuid.UUID, input UpdateProfileInput) (UserDTO, error)
}

type service struct {
	userRepo     UserStore
	wishlistRepo WishlistLister
	orderRepo    OrderLister
}

// NewService builds a user service with the required dependencies.
func NewService(params ServiceParams) (Service, error) {
	if params.UserRepo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "user repo is required")
	}
	if params.WishlistRepo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "wishlist repo is required")
	}
	if params.OrderRepo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "order repo is required")
	}
	return &service{
		userRepo:     params.UserRepo,
		wishlistRepo: params.WishlistRepo,
		orderRepo:    params.OrderRepo,
	}, nil
}

// Profile assembles the account page.
func (s *service) Profile(ctx context.Context, userID uuid.UUID) (ProfileDTO, error) {
	if userID == uuid.Nil {
		return ProfileDTO{}, pkgerrors.New(pkgerrors.CodeUnauthorized, "authentication required")
	}

	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ProfileDTO{}, pkgerrors.Wrap(pkgerrors.CodeNotFound, err, "account not found")
		}
		return ProfileDTO{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load account")
	}

	saved, err := s.wishlistRepo.ListByUser(ctx, userID, profileWishlistLimit)
	if err != nil {
		return ProfileDTO{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load wishlist preview")
	}
	history, err := s.orderRepo.ListByUser(ctx, userID)
	if err != nil {
		return ProfileDTO{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load order history")
	}

	profile := ProfileDTO{
		User:     ToDTO(*user),
		Wishlist: make([]wishlist.ItemDTO, 0, len(saved)),
		Orders:   make([]orders.OrderSummaryDTO, 0, len(history)),
	}
	for _, item := range saved {
		profile.Wishlist = append(profile.Wishlist, wishlist.ToItemDTO(item))
	}
	for _, order := range history {
		profile.Orders = append(profile.Orders, orders.ToSummaryDTO(order))
	}
	return profile, nil
}

// UpdateProfile applies the provided fields; nil fields stay untouched.
// Changing the email to one already in use is a conflict.
func (s *service) UpdateProfile(ctx context.Context, userID uuid.UUID, input UpdateProfileInput) (UserDTO, error) {
	if userID == uuid.Nil {
		return UserDTO{}, pkgerrors.New(pkgerrors.CodeUnauthorized, "authentication required")
	}

	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return UserDTO{}, pkgerrors.Wrap(pkgerrors.CodeNotFound, err, "account not found")
		}
		return UserDTO{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load account")
	}

	fields := map[string]any{}
	if input.FirstName != nil {
		fields["first_name"] = strings.TrimSpace(*input.FirstName)
	}
	if input.LastName != nil {
		fields["last_name"] = strings.TrimSpace(*input.LastName)
	}
	if input.Phone != nil {
		fields["phone"] = strings.TrimSpace(*input.Phone)
	}
	if input.Email != nil {
		email := strings.ToLower(strings.TrimSpace(*input.Email))
		if email == "" {
			return UserDTO{}, pkgerrors.New(pkgerrors.CodeValidation, "email cannot be empty")
		}
		if email != strings.ToLower(user.Email) {
			existing, err := s.userRepo.FindByEmail(ctx, email)
			if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
				return UserDTO{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "check email")
			}
			if existing != nil && existing.ID != userID {
				return UserDTO{}, pkgerrors.New(pkgerrors.CodeConflict, "email already in use")
			}
		}
		fields["email"] = email
	}

	if len(fields) == 0 {
		return ToDTO(*user), nil
	}

	if err := s.userRepo.UpdateFields(ctx, userID, fields); err != nil {
		if db.IsUniqueViolation(err, "") {
			return UserDTO{}, pkgerrors.Wrap(pkgerrors.CodeConflict, err, "email already in use")
		}
		return UserDTO{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update account")
	}

	updated, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return UserDTO{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "reload account")
	}
	return ToDTO(*updated), nil
}
