package reviews

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/nutrimart/nutrimart-backend/pkg/db/models"
	pkgerrors "github.com/nutrimart/nutrimart-backend/pkg/errors"
	"gorm.io/gorm"
)

type stubReviewStore struct {
	exists    bool
	created   *models.ReviewLog
	createErr error
}

func (s *stubReviewStore) Create(ctx context.Context, review *models.ReviewLog) error {
	if s.createErr != nil {
		return s.createErr
	}
	review.ID = uuid.New()
	s.created = review
	return nil
}

func (s *stubReviewStore) ExistsForUser(ctx context.Context, userID, productID uuid.UUID) (bool, error) {
	return s.exists, nil
}

type stubProductReader struct {
	err error
}

func (s *stubProductReader) FindByID(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	if s.err != nil {
		return nil, s.err
	}
	return &models.Product{ID: id}, nil
}

func newTestService(t *testing.T, store ReviewStore, products ProductReader) Service {
	t.Helper()
	svc, err := NewService(ServiceParams{
		ReviewRepo:  store,
		ProductRepo: products,
		Now:         func() time.Time { return time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC) },
	})
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	return svc
}

func TestCreateStoresPendingReview(t *testing.T) {
	store := &stubReviewStore{}
	svc := newTestService(t, store, &stubProductReader{})

	dto, err := svc.Create(context.Background(), uuid.New(), uuid.New(), CreateReviewInput{Grade: 5, Comment: "great"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if dto.Viewable {
		t.Fatal("new reviews must be hidden until moderated")
	}
	if store.created == nil || store.created.Viewable {
		t.Fatal("persisted review must be hidden until moderated")
	}
	if store.created.Grade != 5 {
		t.Fatalf("unexpected grade %d", store.created.Grade)
	}
}

func TestCreateRejectsGradeOutOfRange(t *testing.T) {
	svc := newTestService(t, &stubReviewStore{}, &stubProductReader{})

	for _, grade := range []int{0, 6, -1} {
		_, err := svc.Create(context.Background(), uuid.New(), uuid.New(), CreateReviewInput{Grade: grade})
		typed := pkgerrors.As(err)
		if typed == nil || typed.Code() != pkgerrors.CodeValidation {
			t.Fatalf("grade %d: expected validation error, got %v", grade, err)
		}
	}
}

func TestCreateDuplicateIsConflict(t *testing.T) {
	store := &stubReviewStore{exists: true}
	svc := newTestService(t, store, &stubProductReader{})

	_, err := svc.Create(context.Background(), uuid.New(), uuid.New(), CreateReviewInput{Grade: 4})
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeConflict {
		t.Fatalf("expected conflict, got %v", err)
	}
	if store.created != nil {
		t.Fatal("duplicate submission must not overwrite the original review")
	}
}

func TestCreateRacingDuplicateMapsUniqueViolation(t *testing.T) {
	store := &stubReviewStore{
		createErr: errors.New(`duplicate key value violates unique constraint "idx_review_user_product"`),
	}
	svc := newTestService(t, store, &stubProductReader{})

	_, err := svc.Create(context.Background(), uuid.New(), uuid.New(), CreateReviewInput{Grade: 4})
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeConflict {
		t.Fatalf("expected conflict from unique violation, got %v", err)
	}
}

func TestCreateMissingProduct(t *testing.T) {
	svc := newTestService(t, &stubReviewStore{}, &stubProductReader{err: gorm.ErrRecordNotFound})

	_, err := svc.Create(context.Background(), uuid.New(), uuid.New(), CreateReviewInput{Grade: 4})
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestCreateRequiresAuthenticatedUser(t *testing.T) {
	svc := newTestService(t, &stubReviewStore{}, &stubProductReader{})

	_, err := svc.Create(context.Background(), uuid.Nil, uuid.New(), CreateReviewInput{Grade: 4})
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeUnauthorized {
		t.Fatalf("expected unauthorized, got %v", err)
	}
}
