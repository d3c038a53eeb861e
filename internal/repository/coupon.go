package repository

import (
	"context"
	"errors"
	"slices"
	"time"

	"github.com/google/uuid"

	"github.com/cuplet/cuplet-go/internal/model"
	"github.com/cuplet/cuplet-go/internal/storage"
)

// ErrCouponNotFound covers both a missing coupon and one owned by someone
// else. Callers cannot tell the two apart.
var ErrCouponNotFound = errors.New("coupon not found")

// CouponRepository handles owner-scoped coupon persistence operations.
type CouponRepository struct {
	store *storage.Engine
	now   func() time.Time
}

// NewCouponRepository creates a new CouponRepository.
func NewCouponRepository(store *storage.Engine) *CouponRepository {
	return &CouponRepository{store: store, now: time.Now}
}

// Create inserts a new active coupon. ID, Status and CreatedAt are assigned
// here; the remaining fields are taken from coupon.
func (r *CouponRepository) Create(ctx context.Context, coupon *model.Coupon) error {
	created := coupon.Clone()
	created.ID = uuid.NewString()
	created.Status = model.StatusActive
	created.CreatedAt = r.now().UTC()

	err := r.store.Update(ctx, func(doc *storage.Document) error {
		doc.Coupons = append(doc.Coupons, created.Clone())
		return nil
	})
	if err != nil {
		return err
	}

	*coupon = created
	return nil
}

// ListByOwner returns the owner's coupons, newest first. Coupons created at
// the same instant are ordered by reverse insertion.
func (r *CouponRepository) ListByOwner(_ context.Context, ownerID string) ([]model.Coupon, error) {
	coupons := []model.Coupon{}
	err := r.store.View(func(doc *storage.Document) error {
		for i := len(doc.Coupons) - 1; i >= 0; i-- {
			if doc.Coupons[i].OwnerID == ownerID {
				coupons = append(coupons, doc.Coupons[i].Clone())
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	slices.SortStableFunc(coupons, func(a, b model.Coupon) int {
		return b.CreatedAt.Compare(a.CreatedAt)
	})
	return coupons, nil
}

// GetByID retrieves a coupon by ID, scoped to its owner.
func (r *CouponRepository) GetByID(_ context.Context, id, ownerID string) (*model.Coupon, error) {
	var found *model.Coupon
	err := r.store.View(func(doc *storage.Document) error {
		i := indexOwned(doc, id, ownerID)
		if i < 0 {
			return ErrCouponNotFound
		}
		c := doc.Coupons[i].Clone()
		found = &c
		return nil
	})
	return found, err
}

// Update applies the fields present in patch to the owner's coupon and
// returns the result. An empty patch writes nothing.
func (r *CouponRepository) Update(ctx context.Context, id, ownerID string, patch model.CouponPatch) (*model.Coupon, error) {
	if patch.Empty() {
		return r.GetByID(ctx, id, ownerID)
	}

	var updated model.Coupon
	err := r.store.Update(ctx, func(doc *storage.Document) error {
		i := indexOwned(doc, id, ownerID)
		if i < 0 {
			return ErrCouponNotFound
		}
		patch.Apply(&doc.Coupons[i])
		updated = doc.Coupons[i].Clone()
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &updated, nil
}

// Delete permanently removes the owner's coupon.
func (r *CouponRepository) Delete(ctx context.Context, id, ownerID string) error {
	return r.store.Update(ctx, func(doc *storage.Document) error {
		i := indexOwned(doc, id, ownerID)
		if i < 0 {
			return ErrCouponNotFound
		}
		doc.Coupons = slices.Delete(doc.Coupons, i, i+1)
		return nil
	})
}

func indexOwned(doc *storage.Document, id, ownerID string) int {
	return slices.IndexFunc(doc.Coupons, func(c model.Coupon) bool {
		return c.ID == id && c.OwnerID == ownerID
	})
}
