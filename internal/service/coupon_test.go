package service

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"github.com/cuplet/cuplet-go/internal/model"
)

func ptr[T any](v T) *T { return &v }

func TestCreateCoupon_Validation(t *testing.T) {
	svc := newTestCouponService(t)

	tests := []struct {
		name string
		req  model.CreateCouponRequest
		want error
	}{
		{"empty category", model.CreateCouponRequest{StoreName: "Cafe"}, ErrCategoryRequired},
		{"blank category", model.CreateCouponRequest{Category: " \t", StoreName: "Cafe"}, ErrCategoryRequired},
		{"empty store name", model.CreateCouponRequest{Category: "Food"}, ErrStoreNameRequired},
		{"negative balance", model.CreateCouponRequest{Category: "Food", StoreName: "Cafe", Balance: ptr(-1.0)}, ErrInvalidBalance},
		{"bad date", model.CreateCouponRequest{Category: "Food", StoreName: "Cafe", ExpirationDate: ptr("next week")}, ErrInvalidExpiration},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.CreateCoupon(context.Background(), "u-1", tt.req)
			if !errors.Is(err, tt.want) {
				t.Errorf("CreateCoupon() error = %v, want %v", err, tt.want)
			}
			if !IsValidationError(err) {
				t.Errorf("IsValidationError(%v) = false", err)
			}
		})
	}
}

func TestCreateCoupon_ThenUseIt(t *testing.T) {
	svc := newTestCouponService(t)
	ctx := context.Background()

	created, err := svc.CreateCoupon(ctx, "u-1", model.CreateCouponRequest{
		Category:  "Food",
		StoreName: "Cafe",
		Balance:   ptr(20.5),
	})
	if err != nil {
		t.Fatalf("CreateCoupon() unexpected error: %v", err)
	}
	if created.Status != model.StatusActive {
		t.Errorf("Status = %q, want %q", created.Status, model.StatusActive)
	}
	if created.Balance == nil || *created.Balance != 20.5 {
		t.Errorf("Balance = %v, want 20.5", created.Balance)
	}
	if created.OwnerID != "u-1" {
		t.Errorf("OwnerID = %q, want u-1", created.OwnerID)
	}

	used, err := svc.UpdateCoupon(ctx, "u-1", created.ID, model.CouponPatch{Status: model.Some(model.StatusUsed)})
	if err != nil {
		t.Fatalf("UpdateCoupon() unexpected error: %v", err)
	}
	if used.Status != model.StatusUsed {
		t.Errorf("Status = %q, want %q", used.Status, model.StatusUsed)
	}
	if used.Balance == nil || *used.Balance != 20.5 {
		t.Errorf("Balance = %v, want 20.5", used.Balance)
	}
}

func TestCreateCoupon_NormalizesExpiration(t *testing.T) {
	svc := newTestCouponService(t)

	tests := map[string]string{
		"2027-01-05":           "2027-01-05",
		"2027-1-5":             "2027-01-05",
		"2027-01-05T10:00:00Z": "2027-01-05",
	}

	for in, want := range tests {
		c, err := svc.CreateCoupon(context.Background(), "u-1", model.CreateCouponRequest{
			Category: "Food", StoreName: "Cafe", ExpirationDate: ptr(in),
		})
		if err != nil {
			t.Fatalf("CreateCoupon(%q) unexpected error: %v", in, err)
		}
		if c.ExpirationDate == nil || *c.ExpirationDate != want {
			t.Errorf("CreateCoupon(%q) ExpirationDate = %v, want %q", in, c.ExpirationDate, want)
		}
	}
}

func TestUpdateCoupon_Validation(t *testing.T) {
	svc := newTestCouponService(t)
	ctx := context.Background()

	c, err := svc.CreateCoupon(ctx, "u-1", model.CreateCouponRequest{Category: "Food", StoreName: "Cafe"})
	if err != nil {
		t.Fatalf("CreateCoupon() unexpected error: %v", err)
	}

	tests := []struct {
		name  string
		patch model.CouponPatch
		want  error
	}{
		{"null category", model.CouponPatch{Category: model.Null[string]()}, ErrCategoryRequired},
		{"empty store name", model.CouponPatch{StoreName: model.Some(" ")}, ErrStoreNameRequired},
		{"unknown status", model.CouponPatch{Status: model.Some("expired")}, ErrInvalidStatus},
		{"null status", model.CouponPatch{Status: model.Null[string]()}, ErrInvalidStatus},
		{"negative balance", model.CouponPatch{Balance: model.Some(-0.5)}, ErrInvalidBalance},
		{"bad date", model.CouponPatch{ExpirationDate: model.Some("31/12/2027")}, ErrInvalidExpiration},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.UpdateCoupon(ctx, "u-1", c.ID, tt.patch)
			if !errors.Is(err, tt.want) {
				t.Errorf("UpdateCoupon() error = %v, want %v", err, tt.want)
			}
		})
	}

	list, err := svc.ListCoupons(ctx, "u-1")
	if err != nil {
		t.Fatalf("ListCoupons() unexpected error: %v", err)
	}
	if !reflect.DeepEqual(list, []model.Coupon{c}) {
		t.Errorf("rejected updates changed the coupon: %+v", list)
	}
}

func TestCouponService_OtherOwnerSeesNotFound(t *testing.T) {
	svc := newTestCouponService(t)
	ctx := context.Background()

	c, err := svc.CreateCoupon(ctx, "alice", model.CreateCouponRequest{Category: "Food", StoreName: "Cafe"})
	if err != nil {
		t.Fatalf("CreateCoupon() unexpected error: %v", err)
	}

	_, err = svc.UpdateCoupon(ctx, "bob", c.ID, model.CouponPatch{StoreName: model.Some("Mine now")})
	if !errors.Is(err, ErrCouponNotFound) {
		t.Errorf("UpdateCoupon() error = %v, want ErrCouponNotFound", err)
	}
	_, missing := svc.UpdateCoupon(ctx, "bob", "no-such-id", model.CouponPatch{StoreName: model.Some("x")})
	if err.Error() != missing.Error() {
		t.Errorf("foreign and missing coupons are distinguishable: %q vs %q", err, missing)
	}

	if err := svc.DeleteCoupon(ctx, "bob", c.ID); !errors.Is(err, ErrCouponNotFound) {
		t.Errorf("DeleteCoupon() error = %v, want ErrCouponNotFound", err)
	}

	list, err := svc.ListCoupons(ctx, "bob")
	if err != nil {
		t.Fatalf("ListCoupons() unexpected error: %v", err)
	}
	if len(list) != 0 {
		t.Errorf("ListCoupons(bob) = %d coupons, want 0", len(list))
	}
}

func TestDeleteCoupon_Twice(t *testing.T) {
	svc := newTestCouponService(t)
	ctx := context.Background()

	c, err := svc.CreateCoupon(ctx, "u-1", model.CreateCouponRequest{Category: "Food", StoreName: "Cafe"})
	if err != nil {
		t.Fatalf("CreateCoupon() unexpected error: %v", err)
	}

	if err := svc.DeleteCoupon(ctx, "u-1", c.ID); err != nil {
		t.Fatalf("DeleteCoupon() unexpected error: %v", err)
	}
	if err := svc.DeleteCoupon(ctx, "u-1", c.ID); !errors.Is(err, ErrCouponNotFound) {
		t.Errorf("second DeleteCoupon() error = %v, want ErrCouponNotFound", err)
	}
}
