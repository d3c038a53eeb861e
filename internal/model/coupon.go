package model

import "time"

// Coupon statuses.
const (
	StatusActive = "active"
	StatusUsed   = "used"
)

// ExpirationLayout is the calendar date format of Coupon.ExpirationDate.
const ExpirationLayout = "2006-01-02"

// Coupon is a record owned by exactly one user. OwnerID never changes after
// creation.
type Coupon struct {
	ID             string    `json:"coupon_id"`
	OwnerID        string    `json:"owner_id"`
	Category       string    `json:"category"`
	StoreName      string    `json:"store_name"`
	ExpirationDate *string   `json:"expiration_date"`
	Balance        *float64  `json:"balance"`
	Status         string    `json:"status"`
	CreatedAt      time.Time `json:"created_at"`
}

// CreateCouponRequest represents a POST /records body.
type CreateCouponRequest struct {
	Category       string   `json:"category"`
	StoreName      string   `json:"store_name"`
	ExpirationDate *string  `json:"expiration_date"`
	Balance        *float64 `json:"balance"`
}

// CouponPatch carries the fields of a PATCH /records/{id} body. Only fields
// present in the JSON are applied; an explicit null clears the optional ones.
type CouponPatch struct {
	Category       Optional[string]  `json:"category"`
	StoreName      Optional[string]  `json:"store_name"`
	ExpirationDate Optional[string]  `json:"expiration_date"`
	Balance        Optional[float64] `json:"balance"`
	Status         Optional[string]  `json:"status"`
}

// Empty reports whether the patch carries no fields at all.
func (p CouponPatch) Empty() bool {
	return !p.Category.Set && !p.StoreName.Set && !p.ExpirationDate.Set &&
		!p.Balance.Set && !p.Status.Set
}

// Apply copies every present field of p onto c.
func (p CouponPatch) Apply(c *Coupon) {
	if p.Category.Set {
		c.Category = p.Category.Value
	}
	if p.StoreName.Set {
		c.StoreName = p.StoreName.Value
	}
	if p.ExpirationDate.Set {
		c.ExpirationDate = p.ExpirationDate.Ptr()
	}
	if p.Balance.Set {
		c.Balance = p.Balance.Ptr()
	}
	if p.Status.Set {
		c.Status = p.Status.Value
	}
}

// Clone returns a copy of c that shares no pointers with it.
func (c Coupon) Clone() Coupon {
	if c.ExpirationDate != nil {
		d := *c.ExpirationDate
		c.ExpirationDate = &d
	}
	if c.Balance != nil {
		b := *c.Balance
		c.Balance = &b
	}
	return c
}
