// Package storage persists the whole application state as one document and
// serializes every read-modify-write cycle over it.
package storage

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/cuplet/cuplet-go/internal/model"
)

// ErrStorageUnavailable is returned when the durable medium cannot be read or
// written. Nothing is retried.
var ErrStorageUnavailable = errors.New("storage unavailable")

// Document is the complete persisted state. The key names match data files
// written by earlier versions of the server.
type Document struct {
	Users   []model.User   `json:"users"`
	Coupons []model.Coupon `json:"coupons"`
}

// NewDocument returns the state of a store that has never been written.
func NewDocument() *Document {
	return &Document{
		Users:   []model.User{},
		Coupons: []model.Coupon{},
	}
}

// Clone returns a deep copy of d.
func (d *Document) Clone() *Document {
	out := &Document{
		Users:   make([]model.User, len(d.Users)),
		Coupons: make([]model.Coupon, len(d.Coupons)),
	}
	copy(out.Users, d.Users)
	for i, c := range d.Coupons {
		out.Coupons[i] = c.Clone()
	}
	return out
}

func decodeDocument(data []byte) (*Document, error) {
	doc := NewDocument()
	if err := json.Unmarshal(data, doc); err != nil {
		return nil, unavailable("decode document", err)
	}
	if doc.Users == nil {
		doc.Users = []model.User{}
	}
	if doc.Coupons == nil {
		doc.Coupons = []model.Coupon{}
	}
	return doc, nil
}

func encodeDocument(doc *Document) ([]byte, error) {
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, unavailable("encode document", err)
	}
	return data, nil
}

func unavailable(op string, err error) error {
	return fmt.Errorf("%w: %s: %w", ErrStorageUnavailable, op, err)
}
