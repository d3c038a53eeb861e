package handler

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/cuplet/cuplet-go/internal/middleware"
	"github.com/cuplet/cuplet-go/internal/model"
	"github.com/cuplet/cuplet-go/internal/service"
)

// CouponHandler handles HTTP requests for coupon records. The owner is
// always the authenticated user; request bodies cannot name one.
type CouponHandler struct {
	service *service.CouponService
}

// NewCouponHandler creates a new CouponHandler.
func NewCouponHandler(svc *service.CouponService) *CouponHandler {
	return &CouponHandler{service: svc}
}

// HandleListCoupons handles GET /records requests.
func (h *CouponHandler) HandleListCoupons(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, errorResponse("unauthorized"))
		return
	}

	coupons, err := h.service.ListCoupons(r.Context(), userID)
	if err != nil {
		internalError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, coupons)
}

// HandleCreateCoupon handles POST /records requests.
func (h *CouponHandler) HandleCreateCoupon(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, errorResponse("unauthorized"))
		return
	}

	var req model.CreateCouponRequest
	if !decodeBody(w, r, &req) {
		return
	}

	coupon, err := h.service.CreateCoupon(r.Context(), userID, req)
	if err != nil {
		if service.IsValidationError(err) {
			writeJSON(w, http.StatusBadRequest, errorResponse(err.Error()))
			return
		}
		internalError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, coupon)
}

// HandleUpdateCoupon handles PATCH /records/{id} requests.
func (h *CouponHandler) HandleUpdateCoupon(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, errorResponse("unauthorized"))
		return
	}

	var patch model.CouponPatch
	if !decodeBody(w, r, &patch) {
		return
	}

	coupon, err := h.service.UpdateCoupon(r.Context(), userID, chi.URLParam(r, "id"), patch)
	if err != nil {
		switch {
		case service.IsValidationError(err):
			writeJSON(w, http.StatusBadRequest, errorResponse(err.Error()))
		case errors.Is(err, service.ErrCouponNotFound):
			writeJSON(w, http.StatusNotFound, errorResponse(err.Error()))
		default:
			internalError(w, r, err)
		}
		return
	}

	writeJSON(w, http.StatusOK, coupon)
}

// HandleDeleteCoupon handles DELETE /records/{id} requests.
func (h *CouponHandler) HandleDeleteCoupon(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, errorResponse("unauthorized"))
		return
	}

	err := h.service.DeleteCoupon(r.Context(), userID, chi.URLParam(r, "id"))
	if err != nil {
		if errors.Is(err, service.ErrCouponNotFound) {
			writeJSON(w, http.StatusNotFound, errorResponse(err.Error()))
			return
		}
		internalError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
