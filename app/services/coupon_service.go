package services

import (
	"strings"

	"github.com/shopspring/decimal"

	"github.com/shashiranjanraj/foodhub/app/pricing"
	"github.com/shashiranjanraj/foodhub/pkg/metrics"
	"github.com/shashiranjanraj/foodhub/pkg/session"
)

// SessionCouponKey is where the active coupon lives in the session.
const SessionCouponKey = "coupon"

// CouponStore holds at most one active coupon for the caller.
type CouponStore interface {
	Coupon() *pricing.Coupon
	SetCoupon(c pricing.Coupon)
	ClearCoupon()
}

// SessionCoupons adapts a session to CouponStore.
type SessionCoupons struct {
	Session *session.Session
}

func (s SessionCoupons) Coupon() *pricing.Coupon {
	var c pricing.Coupon
	if !s.Session.GetInto(SessionCouponKey, &c) || c.Code == "" {
		return nil
	}
	return &c
}

func (s SessionCoupons) SetCoupon(c pricing.Coupon) { s.Session.Set(SessionCouponKey, c) }

func (s SessionCoupons) ClearCoupon() { s.Session.Delete(SessionCouponKey) }

// CouponResult reports the outcome of an apply or remove.
type CouponResult struct {
	Accepted bool            `json:"accepted"`
	Coupon   *pricing.Coupon `json:"coupon"`
	Message  string          `json:"message"`
}

// CouponService validates codes against a fixed table.
type CouponService struct {
	codes map[string]decimal.Decimal
}

func NewCouponService() *CouponService {
	return &CouponService{codes: map[string]decimal.Decimal{
		"PNC": decimal.RequireFromString("0.20"),
	}}
}

// Apply normalises code (trimmed, upper-cased) and stores the coupon when it
// is known. An unknown code clears whatever coupon was active.
func (s *CouponService) Apply(store CouponStore, code string) CouponResult {
	code = strings.ToUpper(strings.TrimSpace(code))

	discount, ok := s.codes[code]
	if !ok {
		store.ClearCoupon()
		metrics.CouponApplications.WithLabelValues("rejected").Inc()
		return CouponResult{Message: "Invalid coupon code."}
	}

	c := pricing.Coupon{Code: code, Discount: discount}
	store.SetCoupon(c)
	metrics.CouponApplications.WithLabelValues("accepted").Inc()
	return CouponResult{
		Accepted: true,
		Coupon:   &c,
		Message:  c.Percent().String() + "% off applied!",
	}
}

// Current returns the active coupon, or nil.
func (s *CouponService) Current(store CouponStore) *pricing.Coupon {
	return store.Coupon()
}

// Remove clears the active coupon. It always succeeds.
func (s *CouponService) Remove(store CouponStore) CouponResult {
	if store.Coupon() == nil {
		return CouponResult{Message: "No coupon was active."}
	}
	store.ClearCoupon()
	metrics.CouponApplications.WithLabelValues("removed").Inc()
	return CouponResult{Accepted: true, Message: "Coupon removed."}
}
