package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shashiranjanraj/foodhub/app/pricing"
	"github.com/shashiranjanraj/foodhub/pkg/session"
)

func TestApplyKnownCode(t *testing.T) {
	store := &memCoupons{}
	res := NewCouponService().Apply(store, "PNC")

	assert.True(t, res.Accepted)
	assert.Equal(t, "20% off applied!", res.Message)
	require.NotNil(t, store.c)
	assert.Equal(t, "PNC", store.c.Code)
	assert.True(t, store.c.Discount.Equal(dec("0.2")))
}

func TestApplyNormalisesCode(t *testing.T) {
	store := &memCoupons{}
	res := NewCouponService().Apply(store, "  pnc ")

	assert.True(t, res.Accepted)
	require.NotNil(t, store.c)
	assert.Equal(t, "PNC", store.c.Code)
}

func TestApplyUnknownCodeClearsActiveCoupon(t *testing.T) {
	svc := NewCouponService()
	store := &memCoupons{}
	svc.Apply(store, "PNC")

	res := svc.Apply(store, "FREEFOOD")
	assert.False(t, res.Accepted)
	assert.Equal(t, "Invalid coupon code.", res.Message)
	assert.Nil(t, store.c)
	assert.Nil(t, svc.Current(store))
}

func TestRemove(t *testing.T) {
	svc := NewCouponService()
	store := &memCoupons{}

	assert.Equal(t, "No coupon was active.", svc.Remove(store).Message)

	svc.Apply(store, "PNC")
	assert.Equal(t, "Coupon removed.", svc.Remove(store).Message)
	assert.Nil(t, store.c)
}

func TestSessionCouponsRoundTrip(t *testing.T) {
	store := SessionCoupons{Session: session.New(context.Background(), session.DefaultOptions())}
	assert.Nil(t, store.Coupon())

	store.SetCoupon(pricing.Coupon{Code: "PNC", Discount: dec("0.20")})
	c := store.Coupon()
	require.NotNil(t, c)
	assert.Equal(t, "PNC", c.Code)
	assert.True(t, c.Discount.Equal(dec("0.2")))

	store.ClearCoupon()
	assert.Nil(t, store.Coupon())
}
