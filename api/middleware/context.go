package middleware

import (
	"context"

	"github.com/shoptodo/shoptodo-backend/internal/shop"
)

type contextKey string

const (
	ctxUserID   contextKey = "user_id"
	ctxUsername contextKey = "username"
	ctxAccessID contextKey = "access_id"
	ctxShop     contextKey = "shop"
)

func UserIDFromContext(ctx context.Context) string {
	return stringFromContext(ctx, ctxUserID)
}

func UsernameFromContext(ctx context.Context) string {
	return stringFromContext(ctx, ctxUsername)
}

// AccessIDFromContext returns the jti of the token that authenticated the request.
func AccessIDFromContext(ctx context.Context) string {
	return stringFromContext(ctx, ctxAccessID)
}

// ShopFromContext returns the per-user shop resolved by the Shop middleware.
func ShopFromContext(ctx context.Context) *shop.Shop {
	if ctx == nil {
		return nil
	}
	s, _ := ctx.Value(ctxShop).(*shop.Shop)
	return s
}

// WithUser injects the authenticated identity into the context.
func WithUser(ctx context.Context, userID, username, accessID string) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	ctx = context.WithValue(ctx, ctxUserID, userID)
	ctx = context.WithValue(ctx, ctxUsername, username)
	return context.WithValue(ctx, ctxAccessID, accessID)
}

// WithShop injects the per-user shop into the context.
func WithShop(ctx context.Context, s *shop.Shop) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, ctxShop, s)
}

func stringFromContext(ctx context.Context, key contextKey) string {
	if ctx == nil {
		return ""
	}
	if v, ok := ctx.Value(key).(string); ok {
		return v
	}
	return ""
}
