package common

import (
	"context"

	"github.com/golang-jwt/jwt/v4"
)

type (
	CtxKeyRequestID struct{}
	CtxKeyToken     struct{}
	CtxKeyAPIKey    struct{}
	CtxKeyClaims    struct{}
	CtxKeyClientIP  struct{}
	CtxKeyUserAgent struct{}
)

type GlobalClaims struct {
	Name  string   `json:"name"`
	EMail string   `json:"email"`
	Roles []string `json:"roles"`
}

type CustomClaims struct {
	Global GlobalClaims `json:"global"`
}

type AllClaims struct {
	jwt.RegisteredClaims
	CustomClaims
}

func GetRequestID(ctx context.Context) string {
	if ctx == nil {
		return "00000000"
	}
	if reqID, ok := ctx.Value(CtxKeyRequestID{}).(string); ok {
		return reqID
	}
	return "ffffffff"
}

func GetClientIP(ctx context.Context) string {
	ip, _ := ctx.Value(CtxKeyClientIP{}).(string)
	return ip
}

func GetUserAgent(ctx context.Context) string {
	ua, _ := ctx.Value(CtxKeyUserAgent{}).(string)
	return ua
}
