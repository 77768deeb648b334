package auth

import (
	"net/http"
	"strings"

	"github.com/danielgtaylor/huma/v2"
	"github.com/gofrs/uuid/v5"
)

// PublicMetadataKey marks an operation that never requires a token.
const PublicMetadataKey = "public"

// Middleware validates bearer tokens and attaches the caller to the request
// context. Invalid tokens are rejected on non-public operations. A missing
// token is rejected only when required is set.
func Middleware(api huma.API, jwtManager *JWTManager, required bool) func(huma.Context, func(huma.Context)) {
	return func(ctx huma.Context, next func(huma.Context)) {
		public := isPublic(ctx.Operation())

		authHeader := ctx.Header("Authorization")
		if authHeader == "" {
			if required && !public {
				_ = huma.WriteErr(api, ctx, http.StatusUnauthorized, ErrMissingToken.Error())
				return
			}
			next(ctx)
			return
		}

		tokenString, ok := strings.CutPrefix(authHeader, "Bearer ")
		var claims *Claims
		var err error
		if ok && tokenString != "" {
			claims, err = jwtManager.Validate(tokenString)
		}
		if claims == nil || err != nil {
			if public {
				next(ctx)
				return
			}
			_ = huma.WriteErr(api, ctx, http.StatusUnauthorized, ErrInvalidToken.Error())
			return
		}

		userID := uuid.FromStringOrNil(claims.UserID)
		next(huma.WithContext(ctx, WithUser(ctx.Context(), userID)))
	}
}

func isPublic(op *huma.Operation) bool {
	if op == nil || op.Metadata == nil {
		return false
	}
	public, _ := op.Metadata[PublicMetadataKey].(bool)
	return public
}
