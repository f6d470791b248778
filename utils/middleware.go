package utils

import (
	"github.com/kataras/iris/v12"
	"github.com/kataras/iris/v12/middleware/jwt"
)

// ClaimsMiddleware copies the verified access-token claims into context
// values so handlers receive the caller's identity explicitly instead of
// re-reading the token.
func ClaimsMiddleware(ctx iris.Context) {
	claims := jwt.Get(ctx).(*AuthClaims)

	if claims.Category != TokenCategoryAccess {
		ctx.StatusCode(iris.StatusUnauthorized)
		return
	}

	ctx.Values().Set("loginID", claims.LoginID)
	ctx.Values().Set("role", claims.Role)
	ctx.Next()
}
