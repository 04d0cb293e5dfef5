package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"magicwrites/internal/core/auth"
	resp "magicwrites/internal/transport/http/response"
)

const (
	KeyUserID   = "userId"
	KeyIdentity = "identity"
)

// Session 解析会话 cookie；无 cookie 或解不开就当匿名放行
func Session(codec *auth.Codec) gin.HandlerFunc {
	return func(c *gin.Context) {
		tok, err := c.Cookie(auth.CookieName)
		if err == nil && tok != "" {
			if id, derr := codec.Decode(tok); derr == nil {
				c.Set(KeyUserID, id.ID)
				c.Set(KeyIdentity, *id)
			}
		}
		c.Next()
	}
}

// RequireAuth 挂在需要登录的分组上，匿名一律 401
func RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.GetString(KeyUserID) == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized,
				resp.Error(resp.CodeUnauthorized, "unauthorized"))
			return
		}
		c.Next()
	}
}
