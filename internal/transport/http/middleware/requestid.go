package middleware

import (
	"github.com/gin-gonic/gin"

	"magicwrites/pkg/utils"
)

const KeyRequestID = "X-Request-ID"

// RequestID 透传上游请求 ID，没有就按本项目 32 位十六进制 ID 生成一个
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		rid := c.Request.Header.Get(KeyRequestID)
		if rid == "" {
			rid = utils.NewID()
		}
		c.Writer.Header().Set(KeyRequestID, rid)
		c.Set(KeyRequestID, rid)
		c.Next()
	}
}
