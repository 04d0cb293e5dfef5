package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"magicwrites/internal/service"
	resp "magicwrites/internal/transport/http/response"
)

// writeErr 业务错误 → HTTP 状态 + 统一信封；500 只给笼统信息，细节进日志
func writeErr(c *gin.Context, l *zap.Logger, err error) {
	var se *service.Error
	if errors.As(err, &se) {
		if se.Code == resp.CodeServerError {
			l.Error("internal error",
				zap.String("path", c.FullPath()),
				zap.String("msg", se.Msg),
				zap.Error(se.Err),
			)
			c.JSON(http.StatusInternalServerError,
				resp.Error(resp.CodeServerError, ""))
			return
		}
		c.JSON(resp.HTTPStatus(se.Code), resp.Error(se.Code, se.Msg))
		return
	}
	l.Error("unexpected error", zap.String("path", c.FullPath()), zap.Error(err))
	c.JSON(http.StatusInternalServerError, resp.Error(resp.CodeServerError, ""))
}

func badRequest(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, resp.Error(resp.CodeBadRequest, err.Error()))
}
