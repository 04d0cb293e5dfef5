package router

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"magicwrites/internal/core/auth"
	"magicwrites/internal/transport/http/handler"
	mdw "magicwrites/internal/transport/http/middleware"
)

type Handlers struct {
	Auth        *handler.AuthHandler
	Writing     *handler.WritingHandler
	Interaction *handler.InteractionHandler
}

func NewAPIEngine(l *zap.Logger, codec *auth.Codec, h Handlers) *gin.Engine {
	r := gin.New()

	// 中间件
	r.Use(
		mdw.RequestID(),
		mdw.RateLimit(200, 400),
		mdw.ConcurrencyLimit(300),
		mdw.MaxBodyBytes(1<<20),
		mdw.Timeout(10*time.Second),
		mdw.Recovery(l),
		mdw.Metrics(),
		mdw.AccessLog(l),
		cors.Default(),
		mdw.Session(codec), // 解 cookie，匿名放行
	)

	// 健康检查
	r.GET("/health", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"ok": 1}) })

	api := r.Group("/api/v1")

	// 鉴权分组：点赞/发文/写评论必须登录
	authed := api.Group("")
	authed.Use(mdw.RequireAuth())

	h.Auth.Mount(api)
	h.Writing.Mount(api, authed)
	h.Interaction.Mount(api, authed)

	return r
}
