package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"magicwrites/internal/service"
	mdw "magicwrites/internal/transport/http/middleware"
	resp "magicwrites/internal/transport/http/response"
)

type InteractionHandler struct {
	svc *service.InteractionService
	log *zap.Logger
}

func NewInteractionHandler(svc *service.InteractionService, l *zap.Logger) *InteractionHandler {
	return &InteractionHandler{svc: svc, log: l}
}

func (h *InteractionHandler) Mount(public, authed *gin.RouterGroup) {
	authed.POST("/writings/:id/like", h.toggleLike)
	public.GET("/writings/:id/like", h.likedStatus)
	authed.POST("/writings/:id/reflections", h.addReflection)
	public.GET("/writings/:id/reflections", h.listReflections)
}

func (h *InteractionHandler) toggleLike(c *gin.Context) {
	liked, err := h.svc.ToggleLike(c.Request.Context(), c.Param("id"), c.GetString(mdw.KeyUserID))
	if err != nil {
		writeErr(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, resp.OK(gin.H{"liked": liked}))
}

// likedStatus 匿名也给 200，liked 恒为 false
func (h *InteractionHandler) likedStatus(c *gin.Context) {
	liked, err := h.svc.LikedStatus(c.Request.Context(), c.Param("id"), c.GetString(mdw.KeyUserID))
	if err != nil {
		writeErr(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, resp.OK(gin.H{"liked": liked}))
}

func (h *InteractionHandler) addReflection(c *gin.Context) {
	var in struct {
		Content string `json:"content" binding:"required"`
	}
	if err := c.ShouldBindJSON(&in); err != nil {
		badRequest(c, err)
		return
	}
	ref, err := h.svc.AddReflection(c.Request.Context(), c.Param("id"), c.GetString(mdw.KeyUserID), in.Content)
	if err != nil {
		writeErr(c, h.log, err)
		return
	}
	c.JSON(http.StatusCreated, resp.OK(gin.H{"reflection": toReflectionDTO(ref)}))
}

func (h *InteractionHandler) listReflections(c *gin.Context) {
	refs, err := h.svc.ListReflections(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeErr(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, resp.OK(gin.H{"reflections": toReflectionDTOs(refs)}))
}
