package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"magicwrites/internal/domain"
	"magicwrites/internal/service"
	mdw "magicwrites/internal/transport/http/middleware"
	resp "magicwrites/internal/transport/http/response"
)

type WritingHandler struct {
	svc *service.WritingService
	log *zap.Logger
}

func NewWritingHandler(svc *service.WritingService, l *zap.Logger) *WritingHandler {
	return &WritingHandler{svc: svc, log: l}
}

func (h *WritingHandler) Mount(public, authed *gin.RouterGroup) {
	authed.POST("/writings", h.publish)
	public.GET("/writings", h.list)
	public.GET("/writings/slug/:slug", h.getBySlug)
}

func (h *WritingHandler) publish(c *gin.Context) {
	var in struct {
		Title   string `json:"title" binding:"required"`
		Content string `json:"content" binding:"required"`
		Genre   string `json:"genre"`
		Mood    string `json:"mood"`
	}
	if err := c.ShouldBindJSON(&in); err != nil {
		badRequest(c, err)
		return
	}
	w, err := h.svc.Publish(c.Request.Context(), service.PublishInput{
		AuthorID: c.GetString(mdw.KeyUserID),
		Title:    in.Title,
		Content:  in.Content,
		Genre:    in.Genre,
		Mood:     in.Mood,
	})
	if err != nil {
		writeErr(c, h.log, err)
		return
	}
	h.log.Info("writing published",
		zap.String("writingId", w.ID),
		zap.String("slug", w.Slug),
		zap.String("authorId", w.AuthorID),
	)
	c.JSON(http.StatusCreated, resp.OK(gin.H{"writing": toWritingDTO(w)}))
}

func (h *WritingHandler) list(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	ws, err := h.svc.List(c.Request.Context(), domain.WritingFilter{
		Genre:    c.Query("genre"),
		Mood:     c.Query("mood"),
		AuthorID: c.Query("authorId"),
		Limit:    limit,
	})
	if err != nil {
		writeErr(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, resp.OK(gin.H{"writings": toWritingDTOs(ws)}))
}

func (h *WritingHandler) getBySlug(c *gin.Context) {
	w, err := h.svc.GetBySlug(c.Request.Context(), c.Param("slug"))
	if err != nil {
		writeErr(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, resp.OK(gin.H{"writing": toWritingDTO(w)}))
}
