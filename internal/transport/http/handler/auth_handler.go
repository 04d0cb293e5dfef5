package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"magicwrites/internal/core/auth"
	"magicwrites/internal/service"
	mdw "magicwrites/internal/transport/http/middleware"
	resp "magicwrites/internal/transport/http/response"
)

type AuthHandler struct {
	svc   *service.AuthService
	codec *auth.Codec
	log   *zap.Logger
}

func NewAuthHandler(svc *service.AuthService, codec *auth.Codec, l *zap.Logger) *AuthHandler {
	return &AuthHandler{svc: svc, codec: codec, log: l}
}

func (h *AuthHandler) Mount(api *gin.RouterGroup) {
	api.POST("/auth/signup", h.signup)
	api.POST("/auth/login", h.login)
	api.POST("/auth/logout", h.logout)
	api.GET("/auth/me", h.me)
}

func (h *AuthHandler) signup(c *gin.Context) {
	var in struct {
		Name     string `json:"name" binding:"required,max=64"`
		Email    string `json:"email" binding:"required,email"`
		Username string `json:"username" binding:"required"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&in); err != nil {
		badRequest(c, err)
		return
	}
	u, err := h.svc.Signup(c.Request.Context(), service.SignupInput{
		Name:     in.Name,
		Email:    in.Email,
		Username: in.Username,
		Password: in.Password,
	})
	if err != nil {
		writeErr(c, h.log, err)
		return
	}
	h.log.Info("user signed up", zap.String("userId", u.ID), zap.String("username", u.Username))
	c.JSON(http.StatusCreated, resp.OK(gin.H{"user": toUserDTO(u)}))
}

func (h *AuthHandler) login(c *gin.Context) {
	var in struct {
		Email    string `json:"email" binding:"required,email"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&in); err != nil {
		badRequest(c, err)
		return
	}
	u, err := h.svc.Login(c.Request.Context(), in.Email, in.Password)
	if err != nil {
		writeErr(c, h.log, err)
		return
	}
	tok, err := h.codec.Encode(auth.Identity{
		ID:        u.ID,
		Email:     u.Email,
		Name:      u.Name,
		Username:  u.Username,
		IsFounder: u.IsFounder,
	})
	if err != nil {
		writeErr(c, h.log, service.Internal("issue session failed", err))
		return
	}
	h.codec.SetCookie(c.Writer, tok)
	c.JSON(http.StatusOK, resp.OK(gin.H{"user": toUserDTO(u)}))
}

// logout 幂等：没登录也返回 200
func (h *AuthHandler) logout(c *gin.Context) {
	h.codec.ClearCookie(c.Writer)
	c.JSON(http.StatusOK, resp.OK(nil))
}

// me 匿名时 user 为 null，不是错误
func (h *AuthHandler) me(c *gin.Context) {
	userID := c.GetString(mdw.KeyUserID)
	u, err := h.svc.CurrentUser(c.Request.Context(), userID)
	if err != nil {
		writeErr(c, h.log, err)
		return
	}
	if u == nil {
		c.JSON(http.StatusOK, resp.OK(gin.H{"user": nil}))
		return
	}
	c.JSON(http.StatusOK, resp.OK(gin.H{"user": toUserDTO(u)}))
}
