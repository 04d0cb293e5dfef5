package auth

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// CookieName 会话 cookie 名
const CookieName = "session"

var ErrInvalidSession = errors.New("invalid session")

// Identity 写进会话令牌的最小用户信息
type Identity struct {
	ID        string `json:"id"`
	Email     string `json:"email"`
	Name      string `json:"name"`
	Username  string `json:"username"`
	IsFounder bool   `json:"isFounder"`
}

type Claims struct {
	Identity
	jwt.RegisteredClaims
}

// Codec 把 Identity 编成带签名的令牌；裸 JSON cookie 可被伪造，这里必须签名
type Codec struct {
	Secret []byte
	Issuer string
	TTL    time.Duration
	Secure bool // 生产环境 cookie 带 Secure
}

func (c *Codec) Encode(id Identity) (string, error) {
	now := time.Now()
	claims := Claims{
		Identity: id,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    c.Issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(c.TTL)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(c.Secret)
}

// Decode 签名/过期校验不过一律 ErrInvalidSession，fail closed
func (c *Codec) Decode(tokenStr string) (*Identity, error) {
	t, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if token.Method != jwt.SigningMethodHS256 {
			return nil, fmt.Errorf("unexpected alg")
		}
		return c.Secret, nil
	}, jwt.WithIssuer(c.Issuer), jwt.WithLeeway(60*time.Second))

	if err != nil {
		return nil, ErrInvalidSession
	}
	claims, ok := t.Claims.(*Claims)
	if !ok || !t.Valid {
		return nil, ErrInvalidSession
	}
	return &claims.Identity, nil
}

// SetCookie 按原平台的 cookie 语义：HttpOnly + SameSite=Lax + 7 天
func (c *Codec) SetCookie(w http.ResponseWriter, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(c.TTL / time.Second),
		HttpOnly: true,
		Secure:   c.Secure,
		SameSite: http.SameSiteLaxMode,
	})
}

// ClearCookie 登出：只是让客户端丢弃 cookie，服务端无撤销名单
func (c *Codec) ClearCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   c.Secure,
		SameSite: http.SameSiteLaxMode,
	})
}
