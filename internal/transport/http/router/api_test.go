package router

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"magicwrites/internal/core/auth"
	"magicwrites/internal/repo/repotest"
	"magicwrites/internal/service"
	"magicwrites/internal/transport/http/handler"
)

func init() { gin.SetMode(gin.TestMode) }

type testServer struct {
	engine *gin.Engine
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()

	users := repotest.NewUserRepo()
	writings := repotest.NewWritingRepo(users)
	interactions := repotest.NewInteractionRepo(users)
	writings.AttachInteractions(interactions)

	codec := &auth.Codec{
		Secret: []byte("router-test-secret"),
		Issuer: "magicwrites-test",
		TTL:    7 * 24 * time.Hour,
	}
	log := zap.NewNop()

	authSvc := service.NewAuthService(users)
	writingSvc := service.NewWritingService(writings, nil, 0)
	interactionSvc := service.NewInteractionService(interactions, writings, users)

	engine := NewAPIEngine(log, codec, Handlers{
		Auth:        handler.NewAuthHandler(authSvc, codec, log),
		Writing:     handler.NewWritingHandler(writingSvc, log),
		Interaction: handler.NewInteractionHandler(interactionSvc, log),
	})
	return &testServer{engine: engine}
}

type envelope struct {
	Code int             `json:"code"`
	Msg  string          `json:"msg"`
	Data json.RawMessage `json:"data"`
}

func (ts *testServer) do(t *testing.T, method, path string, body any, cookie *http.Cookie) (*httptest.ResponseRecorder, envelope) {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if cookie != nil {
		req.AddCookie(cookie)
	}
	w := httptest.NewRecorder()
	ts.engine.ServeHTTP(w, req)

	var env envelope
	if w.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env), "body: %s", w.Body.String())
	}
	return w, env
}

func sessionCookie(t *testing.T, w *httptest.ResponseRecorder) *http.Cookie {
	t.Helper()
	for _, c := range w.Result().Cookies() {
		if c.Name == auth.CookieName && c.Value != "" {
			return c
		}
	}
	t.Fatal("no session cookie set")
	return nil
}

func (ts *testServer) signupAndLogin(t *testing.T, name, email, username string) *http.Cookie {
	t.Helper()
	w, _ := ts.do(t, http.MethodPost, "/api/v1/auth/signup", map[string]any{
		"name": name, "email": email, "username": username, "password": "password123",
	}, nil)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w, _ = ts.do(t, http.MethodPost, "/api/v1/auth/login", map[string]any{
		"email": email, "password": "password123",
	}, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	return sessionCookie(t, w)
}

func TestSignupLoginFlow(t *testing.T) {
	ts := newTestServer(t)

	w, env := ts.do(t, http.MethodPost, "/api/v1/auth/signup", map[string]any{
		"name": "Pari Meena", "email": "pari@magicwrites.com",
		"username": "parimeena", "password": "PariMeena2024!",
	}, nil)
	assert.Equal(t, http.StatusCreated, w.Code)

	var out struct {
		User struct {
			ID       string `json:"id"`
			Username string `json:"username"`
		} `json:"user"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &out))
	assert.Equal(t, "parimeena", out.User.Username)
	assert.NotContains(t, string(env.Data), "passwordHash")

	// 重复注册 400
	w, _ = ts.do(t, http.MethodPost, "/api/v1/auth/signup", map[string]any{
		"name": "Pari Again", "email": "pari@magicwrites.com",
		"username": "parimeena2", "password": "PariMeena2024!",
	}, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// 登录拿 cookie
	w, _ = ts.do(t, http.MethodPost, "/api/v1/auth/login", map[string]any{
		"email": "pari@magicwrites.com", "password": "PariMeena2024!",
	}, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	ck := sessionCookie(t, w)
	assert.True(t, ck.HttpOnly)
	assert.Equal(t, http.SameSiteLaxMode, ck.SameSite)
	assert.InDelta(t, 7*24*3600, ck.MaxAge, 1)
}

func TestLoginErrorsAreIndistinguishable(t *testing.T) {
	ts := newTestServer(t)
	ts.signupAndLogin(t, "A User", "user@x.com", "someuser")

	w1, env1 := ts.do(t, http.MethodPost, "/api/v1/auth/login", map[string]any{
		"email": "nobody@x.com", "password": "password123",
	}, nil)
	w2, env2 := ts.do(t, http.MethodPost, "/api/v1/auth/login", map[string]any{
		"email": "user@x.com", "password": "wrongpassword",
	}, nil)

	assert.Equal(t, http.StatusUnauthorized, w1.Code)
	assert.Equal(t, http.StatusUnauthorized, w2.Code)
	assert.Equal(t, env1.Msg, env2.Msg)
}

func TestMe(t *testing.T) {
	ts := newTestServer(t)

	// 匿名：200 + user null
	w, env := ts.do(t, http.MethodGet, "/api/v1/auth/me", nil, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, string(env.Data), `"user":null`)

	ck := ts.signupAndLogin(t, "A User", "user@x.com", "someuser")
	w, env = ts.do(t, http.MethodGet, "/api/v1/auth/me", nil, ck)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, string(env.Data), `"username":"someuser"`)

	// 篡改过的 cookie 当匿名处理
	bad := *ck
	bad.Value = ck.Value + "x"
	w, env = ts.do(t, http.MethodGet, "/api/v1/auth/me", nil, &bad)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, string(env.Data), `"user":null`)
}

func TestLogoutClearsCookie(t *testing.T) {
	ts := newTestServer(t)
	w, _ := ts.do(t, http.MethodPost, "/api/v1/auth/logout", nil, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	var cleared bool
	for _, c := range w.Result().Cookies() {
		if c.Name == auth.CookieName && c.MaxAge < 0 {
			cleared = true
		}
	}
	assert.True(t, cleared, "logout must instruct cookie removal")
}

func TestPublishRequiresAuth(t *testing.T) {
	ts := newTestServer(t)
	w, _ := ts.do(t, http.MethodPost, "/api/v1/writings", map[string]any{
		"title": "Hello", "content": "some longer content here",
	}, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestPublishAndList(t *testing.T) {
	ts := newTestServer(t)
	ck := ts.signupAndLogin(t, "Writer", "w@x.com", "writer")

	w, env := ts.do(t, http.MethodPost, "/api/v1/writings", map[string]any{
		"title": "Hello World", "content": "some longer content here",
		"genre": "Poetry", "mood": "Calm",
	}, ck)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	assert.Contains(t, string(env.Data), `"slug":"hello-world"`)
	assert.Contains(t, string(env.Data), `"username":"writer"`)

	// 同名标题第二篇拿到 -1 后缀
	w, env = ts.do(t, http.MethodPost, "/api/v1/writings", map[string]any{
		"title": "Hello World", "content": "some longer content here",
	}, ck)
	require.Equal(t, http.StatusCreated, w.Code)
	assert.Contains(t, string(env.Data), `"slug":"hello-world-1"`)

	// 校验错误 400
	w, _ = ts.do(t, http.MethodPost, "/api/v1/writings", map[string]any{
		"title": "Too Short", "content": "short",
	}, ck)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// 公开列表（匿名可看）
	w, env = ts.do(t, http.MethodGet, "/api/v1/writings?limit=10", nil, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	var list struct {
		Writings []struct {
			Slug string `json:"slug"`
		} `json:"writings"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &list))
	require.Len(t, list.Writings, 2)
	assert.Equal(t, "hello-world-1", list.Writings[0].Slug, "newest first")
}

func TestGetBySlug(t *testing.T) {
	ts := newTestServer(t)
	ck := ts.signupAndLogin(t, "Writer", "w@x.com", "writer")
	w, _ := ts.do(t, http.MethodPost, "/api/v1/writings", map[string]any{
		"title": "Findable Piece", "content": "some longer content here",
	}, ck)
	require.Equal(t, http.StatusCreated, w.Code)

	w, env := ts.do(t, http.MethodGet, "/api/v1/writings/slug/findable-piece", nil, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, string(env.Data), `"title":"Findable Piece"`)

	w, _ = ts.do(t, http.MethodGet, "/api/v1/writings/slug/no-such-slug", nil, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func publishOne(t *testing.T, ts *testServer, ck *http.Cookie, title string) string {
	t.Helper()
	w, env := ts.do(t, http.MethodPost, "/api/v1/writings", map[string]any{
		"title": title, "content": "some longer content here",
	}, ck)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var out struct {
		Writing struct {
			ID string `json:"id"`
		} `json:"writing"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &out))
	return out.Writing.ID
}

func TestLikeToggleEndpoint(t *testing.T) {
	ts := newTestServer(t)
	ck := ts.signupAndLogin(t, "Writer", "w@x.com", "writer")
	id := publishOne(t, ts, ck, "Likeable")

	// 匿名点赞 401
	w, _ := ts.do(t, http.MethodPost, "/api/v1/writings/"+id+"/like", nil, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	// 匿名查询：false
	w, env := ts.do(t, http.MethodGet, "/api/v1/writings/"+id+"/like", nil, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"liked":false}`, string(env.Data))

	// 点一下 → true，再点 → false
	w, env = ts.do(t, http.MethodPost, "/api/v1/writings/"+id+"/like", nil, ck)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"liked":true}`, string(env.Data))

	w, env = ts.do(t, http.MethodPost, "/api/v1/writings/"+id+"/like", nil, ck)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"liked":false}`, string(env.Data))

	// 不存在的作品 404
	w, _ = ts.do(t, http.MethodPost, "/api/v1/writings/no-such/like", nil, ck)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestReflectionEndpoints(t *testing.T) {
	ts := newTestServer(t)
	ck := ts.signupAndLogin(t, "Writer", "w@x.com", "writer")
	id := publishOne(t, ts, ck, "Discussable")

	// 匿名写评论 401
	w, _ := ts.do(t, http.MethodPost, "/api/v1/writings/"+id+"/reflections",
		map[string]any{"content": "nope"}, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	// 超长 400
	w, _ = ts.do(t, http.MethodPost, "/api/v1/writings/"+id+"/reflections",
		map[string]any{"content": strings.Repeat("a", 1001)}, ck)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w, env := ts.do(t, http.MethodPost, "/api/v1/writings/"+id+"/reflections",
		map[string]any{"content": "What a lovely piece."}, ck)
	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Contains(t, string(env.Data), `"username":"writer"`)

	// 匿名可读，最新在前
	_, _ = ts.do(t, http.MethodPost, "/api/v1/writings/"+id+"/reflections",
		map[string]any{"content": "Second thought."}, ck)
	w, env = ts.do(t, http.MethodGet, "/api/v1/writings/"+id+"/reflections", nil, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	var out struct {
		Reflections []struct {
			Content string `json:"content"`
		} `json:"reflections"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &out))
	require.Len(t, out.Reflections, 2)
	assert.Equal(t, "Second thought.", out.Reflections[0].Content)
}

func TestListFiltersOverHTTP(t *testing.T) {
	ts := newTestServer(t)
	ck := ts.signupAndLogin(t, "Writer", "w@x.com", "writer")

	w, _ := ts.do(t, http.MethodPost, "/api/v1/writings", map[string]any{
		"title": "A Poem", "content": "some longer content here", "genre": "Poetry",
	}, ck)
	require.Equal(t, http.StatusCreated, w.Code)
	w, _ = ts.do(t, http.MethodPost, "/api/v1/writings", map[string]any{
		"title": "An Essay", "content": "some longer content here", "genre": "Essay",
	}, ck)
	require.Equal(t, http.StatusCreated, w.Code)

	w, env := ts.do(t, http.MethodGet, "/api/v1/writings?genre=Poetry", nil, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	var list struct {
		Writings []struct {
			Slug string `json:"slug"`
		} `json:"writings"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &list))
	require.Len(t, list.Writings, 1)
	assert.Equal(t, "a-poem", list.Writings[0].Slug)
}
