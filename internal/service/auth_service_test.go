package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"magicwrites/internal/repo/repotest"
)

func newAuthService() (*AuthService, *repotest.UserRepo) {
	users := repotest.NewUserRepo()
	return NewAuthService(users), users
}

func validSignup() SignupInput {
	return SignupInput{
		Name:     "Pari Meena",
		Email:    "pari@magicwrites.com",
		Username: "parimeena",
		Password: "PariMeena2024!",
	}
}

func TestSignup_Success(t *testing.T) {
	svc, _ := newAuthService()

	u, err := svc.Signup(context.Background(), validSignup())
	require.NoError(t, err)
	assert.NotEmpty(t, u.ID)
	assert.Equal(t, "pari@magicwrites.com", u.Email)
	assert.Equal(t, "parimeena", u.Username)
	assert.NotEqual(t, "PariMeena2024!", u.PasswordHash)
	assert.NotEmpty(t, u.PasswordHash)
}

func TestSignup_NormalizesEmailCase(t *testing.T) {
	svc, _ := newAuthService()
	in := validSignup()
	in.Email = "  Pari@MagicWrites.com "

	u, err := svc.Signup(context.Background(), in)
	require.NoError(t, err)
	assert.Equal(t, "pari@magicwrites.com", u.Email)
}

func TestSignup_Validation(t *testing.T) {
	ctx := context.Background()
	tests := []struct {
		name   string
		mutate func(*SignupInput)
	}{
		{"short password", func(in *SignupInput) { in.Password = "1234567" }},
		{"empty name", func(in *SignupInput) { in.Name = "  " }},
		{"empty email", func(in *SignupInput) { in.Email = "" }},
		{"username too short", func(in *SignupInput) { in.Username = "ab" }},
		{"username too long", func(in *SignupInput) { in.Username = "abcdefghijklmnopqrstu" }},
		{"username bad chars", func(in *SignupInput) { in.Username = "pari meena!" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, _ := newAuthService()
			in := validSignup()
			tt.mutate(&in)
			_, err := svc.Signup(ctx, in)
			var se *Error
			require.ErrorAs(t, err, &se)
			assert.Equal(t, 400, se.Code)
		})
	}
}

func TestSignup_DuplicateEmailAndUsername(t *testing.T) {
	svc, _ := newAuthService()
	ctx := context.Background()

	_, err := svc.Signup(ctx, validSignup())
	require.NoError(t, err)

	dupEmail := validSignup()
	dupEmail.Username = "otheruser"
	_, err = svc.Signup(ctx, dupEmail)
	var se *Error
	require.ErrorAs(t, err, &se)
	assert.Equal(t, 400, se.Code)
	assert.Contains(t, se.Msg, "Email")

	dupUsername := validSignup()
	dupUsername.Email = "other@magicwrites.com"
	_, err = svc.Signup(ctx, dupUsername)
	require.ErrorAs(t, err, &se)
	assert.Equal(t, 400, se.Code)
	assert.Contains(t, se.Msg, "Username")
}

func TestLogin_Success(t *testing.T) {
	svc, _ := newAuthService()
	ctx := context.Background()
	_, err := svc.Signup(ctx, validSignup())
	require.NoError(t, err)

	u, err := svc.Login(ctx, "pari@magicwrites.com", "PariMeena2024!")
	require.NoError(t, err)
	assert.Equal(t, "parimeena", u.Username)
}

func TestLogin_EnumerationResistance(t *testing.T) {
	svc, _ := newAuthService()
	ctx := context.Background()
	_, err := svc.Signup(ctx, validSignup())
	require.NoError(t, err)

	// 不存在的邮箱和错误的密码必须是同一个错误
	_, errNoUser := svc.Login(ctx, "nobody@magicwrites.com", "whatever123")
	_, errBadPass := svc.Login(ctx, "pari@magicwrites.com", "wrongpassword")

	var a, b *Error
	require.ErrorAs(t, errNoUser, &a)
	require.ErrorAs(t, errBadPass, &b)
	assert.Equal(t, a.Code, b.Code)
	assert.Equal(t, a.Msg, b.Msg)
	assert.Equal(t, 401, a.Code)
}

func TestCurrentUser(t *testing.T) {
	svc, _ := newAuthService()
	ctx := context.Background()
	u, err := svc.Signup(ctx, validSignup())
	require.NoError(t, err)

	got, err := svc.CurrentUser(ctx, u.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, u.Email, got.Email)

	// 匿名/无效会话：nil 而不是错误
	got, err = svc.CurrentUser(ctx, "")
	require.NoError(t, err)
	assert.Nil(t, got)

	got, err = svc.CurrentUser(ctx, "no-such-user")
	require.NoError(t, err)
	assert.Nil(t, got)
}
