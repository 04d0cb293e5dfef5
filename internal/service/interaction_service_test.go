package service

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"magicwrites/internal/domain"
	"magicwrites/internal/repo/repotest"
	"magicwrites/pkg/utils"
)

type interactionFixture struct {
	svc          *InteractionService
	interactions *repotest.InteractionRepo
	writing      *domain.Writing
	user         *domain.User
}

func newInteractionFixture(t *testing.T) *interactionFixture {
	t.Helper()
	ctx := context.Background()

	users := repotest.NewUserRepo()
	writings := repotest.NewWritingRepo(users)
	interactions := repotest.NewInteractionRepo(users)
	writings.AttachInteractions(interactions)

	u := &domain.User{ID: utils.NewID(), Email: "r@x.com", Username: "reader", Name: "Reader"}
	require.NoError(t, users.Create(ctx, u))

	w := &domain.Writing{
		ID: utils.NewID(), Title: "A Writing", Content: "some longer content here",
		Slug: "a-writing", IsPublished: true, AuthorID: u.ID,
	}
	require.NoError(t, writings.Create(ctx, w))

	return &interactionFixture{
		svc:          NewInteractionService(interactions, writings, users),
		interactions: interactions,
		writing:      w,
		user:         u,
	}
}

func TestToggleLike_FlipsAndRestores(t *testing.T) {
	f := newInteractionFixture(t)
	ctx := context.Background()

	liked, err := f.svc.ToggleLike(ctx, f.writing.ID, f.user.ID)
	require.NoError(t, err)
	assert.True(t, liked)
	assert.Equal(t, 1, f.interactions.LikeRows(f.writing.ID, f.user.ID))

	// 第二次翻回去，且不残留行
	liked, err = f.svc.ToggleLike(ctx, f.writing.ID, f.user.ID)
	require.NoError(t, err)
	assert.False(t, liked)
	assert.Equal(t, 0, f.interactions.LikeRows(f.writing.ID, f.user.ID))
}

func TestToggleLike_MissingWriting(t *testing.T) {
	f := newInteractionFixture(t)

	_, err := f.svc.ToggleLike(context.Background(), "no-such-writing", f.user.ID)
	var se *Error
	require.ErrorAs(t, err, &se)
	assert.Equal(t, 404, se.Code)
}

func TestLikedStatus(t *testing.T) {
	f := newInteractionFixture(t)
	ctx := context.Background()

	// 匿名永远 false
	liked, err := f.svc.LikedStatus(ctx, f.writing.ID, "")
	require.NoError(t, err)
	assert.False(t, liked)

	liked, err = f.svc.LikedStatus(ctx, f.writing.ID, f.user.ID)
	require.NoError(t, err)
	assert.False(t, liked)

	_, err = f.svc.ToggleLike(ctx, f.writing.ID, f.user.ID)
	require.NoError(t, err)

	liked, err = f.svc.LikedStatus(ctx, f.writing.ID, f.user.ID)
	require.NoError(t, err)
	assert.True(t, liked)
}

func TestAddReflection_Success(t *testing.T) {
	f := newInteractionFixture(t)

	ref, err := f.svc.AddReflection(context.Background(), f.writing.ID, f.user.ID, "Beautiful piece.")
	require.NoError(t, err)
	assert.NotEmpty(t, ref.ID)
	assert.Equal(t, f.writing.ID, ref.WritingID)
	require.NotNil(t, ref.Author, "author is denormalized onto the reflection")
	assert.Equal(t, "reader", ref.Author.Username)
}

func TestAddReflection_LengthBounds(t *testing.T) {
	f := newInteractionFixture(t)
	ctx := context.Background()

	// 整 1000 字符可以
	_, err := f.svc.AddReflection(ctx, f.writing.ID, f.user.ID, strings.Repeat("a", 1000))
	require.NoError(t, err)

	// 1001 不行
	_, err = f.svc.AddReflection(ctx, f.writing.ID, f.user.ID, strings.Repeat("a", 1001))
	var se *Error
	require.ErrorAs(t, err, &se)
	assert.Equal(t, 400, se.Code)

	// 空白也不行
	_, err = f.svc.AddReflection(ctx, f.writing.ID, f.user.ID, "   ")
	require.ErrorAs(t, err, &se)
	assert.Equal(t, 400, se.Code)
}

func TestListReflections_NewestFirst(t *testing.T) {
	f := newInteractionFixture(t)
	ctx := context.Background()

	_, err := f.svc.AddReflection(ctx, f.writing.ID, f.user.ID, "first")
	require.NoError(t, err)
	_, err = f.svc.AddReflection(ctx, f.writing.ID, f.user.ID, "second")
	require.NoError(t, err)

	refs, err := f.svc.ListReflections(ctx, f.writing.ID)
	require.NoError(t, err)
	require.Len(t, refs, 2)
	assert.Equal(t, "second", refs[0].Content)
	assert.Equal(t, "first", refs[1].Content)
}
