// Package repotest 提供内存版仓储，单测用，行为对齐 gorm 实现
package repotest

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"magicwrites/internal/domain"
	"magicwrites/pkg/utils"
)

type UserRepo struct {
	mu    sync.Mutex
	users map[string]*domain.User
}

func NewUserRepo() *UserRepo { return &UserRepo{users: map[string]*domain.User{}} }

func (r *UserRepo) Create(_ context.Context, u *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, ex := range r.users {
		if ex.Email == u.Email || ex.Username == u.Username {
			return domain.ErrDuplicateKey
		}
	}
	if u.CreatedAt.IsZero() {
		u.CreatedAt = time.Now()
	}
	cp := *u
	r.users[u.ID] = &cp
	return nil
}

func (r *UserRepo) FindByID(_ context.Context, id string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if u, ok := r.users[id]; ok {
		cp := *u
		return &cp, nil
	}
	return nil, nil
}

func (r *UserRepo) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	return r.findBy(func(u *domain.User) bool { return u.Email == email })
}

func (r *UserRepo) FindByUsername(_ context.Context, username string) (*domain.User, error) {
	return r.findBy(func(u *domain.User) bool { return u.Username == username })
}

func (r *UserRepo) findBy(match func(*domain.User) bool) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if match(u) {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

type WritingRepo struct {
	mu       sync.Mutex
	writings map[string]*domain.Writing
	users    *UserRepo
	likes    *InteractionRepo // 计数用，可为 nil
	clock    time.Time
}

func NewWritingRepo(users *UserRepo) *WritingRepo {
	return &WritingRepo{writings: map[string]*domain.Writing{}, users: users, clock: time.Now()}
}

// AttachInteractions 让 like/reflection 计数生效
func (r *WritingRepo) AttachInteractions(i *InteractionRepo) { r.likes = i }

func (r *WritingRepo) Create(_ context.Context, w *domain.Writing) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, ex := range r.writings {
		if ex.Slug == w.Slug {
			return domain.ErrDuplicateKey
		}
	}
	if w.CreatedAt.IsZero() {
		// 单调递增，排序断言可控
		r.clock = r.clock.Add(time.Second)
		w.CreatedAt = r.clock
	}
	cp := *w
	r.writings[w.ID] = &cp
	return nil
}

func (r *WritingRepo) FindByID(ctx context.Context, id string) (*domain.Writing, error) {
	r.mu.Lock()
	w, ok := r.writings[id]
	r.mu.Unlock()
	if !ok {
		return nil, nil
	}
	return r.hydrate(ctx, w), nil
}

func (r *WritingRepo) FindBySlug(ctx context.Context, slug string) (*domain.Writing, error) {
	r.mu.Lock()
	var found *domain.Writing
	for _, w := range r.writings {
		if w.Slug == slug {
			found = w
			break
		}
	}
	r.mu.Unlock()
	if found == nil {
		return nil, nil
	}
	return r.hydrate(ctx, found), nil
}

func (r *WritingRepo) SlugsWithPrefix(_ context.Context, prefix string) ([]string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []string
	for _, w := range r.writings {
		if strings.HasPrefix(w.Slug, prefix) {
			out = append(out, w.Slug)
		}
	}
	return out, nil
}

func (r *WritingRepo) List(ctx context.Context, f domain.WritingFilter) ([]domain.Writing, error) {
	r.mu.Lock()
	var rows []*domain.Writing
	for _, w := range r.writings {
		if !w.IsPublished {
			continue
		}
		if f.Genre != "" && w.Genre != f.Genre {
			continue
		}
		if f.Mood != "" && w.Mood != f.Mood {
			continue
		}
		if f.AuthorID != "" && w.AuthorID != f.AuthorID {
			continue
		}
		rows = append(rows, w)
	}
	r.mu.Unlock()

	founder := func(w *domain.Writing) bool {
		u, _ := r.users.FindByID(ctx, w.AuthorID)
		return u != nil && u.IsFounder
	}
	sort.SliceStable(rows, func(i, j int) bool {
		fi, fj := founder(rows[i]), founder(rows[j])
		if fi != fj {
			return fi
		}
		return rows[i].CreatedAt.After(rows[j].CreatedAt)
	})

	limit := f.Limit
	if limit <= 0 || limit > 100 {
		limit = 50
	}
	if len(rows) > limit {
		rows = rows[:limit]
	}
	out := make([]domain.Writing, 0, len(rows))
	for _, w := range rows {
		out = append(out, *r.hydrate(ctx, w))
	}
	return out, nil
}

func (r *WritingRepo) hydrate(ctx context.Context, w *domain.Writing) *domain.Writing {
	cp := *w
	if u, _ := r.users.FindByID(ctx, w.AuthorID); u != nil {
		cp.Author = u
	}
	if r.likes != nil {
		cp.LikeCount, cp.ReflectionCount = r.likes.counts(w.ID)
	}
	return &cp
}

type likeKey struct{ writingID, userID string }

type InteractionRepo struct {
	mu          sync.Mutex
	likes       map[likeKey]domain.Like
	reflections []domain.Reflection
	users       *UserRepo
	clock       time.Time
}

func NewInteractionRepo(users *UserRepo) *InteractionRepo {
	return &InteractionRepo{likes: map[likeKey]domain.Like{}, users: users, clock: time.Now()}
}

func (r *InteractionRepo) ToggleLike(_ context.Context, writingID, userID string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	k := likeKey{writingID, userID}
	if _, ok := r.likes[k]; ok {
		delete(r.likes, k)
		return false, nil
	}
	r.likes[k] = domain.Like{ID: utils.NewID(), WritingID: writingID, UserID: userID, CreatedAt: time.Now()}
	return true, nil
}

func (r *InteractionRepo) HasLiked(_ context.Context, writingID, userID string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.likes[likeKey{writingID, userID}]
	return ok, nil
}

// LikeRows 测试断言用：这对 (writing, user) 还剩几行
func (r *InteractionRepo) LikeRows(writingID, userID string) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.likes[likeKey{writingID, userID}]; ok {
		return 1
	}
	return 0
}

func (r *InteractionRepo) CreateReflection(_ context.Context, ref *domain.Reflection) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if ref.CreatedAt.IsZero() {
		r.clock = r.clock.Add(time.Second)
		ref.CreatedAt = r.clock
	}
	r.reflections = append(r.reflections, *ref)
	return nil
}

func (r *InteractionRepo) ListReflections(ctx context.Context, writingID string) ([]domain.Reflection, error) {
	r.mu.Lock()
	var out []domain.Reflection
	for _, ref := range r.reflections {
		if ref.WritingID == writingID {
			out = append(out, ref)
		}
	}
	r.mu.Unlock()

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	for i := range out {
		if u, _ := r.users.FindByID(ctx, out[i].AuthorID); u != nil {
			out[i].Author = u
		}
	}
	return out, nil
}

func (r *InteractionRepo) counts(writingID string) (likes, reflections int64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for k := range r.likes {
		if k.writingID == writingID {
			likes++
		}
	}
	for _, ref := range r.reflections {
		if ref.WritingID == writingID {
			reflections++
		}
	}
	return
}
