package repo

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"magicwrites/internal/domain"
)

type WritingRepo struct{ db *gorm.DB }

func NewWritingRepo(db *gorm.DB) *WritingRepo { return &WritingRepo{db: db} }

const writingColumns = "writings.*, " +
	"(SELECT COUNT(*) FROM likes WHERE likes.writing_id = writings.id) AS like_count, " +
	"(SELECT COUNT(*) FROM reflections WHERE reflections.writing_id = writings.id) AS reflection_count"

func (r *WritingRepo) Create(ctx context.Context, w *domain.Writing) error {
	if err := r.db.WithContext(ctx).Create(w).Error; err != nil {
		return wrapDup(err)
	}
	return nil
}

func (r *WritingRepo) FindByID(ctx context.Context, id string) (*domain.Writing, error) {
	return r.findOne(ctx, "writings.id = ?", id)
}

func (r *WritingRepo) FindBySlug(ctx context.Context, slug string) (*domain.Writing, error) {
	return r.findOne(ctx, "writings.slug = ?", slug)
}

func (r *WritingRepo) findOne(ctx context.Context, query string, arg string) (*domain.Writing, error) {
	var w domain.Writing
	err := r.db.WithContext(ctx).
		Select(writingColumns).
		Preload("Author").
		First(&w, query, arg).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &w, nil
}

func (r *WritingRepo) SlugsWithPrefix(ctx context.Context, prefix string) ([]string, error) {
	var slugs []string
	err := r.db.WithContext(ctx).Model(&domain.Writing{}).
		Where("slug LIKE ?", escapeLike(prefix)+"%").
		Pluck("slug", &slugs).Error
	return slugs, err
}

func (r *WritingRepo) List(ctx context.Context, f domain.WritingFilter) ([]domain.Writing, error) {
	q := r.db.WithContext(ctx).Model(&domain.Writing{}).
		Select(writingColumns).
		Joins("JOIN users ON users.id = writings.author_id").
		Where("writings.is_published = ?", true).
		Preload("Author")

	if f.Genre != "" {
		q = q.Where("writings.genre = ?", f.Genre)
	}
	if f.Mood != "" {
		q = q.Where("writings.mood = ?", f.Mood)
	}
	if f.AuthorID != "" {
		q = q.Where("writings.author_id = ?", f.AuthorID)
	}

	limit := f.Limit
	if limit <= 0 || limit > 100 {
		limit = 50
	}

	var ws []domain.Writing
	err := q.Order("users.is_founder DESC").
		Order("writings.created_at DESC").
		Limit(limit).
		Find(&ws).Error
	return ws, err
}

// escapeLike slug 里只有字母数字和连字符，但防御一下 LIKE 元字符
func escapeLike(s string) string {
	out := make([]byte, 0, len(s))
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '%', '_', '\\':
			out = append(out, '\\')
		}
		out = append(out, s[i])
	}
	return string(out)
}
