package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"magicwrites/internal/core/cache"
	"magicwrites/internal/domain"
	"magicwrites/pkg/utils"
)

const (
	excerptLen      = 200
	slugMaxAttempts = 3
	feedKeyPrefix   = "feed:"
)

type WritingService struct {
	writings domain.WritingRepository
	cache    *cache.Cache // 可为 nil（未配置 redis 时）
	feedTTL  time.Duration
}

func NewWritingService(writings domain.WritingRepository, c *cache.Cache, feedTTL time.Duration) *WritingService {
	return &WritingService{writings: writings, cache: c, feedTTL: feedTTL}
}

type PublishInput struct {
	AuthorID string
	Title    string
	Content  string
	Genre    string
	Mood     string
}

func (s *WritingService) Publish(ctx context.Context, in PublishInput) (*domain.Writing, error) {
	title := strings.TrimSpace(in.Title)
	if title == "" {
		return nil, BadRequest("Title is required")
	}
	if utf8.RuneCountInString(title) > 200 {
		return nil, BadRequest("Title must be at most 200 characters")
	}
	if utf8.RuneCountInString(in.Content) < 10 {
		return nil, BadRequest("Content must be at least 10 characters")
	}

	base := utils.Slugify(title)
	if base == "" {
		// 标题全是符号/表情之类，slug 退化成固定词根
		base = "writing"
	}

	// 读已有 slug → 选后缀 → 插入；撞了唯一索引就重读重试
	for attempt := 0; attempt < slugMaxAttempts; attempt++ {
		existing, err := s.writings.SlugsWithPrefix(ctx, base)
		if err != nil {
			return nil, Internal("publish failed", err)
		}
		w := &domain.Writing{
			ID:          utils.NewID(),
			Title:       title,
			Content:     in.Content,
			Excerpt:     utils.Truncate(in.Content, excerptLen),
			Slug:        utils.UniqueSlug(base, existing),
			Genre:       strings.TrimSpace(in.Genre),
			Mood:        strings.TrimSpace(in.Mood),
			IsPublished: true,
			AuthorID:    in.AuthorID,
		}
		err = s.writings.Create(ctx, w)
		if errors.Is(err, domain.ErrDuplicateKey) {
			continue
		}
		if err != nil {
			return nil, Internal("publish failed", err)
		}
		s.invalidateFeed(ctx)
		return s.reload(ctx, w)
	}
	return nil, Conflict("Could not allocate a unique slug, please retry")
}

func (s *WritingService) GetBySlug(ctx context.Context, slug string) (*domain.Writing, error) {
	w, err := s.writings.FindBySlug(ctx, slug)
	if err != nil {
		return nil, Internal("load writing failed", err)
	}
	if w == nil || !w.IsPublished {
		return nil, NotFound("Writing not found")
	}
	return w, nil
}

func (s *WritingService) List(ctx context.Context, f domain.WritingFilter) ([]domain.Writing, error) {
	if s.cache == nil {
		return s.listDB(ctx, f)
	}
	key := fmt.Sprintf("%sg=%s&m=%s&a=%s&l=%d", feedKeyPrefix, f.Genre, f.Mood, f.AuthorID, f.Limit)
	out, err := cache.GetOrLoadJSON[[]domain.Writing](s.cache, ctx, key, s.feedTTL,
		func(ctx context.Context) (*[]domain.Writing, error) {
			ws, e := s.listDB(ctx, f)
			if e != nil {
				return nil, e
			}
			return &ws, nil
		})
	if err != nil {
		return nil, err
	}
	if out == nil {
		return []domain.Writing{}, nil
	}
	return *out, nil
}

func (s *WritingService) listDB(ctx context.Context, f domain.WritingFilter) ([]domain.Writing, error) {
	ws, err := s.writings.List(ctx, f)
	if err != nil {
		return nil, Internal("list writings failed", err)
	}
	return ws, nil
}

// reload 带回作者和计数，发布接口直接能渲染
func (s *WritingService) reload(ctx context.Context, w *domain.Writing) (*domain.Writing, error) {
	full, err := s.writings.FindByID(ctx, w.ID)
	if err != nil || full == nil {
		// 刚插入的行读不回来就退回裸对象
		return w, nil
	}
	return full, nil
}

func (s *WritingService) invalidateFeed(ctx context.Context) {
	if s.cache != nil {
		s.cache.InvalidatePrefix(ctx, feedKeyPrefix)
	}
}
