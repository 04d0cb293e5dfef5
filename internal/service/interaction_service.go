package service

import (
	"context"
	"strings"
	"unicode/utf8"

	"magicwrites/internal/domain"
	"magicwrites/pkg/utils"
)

const reflectionMaxLen = 1000

type InteractionService struct {
	interactions domain.InteractionRepository
	writings     domain.WritingRepository
	users        domain.UserRepository
}

func NewInteractionService(i domain.InteractionRepository, w domain.WritingRepository, u domain.UserRepository) *InteractionService {
	return &InteractionService{interactions: i, writings: w, users: u}
}

// ToggleLike 每次调用翻转一次状态；连点两次回到原状
func (s *InteractionService) ToggleLike(ctx context.Context, writingID, userID string) (bool, error) {
	if err := s.ensureWriting(ctx, writingID); err != nil {
		return false, err
	}
	liked, err := s.interactions.ToggleLike(ctx, writingID, userID)
	if err != nil {
		return false, Internal("toggle like failed", err)
	}
	return liked, nil
}

// LikedStatus 匿名访客一律 false，不报错
func (s *InteractionService) LikedStatus(ctx context.Context, writingID, userID string) (bool, error) {
	if userID == "" {
		return false, nil
	}
	liked, err := s.interactions.HasLiked(ctx, writingID, userID)
	if err != nil {
		return false, Internal("liked status failed", err)
	}
	return liked, nil
}

func (s *InteractionService) AddReflection(ctx context.Context, writingID, authorID, content string) (*domain.Reflection, error) {
	if strings.TrimSpace(content) == "" {
		return nil, BadRequest("Reflection cannot be empty")
	}
	if utf8.RuneCountInString(content) > reflectionMaxLen {
		return nil, BadRequest("Reflection must be at most 1000 characters")
	}
	if err := s.ensureWriting(ctx, writingID); err != nil {
		return nil, err
	}

	ref := &domain.Reflection{
		ID:        utils.NewID(),
		Content:   content,
		WritingID: writingID,
		AuthorID:  authorID,
	}
	if err := s.interactions.CreateReflection(ctx, ref); err != nil {
		return nil, Internal("create reflection failed", err)
	}
	// 作者信息带回去，前端不用再拉一次
	if author, err := s.users.FindByID(ctx, authorID); err == nil && author != nil {
		ref.Author = author
	}
	return ref, nil
}

func (s *InteractionService) ListReflections(ctx context.Context, writingID string) ([]domain.Reflection, error) {
	refs, err := s.interactions.ListReflections(ctx, writingID)
	if err != nil {
		return nil, Internal("list reflections failed", err)
	}
	return refs, nil
}

func (s *InteractionService) ensureWriting(ctx context.Context, writingID string) error {
	w, err := s.writings.FindByID(ctx, writingID)
	if err != nil {
		return Internal("load writing failed", err)
	}
	if w == nil {
		return NotFound("Writing not found")
	}
	return nil
}
