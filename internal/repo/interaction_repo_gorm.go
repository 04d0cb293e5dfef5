package repo

import (
	"context"

	"gorm.io/gorm"

	"magicwrites/internal/domain"
	"magicwrites/pkg/utils"
)

type InteractionRepo struct{ db *gorm.DB }

func NewInteractionRepo(db *gorm.DB) *InteractionRepo { return &InteractionRepo{db: db} }

// ToggleLike 单事务内先删后插；并发双击时唯一约束兜底
func (r *InteractionRepo) ToggleLike(ctx context.Context, writingID, userID string) (bool, error) {
	liked := false
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Where("writing_id = ? AND user_id = ?", writingID, userID).
			Delete(&domain.Like{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected > 0 {
			liked = false
			return nil
		}
		l := domain.Like{ID: utils.NewID(), WritingID: writingID, UserID: userID}
		if err := tx.Create(&l).Error; err != nil {
			if isDupKey(err) {
				// 并发插入已经点上了，状态与本次请求意图一致
				liked = true
				return nil
			}
			return err
		}
		liked = true
		return nil
	})
	return liked, err
}

func (r *InteractionRepo) HasLiked(ctx context.Context, writingID, userID string) (bool, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&domain.Like{}).
		Where("writing_id = ? AND user_id = ?", writingID, userID).
		Count(&n).Error
	return n > 0, err
}

func (r *InteractionRepo) CreateReflection(ctx context.Context, ref *domain.Reflection) error {
	return r.db.WithContext(ctx).Create(ref).Error
}

func (r *InteractionRepo) ListReflections(ctx context.Context, writingID string) ([]domain.Reflection, error) {
	var refs []domain.Reflection
	err := r.db.WithContext(ctx).
		Where("writing_id = ?", writingID).
		Preload("Author").
		Order("created_at DESC").
		Find(&refs).Error
	return refs, err
}
