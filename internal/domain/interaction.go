package domain

import (
	"context"
	"time"
)

// Like (writingId, userId) 唯一，点赞开关的正确性就押在这个约束上
type Like struct {
	ID        string    `gorm:"primaryKey;size:32" json:"id"`
	WritingID string    `gorm:"size:32;not null;uniqueIndex:idx_likes_writing_user" json:"writingId"`
	UserID    string    `gorm:"size:32;not null;uniqueIndex:idx_likes_writing_user" json:"userId"`
	CreatedAt time.Time `json:"createdAt"`
}

func (Like) TableName() string { return "likes" }

// Reflection 只增不改不删
type Reflection struct {
	ID        string    `gorm:"primaryKey;size:32" json:"id"`
	Content   string    `gorm:"size:1000;not null" json:"content"`
	WritingID string    `gorm:"size:32;not null;index" json:"writingId"`
	AuthorID  string    `gorm:"size:32;not null" json:"authorId"`
	Author    *User     `gorm:"foreignKey:AuthorID" json:"author,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

func (Reflection) TableName() string { return "reflections" }

type InteractionRepository interface {
	// ToggleLike 删到了返回 false，插上了返回 true；整个翻转在一个事务里
	ToggleLike(ctx context.Context, writingID, userID string) (liked bool, err error)
	HasLiked(ctx context.Context, writingID, userID string) (bool, error)
	CreateReflection(ctx context.Context, r *Reflection) error
	// ListReflections 最新的在前，不分页
	ListReflections(ctx context.Context, writingID string) ([]Reflection, error)
}
