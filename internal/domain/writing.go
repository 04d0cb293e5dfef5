package domain

import (
	"context"
	"time"
)

type Writing struct {
	ID          string `gorm:"primaryKey;size:32" json:"id"`
	Title       string `gorm:"size:200;not null" json:"title"`
	Content     string `gorm:"type:text;not null" json:"content"`
	Excerpt     string `gorm:"size:255" json:"excerpt"`
	Slug        string `gorm:"uniqueIndex;size:255;not null" json:"slug"` // 创建后不变
	Genre       string `gorm:"size:64" json:"genre,omitempty"`
	Mood        string `gorm:"size:64" json:"mood,omitempty"`
	IsPublished bool   `gorm:"not null;default:true" json:"isPublished"`
	IsFeatured  bool   `gorm:"not null;default:false" json:"isFeatured"`
	AuthorID    string `gorm:"size:32;not null;index" json:"authorId"`
	Author      *User  `gorm:"foreignKey:AuthorID" json:"author,omitempty"`

	// 查询时用子查询算出来，不落库
	LikeCount       int64 `gorm:"->;-:migration" json:"likeCount"`
	ReflectionCount int64 `gorm:"->;-:migration" json:"reflectionCount"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (Writing) TableName() string { return "writings" }

type WritingFilter struct {
	Genre    string
	Mood     string
	AuthorID string
	Limit    int
}

type WritingRepository interface {
	Create(ctx context.Context, w *Writing) error
	FindByID(ctx context.Context, id string) (*Writing, error)
	FindBySlug(ctx context.Context, slug string) (*Writing, error)
	// SlugsWithPrefix 返回所有以 prefix 开头的已用 slug
	SlugsWithPrefix(ctx context.Context, prefix string) ([]string, error)
	// List 只返回已发布内容；创始人的排最前，其余按创建时间倒序
	List(ctx context.Context, f WritingFilter) ([]Writing, error)
}
