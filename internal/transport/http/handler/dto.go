package handler

import (
	"time"

	"magicwrites/internal/domain"
)

// 出参统一走 DTO，避免把密码哈希、作者邮箱之类带出去

type userDTO struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Email        string `json:"email"`
	Username     string `json:"username"`
	Bio          string `json:"bio"`
	ProfileImage string `json:"profileImage,omitempty"`
	IsFounder    bool   `json:"isFounder"`
}

type authorDTO struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Username     string `json:"username"`
	ProfileImage string `json:"profileImage,omitempty"`
	IsFounder    bool   `json:"isFounder"`
}

type writingDTO struct {
	ID              string     `json:"id"`
	Title           string     `json:"title"`
	Content         string     `json:"content"`
	Excerpt         string     `json:"excerpt"`
	Slug            string     `json:"slug"`
	Genre           string     `json:"genre,omitempty"`
	Mood            string     `json:"mood,omitempty"`
	IsPublished     bool       `json:"isPublished"`
	IsFeatured      bool       `json:"isFeatured"`
	Author          *authorDTO `json:"author,omitempty"`
	LikeCount       int64      `json:"likeCount"`
	ReflectionCount int64      `json:"reflectionCount"`
	CreatedAt       time.Time  `json:"createdAt"`
	UpdatedAt       time.Time  `json:"updatedAt"`
}

type reflectionDTO struct {
	ID        string     `json:"id"`
	Content   string     `json:"content"`
	WritingID string     `json:"writingId"`
	Author    *authorDTO `json:"author,omitempty"`
	CreatedAt time.Time  `json:"createdAt"`
}

func toUserDTO(u *domain.User) userDTO {
	return userDTO{
		ID:           u.ID,
		Name:         u.Name,
		Email:        u.Email,
		Username:     u.Username,
		Bio:          u.Bio,
		ProfileImage: u.ProfileImage,
		IsFounder:    u.IsFounder,
	}
}

func toAuthorDTO(u *domain.User) *authorDTO {
	if u == nil {
		return nil
	}
	return &authorDTO{
		ID:           u.ID,
		Name:         u.Name,
		Username:     u.Username,
		ProfileImage: u.ProfileImage,
		IsFounder:    u.IsFounder,
	}
}

func toWritingDTO(w *domain.Writing) writingDTO {
	return writingDTO{
		ID:              w.ID,
		Title:           w.Title,
		Content:         w.Content,
		Excerpt:         w.Excerpt,
		Slug:            w.Slug,
		Genre:           w.Genre,
		Mood:            w.Mood,
		IsPublished:     w.IsPublished,
		IsFeatured:      w.IsFeatured,
		Author:          toAuthorDTO(w.Author),
		LikeCount:       w.LikeCount,
		ReflectionCount: w.ReflectionCount,
		CreatedAt:       w.CreatedAt,
		UpdatedAt:       w.UpdatedAt,
	}
}

func toWritingDTOs(ws []domain.Writing) []writingDTO {
	out := make([]writingDTO, 0, len(ws))
	for i := range ws {
		out = append(out, toWritingDTO(&ws[i]))
	}
	return out
}

func toReflectionDTO(r *domain.Reflection) reflectionDTO {
	return reflectionDTO{
		ID:        r.ID,
		Content:   r.Content,
		WritingID: r.WritingID,
		Author:    toAuthorDTO(r.Author),
		CreatedAt: r.CreatedAt,
	}
}

func toReflectionDTOs(rs []domain.Reflection) []reflectionDTO {
	out := make([]reflectionDTO, 0, len(rs))
	for i := range rs {
		out = append(out, toReflectionDTO(&rs[i]))
	}
	return out
}
