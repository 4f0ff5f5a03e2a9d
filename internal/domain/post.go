package domain

import (
	"context"
	"time"
)

type Post struct {
	ID        string    `gorm:"primaryKey;size:36" json:"id"`
	Title     string    `gorm:"size:255;not null" json:"title"`
	Content   string    `gorm:"type:text;not null" json:"content"`
	AuthorID  string    `gorm:"size:36;not null;index" json:"-"`
	Author    *User     `gorm:"foreignKey:AuthorID" json:"author,omitempty"`
	IsDraft   bool      `gorm:"not null;default:false" json:"isDraft"`
	CreatedAt time.Time `gorm:"index" json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (Post) TableName() string { return "posts" }

// 未找到时返回 (nil, nil)；List 按 created_at 倒序，作者已填充；
// UpdateContent/Delete 返回是否命中记录
type PostRepository interface {
	List(ctx context.Context) ([]Post, error)
	FindByID(ctx context.Context, id string) (*Post, error)
	Create(ctx context.Context, p *Post) error
	UpdateContent(ctx context.Context, id, title, content string, at time.Time) (bool, error)
	Delete(ctx context.Context, id string) (bool, error)
}
