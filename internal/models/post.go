package models

import "time"

// Post is an authored entry with a tag set maintained through the post_tags
// join table. AuthorID is kept out of the public shape; clients see the
// embedded Author summary instead.
type Post struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Title     string    `gorm:"not null" json:"title"`
	Content   string    `gorm:"type:text;not null" json:"content"`
	Active    bool      `gorm:"not null;default:true" json:"active"`
	AuthorID  uint      `gorm:"not null;index" json:"-"`
	Author    User      `gorm:"foreignKey:AuthorID" json:"author"`
	Tags      []Tag     `gorm:"many2many:post_tags" json:"tags"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
