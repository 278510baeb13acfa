package models

// Tag is a globally unique label. Tags are created lazily the first time a
// post references them and are never deleted, even when orphaned.
type Tag struct {
	ID   uint   `gorm:"primaryKey" json:"id"`
	Name string `gorm:"uniqueIndex;not null" json:"name"`
}
