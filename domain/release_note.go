package domain

import (
	"time"
)

type ReleaseNote struct {
	ID          uint64    `gorm:"primaryKey;autoIncrement" json:"id"`
	Version     string    `gorm:"column:version;not null" json:"version"`
	Title       string    `gorm:"column:title;type:text;not null" json:"title"`
	Body        string    `gorm:"column:body;type:text" json:"body"`
	PublishedAt time.Time `gorm:"column:published_at" json:"published_at"`
	CreatedAt   time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}

func (ReleaseNote) TableName() string {
	return "release_notes"
}
