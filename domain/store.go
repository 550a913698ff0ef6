package domain

import (
	"time"
)

type Store struct {
	ID        uint64    `gorm:"primaryKey;autoIncrement" json:"id"`
	StoreName string    `gorm:"column:store_name;type:text;not null" json:"store_name"`
	Address   string    `gorm:"column:address;type:text" json:"address"`
	Notes     string    `gorm:"column:notes;type:text" json:"notes,omitempty"`
	CreatedAt time.Time `gorm:"column:created_at" json:"created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at" json:"updated_at"`
}

func (Store) TableName() string {
	return "stores"
}
