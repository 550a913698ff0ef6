package domain

import (
	"time"
)

// ScoringSetting is one key/value row of the scoring configuration store.
type ScoringSetting struct {
	Key       string    `gorm:"column:key;primaryKey" json:"key"`
	Value     string    `gorm:"column:value;not null" json:"value"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (ScoringSetting) TableName() string {
	return "scoring_settings"
}
