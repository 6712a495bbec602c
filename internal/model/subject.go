package model

import "time"

// Subject is immutable reference data used to categorize questions.
type Subject struct {
	ID          uint      `gorm:"primarykey" json:"id"`
	Name        string    `json:"name" gorm:"size:64;not null;uniqueIndex"`
	Description string    `json:"description,omitempty" gorm:"type:text"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
