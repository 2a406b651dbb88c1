package models

import "time"

type Feedback struct {
	ID        uint      `gorm:"column:feedback_id;primaryKey;autoIncrement" json:"feedback_id"`
	Name      string    `gorm:"size:255;not null"                           json:"name"`
	Email     string    `gorm:"size:255;not null"                           json:"email"`
	Message   string    `gorm:"type:text;not null"                          json:"message"`
	CreatedAt time.Time `                                                   json:"created_at"`
}

func (Feedback) TableName() string { return "feedback" }
