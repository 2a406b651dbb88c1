package models

import "time"

// Login types.
const (
	LoginUser  = "user"
	LoginAdmin = "admin"
)

// User is an account that can place orders (user) or manage the shop (admin).
type User struct {
	ID        uint      `gorm:"column:user_id;primaryKey;autoIncrement" json:"user_id"`
	Username  string    `gorm:"size:100;uniqueIndex;not null"           json:"username"`
	Password  string    `gorm:"size:255;not null"                       json:"-"`
	Email     string    `gorm:"size:255;not null"                       json:"email"`
	LoginType string    `gorm:"size:20;not null;default:user"           json:"login_type"`
	CreatedAt time.Time `                                               json:"created_at"`
}

func (User) TableName() string { return "users" }

func (u User) IsAdmin() bool { return u.LoginType == LoginAdmin }
