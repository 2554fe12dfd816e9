package domain

import "time"

type User struct {
	ID           int64     `json:"id" gorm:"primaryKey"`
	Firstname    string    `json:"firstname" gorm:"type:text;not null"`
	Surname      string    `json:"surname" gorm:"type:text;not null"`
	Email        string    `json:"email" gorm:"type:text;not null;uniqueIndex:ux_users_email"`
	PasswordHash string    `json:"-" gorm:"column:password_hash;type:text;not null"`
	CreatedAt    time.Time `json:"created_at" gorm:"not null;default:CURRENT_TIMESTAMP"`
	UpdatedAt    time.Time `json:"updated_at" gorm:"not null;default:CURRENT_TIMESTAMP"`
}

func (User) TableName() string { return "users" }
