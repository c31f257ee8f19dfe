package models

import "time"

type User struct {
	Base
	Email     string             `gorm:"uniqueIndex;not null" json:"email" validate:"required,email"`
	Password  string             `gorm:"not null" json:"-"`
	FirstName string             `json:"firstName"`
	LastName  string             `json:"lastName"`
	Role      UserRole           `gorm:"not null;default:'MARKETER'" json:"role" validate:"required,actor_role"`
	Profile   *PermissionProfile `gorm:"foreignKey:UserID" json:"profile,omitempty"`
	Uploads   []Upload           `gorm:"foreignKey:UserID" json:"uploads,omitempty"`
}

type AuthTransaction struct {
	Base
	UserID    string    `gorm:"type:uuid;not null" json:"userId"`
	User      *User     `json:"user,omitempty"`
	Token     string    `gorm:"not null" json:"token"`
	Refresh   string    `gorm:"not null" json:"refresh"`
	IPAddress string    `json:"ipAddress"`
	UserAgent string    `json:"userAgent"`
	ExpiresAt time.Time `json:"expiresAt"`
}
