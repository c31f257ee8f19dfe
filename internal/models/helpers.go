package models

import (
	"gorm.io/gorm"
)

// GetUserByEmail retrieves an active user by email.
func GetUserByEmail(email string, db *gorm.DB) (*User, error) {
	user := &User{}
	if err := db.Where("email = ? AND is_deleted = false", email).First(user).Error; err != nil {
		return nil, err
	}
	return user, nil
}

// GetProfileByUserID retrieves the permission profile for a user.
func GetProfileByUserID(userID string, db *gorm.DB) (*PermissionProfile, error) {
	profile := &PermissionProfile{}
	if err := db.Where("user_id = ? AND is_deleted = false", userID).First(profile).Error; err != nil {
		return nil, err
	}
	return profile, nil
}

// GetUploadByKey retrieves an upload record by its blob-store key.
func GetUploadByKey(key string, db *gorm.DB) (*Upload, error) {
	upload := &Upload{}
	if err := db.Where("key = ? AND is_deleted = false", key).First(upload).Error; err != nil {
		return nil, err
	}
	return upload, nil
}
