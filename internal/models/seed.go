package models

import (
	"fmt"
	"os"

	"golang.org/x/crypto/bcrypt"

	console "atlas/internal/utils/logger"

	"gorm.io/gorm"
)

var log = console.New("SEEDER")

var (
	fullAccess = MenuPermissions{View: true, Create: true, Update: true, Delete: true}
	editAccess = MenuPermissions{View: true, Create: true, Update: true}
	viewAccess = MenuPermissions{View: true}
)

// DefaultMatrixForRole returns the stock permission matrix assigned when an
// account is created. Super admins carry no matrix; their role alone grants
// every action.
func DefaultMatrixForRole(role UserRole) PermissionMatrix {
	switch role {
	case UserRoleContentManager:
		matrix := PermissionMatrix{}
		for _, menuID := range MenuIDs {
			if menuID == MenuAccounts {
				continue
			}
			matrix[menuID] = fullAccess
		}
		return matrix
	case UserRoleMarketer:
		matrix := PermissionMatrix{}
		for _, menuID := range MenuIDs {
			if menuID == MenuAccounts {
				continue
			}
			matrix[menuID] = viewAccess
		}
		matrix[MenuUploads] = editAccess
		return matrix
	default:
		return PermissionMatrix{}
	}
}

// SeedProfile creates the permission profile for a user if one is missing.
func SeedProfile(db *gorm.DB, user *User) error {
	var count int64
	db.Model(&PermissionProfile{}).Where("user_id = ?", user.ID).Count(&count)
	if count > 0 {
		return nil
	}

	encoded, err := EncodeMatrix(DefaultMatrixForRole(user.Role))
	if err != nil {
		return fmt.Errorf("failed to encode default matrix: %v", err)
	}

	profile := PermissionProfile{
		UserID: user.ID,
		Role:   user.Role,
		Matrix: encoded,
	}
	if user.Role == UserRoleSuperAdmin {
		// The matrix is ignored for super admins; store it empty.
		profile.Matrix = nil
	}

	if err := db.Create(&profile).Error; err != nil {
		return fmt.Errorf("failed to create permission profile for %s: %v", user.Email, err)
	}

	log.Info("Created permission profile for %s (%s)", user.Email, user.Role)
	return nil
}

// CreateSuperAdminFromEnv bootstraps the first super-admin account. It is a
// no-op once any super admin exists.
func CreateSuperAdminFromEnv(db *gorm.DB) error {
	role := UserRoleSuperAdmin

	var count int64
	db.Model(&User{}).Where("role = ?", role).Count(&count)
	if count > 0 {
		return nil
	}

	email, ok := os.LookupEnv("SUPERADMIN_EMAIL")
	if !ok {
		return fmt.Errorf("SUPERADMIN_EMAIL not set")
	}

	password, ok := os.LookupEnv("SUPERADMIN_PASSWORD")
	if !ok {
		return fmt.Errorf("SUPERADMIN_PASSWORD not set")
	}

	name, ok := os.LookupEnv("SUPERADMIN_NAME")
	if !ok {
		return fmt.Errorf("SUPERADMIN_NAME not set")
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %v", err)
	}

	user := User{
		FirstName: name,
		LastName:  "",
		Email:     email,
		Role:      role,
		Password:  string(hashedPassword),
	}

	if err := db.Create(&user).Error; err != nil {
		return fmt.Errorf("failed to create superadmin user: %v", err)
	}

	return SeedProfile(db, &user)
}
