package session

import (
	"context"
	"errors"

	"atlas/internal/models"

	"gorm.io/gorm"
)

// Profile is the resolved authorization record for an actor: a role plus a
// per-menu permission matrix.
type Profile struct {
	Role   models.UserRole
	Matrix models.PermissionMatrix
}

// Allows reports whether the profile grants action on menuID. Super admins
// pass unconditionally; everyone else falls through to the matrix, which
// denies unknown menus.
func (p *Profile) Allows(menuID string, action models.MenuAction) bool {
	if p == nil {
		return false
	}
	if p.Role == models.UserRoleSuperAdmin {
		return true
	}
	return p.Matrix.Allows(menuID, action)
}

// ProfileStore resolves permission profiles by actor identity. A missing
// record is not an error; it resolves to an all-deny profile.
type ProfileStore interface {
	Lookup(ctx context.Context, email string) (*Profile, error)
}

// GormProfileStore reads profiles from the accounts tables.
type GormProfileStore struct {
	db *gorm.DB
}

func NewGormProfileStore(db *gorm.DB) *GormProfileStore {
	return &GormProfileStore{db: db}
}

func (s *GormProfileStore) Lookup(ctx context.Context, email string) (*Profile, error) {
	user, err := models.GetUserByEmail(email, s.db.WithContext(ctx))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return &Profile{Role: models.UserRoleMarketer, Matrix: models.PermissionMatrix{}}, nil
		}
		return nil, err
	}

	record, err := models.GetProfileByUserID(user.ID, s.db.WithContext(ctx))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return &Profile{Role: user.Role, Matrix: models.PermissionMatrix{}}, nil
		}
		return nil, err
	}

	matrix, err := record.DecodeMatrix()
	if err != nil {
		return nil, err
	}
	return &Profile{Role: record.Role, Matrix: matrix}, nil
}
