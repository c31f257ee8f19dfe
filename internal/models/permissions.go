package models

import (
	"encoding/json"

	"gorm.io/datatypes"
)

// Menu identifiers gate one functional area of the back office each.
const (
	MenuCountries   = "countries"
	MenuCities      = "cities"
	MenuRegions     = "regions"
	MenuMuseums     = "museums"
	MenuRestaurants = "restaurants"
	MenuGolf        = "golf"
	MenuShopping    = "shopping"
	MenuItineraries = "itineraries"
	MenuAccounts    = "accounts"
	MenuUploads     = "uploads"
)

// MenuIDs lists every gated functional area, in display order.
var MenuIDs = []string{
	MenuCountries,
	MenuCities,
	MenuRegions,
	MenuMuseums,
	MenuRestaurants,
	MenuGolf,
	MenuShopping,
	MenuItineraries,
	MenuAccounts,
	MenuUploads,
}

type MenuAction string

const (
	ActionView   MenuAction = "view"
	ActionCreate MenuAction = "create"
	ActionUpdate MenuAction = "update"
	ActionDelete MenuAction = "delete"
)

// MenuPermissions is the per-menu 4-tuple of allowed actions.
type MenuPermissions struct {
	View   bool `json:"view"`
	Create bool `json:"create"`
	Update bool `json:"update"`
	Delete bool `json:"delete"`
}

// PermissionMatrix maps a menu id to its allowed actions. A missing menu id
// denies every action.
type PermissionMatrix map[string]MenuPermissions

// Allows reports whether the matrix grants action on menuID. Unknown menus
// and unknown actions are denied.
func (m PermissionMatrix) Allows(menuID string, action MenuAction) bool {
	perms, ok := m[menuID]
	if !ok {
		return false
	}
	switch action {
	case ActionView:
		return perms.View
	case ActionCreate:
		return perms.Create
	case ActionUpdate:
		return perms.Update
	case ActionDelete:
		return perms.Delete
	default:
		return false
	}
}

// PermissionProfile is the per-actor authorization record. The matrix is
// stored as jsonb; it may be empty for super admins, whose role alone grants
// every action.
type PermissionProfile struct {
	Base
	UserID string         `gorm:"type:uuid;uniqueIndex;not null" json:"userId" validate:"required,uuid"`
	User   *User          `json:"user,omitempty"`
	Role   UserRole       `gorm:"not null;default:'MARKETER'" json:"role" validate:"required,actor_role"`
	Matrix datatypes.JSON `gorm:"type:jsonb" json:"matrix,omitempty"`
}

// DecodeMatrix unpacks the stored jsonb matrix. A NULL column decodes to an
// empty (all-deny) matrix.
func (p *PermissionProfile) DecodeMatrix() (PermissionMatrix, error) {
	if len(p.Matrix) == 0 {
		return PermissionMatrix{}, nil
	}
	var matrix PermissionMatrix
	if err := json.Unmarshal(p.Matrix, &matrix); err != nil {
		return nil, err
	}
	return matrix, nil
}

// EncodeMatrix packs a matrix for storage.
func EncodeMatrix(matrix PermissionMatrix) (datatypes.JSON, error) {
	data, err := json.Marshal(matrix)
	if err != nil {
		return nil, err
	}
	return data, nil
}
