package session

import (
	"testing"

	"atlas/internal/models"

	"github.com/stretchr/testify/assert"
)

func TestProfileAllowsNilReceiver(t *testing.T) {
	var p *Profile
	assert.False(t, p.Allows(models.MenuCities, models.ActionView))
}

func TestProfileSuperAdminBypassesMatrix(t *testing.T) {
	p := &Profile{Role: models.UserRoleSuperAdmin}
	for _, menu := range models.MenuIDs {
		for _, action := range []models.MenuAction{models.ActionView, models.ActionCreate, models.ActionUpdate, models.ActionDelete} {
			assert.True(t, p.Allows(menu, action), "%s/%s", menu, action)
		}
	}
}

func TestProfileMatrixFailsClosed(t *testing.T) {
	p := &Profile{
		Role: models.UserRoleMarketer,
		Matrix: models.PermissionMatrix{
			models.MenuUploads: {View: true, Create: true},
		},
	}

	assert.True(t, p.Allows(models.MenuUploads, models.ActionView))
	assert.True(t, p.Allows(models.MenuUploads, models.ActionCreate))
	assert.False(t, p.Allows(models.MenuUploads, models.ActionDelete))
	assert.False(t, p.Allows(models.MenuAccounts, models.ActionView))
	assert.False(t, p.Allows("nonexistent", models.ActionView))
}
