package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPermissionMatrixFailsClosed(t *testing.T) {
	matrix := PermissionMatrix{
		MenuCountries: {View: true, Create: true},
	}

	assert.True(t, matrix.Allows(MenuCountries, ActionView))
	assert.True(t, matrix.Allows(MenuCountries, ActionCreate))
	assert.False(t, matrix.Allows(MenuCountries, ActionUpdate))
	assert.False(t, matrix.Allows(MenuCountries, ActionDelete))

	// Unknown menus and actions are denied
	assert.False(t, matrix.Allows(MenuAccounts, ActionView))
	assert.False(t, matrix.Allows("bogus", ActionView))
	assert.False(t, matrix.Allows(MenuCountries, MenuAction("publish")))
}

func TestMatrixRoundTrip(t *testing.T) {
	matrix := PermissionMatrix{
		MenuCities:  {View: true, Update: true},
		MenuUploads: {View: true, Create: true},
	}

	encoded, err := EncodeMatrix(matrix)
	require.NoError(t, err)

	profile := &PermissionProfile{Matrix: encoded}
	decoded, err := profile.DecodeMatrix()
	require.NoError(t, err)
	assert.Equal(t, matrix, decoded)
}

func TestDecodeMatrixEmptyColumn(t *testing.T) {
	profile := &PermissionProfile{}
	matrix, err := profile.DecodeMatrix()
	require.NoError(t, err)
	assert.NotNil(t, matrix)
	assert.False(t, matrix.Allows(MenuCountries, ActionView))
}

func TestDecodeMatrixMalformed(t *testing.T) {
	profile := &PermissionProfile{Matrix: []byte("{nope")}
	_, err := profile.DecodeMatrix()
	assert.Error(t, err)
}

func TestDefaultMatrixForContentManager(t *testing.T) {
	matrix := DefaultMatrixForRole(UserRoleContentManager)

	for _, menu := range MenuIDs {
		if menu == MenuAccounts {
			assert.False(t, matrix.Allows(menu, ActionView), "accounts must stay locked")
			continue
		}
		assert.True(t, matrix.Allows(menu, ActionView), menu)
		assert.True(t, matrix.Allows(menu, ActionCreate), menu)
		assert.True(t, matrix.Allows(menu, ActionUpdate), menu)
		assert.True(t, matrix.Allows(menu, ActionDelete), menu)
	}
}

func TestDefaultMatrixForMarketer(t *testing.T) {
	matrix := DefaultMatrixForRole(UserRoleMarketer)

	// Marketers read everything but accounts and only write uploads
	for _, menu := range MenuIDs {
		if menu == MenuAccounts {
			assert.False(t, matrix.Allows(menu, ActionView))
			continue
		}
		assert.True(t, matrix.Allows(menu, ActionView), menu)
		if menu != MenuUploads {
			assert.False(t, matrix.Allows(menu, ActionCreate), menu)
			assert.False(t, matrix.Allows(menu, ActionDelete), menu)
		}
	}
	assert.True(t, matrix.Allows(MenuUploads, ActionCreate))
}

func TestIsValidUserRole(t *testing.T) {
	assert.True(t, IsValidUserRole(UserRoleSuperAdmin))
	assert.True(t, IsValidUserRole(UserRoleContentManager))
	assert.True(t, IsValidUserRole(UserRoleMarketer))
	assert.False(t, IsValidUserRole(UserRole("INTERN")))
}
