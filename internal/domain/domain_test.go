package domain

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseRole(t *testing.T) {
	role, err := ParseRole("ADMIN")
	require.NoError(t, err)
	assert.Equal(t, RoleAdmin, role)

	role, err = ParseRole("STAFF")
	require.NoError(t, err)
	assert.Equal(t, RoleStaff, role)

	for _, raw := range []string{"", "admin", "USER", "SUPERADMIN"} {
		_, err := ParseRole(raw)
		assert.Error(t, err, raw)
	}
}

func TestRoleLandingPath(t *testing.T) {
	assert.Equal(t, "/admin", RoleAdmin.LandingPath())
	assert.Equal(t, "/staff", RoleStaff.LandingPath())
	assert.Equal(t, "/login", Role("GUEST").LandingPath())
}

func TestIDAcceptsStringAndNumber(t *testing.T) {
	var out struct {
		A ID `json:"a"`
		B ID `json:"b"`
		C ID `json:"c"`
	}
	require.NoError(t, json.Unmarshal([]byte(`{"a":"abc","b":42,"c":null}`), &out))
	assert.Equal(t, ID("abc"), out.A)
	assert.Equal(t, ID("42"), out.B)
	assert.Equal(t, ID(""), out.C)

	assert.Error(t, json.Unmarshal([]byte(`{"a":{}}`), &out))
}
