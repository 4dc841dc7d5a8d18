package authorization

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rental_frontend/domain"
)

func loadPolicy(t *testing.T) *RolePolicy {
	t.Helper()
	policy, err := NewRolePolicy("../rbac_model.conf", "../policy.csv")
	require.NoError(t, err)
	return policy
}

func TestRolePolicy_RequiredRoles(t *testing.T) {
	policy := loadPolicy(t)

	assert.Equal(t, []domain.Role{domain.Admin}, policy.RequiredRoles("/admin/create"))
	assert.Equal(t, []domain.Role{domain.Landlord}, policy.RequiredRoles("/rental-posts/create"))
	assert.Equal(t, []domain.Role{domain.Landlord, domain.Admin}, policy.RequiredRoles("/contracts/{id}/terminate"))
	assert.Empty(t, policy.RequiredRoles("/profile"))
	assert.Empty(t, policy.RequiredRoles("/login"))
}

func TestRolePolicy_TerminateIsLandlordOrAdmin(t *testing.T) {
	policy := loadPolicy(t)

	assert.True(t, policy.Allows(domain.Landlord, "/contracts/{id}/terminate"))
	assert.True(t, policy.Allows(domain.Admin, "/contracts/{id}/terminate"))
	assert.False(t, policy.Allows(domain.Tenant, "/contracts/{id}/terminate"))
}

func TestRolePolicy_Guarded(t *testing.T) {
	policy := loadPolicy(t)

	assert.True(t, policy.Guarded("/rental-posts/{id}"))
	assert.True(t, policy.Guarded("/profile"))
	assert.False(t, policy.Guarded("/login"))
	assert.False(t, policy.Guarded("/unauthorized"))
}

func TestRolePolicy_Allows(t *testing.T) {
	policy := loadPolicy(t)

	assert.True(t, policy.Allows(domain.Tenant, "/contracts/create"))
	assert.False(t, policy.Allows(domain.Landlord, "/contracts/create"))
	assert.True(t, policy.Allows(domain.Landlord, "/profile"))
	assert.False(t, policy.Allows(domain.Admin, "/not-a-page"))
}

func TestRolePolicy_Navigation(t *testing.T) {
	policy := loadPolicy(t)

	nav := policy.Navigation(domain.Tenant)

	assert.Contains(t, nav, "/tenant")
	assert.Contains(t, nav, "/recommendations")
	assert.Contains(t, nav, "/contracts/my")
	assert.NotContains(t, nav, "/admin")
	assert.NotContains(t, nav, "/rental-posts/{id}")
}

func TestNewRolePolicy_MissingFiles(t *testing.T) {
	_, err := NewRolePolicy("missing.conf", "missing.csv")

	assert.Error(t, err)
}
