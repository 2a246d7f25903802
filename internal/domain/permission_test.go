package domain_test

import (
	"testing"

	"go-staffing-backend/internal/domain"

	"github.com/stretchr/testify/assert"
)

func TestResolveCapabilities(t *testing.T) {
	t.Run("Should grant nothing for an empty role set", func(t *testing.T) {
		caps := domain.ResolveCapabilities(nil)
		assert.Equal(t, domain.Capabilities{}, caps)
	})

	t.Run("Should grant nothing for unknown roles", func(t *testing.T) {
		caps := domain.ResolveCapabilities([]domain.Role{"janitor", "intern"})
		assert.Equal(t, domain.Capabilities{}, caps)
	})

	t.Run("Should OR-merge capabilities across roles", func(t *testing.T) {
		sales := domain.ResolveCapabilities([]domain.Role{domain.RoleSales})
		assert.True(t, sales.CanManageRequirements)
		assert.False(t, sales.CanManageCandidates)

		merged := domain.ResolveCapabilities([]domain.Role{domain.RoleSales, domain.RoleRecruiter})
		assert.True(t, merged.CanManageRequirements)
		assert.True(t, merged.CanManageCandidates)
		assert.True(t, merged.CanManageInterviews)
		assert.False(t, merged.CanManageOffers)
	})

	t.Run("Should never revoke a capability by adding a role", func(t *testing.T) {
		base := domain.ResolveCapabilities([]domain.Role{domain.RoleHR})
		extended := domain.ResolveCapabilities([]domain.Role{domain.RoleHR, domain.RoleSales})
		assert.True(t, base.CanHRApprove)
		assert.True(t, extended.CanHRApprove)
		assert.True(t, extended.CanManageRequirements)
	})

	t.Run("Should reserve hard delete for superadmins", func(t *testing.T) {
		for _, role := range []domain.Role{domain.RoleAdmin, domain.RoleHR, domain.RoleDirector, domain.RoleManager, domain.RoleSales, domain.RoleRecruiter} {
			caps := domain.ResolveCapabilities([]domain.Role{role})
			assert.False(t, caps.CanHardDelete, "%s must not hard delete", role)
		}
		assert.True(t, domain.ResolveCapabilities([]domain.Role{domain.RoleSuperAdmin}).CanHardDelete)
	})

	t.Run("Should compute identity flags from membership, not merged grants", func(t *testing.T) {
		caps := domain.ResolveCapabilities([]domain.Role{domain.RoleDirector, domain.RoleHR})
		assert.True(t, caps.IsDirector)
		assert.True(t, caps.IsHR)
		assert.False(t, caps.IsAdmin)
		assert.False(t, caps.IsSuperAdmin)
	})
}

func TestParseRole(t *testing.T) {
	role, ok := domain.ParseRole("hr")
	assert.True(t, ok)
	assert.Equal(t, domain.RoleHR, role)

	_, ok = domain.ParseRole("HR")
	assert.False(t, ok, "role tags are case sensitive")

	_, ok = domain.ParseRole("")
	assert.False(t, ok)
}
