package rbac

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestAdministratorHoldsFullCatalog(t *testing.T) {
	roles := DefaultRoles()

	perms := roles.RolePermissions(RoleAdministrator)
	require.ElementsMatch(t, AllPermissions(), perms)

	// Stays true for every permission individually, so catalog growth cannot
	// silently leave the administrator behind.
	for _, p := range AllPermissions() {
		require.True(t, roles.HasPermission(RoleAdministrator, p), "administrator missing %s", p)
	}
}

func TestHasPermissionMatchesRoleSets(t *testing.T) {
	roles := DefaultRoles()

	for _, role := range roles.All() {
		granted := make(map[Permission]struct{}, len(role.Permissions))
		for _, p := range role.Permissions {
			granted[p] = struct{}{}
		}
		for _, p := range AllPermissions() {
			_, want := granted[p]
			require.Equal(t, want, roles.HasPermission(role.ID, p), "%s / %s", role.ID, p)
		}
	}
}

func TestUnknownRoleFailsClosed(t *testing.T) {
	roles := DefaultRoles()

	require.False(t, roles.HasPermission("visitor", PermChildrenView))
	require.False(t, roles.HasAnyPermission("visitor", AllPermissions()))
	require.Empty(t, roles.RolePermissions("visitor"))

	_, ok := roles.ByID("visitor")
	require.False(t, ok)

	// Vacuous truth holds even without a role.
	require.True(t, roles.HasAllPermissions("visitor", nil))
}

func TestEmptyRequirementSemanticsStayDistinct(t *testing.T) {
	roles := DefaultRoles()

	// These three must not be conflated: "any of nothing" is impossible,
	// "all of nothing" is vacuous, and a route declaring nothing is open.
	require.False(t, roles.HasAnyPermission(RolePractitioner, nil))
	require.False(t, roles.HasAnyPermission(RolePractitioner, []Permission{}))
	require.True(t, roles.HasAllPermissions(RolePractitioner, nil))
	require.True(t, roles.CanAccessRoute(RolePractitioner, nil))
	require.True(t, roles.CanAccessRoute(RolePractitioner, []Permission{}))
}

func TestCanAccessRouteDelegatesToAny(t *testing.T) {
	roles := DefaultRoles()

	required := []Permission{PermUsersDelete, PermSettingsEdit}
	require.False(t, roles.CanAccessRoute(RolePractitioner, required))
	require.True(t, roles.CanAccessRoute(RoleAdministrator, required))
}

func TestPractitionerCannotDeleteUsers(t *testing.T) {
	roles := DefaultRoles()

	require.False(t, roles.HasPermission(RolePractitioner, PermUsersDelete))
	require.True(t, roles.HasPermission(RoleAdministrator, PermUsersDelete))
}

func TestRoleSetsOnlyUseCatalogPermissions(t *testing.T) {
	catalog := make(map[Permission]struct{})
	for _, p := range AllPermissions() {
		catalog[p] = struct{}{}
	}
	for _, role := range DefaultRoles().All() {
		for _, p := range role.Permissions {
			_, ok := catalog[p]
			require.True(t, ok, "role %s grants %s outside the catalog", role.ID, p)
		}
	}
}

func TestHasAnyAndAllAgainstSubsets(t *testing.T) {
	roles := DefaultRoles()

	require.True(t, roles.HasAnyPermission(RoleSENCO, []Permission{PermUsersDelete, PermReportsExport}))
	require.False(t, roles.HasAllPermissions(RoleSENCO, []Permission{PermUsersDelete, PermReportsExport}))
	require.True(t, roles.HasAllPermissions(RoleSENCO, []Permission{PermReportsView, PermReportsExport}))
}
