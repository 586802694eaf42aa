package rbac

// Role identifiers. The set is fixed: role definitions never change at runtime.
const (
	RolePractitioner  = "practitioner"
	RoleRoomLeader    = "room-leader"
	RoleManager       = "manager"
	RoleAdministrator = "administrator"
	RoleSENCO         = "senco"
	RoleDeputyManager = "deputy-manager"
)

// Role represents a named permission grouping.
type Role struct {
	ID          string
	Name        string
	Description string
	Color       string
	Permissions []Permission
}

// Roles is an immutable role table answering pure authorization queries.
// Construct one with NewRoles or DefaultRoles and inject it where checks are
// needed; there is no package-level mutable state.
type Roles struct {
	byID  map[string]Role
	index map[string]map[Permission]struct{}
}

// NewRoles builds a role table from the given roles.
func NewRoles(roles ...Role) Roles {
	byID := make(map[string]Role, len(roles))
	index := make(map[string]map[Permission]struct{}, len(roles))
	for _, role := range roles {
		byID[role.ID] = role
		set := make(map[Permission]struct{}, len(role.Permissions))
		for _, p := range role.Permissions {
			set[p] = struct{}{}
		}
		index[role.ID] = set
	}
	return Roles{byID: byID, index: index}
}

// DefaultRoles returns the six built-in nursery roles. The administrator set is
// derived from the full catalog so it stays complete as the catalog grows.
func DefaultRoles() Roles {
	practitioner := []Permission{
		PermChildrenView,
		PermObservationsView, PermObservationsCreate, PermObservationsEdit,
		PermAssessmentsView,
		PermPlanningView,
		PermClassesView,
		PermCommunicationView,
	}
	roomLeader := append([]Permission{
		PermChildrenEdit,
		PermAssessmentsCreate,
		PermPlanningCreate, PermPlanningEdit,
		PermCommunicationSend,
		PermReportsView,
	}, practitioner...)
	manager := []Permission{
		PermChildrenView, PermChildrenCreate, PermChildrenEdit, PermChildrenDelete,
		PermObservationsView, PermObservationsCreate, PermObservationsEdit, PermObservationsDelete,
		PermAssessmentsView, PermAssessmentsCreate, PermAssessmentsEdit,
		PermPlanningView, PermPlanningCreate, PermPlanningEdit, PermPlanningDelete,
		PermClassesView, PermClassesEdit,
		PermCommunicationView, PermCommunicationSend,
		PermReportsView, PermReportsExport,
		PermUsersView, PermUsersCreate, PermUsersEdit,
		PermSettingsView,
	}
	deputyManager := []Permission{
		PermChildrenView, PermChildrenCreate, PermChildrenEdit,
		PermObservationsView, PermObservationsCreate, PermObservationsEdit, PermObservationsDelete,
		PermAssessmentsView, PermAssessmentsCreate, PermAssessmentsEdit,
		PermPlanningView, PermPlanningCreate, PermPlanningEdit, PermPlanningDelete,
		PermClassesView, PermClassesEdit,
		PermCommunicationView, PermCommunicationSend,
		PermReportsView, PermReportsExport,
		PermUsersView,
	}
	senco := []Permission{
		PermChildrenView, PermChildrenEdit,
		PermObservationsView, PermObservationsCreate, PermObservationsEdit, PermObservationsDelete,
		PermAssessmentsView, PermAssessmentsCreate, PermAssessmentsEdit,
		PermPlanningView,
		PermClassesView,
		PermCommunicationView, PermCommunicationSend,
		PermReportsView, PermReportsExport,
	}

	return NewRoles(
		Role{
			ID:          RolePractitioner,
			Name:        "Practitioner",
			Description: "Day-to-day observations and assessments for assigned children",
			Color:       "green",
			Permissions: practitioner,
		},
		Role{
			ID:          RoleRoomLeader,
			Name:        "Room Leader",
			Description: "Leads a room: planning, child records and parent messages",
			Color:       "teal",
			Permissions: roomLeader,
		},
		Role{
			ID:          RoleManager,
			Name:        "Manager",
			Description: "Nursery-wide management including staff accounts",
			Color:       "blue",
			Permissions: manager,
		},
		Role{
			ID:          RoleAdministrator,
			Name:        "Administrator",
			Description: "Full access to every feature",
			Color:       "purple",
			Permissions: AllPermissions(),
		},
		Role{
			ID:          RoleSENCO,
			Name:        "SENCO",
			Description: "Special educational needs coordination and reporting",
			Color:       "orange",
			Permissions: senco,
		},
		Role{
			ID:          RoleDeputyManager,
			Name:        "Deputy Manager",
			Description: "Deputises for the manager without account administration",
			Color:       "indigo",
			Permissions: deputyManager,
		},
	)
}

// ByID looks up a role. The second return is false for unknown ids; callers
// treat "no role" as "no permissions".
func (r Roles) ByID(id string) (Role, bool) {
	role, ok := r.byID[id]
	return role, ok
}

// All returns every role in the table.
func (r Roles) All() []Role {
	roles := make([]Role, 0, len(r.byID))
	for _, role := range r.byID {
		roles = append(roles, role)
	}
	return roles
}

// HasPermission reports whether the role grants the permission. Unknown roles
// fail closed.
func (r Roles) HasPermission(roleID string, p Permission) bool {
	set, ok := r.index[roleID]
	if !ok {
		return false
	}
	_, ok = set[p]
	return ok
}

// HasAnyPermission reports whether the role grants at least one of the given
// permissions. An empty list can never be satisfied and yields false; routes
// with no declared requirement go through CanAccessRoute instead.
func (r Roles) HasAnyPermission(roleID string, perms []Permission) bool {
	for _, p := range perms {
		if r.HasPermission(roleID, p) {
			return true
		}
	}
	return false
}

// HasAllPermissions reports whether the role grants every given permission.
// An empty list is vacuously true.
func (r Roles) HasAllPermissions(roleID string, perms []Permission) bool {
	for _, p := range perms {
		if !r.HasPermission(roleID, p) {
			return false
		}
	}
	return true
}

// RolePermissions returns the role's full permission set, empty for unknown
// roles.
func (r Roles) RolePermissions(roleID string) []Permission {
	role, ok := r.byID[roleID]
	if !ok {
		return nil
	}
	perms := make([]Permission, len(role.Permissions))
	copy(perms, role.Permissions)
	return perms
}

// CanAccessRoute decides route access: a route declaring no required
// permissions is open to any authenticated role, otherwise at least one
// required permission must be granted.
func (r Roles) CanAccessRoute(roleID string, required []Permission) bool {
	if len(required) == 0 {
		return true
	}
	return r.HasAnyPermission(roleID, required)
}
