// Package rbac defines the static permission catalog, the role table and the
// authorization checks used by every guarded route in the application.
package rbac

// Permission identifies an atomic capability as "<group>:<action>".
type Permission string

// Child records.
const (
	PermChildrenView   Permission = "children:view"
	PermChildrenCreate Permission = "children:create"
	PermChildrenEdit   Permission = "children:edit"
	PermChildrenDelete Permission = "children:delete"
)

// Observations.
const (
	PermObservationsView   Permission = "observations:view"
	PermObservationsCreate Permission = "observations:create"
	PermObservationsEdit   Permission = "observations:edit"
	PermObservationsDelete Permission = "observations:delete"
)

// Assessments.
const (
	PermAssessmentsView   Permission = "assessments:view"
	PermAssessmentsCreate Permission = "assessments:create"
	PermAssessmentsEdit   Permission = "assessments:edit"
)

// Planning calendar.
const (
	PermPlanningView   Permission = "planning:view"
	PermPlanningCreate Permission = "planning:create"
	PermPlanningEdit   Permission = "planning:edit"
	PermPlanningDelete Permission = "planning:delete"
)

// Rooms and cohorts.
const (
	PermClassesView Permission = "classes:view"
	PermClassesEdit Permission = "classes:edit"
)

// Parent communication.
const (
	PermCommunicationView Permission = "communication:view"
	PermCommunicationSend Permission = "communication:send"
)

// Reports.
const (
	PermReportsView   Permission = "reports:view"
	PermReportsExport Permission = "reports:export"
)

// User management.
const (
	PermUsersView   Permission = "users:view"
	PermUsersCreate Permission = "users:create"
	PermUsersEdit   Permission = "users:edit"
	PermUsersDelete Permission = "users:delete"
)

// Settings.
const (
	PermSettingsView Permission = "settings:view"
	PermSettingsEdit Permission = "settings:edit"
)

// ChildrenScopes lists permissions for the children feature area.
func ChildrenScopes() []Permission {
	return []Permission{PermChildrenView, PermChildrenCreate, PermChildrenEdit, PermChildrenDelete}
}

// ObservationScopes lists permissions for the observations feature area.
func ObservationScopes() []Permission {
	return []Permission{PermObservationsView, PermObservationsCreate, PermObservationsEdit, PermObservationsDelete}
}

// AssessmentScopes lists permissions for the assessments feature area.
func AssessmentScopes() []Permission {
	return []Permission{PermAssessmentsView, PermAssessmentsCreate, PermAssessmentsEdit}
}

// PlanningScopes lists permissions for the planning feature area.
func PlanningScopes() []Permission {
	return []Permission{PermPlanningView, PermPlanningCreate, PermPlanningEdit, PermPlanningDelete}
}

// ClassScopes lists permissions for rooms and cohorts.
func ClassScopes() []Permission {
	return []Permission{PermClassesView, PermClassesEdit}
}

// CommunicationScopes lists permissions for parent communication.
func CommunicationScopes() []Permission {
	return []Permission{PermCommunicationView, PermCommunicationSend}
}

// ReportScopes lists permissions for reporting.
func ReportScopes() []Permission {
	return []Permission{PermReportsView, PermReportsExport}
}

// UserScopes lists permissions for user management.
func UserScopes() []Permission {
	return []Permission{PermUsersView, PermUsersCreate, PermUsersEdit, PermUsersDelete}
}

// SettingsScopes lists permissions for application settings.
func SettingsScopes() []Permission {
	return []Permission{PermSettingsView, PermSettingsEdit}
}

// AllPermissions returns the full catalog, derived from the per-group slices so
// new groups cannot be forgotten by a hand-maintained literal.
func AllPermissions() []Permission {
	groups := [][]Permission{
		ChildrenScopes(),
		ObservationScopes(),
		AssessmentScopes(),
		PlanningScopes(),
		ClassScopes(),
		CommunicationScopes(),
		ReportScopes(),
		UserScopes(),
		SettingsScopes(),
	}
	var all []Permission
	for _, g := range groups {
		all = append(all, g...)
	}
	return all
}
