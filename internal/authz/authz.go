// Package authz maps (role, action) pairs to allow/deny decisions.
// Every role carries an explicit allow-set; nothing is inherited and
// anything not listed is denied.
package authz

import "fleet-service/internal/model"

// Action identifies an operation a user can request.
type Action string

const (
	ActionCreateVehicle Action = "vehicle:create"
	ActionEditVehicle   Action = "vehicle:edit"
	ActionDeleteVehicle Action = "vehicle:delete"

	ActionCreateFuelRecord Action = "fuel:create"
	ActionEditFuelRecord   Action = "fuel:edit"
	ActionDeleteFuelRecord Action = "fuel:delete"

	ActionCreateMaintenanceRecord Action = "maintenance:create"
	ActionEditMaintenanceRecord   Action = "maintenance:edit"
	ActionDeleteMaintenanceRecord Action = "maintenance:delete"

	ActionCreateUser Action = "user:create"
	ActionEditUser   Action = "user:edit"
	ActionDeleteUser Action = "user:delete"

	ActionViewAdminPanel Action = "admin:view"
	ActionViewUsers      Action = "user:view"
	ActionViewProfile    Action = "profile:view"
)

var managerActions = map[Action]bool{
	ActionCreateVehicle:           true,
	ActionEditVehicle:             true,
	ActionCreateFuelRecord:        true,
	ActionEditFuelRecord:          true,
	ActionDeleteFuelRecord:        true,
	ActionCreateMaintenanceRecord: true,
	ActionEditMaintenanceRecord:   true,
	ActionDeleteMaintenanceRecord: true,
	ActionViewUsers:               true,
	ActionViewProfile:             true,
}

var adminActions = map[Action]bool{
	ActionCreateVehicle:           true,
	ActionEditVehicle:             true,
	ActionDeleteVehicle:           true,
	ActionCreateFuelRecord:        true,
	ActionEditFuelRecord:          true,
	ActionDeleteFuelRecord:        true,
	ActionCreateMaintenanceRecord: true,
	ActionEditMaintenanceRecord:   true,
	ActionDeleteMaintenanceRecord: true,
	ActionCreateUser:              true,
	ActionEditUser:                true,
	ActionDeleteUser:              true,
	ActionViewAdminPanel:          true,
	ActionViewUsers:               true,
	ActionViewProfile:             true,
}

var userActions = map[Action]bool{
	ActionViewProfile: true,
}

var allowSets = map[model.Role]map[Action]bool{
	model.RoleAdmin:   adminActions,
	model.RoleManager: managerActions,
	model.RoleUser:    userActions,
}

// Allowed reports whether the role may perform the action. Unknown roles
// and unknown actions are denied.
func Allowed(role model.Role, action Action) bool {
	return allowSets[role][action]
}
