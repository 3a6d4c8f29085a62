package authz

import (
	"testing"

	"fleet-service/internal/model"
)

func TestAllowedTable(t *testing.T) {
	cases := []struct {
		role   model.Role
		action Action
		want   bool
	}{
		{model.RoleAdmin, ActionCreateVehicle, true},
		{model.RoleAdmin, ActionDeleteVehicle, true},
		{model.RoleAdmin, ActionDeleteUser, true},
		{model.RoleAdmin, ActionViewAdminPanel, true},

		{model.RoleManager, ActionCreateVehicle, true},
		{model.RoleManager, ActionEditVehicle, true},
		{model.RoleManager, ActionDeleteVehicle, false},
		{model.RoleManager, ActionCreateFuelRecord, true},
		{model.RoleManager, ActionDeleteFuelRecord, true},
		{model.RoleManager, ActionCreateMaintenanceRecord, true},
		{model.RoleManager, ActionDeleteMaintenanceRecord, true},
		{model.RoleManager, ActionCreateUser, false},
		{model.RoleManager, ActionDeleteUser, false},
		{model.RoleManager, ActionViewAdminPanel, false},
		{model.RoleManager, ActionViewUsers, true},

		{model.RoleUser, ActionCreateVehicle, false},
		{model.RoleUser, ActionCreateFuelRecord, false},
		{model.RoleUser, ActionDeleteMaintenanceRecord, false},
		{model.RoleUser, ActionViewAdminPanel, false},
		{model.RoleUser, ActionViewProfile, true},
	}

	for _, tc := range cases {
		if got := Allowed(tc.role, tc.action); got != tc.want {
			t.Errorf("Allowed(%s, %s) = %v, want %v", tc.role, tc.action, got, tc.want)
		}
	}
}

func TestDeleteUserDeniedForNonAdmins(t *testing.T) {
	for _, role := range []model.Role{model.RoleManager, model.RoleUser, model.Role("")} {
		if Allowed(role, ActionDeleteUser) {
			t.Errorf("Allowed(%q, deleteUser) = true, want deny", role)
		}
	}
}

func TestDenyByDefault(t *testing.T) {
	if Allowed(model.Role("superuser"), ActionCreateVehicle) {
		t.Error("unknown role should be denied")
	}
	if Allowed(model.RoleAdmin, Action("vehicle:launch")) {
		t.Error("unknown action should be denied")
	}
	if Allowed(model.Role(""), ActionViewProfile) {
		t.Error("empty role should be denied")
	}
}
