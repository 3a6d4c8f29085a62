package fleet

import (
	"errors"
	"testing"

	"fleet-service/internal/model"
	"fleet-service/internal/validate"
)

func registration(username, email string) validate.RegistrationInput {
	return validate.RegistrationInput{
		Username:        username,
		Password:        "secret123",
		ConfirmPassword: "secret123",
		Email:           email,
		Phone:           "+79001234567",
	}
}

func mustRegister(t *testing.T, s *Service, username, email string) *model.User {
	t.Helper()
	u, err := s.Register(registration(username, email))
	if err != nil {
		t.Fatalf("Register(%s): %v", username, err)
	}
	return u
}

func TestRegisterAssignsUserRole(t *testing.T) {
	s := newTestService(t)
	u := mustRegister(t, s, "jdoe", "jdoe@example.com")
	if u.Role != model.RoleUser {
		t.Fatalf("expected user role, got %s", u.Role)
	}
	if u.Password == "secret123" {
		t.Fatal("password must be stored hashed")
	}
}

func TestRegisterDuplicateUsernameAndEmail(t *testing.T) {
	s := newTestService(t)
	mustRegister(t, s, "jdoe", "jdoe@example.com")

	_, err := s.Register(registration("jdoe", "other@example.com"))
	assertValidationError(t, err, "username")

	_, err = s.Register(registration("other", "jdoe@example.com"))
	assertValidationError(t, err, "email")
}

func TestRegisterPasswordMismatch(t *testing.T) {
	s := newTestService(t)
	in := registration("jdoe", "jdoe@example.com")
	in.ConfirmPassword = "different"
	_, err := s.Register(in)
	assertValidationError(t, err, "confirm_password")
}

func TestAuthenticate(t *testing.T) {
	s := newTestService(t)
	mustRegister(t, s, "jdoe", "jdoe@example.com")

	u, err := s.Authenticate("jdoe", "secret123")
	if err != nil {
		t.Fatalf("Authenticate: %v", err)
	}
	if u.Username != "jdoe" {
		t.Fatalf("wrong user: %+v", u)
	}

	if _, err := s.Authenticate("jdoe", "wrong"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
	if _, err := s.Authenticate("ghost", "secret123"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials for unknown user, got %v", err)
	}
}

func TestChangePassword(t *testing.T) {
	s := newTestService(t)
	u := mustRegister(t, s, "jdoe", "jdoe@example.com")
	actor := Actor{ID: u.ID, Username: u.Username, Role: u.Role}

	err := s.ChangePassword(actor, "wrong", "newpass99", "newpass99")
	assertValidationError(t, err, "current_password")

	err = s.ChangePassword(actor, "secret123", "newpass99", "different")
	assertValidationError(t, err, "confirm_password")

	if err := s.ChangePassword(actor, "secret123", "newpass99", "newpass99"); err != nil {
		t.Fatalf("ChangePassword: %v", err)
	}
	if _, err := s.Authenticate("jdoe", "newpass99"); err != nil {
		t.Fatalf("new password should authenticate: %v", err)
	}
	if _, err := s.Authenticate("jdoe", "secret123"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("old password should no longer authenticate, got %v", err)
	}
}

func TestCreateUserRequiresAdmin(t *testing.T) {
	s := newTestService(t)
	in := validate.UserInput{
		Username: "ops",
		Password: "secret123",
		Role:     model.RoleManager,
		Email:    "ops@example.com",
	}

	if _, err := s.CreateUser(managerActor, in); !errors.Is(err, ErrDenied) {
		t.Fatalf("expected ErrDenied for manager, got %v", err)
	}
	if _, err := s.CreateUser(adminActor, in); err != nil {
		t.Fatalf("CreateUser: %v", err)
	}
}

func TestUpdateUserKeepsPasswordWhenBlank(t *testing.T) {
	s := newTestService(t)
	u := mustRegister(t, s, "jdoe", "jdoe@example.com")

	in := validate.UserInput{
		Username: "jdoe",
		Role:     model.RoleManager,
		Email:    "jdoe@example.com",
		Phone:    "+79001112233",
	}
	updated, err := s.UpdateUser(adminActor, u.ID, in)
	if err != nil {
		t.Fatalf("UpdateUser: %v", err)
	}
	if updated.Role != model.RoleManager {
		t.Fatalf("role not updated: %+v", updated)
	}
	if _, err := s.Authenticate("jdoe", "secret123"); err != nil {
		t.Fatalf("password should be unchanged: %v", err)
	}
}

func TestUpdateUserRejectsTakenUsername(t *testing.T) {
	s := newTestService(t)
	mustRegister(t, s, "jdoe", "jdoe@example.com")
	other := mustRegister(t, s, "asmith", "asmith@example.com")

	in := validate.UserInput{Username: "jdoe", Role: model.RoleUser, Email: "asmith@example.com"}
	_, err := s.UpdateUser(adminActor, other.ID, in)
	assertValidationError(t, err, "username")
}

func TestDeleteUserSelfGuard(t *testing.T) {
	s := newTestService(t)
	admin := mustRegister(t, s, "root", "root@example.com")
	s.db.Model(&model.User{}).Where("id = ?", admin.ID).Update("role", model.RoleAdmin)

	actor := Actor{ID: admin.ID, Username: admin.Username, Role: model.RoleAdmin}
	if err := s.DeleteUser(actor, admin.ID); !errors.Is(err, ErrDenied) {
		t.Fatalf("expected ErrDenied on self-delete, got %v", err)
	}

	var count int64
	s.db.Model(&model.User{}).Where("id = ?", admin.ID).Count(&count)
	if count != 1 {
		t.Fatal("self-delete must not remove the acting user")
	}

	victim := mustRegister(t, s, "jdoe", "jdoe@example.com")
	if err := s.DeleteUser(actor, victim.ID); err != nil {
		t.Fatalf("DeleteUser: %v", err)
	}
	s.db.Model(&model.User{}).Where("id = ?", victim.ID).Count(&count)
	if count != 0 {
		t.Fatal("victim should be deleted")
	}
}

func TestDeleteUserDeniedForNonAdmins(t *testing.T) {
	s := newTestService(t)
	victim := mustRegister(t, s, "jdoe", "jdoe@example.com")

	for _, actor := range []Actor{managerActor, userActor} {
		if err := s.DeleteUser(actor, victim.ID); !errors.Is(err, ErrDenied) {
			t.Fatalf("expected ErrDenied for %s, got %v", actor.Role, err)
		}
	}
}

func TestListUsersGatedByRole(t *testing.T) {
	s := newTestService(t)
	mustRegister(t, s, "jdoe", "jdoe@example.com")

	if _, err := s.ListUsers(userActor); !errors.Is(err, ErrDenied) {
		t.Fatalf("expected ErrDenied for user role, got %v", err)
	}
	users, err := s.ListUsers(managerActor)
	if err != nil {
		t.Fatalf("ListUsers: %v", err)
	}
	if len(users) != 1 {
		t.Fatalf("expected 1 user, got %d", len(users))
	}
}
