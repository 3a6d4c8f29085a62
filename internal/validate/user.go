package validate

import "fleet-service/internal/model"

// UserInput is the proposed field set for an administrator-side user
// create or update. Password is optional on update.
type UserInput struct {
	Username string     `json:"username"`
	Password string     `json:"password"`
	Role     model.Role `json:"role"`
	Email    string     `json:"email"`
	Phone    string     `json:"phone"`
}

// RegistrationInput is the field set for public self-registration.
type RegistrationInput struct {
	Username        string `json:"username"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirm_password"`
	Email           string `json:"email"`
	Phone           string `json:"phone"`
}

// User checks an administrator-side user mutation. requirePassword is
// true on create; on update a blank password means "keep current".
func User(in UserInput, requirePassword bool) Errors {
	var errs Errors
	errs = requireString(errs, "username", in.Username)
	errs = requireString(errs, "email", in.Email)

	if requirePassword {
		errs = requireString(errs, "password", in.Password)
	}

	if in.Role == "" {
		errs = errs.Add("role", "is required")
	} else if !model.ValidRole(in.Role) {
		errs = errs.Add("role", "must be one of admin, manager, user")
	}

	return errs
}

// Registration checks self-registration input, including the
// password-confirmation rule.
func Registration(in RegistrationInput) Errors {
	var errs Errors
	errs = requireString(errs, "username", in.Username)
	errs = requireString(errs, "email", in.Email)
	errs = requireString(errs, "password", in.Password)

	if in.Password != "" && in.Password != in.ConfirmPassword {
		errs = errs.Add("confirm_password", "passwords do not match")
	}

	return errs
}

// PasswordChange checks a password change against the confirmation rule.
func PasswordChange(newPassword, confirmPassword string) Errors {
	var errs Errors
	errs = requireString(errs, "new_password", newPassword)
	if newPassword != "" && newPassword != confirmPassword {
		errs = errs.Add("confirm_password", "passwords do not match")
	}
	return errs
}
