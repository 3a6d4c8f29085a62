package fleet

import (
	"errors"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"fleet-service/internal/authz"
	"fleet-service/internal/model"
	"fleet-service/internal/validate"
)

// Register creates an account with the regular user role. Public: no
// actor is required.
func (s *Service) Register(in validate.RegistrationInput) (*model.User, error) {
	errs := validate.Registration(in)
	errs, err := s.checkUserUniqueness(errs, in.Username, in.Email, 0)
	if err != nil {
		return nil, err
	}
	if len(errs) > 0 {
		return nil, validationFailed(errs)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, persistence(err)
	}

	user := model.User{
		Username: in.Username,
		Password: string(hash),
		Role:     model.RoleUser,
		Email:    in.Email,
		Phone:    in.Phone,
	}
	if err := s.db.Create(&user).Error; err != nil {
		return nil, storeError(err)
	}
	return &user, nil
}

// Authenticate verifies a username/password pair. The same error comes
// back for an unknown user and a wrong password.
func (s *Service) Authenticate(username, password string) (*model.User, error) {
	var user model.User
	if err := s.db.Where("username = ?", username).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, persistence(err)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}
	return &user, nil
}

// ChangePassword lets any actor replace their own password after
// proving knowledge of the current one.
func (s *Service) ChangePassword(actor Actor, currentPassword, newPassword, confirmPassword string) error {
	if err := s.authorize(actor, authz.ActionViewProfile); err != nil {
		return err
	}

	var user model.User
	if err := s.db.First(&user, actor.ID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return persistence(err)
	}

	var errs validate.Errors
	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(currentPassword)) != nil {
		errs = errs.Add("current_password", "current password is incorrect")
	}
	errs = append(errs, validate.PasswordChange(newPassword, confirmPassword)...)
	if len(errs) > 0 {
		return validationFailed(errs)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return persistence(err)
	}
	if err := s.db.Model(&user).Update("password", string(hash)).Error; err != nil {
		return storeError(err)
	}
	return nil
}

// CreateUser is the administrator-side account creation with an explicit
// role.
func (s *Service) CreateUser(actor Actor, in validate.UserInput) (*model.User, error) {
	if err := s.authorize(actor, authz.ActionCreateUser); err != nil {
		return nil, err
	}

	errs := validate.User(in, true)
	errs, err := s.checkUserUniqueness(errs, in.Username, in.Email, 0)
	if err != nil {
		return nil, err
	}
	if len(errs) > 0 {
		return nil, validationFailed(errs)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, persistence(err)
	}

	user := model.User{
		Username: in.Username,
		Password: string(hash),
		Role:     in.Role,
		Email:    in.Email,
		Phone:    in.Phone,
	}
	if err := s.db.Create(&user).Error; err != nil {
		return nil, storeError(err)
	}
	return &user, nil
}

// UpdateUser changes username, role, email and phone; a blank password
// keeps the current one.
func (s *Service) UpdateUser(actor Actor, id uint, in validate.UserInput) (*model.User, error) {
	if err := s.authorize(actor, authz.ActionEditUser); err != nil {
		return nil, err
	}

	var user model.User
	if err := s.db.First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, persistence(err)
	}

	errs := validate.User(in, false)
	errs, err := s.checkUserUniqueness(errs, in.Username, in.Email, id)
	if err != nil {
		return nil, err
	}
	if len(errs) > 0 {
		return nil, validationFailed(errs)
	}

	user.Username = in.Username
	user.Role = in.Role
	user.Email = in.Email
	user.Phone = in.Phone
	if in.Password != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, persistence(err)
		}
		user.Password = string(hash)
	}

	if err := s.db.Save(&user).Error; err != nil {
		return nil, storeError(err)
	}
	return &user, nil
}

// DeleteUser removes an account. The acting administrator can never
// delete themselves.
func (s *Service) DeleteUser(actor Actor, id uint) error {
	if err := s.authorize(actor, authz.ActionDeleteUser); err != nil {
		return err
	}
	if actor.ID == id {
		return ErrDenied
	}

	var user model.User
	if err := s.db.First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return persistence(err)
	}
	if err := s.db.Delete(&user).Error; err != nil {
		return persistence(err)
	}
	return nil
}

// GetUser returns a single account. Admins and managers only.
func (s *Service) GetUser(actor Actor, id uint) (*model.User, error) {
	if err := s.authorize(actor, authz.ActionViewUsers); err != nil {
		return nil, err
	}

	var user model.User
	if err := s.db.First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, persistence(err)
	}
	return &user, nil
}

// ListUsers returns every account. Admins and managers only.
func (s *Service) ListUsers(actor Actor) ([]model.User, error) {
	if err := s.authorize(actor, authz.ActionViewUsers); err != nil {
		return nil, err
	}

	var users []model.User
	if err := s.db.Order("username").Find(&users).Error; err != nil {
		return nil, persistence(err)
	}
	return users, nil
}

func (s *Service) checkUserUniqueness(errs validate.Errors, username, email string, excludeID uint) (validate.Errors, error) {
	if username != "" {
		taken, err := s.fieldTaken(&model.User{}, "username", username, excludeID)
		if err != nil {
			return nil, err
		}
		if taken {
			errs = errs.Add("username", "a user with this username already exists")
		}
	}
	if email != "" {
		taken, err := s.fieldTaken(&model.User{}, "email", email, excludeID)
		if err != nil {
			return nil, err
		}
		if taken {
			errs = errs.Add("email", "a user with this email already exists")
		}
	}
	return errs, nil
}
