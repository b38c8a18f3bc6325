package authfront

import (
	"errors"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"
)

// Request payloads mirror the backend wire contract. Each carries its own
// pre-flight validation; nothing here replaces server-side checks.

// SignUpRequest is the registration payload
type SignUpRequest struct {
	Email           string `form:"email" json:"email"`
	Password        string `form:"password" json:"password"`
	ConfirmPassword string `form:"confirm_password" json:"confirmPassword"`
	Nickname        string `form:"nickname" json:"nickname"`
	Name            string `form:"name" json:"name"`
	PhoneNumber     string `form:"phone_number" json:"phoneNumber"`
}

// Validate will run validation rules
func (r SignUpRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Email, validation.Required, validation.Length(0, 100), is.Email),
		validation.Field(&r.Password, validation.Required, validation.Length(6, 20)),
		validation.Field(
			&r.ConfirmPassword,
			validation.Required,
			validation.By(ValidateStringEquals(r.Password)),
		),
		validation.Field(&r.Nickname, validation.Required, validation.Length(2, 20)),
		validation.Field(&r.Name, validation.Required, validation.Length(2, 10)),
		validation.Field(&r.PhoneNumber, validation.Required, validation.Match(mobilePhoneRegex)),
	)
}

// LoginRequest is the credential exchange payload
type LoginRequest struct {
	Email    string `form:"email" json:"email"`
	Password string `form:"password" json:"password"`
}

// Validate will run validation rules
func (r LoginRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Email, validation.Required, is.Email),
		validation.Field(&r.Password, validation.Required),
	)
}

// UpdateProfileRequest carries the mutable profile fields
type UpdateProfileRequest struct {
	Nickname    string `form:"nickname" json:"nickname"`
	Name        string `form:"name" json:"name"`
	PhoneNumber string `form:"phone_number" json:"phoneNumber"`
}

// Validate will run validation rules
func (r UpdateProfileRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Nickname, validation.Required, validation.Length(2, 20)),
		validation.Field(&r.Name, validation.Required, validation.Length(2, 10)),
		validation.Field(&r.PhoneNumber, validation.Required, validation.Match(mobilePhoneRegex)),
	)
}

// ChangePasswordRequest rotates the password of a signed-in user
type ChangePasswordRequest struct {
	CurrentPassword    string `form:"current_password" json:"currentPassword"`
	NewPassword        string `form:"new_password" json:"newPassword"`
	ConfirmNewPassword string `form:"confirm_new_password" json:"confirmNewPassword"`
}

// Validate will run validation rules
func (r ChangePasswordRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.CurrentPassword, validation.Required),
		validation.Field(&r.NewPassword, validation.Required, validation.Length(6, 20)),
		validation.Field(
			&r.ConfirmNewPassword,
			validation.Required,
			validation.By(ValidateStringEquals(r.NewPassword)),
		),
	)
}

// PasswordResetRequest asks the backend to mail a reset link
type PasswordResetRequest struct {
	Email string `form:"email" json:"email"`
}

// Validate will run validation rules
func (r PasswordResetRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Email, validation.Required, is.Email),
	)
}

// ResetPasswordRequest finalizes a reset using the mailed token
type ResetPasswordRequest struct {
	Token           string `form:"token" json:"token"`
	NewPassword     string `form:"new_password" json:"newPassword"`
	ConfirmPassword string `form:"confirm_password" json:"confirmPassword"`
}

// Validate will run validation rules
func (r ResetPasswordRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Token, validation.Required),
		validation.Field(&r.NewPassword, validation.Required, validation.Length(6, 20)),
		validation.Field(
			&r.ConfirmPassword,
			validation.Required,
			validation.By(ValidateStringEquals(r.NewPassword)),
		),
	)
}

// ValidateStringEquals will check that both values match
func ValidateStringEquals(str string) validation.RuleFunc {
	return func(value any) error {
		s, _ := value.(string)
		if s != str {
			return errors.New("values must match")
		}
		return nil
	}
}
