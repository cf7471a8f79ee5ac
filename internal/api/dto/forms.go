package dto

import "github.com/go-playground/validator/v10"

var validate = validator.New()

// CredentialsForm is the shared register/login payload. Accepted as form
// fields or JSON.
type CredentialsForm struct {
	Username string `json:"username" form:"username" validate:"required,max=100"`
	Password string `json:"password" form:"password" validate:"required,max=72"`
}

// Validate checks required fields and length bounds.
func (f CredentialsForm) Validate() error {
	return validate.Struct(f)
}

// ClockForm carries a clock submission.
type ClockForm struct {
	ClockType string `json:"clock_type" form:"clock_type" validate:"required,max=10"`
}

// Validate checks required fields.
func (f ClockForm) Validate() error {
	return validate.Struct(f)
}

// ProfileForm carries a self-service profile edit. NewPassword may be empty,
// in which case the stored password is left unchanged.
type ProfileForm struct {
	NewUsername string `json:"new_username" form:"new_username" validate:"required,max=100"`
	NewPassword string `json:"new_password" form:"new_password" validate:"omitempty,max=72"`
}

// Validate checks required fields.
func (f ProfileForm) Validate() error {
	return validate.Struct(f)
}

// EditStaffForm carries an admin edit of another account.
type EditStaffForm struct {
	StaffID     string `json:"staff_id" form:"staff_id" validate:"required"`
	NewUsername string `json:"new_username" form:"new_username" validate:"required,max=100"`
	NewPassword string `json:"new_password" form:"new_password" validate:"omitempty,max=72"`
}

// Validate checks required fields.
func (f EditStaffForm) Validate() error {
	return validate.Struct(f)
}
