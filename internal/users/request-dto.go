package users

// UpdateProfileRequest carries self-service profile edits.
type UpdateProfileRequest struct {
	FirstName string `json:"first_name,omitempty" validate:"omitempty,min=2,max=100"`
	LastName  string `json:"last_name,omitempty" validate:"omitempty,min=2,max=100"`
	Email     string `json:"email,omitempty" validate:"omitempty,email"`
}

// DecisionRequest carries an optional reason for reject/disable actions.
type DecisionRequest struct {
	Reason string `json:"reason,omitempty" validate:"omitempty,max=500"`
}

// SetRoleRequest changes a user's role.
type SetRoleRequest struct {
	Role string `json:"role" validate:"required,oneof=USER ADMIN"`
}
