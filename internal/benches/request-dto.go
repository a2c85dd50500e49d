package benches

// CreateBenchRequest is the admin payload for registering a new workbench.
type CreateBenchRequest struct {
	Name        string `json:"name" validate:"required,min=2,max=100"`
	Description string `json:"description" validate:"max=500"`
	Location    string `json:"location" validate:"max=200"`
}

// UpdateBenchRequest carries partial updates; nil fields are left untouched.
type UpdateBenchRequest struct {
	Name        *string `json:"name,omitempty" validate:"omitempty,min=2,max=100"`
	Description *string `json:"description,omitempty" validate:"omitempty,max=500"`
	Location    *string `json:"location,omitempty" validate:"omitempty,max=200"`
	Status      *string `json:"status,omitempty" validate:"omitempty,oneof=ACTIVE MAINTENANCE RETIRED"`
}
