package requests

// SubmitScheduleDTO is the user payload proposing a reservation range.
// Bounds are RFC 3339 timestamps and are inclusive on both ends.
type SubmitScheduleDTO struct {
	Start    string `json:"start" validate:"required"`
	End      string `json:"end" validate:"required"`
	Comments string `json:"comments" validate:"max=500"`
}

// ValidateRangeDTO asks for an advisory check of a proposed range without
// creating a request.
type ValidateRangeDTO struct {
	Start string `json:"start" validate:"required"`
	End   string `json:"end" validate:"required"`
}

// DecisionDTO carries an optional admin comment with a reject decision.
type DecisionDTO struct {
	Comment string `json:"comment" validate:"max=500"`
}
