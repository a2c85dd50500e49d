package users

// Status is the account lifecycle state managed by administrators. A freshly
// registered user is PENDING and cannot schedule benches until approved.
type Status string

const (
	StatusPending  Status = "PENDING"
	StatusApproved Status = "APPROVED"
	StatusDisabled Status = "DISABLED"
)

func (s Status) String() string {
	return string(s)
}

// CanSchedule reports whether the account may submit scheduling requests.
func (s Status) CanSchedule() bool {
	return s == StatusApproved
}
