package appointment

import "time"

type AvailabilityInput struct {
	ProviderID string
	ServiceID  string
	Date       string // YYYY-MM-DD
}

type CreateInput struct {
	ClientID  string
	ServiceID string
	StartTime time.Time
	Notes     string
	PetID     *string
}

type UpdateStatusInput struct {
	UserID        string
	AppointmentID string
	Target        Status
}
