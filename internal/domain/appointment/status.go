package appointment

import "github.com/Nevenjbx/kompagni-api/internal/httperr"

// ConflictCode marks a booking lost to a concurrent transaction. Unlike
// slot_taken (the slot was occupied before we looked), this failure is
// immediately retryable.
const ConflictCode = "slot_just_taken"

type Status string

const (
	StatusPending   Status = "PENDING"
	StatusConfirmed Status = "CONFIRMED"
	StatusCancelled Status = "CANCELLED"
	StatusCompleted Status = "COMPLETED"
)

// Actor is the caller's relationship to the appointment.
type Actor string

const (
	ActorClient   Actor = "client"
	ActorProvider Actor = "provider"
)

func ParseStatus(s string) (Status, bool) {
	switch Status(s) {
	case StatusPending, StatusConfirmed, StatusCancelled, StatusCompleted:
		return Status(s), true
	}
	return "", false
}

func InitialStatus() Status {
	return StatusPending
}

// transitions is the full state machine: {current × actor} → allowed targets.
// CANCELLED and COMPLETED are terminal for everyone, and completing an
// appointment requires it to have been confirmed first.
var transitions = map[Status]map[Actor][]Status{
	StatusPending: {
		ActorClient:   {StatusCancelled},
		ActorProvider: {StatusConfirmed, StatusCancelled},
	},
	StatusConfirmed: {
		ActorClient:   {StatusCancelled},
		ActorProvider: {StatusCancelled, StatusCompleted},
	},
}

// CanTransition validates from → to by actor. A client asking for anything
// but CANCELLED is a role violation (Forbidden); everything else the table
// rejects is an invalid state transition (Validation).
func CanTransition(from Status, actor Actor, to Status) error {
	if actor == ActorClient && to != StatusCancelled {
		return httperr.ErrForbidden("clients_cancel_only", "Clients can only cancel appointments")
	}

	for _, allowed := range transitions[from][actor] {
		if allowed == to {
			return nil
		}
	}

	return httperr.ErrValidation(
		"invalid_transition",
		"Cannot move appointment from "+string(from)+" to "+string(to),
	)
}
