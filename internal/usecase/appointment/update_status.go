package appointment

import (
	"context"

	domain "github.com/Nevenjbx/kompagni-api/internal/domain/appointment"
	"github.com/Nevenjbx/kompagni-api/internal/httperr"
	"github.com/Nevenjbx/kompagni-api/internal/models"
)

type UpdateStatus struct {
	repo domain.Repository
}

func NewUpdateStatus(repo domain.Repository) *UpdateStatus {
	return &UpdateStatus{repo: repo}
}

// Execute applies a status change after resolving the caller's relationship
// to the appointment and consulting the transition table.
func (uc *UpdateStatus) Execute(
	ctx context.Context,
	in domain.UpdateStatusInput,
) (*models.Appointment, error) {

	ap, err := uc.repo.GetAppointment(ctx, in.AppointmentID)
	if err != nil {
		return nil, err
	}

	actor, err := uc.resolveActor(ctx, in.UserID, ap)
	if err != nil {
		return nil, err
	}

	if err := domain.CanTransition(domain.Status(ap.Status), actor, in.Target); err != nil {
		return nil, err
	}

	ap.Status = string(in.Target)
	if err := uc.repo.SaveAppointment(ctx, ap); err != nil {
		return nil, err
	}

	return ap, nil
}

func (uc *UpdateStatus) resolveActor(
	ctx context.Context,
	userID string,
	ap *models.Appointment,
) (domain.Actor, error) {

	if ap.ClientID == userID {
		return domain.ActorClient, nil
	}

	prov, err := uc.repo.GetProviderByUserID(ctx, userID)
	if err != nil {
		return "", err
	}
	if prov != nil && prov.ID == ap.ProviderID {
		return domain.ActorProvider, nil
	}

	return "", httperr.ErrForbidden("not_participant", "Not authorized to update this appointment")
}
