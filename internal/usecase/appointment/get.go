package appointment

import (
	"context"

	domain "github.com/Nevenjbx/kompagni-api/internal/domain/appointment"
	"github.com/Nevenjbx/kompagni-api/internal/models"
)

type GetAppointment struct {
	repo domain.Repository
}

func NewGetAppointment(repo domain.Repository) *GetAppointment {
	return &GetAppointment{repo: repo}
}

func (uc *GetAppointment) Execute(
	ctx context.Context,
	id string,
) (*models.Appointment, error) {
	return uc.repo.GetAppointment(ctx, id)
}
