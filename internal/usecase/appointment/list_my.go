package appointment

import (
	"context"

	domain "github.com/Nevenjbx/kompagni-api/internal/domain/appointment"
	"github.com/Nevenjbx/kompagni-api/internal/models"
)

const (
	defaultLimit = 20
	maxLimit     = 100
)

type ListMyAppointments struct {
	repo domain.Repository
}

func NewListMyAppointments(repo domain.Repository) *ListMyAppointments {
	return &ListMyAppointments{repo: repo}
}

// Execute pages through the caller's appointments, as client and, when the
// user owns a provider profile, as provider.
func (uc *ListMyAppointments) Execute(
	ctx context.Context,
	userID string,
	page int,
	limit int,
) ([]models.Appointment, int64, int, int, error) {

	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = defaultLimit
	}
	if limit > maxLimit {
		limit = maxLimit
	}

	providerID := ""
	prov, err := uc.repo.GetProviderByUserID(ctx, userID)
	if err != nil {
		return nil, 0, 0, 0, err
	}
	if prov != nil {
		providerID = prov.ID
	}

	items, total, err := uc.repo.ListForUser(ctx, userID, providerID, page, limit)
	if err != nil {
		return nil, 0, 0, 0, err
	}

	return items, total, page, limit, nil
}
