package handlers

import (
	"time"

	"github.com/gin-gonic/gin"

	domain "github.com/Nevenjbx/kompagni-api/internal/domain/appointment"
	"github.com/Nevenjbx/kompagni-api/internal/httperr"
	"github.com/Nevenjbx/kompagni-api/internal/httpresp"
	ucAppointment "github.com/Nevenjbx/kompagni-api/internal/usecase/appointment"
)

type AppointmentHandler struct {
	availableSlots *ucAppointment.GetAvailableSlots
	create         *ucAppointment.CreateAppointment
	updateStatus   *ucAppointment.UpdateStatus
	listMy         *ucAppointment.ListMyAppointments
	get            *ucAppointment.GetAppointment
}

func NewAppointmentHandler(
	availableSlots *ucAppointment.GetAvailableSlots,
	create *ucAppointment.CreateAppointment,
	updateStatus *ucAppointment.UpdateStatus,
	listMy *ucAppointment.ListMyAppointments,
	get *ucAppointment.GetAppointment,
) *AppointmentHandler {
	return &AppointmentHandler{
		availableSlots: availableSlots,
		create:         create,
		updateStatus:   updateStatus,
		listMy:         listMy,
		get:            get,
	}
}

// ======================================================
// REQUESTS
// ======================================================

type CreateAppointmentRequest struct {
	ServiceID string    `json:"serviceId" binding:"required"`
	StartTime time.Time `json:"startTime" binding:"required"`
	Notes     string    `json:"notes"`
	PetID     *string   `json:"petId"`
}

type UpdateStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// ======================================================
// HANDLERS
// ======================================================

// GET /appointments/available-slots?providerId&serviceId&date=YYYY-MM-DD
func (h *AppointmentHandler) AvailableSlots(c *gin.Context) {
	in := domain.AvailabilityInput{
		ProviderID: c.Query("providerId"),
		ServiceID:  c.Query("serviceId"),
		Date:       c.Query("date"),
	}
	if in.ProviderID == "" || in.ServiceID == "" || in.Date == "" {
		httperr.BadRequest(c, "missing_parameters", "providerId, serviceId and date are required")
		return
	}

	slots, err := h.availableSlots.Execute(c.Request.Context(), in)
	if err != nil {
		writeError(c, err)
		return
	}

	httpresp.OK(c, slots)
}

// POST /appointments
func (h *AppointmentHandler) Create(c *gin.Context) {
	var req CreateAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "serviceId and an ISO 8601 startTime are required")
		return
	}

	ap, err := h.create.Execute(c.Request.Context(), domain.CreateInput{
		ClientID:  currentUserID(c),
		ServiceID: req.ServiceID,
		StartTime: req.StartTime,
		Notes:     req.Notes,
		PetID:     req.PetID,
	})
	if err != nil {
		writeError(c, err)
		return
	}

	httpresp.Created(c, ap)
}

// GET /appointments?page&limit
func (h *AppointmentHandler) ListMy(c *gin.Context) {
	items, total, page, limit, err := h.listMy.Execute(
		c.Request.Context(),
		currentUserID(c),
		queryInt(c, "page", 1),
		queryInt(c, "limit", 0),
	)
	if err != nil {
		writeError(c, err)
		return
	}

	httpresp.Paginated(c, items, total, page, limit)
}

// GET /appointments/:id
func (h *AppointmentHandler) Get(c *gin.Context) {
	ap, err := h.get.Execute(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}

	httpresp.OK(c, ap)
}

// PATCH /appointments/:id/status
func (h *AppointmentHandler) UpdateStatus(c *gin.Context) {
	var req UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "status is required")
		return
	}

	target, ok := domain.ParseStatus(req.Status)
	if !ok {
		httperr.BadRequest(c, "invalid_status", "status must be one of PENDING, CONFIRMED, CANCELLED, COMPLETED")
		return
	}

	ap, err := h.updateStatus.Execute(c.Request.Context(), domain.UpdateStatusInput{
		UserID:        currentUserID(c),
		AppointmentID: c.Param("id"),
		Target:        target,
	})
	if err != nil {
		writeError(c, err)
		return
	}

	httpresp.OK(c, ap)
}
