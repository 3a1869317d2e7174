package handlers

import (
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/Nevenjbx/kompagni-api/internal/cache"
	"github.com/Nevenjbx/kompagni-api/internal/httperr"
	"github.com/Nevenjbx/kompagni-api/internal/httpresp"
	infraRepo "github.com/Nevenjbx/kompagni-api/internal/infra/repository"
	"github.com/Nevenjbx/kompagni-api/internal/models"
	"github.com/Nevenjbx/kompagni-api/internal/schedule"
)

type ProviderHandler struct {
	db    *gorm.DB
	cache *cache.Cache
}

func NewProviderHandler(db *gorm.DB, cache *cache.Cache) *ProviderHandler {
	return &ProviderHandler{db: db, cache: cache}
}

// ======================================================
// REQUESTS
// ======================================================

type CreateProviderRequest struct {
	BusinessName string   `json:"businessName" binding:"required"`
	Description  string   `json:"description"`
	Address      string   `json:"address" binding:"required"`
	City         string   `json:"city" binding:"required"`
	PostalCode   string   `json:"postalCode" binding:"required"`
	Latitude     *float64 `json:"latitude" binding:"omitempty,min=-90,max=90"`
	Longitude    *float64 `json:"longitude" binding:"omitempty,min=-180,max=180"`
	Tags         []string `json:"tags"`
}

type UpdateProviderRequest struct {
	BusinessName string   `json:"businessName"`
	Description  string   `json:"description"`
	Address      string   `json:"address"`
	City         string   `json:"city"`
	PostalCode   string   `json:"postalCode"`
	Latitude     *float64 `json:"latitude"`
	Longitude    *float64 `json:"longitude"`
	Tags         []string `json:"tags"`
}

type WorkingDayRequest struct {
	DayOfWeek      int    `json:"dayOfWeek" binding:"min=0,max=6"`
	StartTime      string `json:"startTime" binding:"required"`
	EndTime        string `json:"endTime" binding:"required"`
	BreakStartTime string `json:"breakStartTime"`
	BreakEndTime   string `json:"breakEndTime"`
}

type WorkingHoursUpdateRequest struct {
	Days []WorkingDayRequest `json:"days" binding:"required"`
}

type CreateAbsenceRequest struct {
	StartDate time.Time `json:"startDate" binding:"required"`
	EndDate   time.Time `json:"endDate" binding:"required"`
	Reason    string    `json:"reason"`
}

// ======================================================
// PROFILE
// ======================================================

// POST /providers
func (h *ProviderHandler) Create(c *gin.Context) {
	var req CreateProviderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "businessName, address, city and postalCode are required")
		return
	}

	userID := currentUserID(c)

	var existing models.ProviderProfile
	if err := h.db.Where("user_id = ?", userID).First(&existing).Error; err == nil {
		httperr.BadRequest(c, "profile_exists", "User already has a provider profile")
		return
	}

	profile := models.ProviderProfile{
		UserID:       userID,
		BusinessName: req.BusinessName,
		Description:  req.Description,
		Address:      req.Address,
		City:         req.City,
		PostalCode:   req.PostalCode,
		Latitude:     req.Latitude,
		Longitude:    req.Longitude,
		Tags:         req.Tags,
	}
	if err := h.db.Create(&profile).Error; err != nil {
		httperr.Internal(c, "create_failed", "Could not create provider profile")
		return
	}

	httpresp.Created(c, profile)
}

// GET /providers/me
func (h *ProviderHandler) GetMe(c *gin.Context) {
	var profile models.ProviderProfile
	if err := h.db.
		Preload("Services").
		Preload("WorkingHours").
		Where("user_id = ?", currentUserID(c)).
		First(&profile).Error; err != nil {
		httperr.NotFound(c, "profile_not_found", "Provider profile not found")
		return
	}

	httpresp.OK(c, profile)
}

// PATCH /providers/me
func (h *ProviderHandler) UpdateMe(c *gin.Context) {
	var req UpdateProviderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid body")
		return
	}

	var profile models.ProviderProfile
	if err := h.db.Where("user_id = ?", currentUserID(c)).
		First(&profile).Error; err != nil {
		httperr.NotFound(c, "profile_not_found", "Provider profile not found")
		return
	}

	updates := map[string]any{}
	if req.BusinessName != "" {
		updates["business_name"] = req.BusinessName
	}
	if req.Description != "" {
		updates["description"] = req.Description
	}
	if req.Address != "" {
		updates["address"] = req.Address
	}
	if req.City != "" {
		updates["city"] = req.City
	}
	if req.PostalCode != "" {
		updates["postal_code"] = req.PostalCode
	}
	if req.Latitude != nil {
		updates["latitude"] = *req.Latitude
	}
	if req.Longitude != nil {
		updates["longitude"] = *req.Longitude
	}

	if len(updates) > 0 {
		if err := h.db.Model(&profile).Updates(updates).Error; err != nil {
			httperr.Internal(c, "update_failed", "Could not update provider profile")
			return
		}
	}

	httpresp.OK(c, profile)
}

// ======================================================
// WORKING HOURS
// ======================================================

// PUT /providers/me/working-hours replaces the whole weekly schedule in
// one transaction, the only write path for WorkingHours rows.
func (h *ProviderHandler) UpdateWorkingHours(c *gin.Context) {
	var profile models.ProviderProfile
	if err := h.db.Where("user_id = ?", currentUserID(c)).
		First(&profile).Error; err != nil {
		httperr.NotFound(c, "profile_not_found", "Provider profile not found")
		return
	}

	var req WorkingHoursUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "days is required")
		return
	}

	seen := map[int]bool{}
	for _, d := range req.Days {
		if seen[d.DayOfWeek] {
			httperr.BadRequest(c, "duplicate_day", "At most one entry per day of week")
			return
		}
		seen[d.DayOfWeek] = true

		if err := validateWorkingDay(d); err != nil {
			writeError(c, err)
			return
		}
	}

	var saved []models.WorkingHours
	err := h.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("provider_id = ?", profile.ID).
			Delete(&models.WorkingHours{}).Error; err != nil {
			return err
		}

		for _, d := range req.Days {
			saved = append(saved, models.WorkingHours{
				ProviderID:     profile.ID,
				DayOfWeek:      d.DayOfWeek,
				StartTime:      d.StartTime,
				EndTime:        d.EndTime,
				BreakStartTime: d.BreakStartTime,
				BreakEndTime:   d.BreakEndTime,
			})
		}
		if len(saved) > 0 {
			if err := tx.Create(&saved).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		httperr.Internal(c, "update_failed", "Could not save working hours")
		return
	}

	httpresp.List(c, saved)
}

func validateWorkingDay(d WorkingDayRequest) error {
	for _, hm := range []string{d.StartTime, d.EndTime} {
		if !schedule.IsClock(hm) {
			return httperr.ErrValidation("invalid_clock_time", "Times must be HH:mm")
		}
	}

	base := time.Date(2000, 1, 1, 0, 0, 0, 0, time.UTC)
	start, _ := schedule.ClockAt(base, d.StartTime)
	end, _ := schedule.ClockAt(base, d.EndTime)
	if !start.Before(end) {
		return httperr.ErrValidation("invalid_day_window", "startTime must be before endTime")
	}

	hasBreakStart := d.BreakStartTime != ""
	hasBreakEnd := d.BreakEndTime != ""
	if hasBreakStart != hasBreakEnd {
		return httperr.ErrValidation("incomplete_break", "Break start and end must both be set or both be empty")
	}
	if !hasBreakStart {
		return nil
	}

	if !schedule.IsClock(d.BreakStartTime) || !schedule.IsClock(d.BreakEndTime) {
		return httperr.ErrValidation("invalid_clock_time", "Times must be HH:mm")
	}
	bs, _ := schedule.ClockAt(base, d.BreakStartTime)
	be, _ := schedule.ClockAt(base, d.BreakEndTime)
	if !bs.Before(be) || bs.Before(start) || be.After(end) {
		return httperr.ErrValidation("invalid_break_window", "Break must lie within the working day")
	}

	return nil
}

// ======================================================
// ABSENCES
// ======================================================

// GET /providers/me/absences
func (h *ProviderHandler) ListAbsences(c *gin.Context) {
	profile, ok := h.myProfile(c)
	if !ok {
		return
	}

	var absences []models.ProviderAbsence
	if err := h.db.Where("provider_id = ?", profile.ID).
		Order("start_date ASC").
		Find(&absences).Error; err != nil {
		httperr.Internal(c, "list_failed", "Could not list absences")
		return
	}

	httpresp.List(c, absences)
}

// POST /providers/me/absences
func (h *ProviderHandler) CreateAbsence(c *gin.Context) {
	profile, ok := h.myProfile(c)
	if !ok {
		return
	}

	var req CreateAbsenceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "startDate and endDate are required")
		return
	}
	if !req.StartDate.Before(req.EndDate) {
		httperr.BadRequest(c, "invalid_absence_window", "startDate must be before endDate")
		return
	}

	absence := models.ProviderAbsence{
		ProviderID: profile.ID,
		StartDate:  req.StartDate.UTC(),
		EndDate:    req.EndDate.UTC(),
		Reason:     req.Reason,
	}
	if err := h.db.Create(&absence).Error; err != nil {
		httperr.Internal(c, "create_failed", "Could not create absence")
		return
	}

	httpresp.Created(c, absence)
}

// DELETE /providers/me/absences/:id
func (h *ProviderHandler) DeleteAbsence(c *gin.Context) {
	profile, ok := h.myProfile(c)
	if !ok {
		return
	}

	res := h.db.Where("id = ? AND provider_id = ?", c.Param("id"), profile.ID).
		Delete(&models.ProviderAbsence{})
	if res.Error != nil {
		httperr.Internal(c, "delete_failed", "Could not delete absence")
		return
	}
	if res.RowsAffected == 0 {
		httperr.NotFound(c, "absence_not_found", "Absence not found")
		return
	}

	c.Status(204)
}

func (h *ProviderHandler) myProfile(c *gin.Context) (*models.ProviderProfile, bool) {
	var profile models.ProviderProfile
	if err := h.db.Where("user_id = ?", currentUserID(c)).
		First(&profile).Error; err != nil {
		httperr.NotFound(c, "profile_not_found", "Provider profile not found")
		return nil, false
	}
	return &profile, true
}

// ======================================================
// SEARCH
// ======================================================

// GET /providers/search?q&animalType&city
func (h *ProviderHandler) Search(c *gin.Context) {
	filter := infraRepo.ProviderFilter{
		Query:      c.Query("q"),
		AnimalType: models.AnimalType(c.Query("animalType")),
		City:       c.Query("city"),
	}

	key := fmt.Sprintf("providers:search:%s:%s:%s", filter.Query, filter.AnimalType, filter.City)

	var providers []models.ProviderProfile
	if h.cache.GetJSON(c.Request.Context(), key, &providers) {
		httpresp.List(c, providers)
		return
	}

	providers, err := infraRepo.SearchProviders(c.Request.Context(), h.db, filter)
	if err != nil {
		httperr.Internal(c, "search_failed", "Could not search providers")
		return
	}

	h.cache.SetJSON(c.Request.Context(), key, providers)
	httpresp.List(c, providers)
}

// GET /providers/:id
func (h *ProviderHandler) Get(c *gin.Context) {
	var profile models.ProviderProfile
	if err := h.db.
		Preload("Services").
		Preload("WorkingHours").
		First(&profile, "id = ?", c.Param("id")).Error; err != nil {
		httperr.NotFound(c, "provider_not_found", "Provider not found")
		return
	}

	httpresp.OK(c, profile)
}
