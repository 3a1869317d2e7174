package handlers

import (
	"log"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/Nevenjbx/kompagni-api/internal/httperr"
	"github.com/Nevenjbx/kompagni-api/internal/httpresp"
	"github.com/Nevenjbx/kompagni-api/internal/middleware"
	"github.com/Nevenjbx/kompagni-api/internal/models"
)

type UserHandler struct {
	db *gorm.DB
}

func NewUserHandler(db *gorm.DB) *UserHandler {
	return &UserHandler{db: db}
}

type ProviderProfileData struct {
	BusinessName string   `json:"businessName" binding:"required"`
	Description  string   `json:"description"`
	Address      string   `json:"address" binding:"required"`
	City         string   `json:"city" binding:"required"`
	PostalCode   string   `json:"postalCode" binding:"required"`
	Latitude     *float64 `json:"latitude"`
	Longitude    *float64 `json:"longitude"`
	Tags         []string `json:"tags"`
}

type SyncUserRequest struct {
	Role            models.Role          `json:"role" binding:"required,oneof=CLIENT PROVIDER ADMIN"`
	Name            string               `json:"name"`
	PhoneNumber     string               `json:"phoneNumber"`
	ProviderProfile *ProviderProfileData `json:"providerProfile"`
}

type UpdateUserRequest struct {
	Name        string `json:"name"`
	PhoneNumber string `json:"phoneNumber"`
	Email       string `json:"email" binding:"omitempty,email"`
}

// POST /users/sync mirrors the IdP account into the local users table.
// Called by the frontend right after sign-in.
func (h *UserHandler) Sync(c *gin.Context) {
	userID := currentUserID(c)
	email := c.MustGet(middleware.ContextUserEmail).(string)

	var req SyncUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "role is required")
		return
	}

	// A user deleted at the IdP and signed up again keeps the email but
	// gets a new subject; drop the stale row before upserting.
	var ghost models.User
	if err := h.db.Where("email = ? AND id <> ?", email, userID).
		First(&ghost).Error; err == nil {
		log.Printf("sync: deleting ghost user %s for email %s", ghost.ID, email)
		h.db.Delete(&ghost)
	}

	user := models.User{
		ID:          userID,
		Email:       email,
		Name:        req.Name,
		PhoneNumber: req.PhoneNumber,
		Role:        req.Role,
	}
	if err := h.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		DoUpdates: clause.AssignmentColumns([]string{"email", "name", "phone_number", "role"}),
	}).Create(&user).Error; err != nil {
		httperr.Internal(c, "sync_failed", "Could not sync user")
		return
	}

	if req.Role == models.RoleProvider && req.ProviderProfile != nil {
		if err := h.upsertProfile(c, userID, req.ProviderProfile); err != nil {
			httperr.Internal(c, "sync_failed", "Could not sync provider profile")
			return
		}
	}

	httpresp.OK(c, user)
}

func (h *UserHandler) upsertProfile(c *gin.Context, userID string, data *ProviderProfileData) error {
	profile := models.ProviderProfile{
		UserID:       userID,
		BusinessName: data.BusinessName,
		Description:  data.Description,
		Address:      data.Address,
		City:         data.City,
		PostalCode:   data.PostalCode,
		Latitude:     data.Latitude,
		Longitude:    data.Longitude,
		Tags:         data.Tags,
	}
	return h.db.WithContext(c.Request.Context()).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "user_id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"business_name", "description", "address", "city",
			"postal_code", "latitude", "longitude", "tags",
		}),
	}).Create(&profile).Error
}

// GET /users/me
func (h *UserHandler) Me(c *gin.Context) {
	var user models.User
	if err := h.db.Preload("ProviderProfile").
		First(&user, "id = ?", currentUserID(c)).Error; err != nil {
		httperr.NotFound(c, "user_not_found", "User not found")
		return
	}
	httpresp.OK(c, user)
}

// PATCH /users/me. Changing the email here only updates the local record;
// the IdP copy must be changed through its own client.
func (h *UserHandler) UpdateMe(c *gin.Context) {
	var req UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid body")
		return
	}

	updates := map[string]any{}
	if req.Name != "" {
		updates["name"] = req.Name
	}
	if req.PhoneNumber != "" {
		updates["phone_number"] = req.PhoneNumber
	}
	if req.Email != "" {
		updates["email"] = req.Email
	}

	var user models.User
	if err := h.db.First(&user, "id = ?", currentUserID(c)).Error; err != nil {
		httperr.NotFound(c, "user_not_found", "User not found")
		return
	}
	if len(updates) > 0 {
		if err := h.db.Model(&user).Updates(updates).Error; err != nil {
			httperr.Internal(c, "update_failed", "Could not update user")
			return
		}
	}

	httpresp.OK(c, user)
}

// DELETE /users/me
func (h *UserHandler) DeleteMe(c *gin.Context) {
	if err := h.db.Delete(&models.User{}, "id = ?", currentUserID(c)).Error; err != nil {
		httperr.Internal(c, "delete_failed", "Could not delete user")
		return
	}
	c.Status(204)
}

// ======================================================
// FAVORITES
// ======================================================

func (h *UserHandler) AddFavorite(c *gin.Context) {
	h.changeFavorite(c, true)
}

func (h *UserHandler) RemoveFavorite(c *gin.Context) {
	h.changeFavorite(c, false)
}

func (h *UserHandler) changeFavorite(c *gin.Context, add bool) {
	var user models.User
	if err := h.db.First(&user, "id = ?", currentUserID(c)).Error; err != nil {
		httperr.NotFound(c, "user_not_found", "User not found")
		return
	}

	var provider models.ProviderProfile
	if err := h.db.First(&provider, "id = ?", c.Param("providerId")).Error; err != nil {
		httperr.NotFound(c, "provider_not_found", "Provider not found")
		return
	}

	assoc := h.db.Model(&user).Association("FavoriteProviders")
	var err error
	if add {
		err = assoc.Append(&provider)
	} else {
		err = assoc.Delete(&provider)
	}
	if err != nil {
		httperr.Internal(c, "favorite_failed", "Could not update favorites")
		return
	}

	h.ListFavorites(c)
}

func (h *UserHandler) ListFavorites(c *gin.Context) {
	var user models.User
	if err := h.db.Preload("FavoriteProviders").
		First(&user, "id = ?", currentUserID(c)).Error; err != nil {
		httperr.NotFound(c, "user_not_found", "User not found")
		return
	}

	httpresp.List(c, user.FavoriteProviders)
}
