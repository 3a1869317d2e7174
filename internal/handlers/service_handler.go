package handlers

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/Nevenjbx/kompagni-api/internal/httperr"
	"github.com/Nevenjbx/kompagni-api/internal/httpresp"
	"github.com/Nevenjbx/kompagni-api/internal/models"
)

type ServiceHandler struct {
	db *gorm.DB
}

func NewServiceHandler(db *gorm.DB) *ServiceHandler {
	return &ServiceHandler{db: db}
}

type CreateServiceRequest struct {
	Name        string            `json:"name" binding:"required"`
	Description string            `json:"description"`
	Duration    int               `json:"duration" binding:"required,gt=0"`
	Price       float64           `json:"price" binding:"required,gte=0"`
	AnimalType  models.AnimalType `json:"animalType" binding:"omitempty,oneof=DOG CAT BIRD RODENT REPTILE OTHER"`
}

type UpdateServiceRequest struct {
	Name        string            `json:"name"`
	Description string            `json:"description"`
	Duration    *int              `json:"duration" binding:"omitempty,gt=0"`
	Price       *float64          `json:"price" binding:"omitempty,gte=0"`
	AnimalType  models.AnimalType `json:"animalType" binding:"omitempty,oneof=DOG CAT BIRD RODENT REPTILE OTHER"`
}

// POST /services
func (h *ServiceHandler) Create(c *gin.Context) {
	var profile models.ProviderProfile
	if err := h.db.Where("user_id = ?", currentUserID(c)).
		First(&profile).Error; err != nil {
		httperr.Forbidden(c, "profile_required", "You must create a provider profile before adding services")
		return
	}

	var req CreateServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "name, a positive duration and a price are required")
		return
	}

	service := models.Service{
		ProviderID:  profile.ID,
		Name:        req.Name,
		Description: req.Description,
		Duration:    req.Duration,
		Price:       req.Price,
		AnimalType:  req.AnimalType,
	}
	if err := h.db.Create(&service).Error; err != nil {
		httperr.Internal(c, "create_failed", "Could not create service")
		return
	}

	httpresp.Created(c, service)
}

// GET /services?providerId
func (h *ServiceHandler) List(c *gin.Context) {
	q := h.db.Model(&models.Service{})
	if providerID := c.Query("providerId"); providerID != "" {
		q = q.Where("provider_id = ?", providerID)
	}

	var services []models.Service
	if err := q.Order("name ASC").Find(&services).Error; err != nil {
		httperr.Internal(c, "list_failed", "Could not list services")
		return
	}

	httpresp.List(c, services)
}

// GET /services/:id
func (h *ServiceHandler) Get(c *gin.Context) {
	var service models.Service
	if err := h.db.First(&service, "id = ?", c.Param("id")).Error; err != nil {
		httperr.NotFound(c, "service_not_found", "Service not found")
		return
	}
	httpresp.OK(c, service)
}

// PATCH /services/:id
func (h *ServiceHandler) Update(c *gin.Context) {
	service, ok := h.ownedService(c)
	if !ok {
		return
	}

	var req UpdateServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid body")
		return
	}

	updates := map[string]any{}
	if req.Name != "" {
		updates["name"] = req.Name
	}
	if req.Description != "" {
		updates["description"] = req.Description
	}
	if req.Duration != nil {
		updates["duration"] = *req.Duration
	}
	if req.Price != nil {
		updates["price"] = *req.Price
	}
	if req.AnimalType != "" {
		updates["animal_type"] = req.AnimalType
	}

	if len(updates) > 0 {
		if err := h.db.Model(service).Updates(updates).Error; err != nil {
			httperr.Internal(c, "update_failed", "Could not update service")
			return
		}
	}

	httpresp.OK(c, service)
}

// DELETE /services/:id
func (h *ServiceHandler) Delete(c *gin.Context) {
	service, ok := h.ownedService(c)
	if !ok {
		return
	}

	if err := h.db.Delete(service).Error; err != nil {
		httperr.Internal(c, "delete_failed", "Could not delete service")
		return
	}

	c.Status(204)
}

// ownedService resolves :id and checks the caller's profile owns it.
func (h *ServiceHandler) ownedService(c *gin.Context) (*models.Service, bool) {
	var service models.Service
	if err := h.db.First(&service, "id = ?", c.Param("id")).Error; err != nil {
		httperr.NotFound(c, "service_not_found", "Service not found")
		return nil, false
	}

	var profile models.ProviderProfile
	if err := h.db.Where("user_id = ?", currentUserID(c)).
		First(&profile).Error; err != nil || profile.ID != service.ProviderID {
		httperr.Forbidden(c, "not_owner", "You are not authorized to modify this service")
		return nil, false
	}

	return &service, true
}
