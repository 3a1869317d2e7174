package handlers

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/Nevenjbx/kompagni-api/internal/httperr"
	"github.com/Nevenjbx/kompagni-api/internal/httpresp"
	"github.com/Nevenjbx/kompagni-api/internal/models"
)

type PetHandler struct {
	db *gorm.DB
}

func NewPetHandler(db *gorm.DB) *PetHandler {
	return &PetHandler{db: db}
}

type CreatePetRequest struct {
	Name      string              `json:"name" binding:"required"`
	Type      models.AnimalType   `json:"type" binding:"required,oneof=DOG CAT BIRD RODENT REPTILE OTHER"`
	Breed     string              `json:"breed"`
	Size      models.PetSize      `json:"size" binding:"omitempty,oneof=SMALL MEDIUM LARGE"`
	Character models.PetCharacter `json:"character" binding:"omitempty,oneof=CALM SHY ENERGETIC AGGRESSIVE"`
}

type PetNoteRequest struct {
	Note string `json:"note" binding:"required"`
}

// POST /pets
func (h *PetHandler) Create(c *gin.Context) {
	var req CreatePetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "name and a valid type are required")
		return
	}

	pet := models.Pet{
		OwnerID:   currentUserID(c),
		Name:      req.Name,
		Type:      req.Type,
		Breed:     req.Breed,
		Size:      req.Size,
		Character: req.Character,
	}
	if err := h.db.Create(&pet).Error; err != nil {
		httperr.Internal(c, "create_failed", "Could not create pet")
		return
	}

	httpresp.Created(c, pet)
}

// GET /pets
func (h *PetHandler) ListMine(c *gin.Context) {
	var pets []models.Pet
	if err := h.db.Where("owner_id = ?", currentUserID(c)).
		Order("name ASC").
		Find(&pets).Error; err != nil {
		httperr.Internal(c, "list_failed", "Could not list pets")
		return
	}

	httpresp.List(c, pets)
}

// DELETE /pets/:id, scoped to the owner so nobody deletes foreign pets.
func (h *PetHandler) Delete(c *gin.Context) {
	res := h.db.Where("id = ? AND owner_id = ?", c.Param("id"), currentUserID(c)).
		Delete(&models.Pet{})
	if res.Error != nil {
		httperr.Internal(c, "delete_failed", "Could not delete pet")
		return
	}
	if res.RowsAffected == 0 {
		httperr.NotFound(c, "pet_not_found", "Pet not found")
		return
	}

	c.Status(204)
}

// ======================================================
// PROVIDER NOTES
// ======================================================

// GET /pets/:id/note — the caller's private note about this pet.
func (h *PetHandler) GetNote(c *gin.Context) {
	profile, ok := h.myProfile(c)
	if !ok {
		return
	}

	var note models.ProviderPetNote
	err := h.db.Where("pet_id = ? AND provider_id = ?", c.Param("id"), profile.ID).
		First(&note).Error
	if err != nil {
		httpresp.OK(c, gin.H{"note": nil})
		return
	}

	httpresp.OK(c, gin.H{"note": note.Note})
}

// PUT /pets/:id/note
func (h *PetHandler) UpsertNote(c *gin.Context) {
	profile, ok := h.myProfile(c)
	if !ok {
		return
	}

	var req PetNoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "note is required")
		return
	}

	note := models.ProviderPetNote{
		PetID:      c.Param("id"),
		ProviderID: profile.ID,
		Note:       req.Note,
	}
	if err := h.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "pet_id"}, {Name: "provider_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"note"}),
	}).Create(&note).Error; err != nil {
		httperr.Internal(c, "note_failed", "Could not save note")
		return
	}

	httpresp.OK(c, note)
}

func (h *PetHandler) myProfile(c *gin.Context) (*models.ProviderProfile, bool) {
	var profile models.ProviderProfile
	if err := h.db.Where("user_id = ?", currentUserID(c)).
		First(&profile).Error; err != nil {
		httperr.NotFound(c, "profile_not_found", "Provider profile not found")
		return nil, false
	}
	return &profile, true
}
