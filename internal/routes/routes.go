package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/Nevenjbx/kompagni-api/internal/cache"
	"github.com/Nevenjbx/kompagni-api/internal/config"
	"github.com/Nevenjbx/kompagni-api/internal/handlers"
	infraRepo "github.com/Nevenjbx/kompagni-api/internal/infra/repository"
	"github.com/Nevenjbx/kompagni-api/internal/middleware"
	"github.com/Nevenjbx/kompagni-api/internal/models"
	"github.com/Nevenjbx/kompagni-api/internal/notify"
	ucAppointment "github.com/Nevenjbx/kompagni-api/internal/usecase/appointment"
)

func RegisterRoutes(
	r *gin.Engine,
	db *gorm.DB,
	cfg *config.Config,
	searchCache *cache.Cache,
	dispatcher *notify.Dispatcher,
) {

	// ======================================================
	// INFRA
	// ======================================================
	appointmentRepo := infraRepo.NewAppointmentGormRepository(db)

	// ======================================================
	// USE CASES — APPOINTMENTS
	// ======================================================
	availableSlotsUC := ucAppointment.NewGetAvailableSlots(appointmentRepo)
	createAppointmentUC := ucAppointment.NewCreateAppointment(appointmentRepo, dispatcher)
	updateStatusUC := ucAppointment.NewUpdateStatus(appointmentRepo)
	listMyAppointmentsUC := ucAppointment.NewListMyAppointments(appointmentRepo)
	getAppointmentUC := ucAppointment.NewGetAppointment(appointmentRepo)

	// ======================================================
	// HANDLERS
	// ======================================================
	userHandler := handlers.NewUserHandler(db)
	providerHandler := handlers.NewProviderHandler(db, searchCache)
	serviceHandler := handlers.NewServiceHandler(db)
	petHandler := handlers.NewPetHandler(db)

	appointmentHandler := handlers.NewAppointmentHandler(
		availableSlotsUC,
		createAppointmentUC,
		updateStatusUC,
		listMyAppointmentsUC,
		getAppointmentUC,
	)

	// ======================================================
	// PUBLIC
	// ======================================================
	r.GET("/providers/search", providerHandler.Search)
	r.GET("/providers/:id", providerHandler.Get)
	r.GET("/services", serviceHandler.List)
	r.GET("/services/:id", serviceHandler.Get)

	// ======================================================
	// AUTHENTICATED
	// ======================================================
	secured := r.Group("/")
	secured.Use(middleware.AuthMiddleware(cfg))
	{
		// ------------------------------
		// USERS
		// ------------------------------
		secured.POST("/users/sync", userHandler.Sync)
		secured.GET("/users/me", userHandler.Me)
		secured.PATCH("/users/me", userHandler.UpdateMe)
		secured.DELETE("/users/me", userHandler.DeleteMe)
		secured.GET("/users/me/favorites", userHandler.ListFavorites)
		secured.POST("/users/me/favorites/:providerId", userHandler.AddFavorite)
		secured.DELETE("/users/me/favorites/:providerId", userHandler.RemoveFavorite)

		// ------------------------------
		// PROVIDERS (provider role only)
		// ------------------------------
		providerOnly := secured.Group("/")
		providerOnly.Use(middleware.RequireRole(db, models.RoleProvider, models.RoleAdmin))
		{
			providerOnly.POST("/providers", providerHandler.Create)
			providerOnly.GET("/providers/me", providerHandler.GetMe)
			providerOnly.PATCH("/providers/me", providerHandler.UpdateMe)
			providerOnly.PUT("/providers/me/working-hours", providerHandler.UpdateWorkingHours)
			providerOnly.GET("/providers/me/absences", providerHandler.ListAbsences)
			providerOnly.POST("/providers/me/absences", providerHandler.CreateAbsence)
			providerOnly.DELETE("/providers/me/absences/:id", providerHandler.DeleteAbsence)

			providerOnly.POST("/services", serviceHandler.Create)
			providerOnly.PATCH("/services/:id", serviceHandler.Update)
			providerOnly.DELETE("/services/:id", serviceHandler.Delete)
		}

		// ------------------------------
		// PETS
		// ------------------------------
		secured.POST("/pets", petHandler.Create)
		secured.GET("/pets", petHandler.ListMine)
		secured.DELETE("/pets/:id", petHandler.Delete)
		secured.GET("/pets/:id/note", petHandler.GetNote)
		secured.PUT("/pets/:id/note", petHandler.UpsertNote)

		// ------------------------------
		// APPOINTMENTS
		// ------------------------------
		secured.GET("/appointments/available-slots", appointmentHandler.AvailableSlots)
		secured.POST("/appointments", appointmentHandler.Create)
		secured.GET("/appointments", appointmentHandler.ListMy)
		secured.GET("/appointments/:id", appointmentHandler.Get)
		secured.PATCH("/appointments/:id/status", appointmentHandler.UpdateStatus)
	}
}
