// Package cron runs the appointment-reminder job.
package cron

import (
	"fmt"
	"log"
	"time"

	"github.com/robfig/cron/v3"
	"gorm.io/gorm"

	domain "github.com/Nevenjbx/kompagni-api/internal/domain/appointment"
	"github.com/Nevenjbx/kompagni-api/internal/models"
	"github.com/Nevenjbx/kompagni-api/internal/notify"
)

// StartReminders schedules a minutely scan for confirmed appointments
// starting in one hour and dispatches a reminder for each.
func StartReminders(db *gorm.DB, dispatcher *notify.Dispatcher) *cron.Cron {
	c := cron.New()

	_, err := c.AddFunc("* * * * *", func() {
		sendReminders(db, dispatcher)
	})
	if err != nil {
		log.Fatalf("failed to schedule reminder job: %v", err)
	}

	c.Start()
	log.Println("reminder job scheduled")
	return c
}

func sendReminders(db *gorm.DB, dispatcher *notify.Dispatcher) {
	now := time.Now().UTC()

	// one-minute window so a minutely run picks each appointment up once
	windowStart := now.Add(60 * time.Minute)
	windowEnd := now.Add(61 * time.Minute)

	var appointments []models.Appointment
	err := db.
		Preload("Client").
		Preload("Service").
		Where(
			"status = ? AND start_time >= ? AND start_time < ?",
			string(domain.StatusConfirmed), windowStart, windowEnd,
		).
		Find(&appointments).Error
	if err != nil {
		log.Printf("reminder scan failed: %v", err)
		return
	}

	for _, ap := range appointments {
		to := ap.ClientID
		if ap.Client != nil {
			to = ap.Client.Email
		}
		serviceName := ""
		if ap.Service != nil {
			serviceName = ap.Service.Name
		}

		dispatcher.Dispatch(notify.Event{
			Type:    "appointment_reminder",
			To:      to,
			Subject: "Reminder: upcoming appointment",
			Body: fmt.Sprintf(
				"Your appointment %s starts at %s.",
				serviceName,
				ap.StartTime.UTC().Format(time.RFC3339),
			),
		})
	}
}
