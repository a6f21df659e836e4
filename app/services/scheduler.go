package services

import (
	"database/sql"
	"log"
	"time"

	"school20/app/config"
)

// StartScheduler starts the background task scheduler
func StartScheduler(db *sql.DB) {
	go func() {
		log.Println("Scheduler started...")
		ticker := time.NewTicker(1 * time.Minute)
		defer ticker.Stop()

		for range ticker.C {
			now := time.Now()

			// Nightly sweep at 00:30
			if now.Hour() == 0 && now.Minute() == 30 {
				log.Println("Triggering scheduled tasks [00:30]...")

				rate := config.AppConfig.Library.FineRatePerDay
				touched, err := AccrueOverdueFines(db, rate)
				if err != nil {
					log.Printf("Error accruing library fines: %v", err)
				} else if touched > 0 {
					log.Printf("Library fines updated for %d loans", touched)
				}
			}
		}
	}()
}
