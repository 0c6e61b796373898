package util

import (
	"log"
	"time"

	"farm-market-session/repository"
)

// StartDailyCleanup purges cleared and expired session records every day at 12:00 local time.
// It never touches the in-memory session; that expires lazily on read.
func StartDailyCleanup(repo repository.SessionRepository) {
	go func() {
		for {
			now := time.Now()
			nextRun := nextNoon(now)
			log.Printf("Next session record cleanup scheduled in %v (at %v)\n", nextRun.Sub(now), nextRun.Format(time.Kitchen))

			time.Sleep(nextRun.Sub(now))

			log.Println("Deleting cleared and expired session records...")
			if err := repo.DeleteExpired(time.Now()); err != nil {
				log.Printf("[STORE] cleanup failed: %v\n", err)
			} else {
				log.Println("Clean up completed.")
			}

			// keep the next calculation from landing on the same noon
			time.Sleep(1 * time.Second)
		}
	}()
}

// nextNoon is today at 12:00, or tomorrow if that has already passed
func nextNoon(now time.Time) time.Time {
	next := time.Date(now.Year(), now.Month(), now.Day(), 12, 0, 0, 0, now.Location())
	if !next.After(now) {
		next = next.AddDate(0, 0, 1)
	}
	return next
}
