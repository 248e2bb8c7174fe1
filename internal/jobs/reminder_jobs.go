package jobs

import (
	"context"
	"fmt"
	"time"

	"kayakbay-backend/internal/logger"
)

// SendReturnReminders texts renters whose rental window is about to close and
// who have not returned yet. Each rental is reminded at most once.
func (jr *JobRunner) SendReturnReminders() {
	jr.runWithRecovery("SendReturnReminders", func() {
		ctx := context.Background()
		window := time.Duration(jr.config.Scheduler.ReminderWindowMinutes) * time.Minute

		now := time.Now()
		rentals, err := jr.store.Rentals.ListEndingBetween(ctx, now, now.Add(window))
		if err != nil {
			logger.Error("Failed to list rentals for reminders", "error", err)
			return
		}

		sent := 0
		for _, rt := range rentals {
			user, err := jr.store.Users.GetByID(ctx, rt.UserID)
			if err != nil {
				logger.Error("Failed to load renter for reminder", "rental_id", rt.ID, "error", err)
				continue
			}
			if user.Phone == "" {
				// No phone on file; mark anyway so the job does not rescan it.
				if err := jr.store.Rentals.MarkReminderSent(ctx, rt.ID); err != nil {
					logger.Error("Failed to mark reminder sent", "rental_id", rt.ID, "error", err)
				}
				continue
			}

			kayakName := fmt.Sprintf("kayak #%d", rt.KayakID)
			if rt.Kayak != nil {
				kayakName = rt.Kayak.Name
			}
			if err := jr.services.SMS.SendReturnReminder(ctx, user.Phone, kayakName, rt.RentalEnd); err != nil {
				logger.Error("Failed to send return reminder", "rental_id", rt.ID, "error", err)
				continue
			}
			if err := jr.store.Rentals.MarkReminderSent(ctx, rt.ID); err != nil {
				logger.Error("Failed to mark reminder sent", "rental_id", rt.ID, "error", err)
				continue
			}
			sent++
		}

		logger.Info("Return reminders sent", "count", sent, "candidates", len(rentals))
	})
}

// PurgeExpiredResetTokens clears password-reset tokens that passed their
// expiry without being used.
func (jr *JobRunner) PurgeExpiredResetTokens() {
	jr.runWithRecovery("PurgeExpiredResetTokens", func() {
		ctx := context.Background()

		cleared, err := jr.store.Users.ClearExpiredResetTokens(ctx, time.Now())
		if err != nil {
			logger.Error("Failed to purge expired reset tokens", "error", err)
			return
		}
		logger.Info("Expired reset tokens purged", "count", cleared)
	})
}
