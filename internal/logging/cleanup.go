package logging

import (
	"log/slog"
	"time"

	"gorm.io/gorm"

	"github.com/chenglu1/admin-console/internal/models"
)

// StartCleanup runs a daily goroutine that deletes system and operation
// logs older than 30 days.
func StartCleanup(db *gorm.DB, done chan struct{}) {
	go func() {
		ticker := time.NewTicker(24 * time.Hour)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				cutoff := time.Now().AddDate(0, 0, -30)

				result := db.Where("timestamp < ?", cutoff).Delete(&models.SystemLog{})
				if result.Error != nil {
					slog.Error("system log cleanup failed", "error", result.Error)
				} else if result.RowsAffected > 0 {
					slog.Info("system log cleanup completed", "deleted", result.RowsAffected)
				}

				result = db.Where("created_at < ?", cutoff).Delete(&models.OperationLog{})
				if result.Error != nil {
					slog.Error("operation log cleanup failed", "error", result.Error)
				} else if result.RowsAffected > 0 {
					slog.Info("operation log cleanup completed", "deleted", result.RowsAffected)
				}
			case <-done:
				return
			}
		}
	}()
}
