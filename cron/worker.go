package cron

import (
	"context"
	"encoding/json"
	"time"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"

	driverRepoPkg "agritrust/database/repository/driver"
	farmerRepoPkg "agritrust/database/repository/farmer"
	"agritrust/services/mailer"
	"agritrust/services/tasks"
	"agritrust/utils"
)

const resetSweepInterval = 15 * time.Minute

// InitResetWorker starts the background worker that delivers reset-code
// emails and periodically clears expired codes.
func InitResetWorker(mail mailer.Mailer, farmerRepo farmerRepoPkg.FarmerRepository, driverRepo driverRepoPkg.DriverRepository) {
	logger := utils.GetLogger()

	srv := asynq.NewServer(
		tasks.RedisOpt(),
		asynq.Config{
			Concurrency: 10,
			Queues: map[string]int{
				"default": 1,
			},
		},
	)

	mux := asynq.NewServeMux()
	mux.HandleFunc(tasks.TypeResetEmail, handleResetEmailTask(mail))

	go runResetSweep(farmerRepo, driverRepo)

	go func() {
		logger.Info("Starting reset worker")
		const maxAttempts = 5
		for attempt := 1; attempt <= maxAttempts; attempt++ {
			err := srv.Run(mux)
			if err == nil {
				return
			}
			logger.Error("Reset worker failed to start",
				zap.Int("attempt", attempt), zap.Error(err))
			if attempt == maxAttempts {
				logger.Fatal("Reset worker exhausted start attempts")
			}
			time.Sleep(time.Duration(attempt*2) * time.Second)
		}
	}()
}

func handleResetEmailTask(mail mailer.Mailer) asynq.HandlerFunc {
	return func(ctx context.Context, task *asynq.Task) error {
		var p tasks.ResetEmailPayload
		if err := json.Unmarshal(task.Payload(), &p); err != nil {
			utils.GetLogger().Error("Invalid reset email payload", zap.Error(err))
			return err
		}
		if err := mail.SendResetCode(p.Email, p.Name, p.Code); err != nil {
			utils.GetLogger().Error("Failed to send reset code email",
				zap.String("email", p.Email), zap.Error(err))
			return err
		}
		return nil
	}
}

// runResetSweep removes lapsed reset codes so an expired code can never
// linger on a record.
func runResetSweep(farmerRepo farmerRepoPkg.FarmerRepository, driverRepo driverRepoPkg.DriverRepository) {
	logger := utils.GetLogger()
	ticker := time.NewTicker(resetSweepInterval)
	defer ticker.Stop()

	for range ticker.C {
		if n, err := farmerRepo.ClearExpiredResetCodes(); err != nil {
			logger.Error("Farmer reset sweep failed", zap.Error(err))
		} else if n > 0 {
			logger.Info("Cleared expired farmer reset codes", zap.Int64("count", n))
		}
		if n, err := driverRepo.ClearExpiredResetCodes(); err != nil {
			logger.Error("Driver reset sweep failed", zap.Error(err))
		} else if n > 0 {
			logger.Info("Cleared expired driver reset codes", zap.Int64("count", n))
		}
	}
}
