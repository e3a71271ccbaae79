package jobs

import (
	"context"
	"time"

	"skimmer/internal/repositories"
	"skimmer/internal/services"

	logger "github.com/Bparsons0904/goLogger"
)

// RecurringExpiryJob deactivates recurrence rules whose end_date has passed,
// so expired rules stop showing up as active without anyone toggling them.
type RecurringExpiryJob struct {
	recurringRepo repositories.RecurringServiceRepository
	log           logger.Logger
	schedule      services.Schedule
}

func NewRecurringExpiryJob(
	recurringRepo repositories.RecurringServiceRepository,
	schedule services.Schedule,
) *RecurringExpiryJob {
	log := logger.New("recurringExpiryJob")
	log.Info("Creating new recurring expiry job", "schedule", schedule)

	return &RecurringExpiryJob{
		recurringRepo: recurringRepo,
		log:           log,
		schedule:      schedule,
	}
}

func (j *RecurringExpiryJob) Name() string {
	return "RecurringServiceExpiry"
}

func (j *RecurringExpiryJob) Execute(ctx context.Context) error {
	log := j.log.Function("Execute")

	log.Info("Starting recurring service expiry sweep")

	deactivated, err := j.recurringRepo.DeactivateExpired(ctx, time.Now().UTC())
	if err != nil {
		return log.Err("recurring service expiry sweep failed", err)
	}

	log.Info("Recurring service expiry sweep completed", "deactivated", deactivated)
	return nil
}

func (j *RecurringExpiryJob) Schedule() services.Schedule {
	return j.schedule
}
