package services

import (
	"context"
	"log"
	"time"

	"corebank/internal/adapters/persistence/repositories"

	"github.com/robfig/cron/v3"
)

// ReminderService runs the daily back-office job that flags pending
// loans nobody has decided on. It only reads and logs; escalation stays
// a human step.
type ReminderService struct {
	loanRepo  repositories.LoanRepository
	staleDays int
	cron      *cron.Cron
}

// NewReminderService creates a new reminder service
func NewReminderService(loanRepo repositories.LoanRepository, staleDays int) *ReminderService {
	return &ReminderService{
		loanRepo:  loanRepo,
		staleDays: staleDays,
		cron:      cron.New(),
	}
}

// Start schedules the daily check (08:30)
func (s *ReminderService) Start() {
	s.cron.AddFunc("30 8 * * *", s.FlagStalePendingLoans)
	s.cron.Start()
	log.Printf("ReminderService started (stale threshold: %d days)", s.staleDays)
}

// Stop stops the scheduler
func (s *ReminderService) Stop() {
	s.cron.Stop()
	log.Println("ReminderService stopped")
}

// FlagStalePendingLoans logs every pending loan older than the
// configured threshold
func (s *ReminderService) FlagStalePendingLoans() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	cutoff := time.Now().AddDate(0, 0, -s.staleDays)
	loans, err := s.loanRepo.ListPendingOlderThan(ctx, cutoff)
	if err != nil {
		log.Printf("Stale loan check failed: %v", err)
		return
	}

	for _, loan := range loans {
		log.Printf("Stale pending loan: id=%d branch=%d requested=%s",
			loan.ID, loan.BranchID, loan.RequestedAt.Format("2006-01-02"))
	}

	if len(loans) > 0 {
		log.Printf("%d pending loans older than %d days", len(loans), s.staleDays)
	}
}
