package processor

import (
	"context"
	"log"

	"wanderlog/scoring-worker-service/internal/app/scoring-worker/service"

	"github.com/robfig/cron/v3"
)

// CronScheduler запускает полный пересчёт рейтингов по расписанию
type CronScheduler struct {
	cron       *cron.Cron
	rescoreSvc service.RescoreServiceInterface
}

func NewCronScheduler(rescoreSvc service.RescoreServiceInterface) *CronScheduler {
	c := cron.New(cron.WithSeconds())

	return &CronScheduler{
		cron:       c,
		rescoreSvc: rescoreSvc,
	}
}

// Start регистрирует задачу пересчёта и запускает планировщик.
// Первый обход выполняется сразу, не дожидаясь расписания.
func (s *CronScheduler) Start(ctx context.Context, schedule string) error {
	log.Printf("Starting cron scheduler with schedule: %s", schedule)

	_, err := s.cron.AddFunc(schedule, func() {
		log.Println("Cron job triggered: rescoring all places")

		rescored, err := s.rescoreSvc.RescoreAll(ctx)
		if err != nil {
			log.Printf("ERROR: Rescore sweep failed: %v", err)
			return
		}
		log.Printf("Cron job completed: %d places rescored", rescored)
	})

	if err != nil {
		return err
	}

	s.cron.Start()
	log.Println("Cron scheduler started")

	log.Println("Performing initial rescore sweep...")
	if _, err := s.rescoreSvc.RescoreAll(ctx); err != nil {
		log.Printf("WARNING: Initial rescore sweep failed: %v", err)
	} else {
		log.Println("Initial rescore sweep completed")
	}

	return nil
}

func (s *CronScheduler) Stop() {
	log.Println("Stopping cron scheduler...")
	ctx := s.cron.Stop()
	<-ctx.Done()
	log.Println("Cron scheduler stopped")
}

func (s *CronScheduler) GetEntries() []cron.Entry {
	return s.cron.Entries()
}
