// Package scheduler runs the periodic overdue scan: every open borrow
// record past its due date is turned into an overdue-notice task.
package scheduler

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/openshelf/librarian/internal/entities"
	"github.com/openshelf/librarian/internal/services"
	"github.com/openshelf/librarian/internal/tasks"
)

// OverdueLister finds open records past their due dates.
type OverdueLister interface {
	ListOverdueOpenRecords(now time.Time) ([]entities.BorrowRecord, error)
}

// OverdueScanScheduler periodically scans for overdue loans and
// enqueues one notice task per (patron, book) pair.
type OverdueScanScheduler struct {
	lister     OverdueLister
	taskClient *tasks.Client
	schedule   string

	cron       *cron.Cron
	entryID    cron.EntryID
	mu         sync.RWMutex
	isRunning  bool
	cancelFunc context.CancelFunc
}

// NewOverdueScanScheduler creates a new scheduler instance.
func NewOverdueScanScheduler(lister OverdueLister, taskClient *tasks.Client, schedule string) *OverdueScanScheduler {
	return &OverdueScanScheduler{
		lister:     lister,
		taskClient: taskClient,
		schedule:   schedule,
		cron:       cron.New(cron.WithParser(cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow))),
	}
}

// Start begins the scheduler.
func (s *OverdueScanScheduler) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.isRunning {
		return nil
	}

	entryID, err := s.cron.AddFunc(s.schedule, func() {
		s.runScan()
	})
	if err != nil {
		return fmt.Errorf("failed to schedule overdue scan '%s': %w", s.schedule, err)
	}
	s.entryID = entryID

	var cancelCtx context.Context
	cancelCtx, s.cancelFunc = context.WithCancel(ctx)

	s.cron.Start()
	s.isRunning = true

	log.Printf("Overdue scan scheduler: started with schedule '%s'", s.schedule)

	go func() {
		<-cancelCtx.Done()
		s.Stop()
	}()

	return nil
}

// Stop gracefully stops the scheduler.
func (s *OverdueScanScheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.isRunning {
		return
	}

	// Stop accepting new jobs and wait for running jobs to complete
	ctx := s.cron.Stop()
	<-ctx.Done()

	s.isRunning = false
	s.cancelFunc = nil

	log.Printf("Overdue scan scheduler: stopped")
}

// RunNow triggers an immediate scan.
func (s *OverdueScanScheduler) RunNow() {
	go s.runScan()
}

// IsRunning returns whether the scheduler is active.
func (s *OverdueScanScheduler) IsRunning() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.isRunning
}

// runScan performs the actual scan and enqueues notice tasks.
func (s *OverdueScanScheduler) runScan() {
	now := time.Now()
	log.Printf("Overdue scan: starting")

	records, err := s.lister.ListOverdueOpenRecords(now)
	if err != nil {
		log.Printf("Overdue scan: failed to list overdue records: %v", err)
		return
	}

	if len(records) == 0 {
		log.Printf("Overdue scan: no overdue loans")
		return
	}

	enqueued := 0
	for _, record := range records {
		fee := services.FeeForDueDate(record.DueDate, now)
		task := tasks.OverdueNoticeTask{
			PatronID:    record.PatronID,
			BookID:      record.BookID,
			BookTitle:   record.Book.Title,
			DaysOverdue: fee.DaysOverdue,
			FeeAmount:   fee.FeeAmount,
		}
		if _, err := s.taskClient.Add(task).Save(); err != nil {
			log.Printf("Overdue scan: failed to enqueue notice for patron %s, book %d: %v", record.PatronID, record.BookID, err)
			continue
		}
		enqueued++
	}

	log.Printf("Overdue scan: enqueued %d notice(s) for %d overdue loan(s) in %v",
		enqueued, len(records), time.Since(now).Round(time.Millisecond))
}
