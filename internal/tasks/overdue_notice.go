package tasks

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/mikestefanello/backlite"

	"github.com/openshelf/librarian/internal/entities"
)

// NoticeRecorder persists produced overdue notices.
type NoticeRecorder interface {
	CreateOverdueNotice(notice *entities.OverdueNotice) error
	HasRecentNotice(patronID string, bookID uint, since time.Time) (bool, error)
}

// OverdueNoticeTask produces one notice for one overdue loan. The fee
// figures are computed at scan time; the processor only records and
// deduplicates.
type OverdueNoticeTask struct {
	PatronID    string  `json:"patron_id"`
	BookID      uint    `json:"book_id"`
	BookTitle   string  `json:"book_title"`
	DaysOverdue int     `json:"days_overdue"`
	FeeAmount   float64 `json:"fee_amount"`
}

// Config returns the queue configuration for overdue notice tasks.
func (t OverdueNoticeTask) Config() backlite.QueueConfig {
	return backlite.QueueConfig{
		Name:        "overdue_notice",
		MaxAttempts: 3,
		Backoff:     5 * time.Minute,
		Timeout:     time.Minute,
		Retention: &backlite.Retention{
			Duration:   24 * time.Hour,
			OnlyFailed: false,
			Data:       &backlite.RetainData{OnlyFailed: true},
		},
	}
}

// OverdueNoticeProcessor creates a processor function for OverdueNoticeTask.
// The notice window keeps retried scans from double-noticing a loan.
func OverdueNoticeProcessor(recorder NoticeRecorder, noticeWindow time.Duration) backlite.QueueProcessor[OverdueNoticeTask] {
	return func(ctx context.Context, task OverdueNoticeTask) error {
		if recorder == nil {
			return fmt.Errorf("notice recorder not configured")
		}

		if noticeWindow > 0 {
			recent, err := recorder.HasRecentNotice(task.PatronID, task.BookID, time.Now().Add(-noticeWindow))
			if err != nil {
				return fmt.Errorf("check recent notices: %w", err)
			}
			if recent {
				log.Printf("[TASK] Skipping overdue notice for patron %s, book %d: already noticed", task.PatronID, task.BookID)
				return nil
			}
		}

		notice := &entities.OverdueNotice{
			PatronID:    task.PatronID,
			BookID:      task.BookID,
			DaysOverdue: task.DaysOverdue,
			FeeAmount:   task.FeeAmount,
			SentAt:      time.Now(),
		}
		if err := recorder.CreateOverdueNotice(notice); err != nil {
			return fmt.Errorf("record overdue notice: %w", err)
		}

		log.Printf("[TASK] Overdue notice: patron %s, %q is %d day(s) overdue ($%.2f)",
			task.PatronID, task.BookTitle, task.DaysOverdue, task.FeeAmount)
		return nil
	}
}

// NewOverdueNoticeQueue creates a backlite queue for overdue notice tasks.
func NewOverdueNoticeQueue(recorder NoticeRecorder, noticeWindow time.Duration) backlite.Queue {
	return backlite.NewQueue(OverdueNoticeProcessor(recorder, noticeWindow))
}
