package services

import (
	"log"
	"sync"
	"time"

	"educonnect/internal/db"
	"educonnect/internal/models"

	"gorm.io/gorm"
)

// ViewCounter batches resource view-count increments off the request path,
// so a detail fetch never waits on the counter write.
type ViewCounter struct {
	queue chan uint
}

var (
	viewCounter *ViewCounter
	once        sync.Once
)

// GetViewCounter returns the singleton counter and starts its worker.
func GetViewCounter() *ViewCounter {
	once.Do(func() {
		viewCounter = &ViewCounter{
			queue: make(chan uint, 1000),
		}
		go viewCounter.worker()
	})
	return viewCounter
}

// Schedule enqueues one view for the resource. Fire-and-forget: when the
// queue is full the view is dropped rather than blocking the response.
func (s *ViewCounter) Schedule(resourceID uint) {
	select {
	case s.queue <- resourceID:
	default:
		log.Printf("view counter queue full, dropping view for resource %d", resourceID)
	}
}

func (s *ViewCounter) worker() {
	batch := make(map[uint]int, 64)
	ticker := time.NewTicker(500 * time.Millisecond)
	defer ticker.Stop()

	for {
		select {
		case id := <-s.queue:
			batch[id]++
			if len(batch) >= 64 {
				s.flush(batch)
				batch = make(map[uint]int, 64)
			}
		case <-ticker.C:
			if len(batch) > 0 {
				s.flush(batch)
				batch = make(map[uint]int, 64)
			}
		}
	}
}

func (s *ViewCounter) flush(batch map[uint]int) {
	for id, n := range batch {
		if err := db.DB.Model(&models.Resource{}).
			Where("id = ?", id).
			UpdateColumn("view_count", gorm.Expr("view_count + ?", n)).
			Error; err != nil {
			log.Printf("failed to flush view count for resource %d: %v", id, err)
		}
	}
}
