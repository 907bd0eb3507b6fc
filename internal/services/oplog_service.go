package services

import (
	"log/slog"
	"sync"
	"time"

	"gorm.io/gorm"

	"github.com/chenglu1/admin-console/internal/dto"
	"github.com/chenglu1/admin-console/internal/models"
)

// OplogService buffers operation-log rows and flushes them to Postgres in
// batches so request latency never waits on audit writes.
type OplogService struct {
	db     *gorm.DB
	mu     sync.Mutex
	buffer []models.OperationLog
	ticker *time.Ticker
	done   chan struct{}
}

func NewOplogService(db *gorm.DB) *OplogService {
	s := &OplogService{
		db:     db,
		buffer: make([]models.OperationLog, 0, 50),
		ticker: time.NewTicker(5 * time.Second),
		done:   make(chan struct{}),
	}
	go s.flushLoop()
	return s
}

// Record enqueues one entry. Failures are absorbed at flush time; audit
// logging never fails a request.
func (s *OplogService) Record(entry models.OperationLog) {
	s.mu.Lock()
	s.buffer = append(s.buffer, entry)
	needFlush := len(s.buffer) >= 50
	s.mu.Unlock()

	if needFlush {
		go s.flush()
	}
}

func (s *OplogService) List(q *dto.ListOperationLogsQuery) (*dto.PageResponse, error) {
	page, pageSize := normalizePage(q.Page, q.PageSize)

	tx := s.db.Model(&models.OperationLog{})
	if q.Username != "" {
		tx = tx.Where("username = ?", q.Username)
	}
	if q.Path != "" {
		tx = tx.Where("path LIKE ?", q.Path+"%")
	}

	var total int64
	if err := tx.Count(&total).Error; err != nil {
		return nil, err
	}

	var logs []models.OperationLog
	if err := tx.Order("created_at DESC").
		Offset((page - 1) * pageSize).Limit(pageSize).
		Find(&logs).Error; err != nil {
		return nil, err
	}

	return &dto.PageResponse{Total: total, Page: page, PageSize: pageSize, Items: logs}, nil
}

func (s *OplogService) flushLoop() {
	for {
		select {
		case <-s.ticker.C:
			s.flush()
		case <-s.done:
			s.flush()
			return
		}
	}
}

func (s *OplogService) flush() {
	s.mu.Lock()
	if len(s.buffer) == 0 {
		s.mu.Unlock()
		return
	}
	batch := s.buffer
	s.buffer = make([]models.OperationLog, 0, 50)
	s.mu.Unlock()

	if err := s.db.CreateInBatches(batch, 50).Error; err != nil {
		slog.Error("failed to flush operation logs", "error", err, "count", len(batch))
	}
}

// Stop flushes remaining entries and halts the background loop.
func (s *OplogService) Stop() {
	s.ticker.Stop()
	close(s.done)
}
