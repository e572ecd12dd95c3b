package audit

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"goflare.io/merchant/models"
)

const writeTimeout = 5 * time.Second

// Recorder is what the domain services see: fire-and-forget submission of an
// audit event. Failures are logged, never surfaced to the request path.
type Recorder interface {
	Record(action models.AuditAction, actorID, subject string)
}

// Dispatcher fans audit events out to a fixed pool of workers that persist
// them off the request path.
type Dispatcher struct {
	repo    Repository
	logger  *zap.Logger
	jobs    chan *models.AuditEvent
	workers int
	wg      sync.WaitGroup
	once    sync.Once
}

func NewDispatcher(repo Repository, logger *zap.Logger) *Dispatcher {
	d := &Dispatcher{
		repo:    repo,
		logger:  logger,
		jobs:    make(chan *models.AuditEvent, 256),
		workers: 4,
	}
	d.run()
	return d
}

// Record enqueues an event. When the queue is full the event is dropped and
// logged rather than blocking the caller.
func (d *Dispatcher) Record(action models.AuditAction, actorID, subject string) {
	event := &models.AuditEvent{
		ID:      uuid.NewString(),
		Action:  action,
		ActorID: actorID,
		Subject: subject,
	}

	select {
	case d.jobs <- event:
	default:
		d.logger.Warn("audit queue full, dropping event",
			zap.String("action", string(action)),
			zap.String("actor_id", actorID))
	}
}

func (d *Dispatcher) run() {
	for i := 0; i < d.workers; i++ {
		d.wg.Add(1)
		go d.worker(i + 1)
	}
}

func (d *Dispatcher) worker(id int) {
	defer d.wg.Done()

	for event := range d.jobs {
		ctx, cancel := context.WithTimeout(context.Background(), writeTimeout)
		if err := d.repo.Create(ctx, event); err != nil {
			d.logger.Error("failed to persist audit event",
				zap.Error(err),
				zap.Int("worker_id", id),
				zap.String("action", string(event.Action)),
				zap.String("event_id", event.ID))
		}
		cancel()
	}
}

// Stop drains the queue and waits for in-flight writes to finish.
func (d *Dispatcher) Stop() {
	d.once.Do(func() {
		close(d.jobs)
	})
	d.wg.Wait()
}
