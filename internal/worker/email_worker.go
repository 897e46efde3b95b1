package worker

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/spec-kit/grievance-service/internal/config"
	"github.com/spec-kit/grievance-service/internal/mailer"
)

// EmailJob is one outbound message.
type EmailJob struct {
	Recipient string
	Subject   string
	HTMLBody  string
}

// EmailWorker delivers emails off the request path. Each job gets a bounded
// per-attempt timeout and retry with doubling backoff, so a slow SMTP server
// cannot stall a citizen-facing request.
type EmailWorker struct {
	mailer mailer.Mailer
	cfg    config.MailerConfig
	logger *zap.Logger
	jobs   chan EmailJob
	wg     sync.WaitGroup
	once   sync.Once
}

// NewEmailWorker constructs the worker with a buffered queue.
func NewEmailWorker(m mailer.Mailer, cfg config.MailerConfig, logger *zap.Logger) *EmailWorker {
	return &EmailWorker{
		mailer: m,
		cfg:    cfg,
		logger: logger,
		jobs:   make(chan EmailJob, 64),
	}
}

// Start launches the delivery loop.
func (w *EmailWorker) Start() {
	w.wg.Add(1)
	go func() {
		defer w.wg.Done()
		for job := range w.jobs {
			w.deliver(job)
		}
	}()
}

// Enqueue queues a job without blocking; a full queue drops the job and logs.
func (w *EmailWorker) Enqueue(job EmailJob) {
	select {
	case w.jobs <- job:
	default:
		w.logger.Error("email queue full, dropping notification",
			zap.String("recipient", job.Recipient),
			zap.String("subject", job.Subject))
	}
}

// Stop drains the queue and waits for in-flight deliveries.
func (w *EmailWorker) Stop() {
	w.once.Do(func() {
		close(w.jobs)
	})
	w.wg.Wait()
}

func (w *EmailWorker) deliver(job EmailJob) {
	attempts := w.cfg.MaxAttempts
	if attempts <= 0 {
		attempts = 1
	}
	backoff := w.cfg.Backoff()

	for attempt := 1; attempt <= attempts; attempt++ {
		ctx, cancel := context.WithTimeout(context.Background(), w.cfg.Timeout())
		err := w.mailer.Send(ctx, job.Recipient, job.Subject, job.HTMLBody)
		cancel()
		if err == nil {
			w.logger.Info("notification delivered",
				zap.String("recipient", job.Recipient),
				zap.Int("attempt", attempt))
			return
		}
		w.logger.Warn("notification delivery failed",
			zap.String("recipient", job.Recipient),
			zap.Int("attempt", attempt),
			zap.Error(err))
		if attempt < attempts {
			time.Sleep(backoff)
			backoff *= 2
		}
	}
	w.logger.Error("notification abandoned after retries",
		zap.String("recipient", job.Recipient),
		zap.String("subject", job.Subject))
}
