package dispatcher

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/roadassist/backend/internal/channel"
	"github.com/roadassist/backend/internal/config"
	"github.com/roadassist/backend/internal/domain"
	"github.com/roadassist/backend/internal/ratelimit"
	"github.com/roadassist/backend/internal/render"
	"go.uber.org/zap"
)

type RejectReason string

const (
	ReasonRateLimited        RejectReason = "rate_limited"
	ReasonChannelUnavailable RejectReason = "channel_unavailable"
)

type SendInput struct {
	Channel   domain.Channel
	Recipient string
	Template  render.TemplateID
	Data      map[string]string
	Priority  domain.Priority
}

// SendResult is the only outcome callers ever observe; channel errors never
// cross the dispatcher boundary.
type SendResult struct {
	Accepted bool
	Queued   bool
	ID       uuid.UUID
	Reason   RejectReason
}

type QueueDepth struct {
	High   int `json:"high"`
	Medium int `json:"medium"`
	Low    int `json:"low"`
	Total  int `json:"total"`
}

// Dispatcher owns the three priority queues and their drain tickers. High
// priority is delivered synchronously inside Send; medium and low wait for
// their tier's tick.
type Dispatcher struct {
	senders  channel.Senders
	limiter  ratelimit.Limiter
	renderer *render.Renderer
	config   config.DispatcherConfig
	logger   *zap.Logger

	queues map[domain.Priority]*jobQueue

	stop     chan struct{}
	wg       sync.WaitGroup
	stopOnce sync.Once
}

func New(
	senders channel.Senders,
	limiter ratelimit.Limiter,
	renderer *render.Renderer,
	cfg config.DispatcherConfig,
	logger *zap.Logger,
) *Dispatcher {
	return &Dispatcher{
		senders:  senders,
		limiter:  limiter,
		renderer: renderer,
		config:   cfg,
		logger:   logger,
		queues: map[domain.Priority]*jobQueue{
			domain.PriorityHigh:   newJobQueue(),
			domain.PriorityMedium: newJobQueue(),
			domain.PriorityLow:    newJobQueue(),
		},
		stop: make(chan struct{}),
	}
}

// Start launches one drain loop per priority tier. Each tick pops a single
// job, so a burst in one tier cannot starve the others.
func (d *Dispatcher) Start() {
	tiers := map[domain.Priority]time.Duration{
		domain.PriorityHigh:   d.config.HighInterval,
		domain.PriorityMedium: d.config.MediumInterval,
		domain.PriorityLow:    d.config.LowInterval,
	}

	for priority, interval := range tiers {
		d.wg.Add(1)
		go d.drainLoop(priority, interval)
	}
}

func (d *Dispatcher) Stop() {
	d.stopOnce.Do(func() {
		close(d.stop)
	})
	d.wg.Wait()
}

func (d *Dispatcher) Send(ctx context.Context, input SendInput) SendResult {
	sender, ok := d.senders[input.Channel]
	if !ok {
		d.logger.Error("no sender registered for channel", zap.String("channel", string(input.Channel)))
		return SendResult{Reason: ReasonChannelUnavailable}
	}

	subject, body, err := d.renderer.Render(input.Template, input.Data)
	if err != nil {
		d.logger.Error("render notification failed",
			zap.String("template", string(input.Template)),
			zap.Error(err),
		)
		return SendResult{Reason: ReasonChannelUnavailable}
	}

	jobID, err := uuid.NewV7()
	if err != nil {
		d.logger.Error("generate job id failed", zap.Error(err))
		return SendResult{Reason: ReasonChannelUnavailable}
	}

	job := &domain.NotificationJob{
		ID:         jobID,
		Channel:    input.Channel,
		Priority:   input.Priority,
		Recipient:  input.Recipient,
		Message:    domain.Message{Subject: subject, Body: body},
		EnqueuedAt: time.Now(),
	}

	if input.Priority != domain.PriorityHigh {
		d.queues[input.Priority].push(job)
		return SendResult{Queued: true, ID: job.ID}
	}

	// High priority goes out synchronously. A rate-limited code is rejected
	// outright: queuing it would deliver it after its value window.
	allowed, err := d.limiter.Allow(ctx, job.Channel, job.Recipient)
	if err != nil {
		d.logger.Error("rate limiter check failed", zap.String("job_id", job.ID.String()), zap.Error(err))
		return SendResult{ID: job.ID, Reason: ReasonChannelUnavailable}
	}
	if !allowed {
		d.logger.Warn("high priority send rate limited",
			zap.String("channel", string(job.Channel)),
			zap.String("recipient", job.Recipient),
		)
		return SendResult{ID: job.ID, Reason: ReasonRateLimited}
	}

	if err := sender.Deliver(ctx, job.Recipient, job.Message); err != nil {
		d.logger.Warn("immediate delivery failed, queueing for retry",
			zap.String("job_id", job.ID.String()),
			zap.String("channel", string(job.Channel)),
			zap.Error(err),
		)
		job.AttemptsMade = 1
		if job.AttemptsMade < d.config.MaxRetries {
			d.queues[domain.PriorityHigh].push(job)
			return SendResult{Queued: true, ID: job.ID, Reason: ReasonChannelUnavailable}
		}
		return SendResult{ID: job.ID, Reason: ReasonChannelUnavailable}
	}

	return SendResult{Accepted: true, ID: job.ID}
}

func (d *Dispatcher) GetQueueDepth() QueueDepth {
	depth := QueueDepth{
		High:   d.queues[domain.PriorityHigh].len(),
		Medium: d.queues[domain.PriorityMedium].len(),
		Low:    d.queues[domain.PriorityLow].len(),
	}
	depth.Total = depth.High + depth.Medium + depth.Low

	return depth
}

func (d *Dispatcher) drainLoop(priority domain.Priority, interval time.Duration) {
	defer d.wg.Done()

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-d.stop:
			return
		case <-ticker.C:
			d.processOne(priority)
		}
	}
}

// processOne handles at most one job per tick.
func (d *Dispatcher) processOne(priority domain.Priority) {
	job := d.queues[priority].pop()
	if job == nil {
		return
	}

	ctx := context.Background()

	allowed, err := d.limiter.Allow(ctx, job.Channel, job.Recipient)
	if err != nil {
		d.logger.Error("rate limiter check failed", zap.String("job_id", job.ID.String()), zap.Error(err))
		d.requeue(job, priority)
		return
	}
	if !allowed {
		d.requeue(job, priority)
		return
	}

	sender, ok := d.senders[job.Channel]
	if !ok {
		d.logger.Error("no sender registered for channel, dropping job",
			zap.String("job_id", job.ID.String()),
			zap.String("channel", string(job.Channel)),
		)
		return
	}

	if err := sender.Deliver(ctx, job.Recipient, job.Message); err != nil {
		d.logger.Warn("queued delivery failed",
			zap.String("job_id", job.ID.String()),
			zap.String("channel", string(job.Channel)),
			zap.Int("attempts_made", job.AttemptsMade+1),
			zap.Error(err),
		)
		d.requeue(job, priority)
		return
	}

	d.logger.Debug("notification delivered",
		zap.String("job_id", job.ID.String()),
		zap.String("channel", string(job.Channel)),
		zap.String("priority", string(priority)),
	)
}

// requeue returns a failed job to the back of its queue, or drops it once
// retries are exhausted. Dropped jobs are always logged.
func (d *Dispatcher) requeue(job *domain.NotificationJob, priority domain.Priority) {
	job.AttemptsMade++

	if job.AttemptsMade < d.config.MaxRetries {
		d.queues[priority].push(job)
		return
	}

	d.logger.Error("notification dropped after exhausting retries",
		zap.String("job_id", job.ID.String()),
		zap.String("channel", string(job.Channel)),
		zap.String("recipient", job.Recipient),
		zap.String("priority", string(priority)),
		zap.Int("attempts_made", job.AttemptsMade),
	)
}
