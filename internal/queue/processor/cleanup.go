package processor

import (
	"context"

	"github.com/roadassist/backend/internal/service"

	"github.com/hibiken/asynq"
)

type cleanupCodesProcessor struct {
	services *service.Services
}

func NewCleanupCodesProcessor(services *service.Services) *cleanupCodesProcessor {
	return &cleanupCodesProcessor{
		services: services,
	}
}

func (p *cleanupCodesProcessor) ProcessTask(ctx context.Context, _ *asynq.Task) error {
	p.services.Verification.Cleanup(ctx)

	return nil
}
