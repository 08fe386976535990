package task

import (
	"github.com/hibiken/asynq"
)

const (
	CleanupCodesTaskName  = "cleanupCodesTask"
	CleanupCodesQueueName = "cleanupCodesQueue"
)

func NewCleanupCodesTask() *asynq.Task {
	return asynq.NewTask(
		CleanupCodesTaskName,
		nil,
		asynq.MaxRetry(2),
		asynq.Queue(CleanupCodesQueueName),
	)
}
