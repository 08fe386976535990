package dispatcher

import (
	"sync"

	"github.com/roadassist/backend/internal/domain"
)

// jobQueue is a mutex-guarded FIFO. Retried jobs go to the back, so a failing
// job cannot block the ones behind it.
type jobQueue struct {
	mu    sync.Mutex
	items []*domain.NotificationJob
}

func newJobQueue() *jobQueue {
	return &jobQueue{}
}

func (q *jobQueue) push(job *domain.NotificationJob) {
	q.mu.Lock()
	defer q.mu.Unlock()

	q.items = append(q.items, job)
}

func (q *jobQueue) pop() *domain.NotificationJob {
	q.mu.Lock()
	defer q.mu.Unlock()

	if len(q.items) == 0 {
		return nil
	}

	job := q.items[0]
	q.items = q.items[1:]

	return job
}

func (q *jobQueue) len() int {
	q.mu.Lock()
	defer q.mu.Unlock()

	return len(q.items)
}
