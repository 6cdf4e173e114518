package monitor

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/leiscope/domain-resolver/internal/domain"
)

// Hand-rolled mocks in the moq style.

var _ stuckTaskRepo = &stuckTaskRepoMock{}

type stuckTaskRepoMock struct {
	ListProcessingFunc func(ctx context.Context) ([]domain.Task, error)
	MarkFailedFunc     func(ctx context.Context, id uuid.UUID, res domain.TaskResult, processedAt time.Time) (bool, error)

	calls struct {
		ListProcessing []struct{}
		MarkFailed     []struct {
			ID          uuid.UUID
			Res         domain.TaskResult
			ProcessedAt time.Time
		}
	}
	lock sync.RWMutex
}

func (mock *stuckTaskRepoMock) ListProcessing(ctx context.Context) ([]domain.Task, error) {
	if mock.ListProcessingFunc == nil {
		panic("stuckTaskRepoMock.ListProcessingFunc: method is nil but stuckTaskRepo.ListProcessing was just called")
	}
	mock.lock.Lock()
	mock.calls.ListProcessing = append(mock.calls.ListProcessing, struct{}{})
	mock.lock.Unlock()
	return mock.ListProcessingFunc(ctx)
}

func (mock *stuckTaskRepoMock) MarkFailed(ctx context.Context, id uuid.UUID, res domain.TaskResult, processedAt time.Time) (bool, error) {
	if mock.MarkFailedFunc == nil {
		panic("stuckTaskRepoMock.MarkFailedFunc: method is nil but stuckTaskRepo.MarkFailed was just called")
	}
	mock.lock.Lock()
	mock.calls.MarkFailed = append(mock.calls.MarkFailed, struct {
		ID          uuid.UUID
		Res         domain.TaskResult
		ProcessedAt time.Time
	}{id, res, processedAt})
	mock.lock.Unlock()
	return mock.MarkFailedFunc(ctx, id, res, processedAt)
}

func (mock *stuckTaskRepoMock) MarkFailedCalls() []struct {
	ID          uuid.UUID
	Res         domain.TaskResult
	ProcessedAt time.Time
} {
	mock.lock.RLock()
	defer mock.lock.RUnlock()
	return mock.calls.MarkFailed
}

var _ stuckBatchRepo = &stuckBatchRepoMock{}

type stuckBatchRepoMock struct {
	AddProgressFunc func(ctx context.Context, id uuid.UUID, processed, successes, failures int) error

	calls struct {
		AddProgress []struct {
			ID                             uuid.UUID
			Processed, Successes, Failures int
		}
	}
	lock sync.RWMutex
}

func (mock *stuckBatchRepoMock) AddProgress(ctx context.Context, id uuid.UUID, processed, successes, failures int) error {
	if mock.AddProgressFunc == nil {
		panic("stuckBatchRepoMock.AddProgressFunc: method is nil but stuckBatchRepo.AddProgress was just called")
	}
	mock.lock.Lock()
	mock.calls.AddProgress = append(mock.calls.AddProgress, struct {
		ID                             uuid.UUID
		Processed, Successes, Failures int
	}{id, processed, successes, failures})
	mock.lock.Unlock()
	return mock.AddProgressFunc(ctx, id, processed, successes, failures)
}

func (mock *stuckBatchRepoMock) AddProgressCalls() []struct {
	ID                             uuid.UUID
	Processed, Successes, Failures int
} {
	mock.lock.RLock()
	defer mock.lock.RUnlock()
	return mock.calls.AddProgress
}

var _ healthBatchRepo = &healthBatchRepoMock{}

type healthBatchRepoMock struct {
	ListProcessingFunc func(ctx context.Context) ([]domain.Batch, error)

	calls struct {
		ListProcessing []struct{}
	}
	lock sync.RWMutex
}

func (mock *healthBatchRepoMock) ListProcessing(ctx context.Context) ([]domain.Batch, error) {
	if mock.ListProcessingFunc == nil {
		panic("healthBatchRepoMock.ListProcessingFunc: method is nil but healthBatchRepo.ListProcessing was just called")
	}
	mock.lock.Lock()
	mock.calls.ListProcessing = append(mock.calls.ListProcessing, struct{}{})
	mock.lock.Unlock()
	return mock.ListProcessingFunc(ctx)
}

var _ healthTaskRepo = &healthTaskRepoMock{}

type healthTaskRepoMock struct {
	CountByStatusFunc  func(ctx context.Context, batchID uuid.UUID) ([]domain.TaskStatusCount, error)
	LatestProgressFunc func(ctx context.Context, batchID uuid.UUID) (*time.Time, error)

	calls struct {
		CountByStatus  []uuid.UUID
		LatestProgress []uuid.UUID
	}
	lock sync.RWMutex
}

func (mock *healthTaskRepoMock) CountByStatus(ctx context.Context, batchID uuid.UUID) ([]domain.TaskStatusCount, error) {
	if mock.CountByStatusFunc == nil {
		panic("healthTaskRepoMock.CountByStatusFunc: method is nil but healthTaskRepo.CountByStatus was just called")
	}
	mock.lock.Lock()
	mock.calls.CountByStatus = append(mock.calls.CountByStatus, batchID)
	mock.lock.Unlock()
	return mock.CountByStatusFunc(ctx, batchID)
}

func (mock *healthTaskRepoMock) LatestProgress(ctx context.Context, batchID uuid.UUID) (*time.Time, error) {
	if mock.LatestProgressFunc == nil {
		panic("healthTaskRepoMock.LatestProgressFunc: method is nil but healthTaskRepo.LatestProgress was just called")
	}
	mock.lock.Lock()
	mock.calls.LatestProgress = append(mock.calls.LatestProgress, batchID)
	mock.lock.Unlock()
	return mock.LatestProgressFunc(ctx, batchID)
}

var _ batchRunner = &batchRunnerMock{}

type batchRunnerMock struct {
	RunFunc func(ctx context.Context, batchID uuid.UUID) error

	calls struct {
		Run []uuid.UUID
	}
	lock sync.RWMutex
}

func (mock *batchRunnerMock) Run(ctx context.Context, batchID uuid.UUID) error {
	if mock.RunFunc == nil {
		panic("batchRunnerMock.RunFunc: method is nil but batchRunner.Run was just called")
	}
	mock.lock.Lock()
	mock.calls.Run = append(mock.calls.Run, batchID)
	mock.lock.Unlock()
	return mock.RunFunc(ctx, batchID)
}

func (mock *batchRunnerMock) RunCalls() []uuid.UUID {
	mock.lock.RLock()
	defer mock.lock.RUnlock()
	return mock.calls.Run
}
