package orchestrator

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/leiscope/domain-resolver/internal/domain"
	"github.com/leiscope/domain-resolver/internal/service/resolution"
)

var _ batchRepo = &batchRepoMock{}

type batchRepoMock struct {
	CreateFunc         func(ctx context.Context, b domain.Batch) error
	GetByIDFunc        func(ctx context.Context, id uuid.UUID) (domain.Batch, error)
	MarkProcessingFunc func(ctx context.Context, id uuid.UUID) (bool, error)
	AddProgressFunc    func(ctx context.Context, id uuid.UUID, processed, successes, failures int) error
	MarkCompletedFunc  func(ctx context.Context, id uuid.UUID, at time.Time) (bool, error)
	MarkFailedFunc     func(ctx context.Context, id uuid.UUID, at time.Time) (bool, error)

	calls struct {
		Create         []domain.Batch
		GetByID        []uuid.UUID
		MarkProcessing []uuid.UUID
		AddProgress    []struct {
			ID                             uuid.UUID
			Processed, Successes, Failures int
		}
		MarkCompleted []uuid.UUID
		MarkFailed    []uuid.UUID
	}
	lock sync.RWMutex
}

func (mock *batchRepoMock) Create(ctx context.Context, b domain.Batch) error {
	if mock.CreateFunc == nil {
		panic("batchRepoMock.CreateFunc: method is nil but batchRepo.Create was just called")
	}
	mock.lock.Lock()
	mock.calls.Create = append(mock.calls.Create, b)
	mock.lock.Unlock()
	return mock.CreateFunc(ctx, b)
}

func (mock *batchRepoMock) CreateCalls() []domain.Batch {
	mock.lock.RLock()
	defer mock.lock.RUnlock()
	return mock.calls.Create
}

func (mock *batchRepoMock) GetByID(ctx context.Context, id uuid.UUID) (domain.Batch, error) {
	if mock.GetByIDFunc == nil {
		panic("batchRepoMock.GetByIDFunc: method is nil but batchRepo.GetByID was just called")
	}
	mock.lock.Lock()
	mock.calls.GetByID = append(mock.calls.GetByID, id)
	mock.lock.Unlock()
	return mock.GetByIDFunc(ctx, id)
}

func (mock *batchRepoMock) MarkProcessing(ctx context.Context, id uuid.UUID) (bool, error) {
	if mock.MarkProcessingFunc == nil {
		panic("batchRepoMock.MarkProcessingFunc: method is nil but batchRepo.MarkProcessing was just called")
	}
	mock.lock.Lock()
	mock.calls.MarkProcessing = append(mock.calls.MarkProcessing, id)
	mock.lock.Unlock()
	return mock.MarkProcessingFunc(ctx, id)
}

func (mock *batchRepoMock) MarkProcessingCalls() []uuid.UUID {
	mock.lock.RLock()
	defer mock.lock.RUnlock()
	return mock.calls.MarkProcessing
}

func (mock *batchRepoMock) AddProgress(ctx context.Context, id uuid.UUID, processed, successes, failures int) error {
	if mock.AddProgressFunc == nil {
		panic("batchRepoMock.AddProgressFunc: method is nil but batchRepo.AddProgress was just called")
	}
	mock.lock.Lock()
	mock.calls.AddProgress = append(mock.calls.AddProgress, struct {
		ID                             uuid.UUID
		Processed, Successes, Failures int
	}{id, processed, successes, failures})
	mock.lock.Unlock()
	return mock.AddProgressFunc(ctx, id, processed, successes, failures)
}

func (mock *batchRepoMock) AddProgressCalls() []struct {
	ID                             uuid.UUID
	Processed, Successes, Failures int
} {
	mock.lock.RLock()
	defer mock.lock.RUnlock()
	return mock.calls.AddProgress
}

func (mock *batchRepoMock) MarkCompleted(ctx context.Context, id uuid.UUID, at time.Time) (bool, error) {
	if mock.MarkCompletedFunc == nil {
		panic("batchRepoMock.MarkCompletedFunc: method is nil but batchRepo.MarkCompleted was just called")
	}
	mock.lock.Lock()
	mock.calls.MarkCompleted = append(mock.calls.MarkCompleted, id)
	mock.lock.Unlock()
	return mock.MarkCompletedFunc(ctx, id, at)
}

func (mock *batchRepoMock) MarkCompletedCalls() []uuid.UUID {
	mock.lock.RLock()
	defer mock.lock.RUnlock()
	return mock.calls.MarkCompleted
}

func (mock *batchRepoMock) MarkFailed(ctx context.Context, id uuid.UUID, at time.Time) (bool, error) {
	if mock.MarkFailedFunc == nil {
		panic("batchRepoMock.MarkFailedFunc: method is nil but batchRepo.MarkFailed was just called")
	}
	mock.lock.Lock()
	mock.calls.MarkFailed = append(mock.calls.MarkFailed, id)
	mock.lock.Unlock()
	return mock.MarkFailedFunc(ctx, id, at)
}

func (mock *batchRepoMock) MarkFailedCalls() []uuid.UUID {
	mock.lock.RLock()
	defer mock.lock.RUnlock()
	return mock.calls.MarkFailed
}

var _ taskRepo = &taskRepoMock{}

type taskRepoMock struct {
	CreateBulkFunc    func(ctx context.Context, tasks []domain.Task) error
	ListRunnableFunc  func(ctx context.Context, batchID uuid.UUID) ([]domain.Task, error)
	ListByBatchFunc   func(ctx context.Context, batchID uuid.UUID, filter domain.TaskFilter) ([]domain.Task, error)
	CountByStatusFunc func(ctx context.Context, batchID uuid.UUID) ([]domain.TaskStatusCount, error)

	calls struct {
		CreateBulk   [][]domain.Task
		ListRunnable []uuid.UUID
		ListByBatch  []struct {
			BatchID uuid.UUID
			Filter  domain.TaskFilter
		}
		CountByStatus []uuid.UUID
	}
	lock sync.RWMutex
}

func (mock *taskRepoMock) CreateBulk(ctx context.Context, tasks []domain.Task) error {
	if mock.CreateBulkFunc == nil {
		panic("taskRepoMock.CreateBulkFunc: method is nil but taskRepo.CreateBulk was just called")
	}
	mock.lock.Lock()
	mock.calls.CreateBulk = append(mock.calls.CreateBulk, tasks)
	mock.lock.Unlock()
	return mock.CreateBulkFunc(ctx, tasks)
}

func (mock *taskRepoMock) CreateBulkCalls() [][]domain.Task {
	mock.lock.RLock()
	defer mock.lock.RUnlock()
	return mock.calls.CreateBulk
}

func (mock *taskRepoMock) ListRunnable(ctx context.Context, batchID uuid.UUID) ([]domain.Task, error) {
	if mock.ListRunnableFunc == nil {
		panic("taskRepoMock.ListRunnableFunc: method is nil but taskRepo.ListRunnable was just called")
	}
	mock.lock.Lock()
	mock.calls.ListRunnable = append(mock.calls.ListRunnable, batchID)
	mock.lock.Unlock()
	return mock.ListRunnableFunc(ctx, batchID)
}

func (mock *taskRepoMock) ListRunnableCalls() []uuid.UUID {
	mock.lock.RLock()
	defer mock.lock.RUnlock()
	return mock.calls.ListRunnable
}

func (mock *taskRepoMock) ListByBatch(ctx context.Context, batchID uuid.UUID, filter domain.TaskFilter) ([]domain.Task, error) {
	if mock.ListByBatchFunc == nil {
		panic("taskRepoMock.ListByBatchFunc: method is nil but taskRepo.ListByBatch was just called")
	}
	mock.lock.Lock()
	mock.calls.ListByBatch = append(mock.calls.ListByBatch, struct {
		BatchID uuid.UUID
		Filter  domain.TaskFilter
	}{batchID, filter})
	mock.lock.Unlock()
	return mock.ListByBatchFunc(ctx, batchID, filter)
}

func (mock *taskRepoMock) ListByBatchCalls() []struct {
	BatchID uuid.UUID
	Filter  domain.TaskFilter
} {
	mock.lock.RLock()
	defer mock.lock.RUnlock()
	return mock.calls.ListByBatch
}

func (mock *taskRepoMock) CountByStatus(ctx context.Context, batchID uuid.UUID) ([]domain.TaskStatusCount, error) {
	if mock.CountByStatusFunc == nil {
		panic("taskRepoMock.CountByStatusFunc: method is nil but taskRepo.CountByStatus was just called")
	}
	mock.lock.Lock()
	mock.calls.CountByStatus = append(mock.calls.CountByStatus, batchID)
	mock.lock.Unlock()
	return mock.CountByStatusFunc(ctx, batchID)
}

var _ candidateRepo = &candidateRepoMock{}

type candidateRepoMock struct {
	ListByTaskFunc               func(ctx context.Context, taskID uuid.UUID) ([]domain.Candidate, error)
	JurisdictionDistributionFunc func(ctx context.Context, batchID uuid.UUID) ([]domain.JurisdictionCount, error)

	calls struct {
		ListByTask               []uuid.UUID
		JurisdictionDistribution []uuid.UUID
	}
	lock sync.RWMutex
}

func (mock *candidateRepoMock) ListByTask(ctx context.Context, taskID uuid.UUID) ([]domain.Candidate, error) {
	if mock.ListByTaskFunc == nil {
		panic("candidateRepoMock.ListByTaskFunc: method is nil but candidateRepo.ListByTask was just called")
	}
	mock.lock.Lock()
	mock.calls.ListByTask = append(mock.calls.ListByTask, taskID)
	mock.lock.Unlock()
	return mock.ListByTaskFunc(ctx, taskID)
}

func (mock *candidateRepoMock) ListByTaskCalls() []uuid.UUID {
	mock.lock.RLock()
	defer mock.lock.RUnlock()
	return mock.calls.ListByTask
}

func (mock *candidateRepoMock) JurisdictionDistribution(ctx context.Context, batchID uuid.UUID) ([]domain.JurisdictionCount, error) {
	if mock.JurisdictionDistributionFunc == nil {
		panic("candidateRepoMock.JurisdictionDistributionFunc: method is nil but candidateRepo.JurisdictionDistribution was just called")
	}
	mock.lock.Lock()
	mock.calls.JurisdictionDistribution = append(mock.calls.JurisdictionDistribution, batchID)
	mock.lock.Unlock()
	return mock.JurisdictionDistributionFunc(ctx, batchID)
}

var _ resolver = &resolverMock{}

type resolverMock struct {
	ProcessFunc func(ctx context.Context, task domain.Task) (resolution.Outcome, error)

	calls struct {
		Process []domain.Task
	}
	lock sync.RWMutex
}

func (mock *resolverMock) Process(ctx context.Context, task domain.Task) (resolution.Outcome, error) {
	if mock.ProcessFunc == nil {
		panic("resolverMock.ProcessFunc: method is nil but resolver.Process was just called")
	}
	mock.lock.Lock()
	mock.calls.Process = append(mock.calls.Process, task)
	mock.lock.Unlock()
	return mock.ProcessFunc(ctx, task)
}

func (mock *resolverMock) ProcessCalls() []domain.Task {
	mock.lock.RLock()
	defer mock.lock.RUnlock()
	return mock.calls.Process
}

var _ txManager = &txManagerMock{}

type txManagerMock struct {
	RunInTxFunc func(ctx context.Context, fn func(ctx context.Context) error) error

	calls struct {
		RunInTx []struct{}
	}
	lock sync.RWMutex
}

func (mock *txManagerMock) RunInTx(ctx context.Context, fn func(ctx context.Context) error) error {
	if mock.RunInTxFunc == nil {
		panic("txManagerMock.RunInTxFunc: method is nil but txManager.RunInTx was just called")
	}
	mock.lock.Lock()
	mock.calls.RunInTx = append(mock.calls.RunInTx, struct{}{})
	mock.lock.Unlock()
	return mock.RunInTxFunc(ctx, fn)
}

func (mock *txManagerMock) RunInTxCalls() []struct{} {
	mock.lock.RLock()
	defer mock.lock.RUnlock()
	return mock.calls.RunInTx
}
