package resolution

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/leiscope/domain-resolver/internal/adapter/rediscache"
	"github.com/leiscope/domain-resolver/internal/domain"
)

var _ taskRepo = &taskRepoMock{}

type taskRepoMock struct {
	ClaimFunc            func(ctx context.Context, id uuid.UUID, startedAt time.Time) (bool, error)
	MarkSuccessFunc      func(ctx context.Context, id uuid.UUID, res domain.TaskResult, processedAt time.Time) (bool, error)
	MarkFailedFunc       func(ctx context.Context, id uuid.UUID, res domain.TaskResult, processedAt time.Time) (bool, error)
	FindCachedResultFunc func(ctx context.Context, domainHash string, minConfidence int) (domain.Task, error)

	calls struct {
		Claim []struct {
			ID        uuid.UUID
			StartedAt time.Time
		}
		MarkSuccess []struct {
			ID  uuid.UUID
			Res domain.TaskResult
		}
		MarkFailed []struct {
			ID  uuid.UUID
			Res domain.TaskResult
		}
		FindCachedResult []struct {
			DomainHash    string
			MinConfidence int
		}
	}
	lock sync.RWMutex
}

func (mock *taskRepoMock) Claim(ctx context.Context, id uuid.UUID, startedAt time.Time) (bool, error) {
	if mock.ClaimFunc == nil {
		panic("taskRepoMock.ClaimFunc: method is nil but taskRepo.Claim was just called")
	}
	mock.lock.Lock()
	mock.calls.Claim = append(mock.calls.Claim, struct {
		ID        uuid.UUID
		StartedAt time.Time
	}{id, startedAt})
	mock.lock.Unlock()
	return mock.ClaimFunc(ctx, id, startedAt)
}

func (mock *taskRepoMock) ClaimCalls() []struct {
	ID        uuid.UUID
	StartedAt time.Time
} {
	mock.lock.RLock()
	defer mock.lock.RUnlock()
	return mock.calls.Claim
}

func (mock *taskRepoMock) MarkSuccess(ctx context.Context, id uuid.UUID, res domain.TaskResult, processedAt time.Time) (bool, error) {
	if mock.MarkSuccessFunc == nil {
		panic("taskRepoMock.MarkSuccessFunc: method is nil but taskRepo.MarkSuccess was just called")
	}
	mock.lock.Lock()
	mock.calls.MarkSuccess = append(mock.calls.MarkSuccess, struct {
		ID  uuid.UUID
		Res domain.TaskResult
	}{id, res})
	mock.lock.Unlock()
	return mock.MarkSuccessFunc(ctx, id, res, processedAt)
}

func (mock *taskRepoMock) MarkSuccessCalls() []struct {
	ID  uuid.UUID
	Res domain.TaskResult
} {
	mock.lock.RLock()
	defer mock.lock.RUnlock()
	return mock.calls.MarkSuccess
}

func (mock *taskRepoMock) MarkFailed(ctx context.Context, id uuid.UUID, res domain.TaskResult, processedAt time.Time) (bool, error) {
	if mock.MarkFailedFunc == nil {
		panic("taskRepoMock.MarkFailedFunc: method is nil but taskRepo.MarkFailed was just called")
	}
	mock.lock.Lock()
	mock.calls.MarkFailed = append(mock.calls.MarkFailed, struct {
		ID  uuid.UUID
		Res domain.TaskResult
	}{id, res})
	mock.lock.Unlock()
	return mock.MarkFailedFunc(ctx, id, res, processedAt)
}

func (mock *taskRepoMock) MarkFailedCalls() []struct {
	ID  uuid.UUID
	Res domain.TaskResult
} {
	mock.lock.RLock()
	defer mock.lock.RUnlock()
	return mock.calls.MarkFailed
}

func (mock *taskRepoMock) FindCachedResult(ctx context.Context, domainHash string, minConfidence int) (domain.Task, error) {
	if mock.FindCachedResultFunc == nil {
		panic("taskRepoMock.FindCachedResultFunc: method is nil but taskRepo.FindCachedResult was just called")
	}
	mock.lock.Lock()
	mock.calls.FindCachedResult = append(mock.calls.FindCachedResult, struct {
		DomainHash    string
		MinConfidence int
	}{domainHash, minConfidence})
	mock.lock.Unlock()
	return mock.FindCachedResultFunc(ctx, domainHash, minConfidence)
}

func (mock *taskRepoMock) FindCachedResultCalls() []struct {
	DomainHash    string
	MinConfidence int
} {
	mock.lock.RLock()
	defer mock.lock.RUnlock()
	return mock.calls.FindCachedResult
}

var _ candidateRepo = &candidateRepoMock{}

type candidateRepoMock struct {
	ReplaceForTaskFunc func(ctx context.Context, taskID uuid.UUID, candidates []domain.Candidate) error

	calls struct {
		ReplaceForTask []struct {
			TaskID     uuid.UUID
			Candidates []domain.Candidate
		}
	}
	lock sync.RWMutex
}

func (mock *candidateRepoMock) ReplaceForTask(ctx context.Context, taskID uuid.UUID, candidates []domain.Candidate) error {
	if mock.ReplaceForTaskFunc == nil {
		panic("candidateRepoMock.ReplaceForTaskFunc: method is nil but candidateRepo.ReplaceForTask was just called")
	}
	mock.lock.Lock()
	mock.calls.ReplaceForTask = append(mock.calls.ReplaceForTask, struct {
		TaskID     uuid.UUID
		Candidates []domain.Candidate
	}{taskID, candidates})
	mock.lock.Unlock()
	return mock.ReplaceForTaskFunc(ctx, taskID, candidates)
}

func (mock *candidateRepoMock) ReplaceForTaskCalls() []struct {
	TaskID     uuid.UUID
	Candidates []domain.Candidate
} {
	mock.lock.RLock()
	defer mock.lock.RUnlock()
	return mock.calls.ReplaceForTask
}

var _ extractor = &extractorMock{}

type extractorMock struct {
	ExtractFunc func(ctx context.Context, domainName string) (domain.Extraction, error)

	calls struct {
		Extract []struct {
			DomainName string
		}
	}
	lock sync.RWMutex
}

func (mock *extractorMock) Extract(ctx context.Context, domainName string) (domain.Extraction, error) {
	if mock.ExtractFunc == nil {
		panic("extractorMock.ExtractFunc: method is nil but extractor.Extract was just called")
	}
	mock.lock.Lock()
	mock.calls.Extract = append(mock.calls.Extract, struct {
		DomainName string
	}{domainName})
	mock.lock.Unlock()
	return mock.ExtractFunc(ctx, domainName)
}

func (mock *extractorMock) ExtractCalls() []struct {
	DomainName string
} {
	mock.lock.RLock()
	defer mock.lock.RUnlock()
	return mock.calls.Extract
}

var _ registry = &registryMock{}

type registryMock struct {
	SearchFunc func(ctx context.Context, companyName, jurisdictionHint string) ([]domain.Candidate, error)

	calls struct {
		Search []struct {
			CompanyName      string
			JurisdictionHint string
		}
	}
	lock sync.RWMutex
}

func (mock *registryMock) Search(ctx context.Context, companyName, jurisdictionHint string) ([]domain.Candidate, error) {
	if mock.SearchFunc == nil {
		panic("registryMock.SearchFunc: method is nil but registry.Search was just called")
	}
	mock.lock.Lock()
	mock.calls.Search = append(mock.calls.Search, struct {
		CompanyName      string
		JurisdictionHint string
	}{companyName, jurisdictionHint})
	mock.lock.Unlock()
	return mock.SearchFunc(ctx, companyName, jurisdictionHint)
}

func (mock *registryMock) SearchCalls() []struct {
	CompanyName      string
	JurisdictionHint string
} {
	mock.lock.RLock()
	defer mock.lock.RUnlock()
	return mock.calls.Search
}

var _ resultCache = &resultCacheMock{}

type resultCacheMock struct {
	GetFunc func(ctx context.Context, domainHash string) *rediscache.Entry
	SetFunc func(ctx context.Context, domainHash string, e rediscache.Entry)

	calls struct {
		Get []struct {
			DomainHash string
		}
		Set []struct {
			DomainHash string
			Entry      rediscache.Entry
		}
	}
	lock sync.RWMutex
}

func (mock *resultCacheMock) Get(ctx context.Context, domainHash string) *rediscache.Entry {
	if mock.GetFunc == nil {
		panic("resultCacheMock.GetFunc: method is nil but resultCache.Get was just called")
	}
	mock.lock.Lock()
	mock.calls.Get = append(mock.calls.Get, struct {
		DomainHash string
	}{domainHash})
	mock.lock.Unlock()
	return mock.GetFunc(ctx, domainHash)
}

func (mock *resultCacheMock) GetCalls() []struct {
	DomainHash string
} {
	mock.lock.RLock()
	defer mock.lock.RUnlock()
	return mock.calls.Get
}

func (mock *resultCacheMock) Set(ctx context.Context, domainHash string, e rediscache.Entry) {
	if mock.SetFunc == nil {
		panic("resultCacheMock.SetFunc: method is nil but resultCache.Set was just called")
	}
	mock.lock.Lock()
	mock.calls.Set = append(mock.calls.Set, struct {
		DomainHash string
		Entry      rediscache.Entry
	}{domainHash, e})
	mock.lock.Unlock()
	mock.SetFunc(ctx, domainHash, e)
}

func (mock *resultCacheMock) SetCalls() []struct {
	DomainHash string
	Entry      rediscache.Entry
} {
	mock.lock.RLock()
	defer mock.lock.RUnlock()
	return mock.calls.Set
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
