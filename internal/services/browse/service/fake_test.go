package service

import (
	"context"
	"sync"

	"parliametrics/internal/services/browse/domain"
)

// fakeArchive is a scripted ArchivePort used only by this package's tests
type fakeArchive struct {
	mu sync.Mutex

	catalog    domain.FilterCatalog
	catalogErr error

	speeches    []domain.Speech
	speechesErr error

	// gates, when set, park call i of Speeches on gates[i] until the test
	// sends its result
	gates []chan fakeResult

	filterCalls int
	queries     []domain.Params
}

type fakeResult struct {
	speeches []domain.Speech
	err      error
}

func (f *fakeArchive) Filters(ctx context.Context) (domain.FilterCatalog, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.filterCalls++
	if f.catalogErr != nil {
		return domain.FilterCatalog{}, f.catalogErr
	}
	return f.catalog, nil
}

func (f *fakeArchive) Speeches(ctx context.Context, q domain.Params) ([]domain.Speech, error) {
	f.mu.Lock()
	call := len(f.queries)
	f.queries = append(f.queries, q)
	var gate chan fakeResult
	if call < len(f.gates) {
		gate = f.gates[call]
	}
	res, err := f.speeches, f.speechesErr
	f.mu.Unlock()

	if gate != nil {
		select {
		case r := <-gate:
			return r.speeches, r.err
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	return res, err
}

func (f *fakeArchive) lastQuery() domain.Params {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.queries) == 0 {
		return nil
	}
	return f.queries[len(f.queries)-1]
}

func (f *fakeArchive) queryCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.queries)
}

func strPtr(s string) *string { return &s }
