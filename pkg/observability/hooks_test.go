package observability

import (
	"context"
	"testing"
	"time"
)

func TestNoopHooksDoNotPanic(t *testing.T) {
	ctx := context.Background()

	s := NoopSearchHooks{}
	s.OnSearchStart(ctx, "MultiStart_Coarse", 8)
	s.OnSearchComplete(ctx, "MultiStart_Coarse", 1234.5, time.Second, nil)
	s.OnImprovement(ctx, 1234.5, time.Second)

	w := NoopWorkerHooks{}
	w.OnWorkerStart(ctx, 0)
	w.OnWorkerDone(ctx, 0, 1000)
	w.OnExchange(ctx, 0, 1, true)
}

func TestGlobalHooksRegistry(t *testing.T) {
	Reset()

	if _, ok := Search().(NoopSearchHooks); !ok {
		t.Error("Search() should return NoopSearchHooks by default")
	}
	if _, ok := Worker().(NoopWorkerHooks); !ok {
		t.Error("Worker() should return NoopWorkerHooks by default")
	}

	customSearch := &testSearchHooks{}
	SetSearchHooks(customSearch)
	if Search() != customSearch {
		t.Error("SetSearchHooks should set custom hooks")
	}

	customWorker := &testWorkerHooks{}
	SetWorkerHooks(customWorker)
	if Worker() != customWorker {
		t.Error("SetWorkerHooks should set custom hooks")
	}

	Reset()
	if _, ok := Search().(NoopSearchHooks); !ok {
		t.Error("Reset() should restore NoopSearchHooks")
	}
}

func TestSetNilHooksIsIgnored(t *testing.T) {
	Reset()

	custom := &testSearchHooks{}
	SetSearchHooks(custom)

	SetSearchHooks(nil)

	if Search() != custom {
		t.Error("SetSearchHooks(nil) should be ignored")
	}

	Reset()
}

type testSearchHooks struct{ NoopSearchHooks }
type testWorkerHooks struct{ NoopWorkerHooks }
