package dedupe

import (
	"context"
	"errors"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

func TestKey_FieldOrderIndependent(t *testing.T) {
	type ab struct {
		A string `json:"a"`
		B string `json:"b"`
	}
	type ba struct {
		B string `json:"b"`
		A string `json:"a"`
	}

	k1 := Key(ab{A: "boracay", B: "3 days"})
	k2 := Key(ba{B: "3 days", A: "boracay"})
	if k1 != k2 {
		t.Errorf("logically identical params must collide: %s vs %s", k1, k2)
	}

	k3 := Key(ab{A: "bohol", B: "3 days"})
	if k1 == k3 {
		t.Error("different params must not collide")
	}

	if len(k1) != 16 {
		t.Errorf("key length = %d", len(k1))
	}
}

func TestDo_SharesSingleInvocation(t *testing.T) {
	d := New(0)
	var calls atomic.Int32
	release := make(chan struct{})

	op := func(ctx context.Context) (any, error) {
		calls.Add(1)
		<-release
		return "itinerary", nil
	}

	const waiters = 8
	results := make([]any, waiters)
	var wg sync.WaitGroup
	for i := 0; i < waiters; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			v, err := d.Do(context.Background(), "trip", op, time.Minute)
			if err != nil {
				t.Errorf("waiter %d: %v", i, err)
			}
			results[i] = v
		}(i)
	}

	// Let every goroutine reach Do before the operation settles.
	for d.Len() == 0 {
		time.Sleep(time.Millisecond)
	}
	time.Sleep(10 * time.Millisecond)
	close(release)
	wg.Wait()

	if got := calls.Load(); got != 1 {
		t.Errorf("operation ran %d times, want 1", got)
	}
	for i, v := range results {
		if v != "itinerary" {
			t.Errorf("waiter %d got %v", i, v)
		}
	}
}

func TestDo_SettledResultReusedWithinTTL(t *testing.T) {
	d := New(0)

	first, _ := d.Do(context.Background(), "k", func(ctx context.Context) (any, error) {
		return "first", nil
	}, time.Minute)
	second, _ := d.Do(context.Background(), "k", func(ctx context.Context) (any, error) {
		return "second", nil
	}, time.Minute)

	if first != "first" || second != "first" {
		t.Errorf("settled result not reused: %v, %v", first, second)
	}
}

func TestDo_ExpiredResultRerun(t *testing.T) {
	d := New(0)

	var calls atomic.Int32
	op := func(ctx context.Context) (any, error) {
		calls.Add(1)
		return calls.Load(), nil
	}

	if _, err := d.Do(context.Background(), "k", op, 5*time.Millisecond); err != nil {
		t.Fatal(err)
	}
	time.Sleep(30 * time.Millisecond)
	v, err := d.Do(context.Background(), "k", op, 5*time.Millisecond)
	if err != nil {
		t.Fatal(err)
	}
	if v != int32(2) {
		t.Errorf("expired result should trigger a rerun, got %v", v)
	}
}

func TestDo_FailuresShared(t *testing.T) {
	d := New(0)
	sentinel := errors.New("upstream down")

	_, err1 := d.Do(context.Background(), "k", func(ctx context.Context) (any, error) {
		return nil, sentinel
	}, time.Minute)
	_, err2 := d.Do(context.Background(), "k", func(ctx context.Context) (any, error) {
		t.Error("second op should not run while the failure is retained")
		return nil, nil
	}, time.Minute)

	if !errors.Is(err1, sentinel) || !errors.Is(err2, sentinel) {
		t.Errorf("errors: %v, %v", err1, err2)
	}
}

func TestDo_WaiterHonorsContext(t *testing.T) {
	d := New(0)
	release := make(chan struct{})
	defer close(release)

	go d.Do(context.Background(), "k", func(ctx context.Context) (any, error) {
		<-release
		return nil, nil
	}, time.Minute)

	for d.Len() == 0 {
		time.Sleep(time.Millisecond)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := d.Do(ctx, "k", nil, time.Minute)
	if !errors.Is(err, context.Canceled) {
		t.Errorf("err = %v", err)
	}
}

func TestDo_PanickingOpSettlesEntry(t *testing.T) {
	d := New(0)

	_, err := d.Do(context.Background(), "k", func(ctx context.Context) (any, error) {
		panic("collaborator exploded")
	}, time.Minute)
	if err == nil || !strings.Contains(err.Error(), "collaborator exploded") {
		t.Fatalf("err = %v", err)
	}

	// The failure settled like any other result: a later caller shares it
	// instead of blocking on a channel that never closes.
	done := make(chan error, 1)
	go func() {
		_, err := d.Do(context.Background(), "k", func(ctx context.Context) (any, error) {
			t.Error("op should not rerun inside the retention window")
			return nil, nil
		}, time.Minute)
		done <- err
	}()

	select {
	case err := <-done:
		if err == nil || !strings.Contains(err.Error(), "collaborator exploded") {
			t.Errorf("err = %v", err)
		}
	case <-time.After(time.Second):
		t.Fatal("caller blocked on a poisoned key")
	}
}

func TestCancel_DetachesFutureCallers(t *testing.T) {
	d := New(0)

	var calls atomic.Int32
	op := func(ctx context.Context) (any, error) {
		calls.Add(1)
		return nil, nil
	}

	d.Do(context.Background(), "k", op, time.Minute)
	d.Cancel("k")
	d.Do(context.Background(), "k", op, time.Minute)

	if got := calls.Load(); got != 2 {
		t.Errorf("operation ran %d times, want 2", got)
	}
	if d.Len() != 1 {
		t.Errorf("len = %d", d.Len())
	}
}

func TestEviction_FIFOOverCapacity(t *testing.T) {
	d := New(2)

	noop := func(ctx context.Context) (any, error) { return nil, nil }
	d.Do(context.Background(), "a", noop, time.Minute)
	d.Do(context.Background(), "b", noop, time.Minute)
	d.Do(context.Background(), "c", noop, time.Minute)

	if d.Len() != 2 {
		t.Fatalf("len = %d, want 2", d.Len())
	}

	// "a" was evicted, so the same key runs again.
	var rerun atomic.Int32
	d.Do(context.Background(), "a", func(ctx context.Context) (any, error) {
		rerun.Add(1)
		return nil, nil
	}, time.Minute)
	if rerun.Load() != 1 {
		t.Error("oldest key should have been evicted")
	}
}
