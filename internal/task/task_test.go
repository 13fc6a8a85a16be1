package task

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"go.uber.org/goleak"

	"github.com/five82/f1nalyzer/internal/f1api"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func TestStartSupersedesPrevious(t *testing.T) {
	tr := NewTracker(context.Background())
	first := tr.Start("drivers")
	second := tr.Start("drivers")

	if first.ID == second.ID {
		t.Fatal("task ids are not unique")
	}
	if !errors.Is(first.Ctx.Err(), context.Canceled) {
		t.Fatalf("first ctx err = %v, want canceled", first.Ctx.Err())
	}
	if second.Ctx.Err() != nil {
		t.Fatalf("second ctx err = %v, want nil", second.Ctx.Err())
	}
	if tr.Finish("drivers", first.ID) {
		t.Fatal("Finish accepted a superseded task")
	}
	if !tr.Finish("drivers", second.ID) {
		t.Fatal("Finish rejected the current task")
	}
	if tr.Pending() != 0 {
		t.Fatalf("Pending() = %d, want 0", tr.Pending())
	}
}

func TestKeysAreIndependent(t *testing.T) {
	tr := NewTracker(context.Background())
	d := tr.Start("drivers")
	c := tr.Start("circuits")
	if d.Ctx.Err() != nil || c.Ctx.Err() != nil {
		t.Fatal("starting a task cancelled a task for another key")
	}
	tr.Cancel("drivers")
	if d.Ctx.Err() == nil {
		t.Fatal("Cancel did not cancel drivers")
	}
	if !tr.Current("circuits", c.ID) {
		t.Fatal("circuits task no longer current")
	}
	tr.CancelAll()
}

func TestCancelAllMarksResultsStale(t *testing.T) {
	tr := NewTracker(context.Background())
	tasks := []Task{tr.Start("a"), tr.Start("b"), tr.Start("c")}
	tr.CancelAll()
	for _, tk := range tasks {
		if tk.Ctx.Err() == nil {
			t.Fatalf("task %s not cancelled", tk.Key)
		}
		if tr.Current(tk.Key, tk.ID) || tr.Finish(tk.Key, tk.ID) {
			t.Fatalf("task %s still current after CancelAll", tk.Key)
		}
	}
}

func TestParentCancellationPropagates(t *testing.T) {
	parent, cancel := context.WithCancel(context.Background())
	tr := NewTracker(parent)
	tk := tr.Start("tracks")
	cancel()
	select {
	case <-tk.Ctx.Done():
	case <-time.After(time.Second):
		t.Fatal("task ctx not cancelled with parent")
	}
	tr.CancelAll()
}

func TestCancelledFetchLeavesNoGoroutines(t *testing.T) {
	defer goleak.VerifyNone(t)

	started := make(chan struct{})
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		close(started)
		<-r.Context().Done()
	}))
	defer server.Close()

	client, err := f1api.NewClient(f1api.Endpoints{
		DriverAPIBase:  server.URL + "/api",
		CircuitAPIBase: server.URL,
		ResultsAPIBase: server.URL,
	})
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}

	tr := NewTracker(context.Background())
	tk := tr.Start("drivers")
	done := make(chan error, 1)
	go func() {
		_, err := client.SearchDrivers(tk.Ctx, "Max")
		done <- err
	}()

	<-started
	tr.CancelAll()

	select {
	case err := <-done:
		if f1api.KindOf(err) != f1api.KindNetwork || !errors.Is(err, context.Canceled) {
			t.Fatalf("error = %v, want cancelled network failure", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("fetch did not return after cancellation")
	}
	if tr.Finish("drivers", tk.ID) {
		t.Fatal("late result was accepted after CancelAll")
	}
	server.CloseClientConnections()
}
