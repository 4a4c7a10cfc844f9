// Package engine implements the Worker Loop and Query Planner (spec.md
// §4.2, §4.3): the single goroutine that owns the Trace Store, the logical
// clock, and the command channel, and the semijoin/iterate combinators
// that serve queries against it.
package engine

import (
	"log/slog"

	"github.com/google/uuid"

	"lineagegraph/internal/ident"
	"lineagegraph/internal/trace"
)

const defaultQueueSize = 64

// Worker owns a dedicated goroutine that runs the dataflow graph: it
// applies ingest commands, advances the logical clock, and services
// queries synchronously, one command at a time, in submission order
// (spec.md §4.2, §5).
type Worker struct {
	cmds   chan command
	done   chan struct{}
	logger *slog.Logger
}

// Start spawns the worker goroutine and returns a handle to it. queueSize
// <= 0 uses a sensible default; the queue only needs to be large enough to
// smooth out bursts, since it is otherwise unbounded in principle
// (spec.md §5 "Shared resources") but Go channels require a capacity.
func Start(logger *slog.Logger, queueSize int) *Worker {
	if logger == nil {
		logger = slog.Default()
	}
	if queueSize <= 0 {
		queueSize = defaultQueueSize
	}
	w := &Worker{
		cmds:   make(chan command, queueSize),
		done:   make(chan struct{}),
		logger: logger,
	}
	go w.run()
	return w
}

// Close closes the ingress queue and blocks until the worker has drained
// and exited (spec.md §4.5 Teardown).
func (w *Worker) Close() {
	close(w.cmds)
	<-w.done
}

// Upsert submits an upsert command and returns immediately; ordering with
// respect to every other command is preserved by the single queue
// (spec.md §4.2, §6).
func (w *Worker) Upsert(name ident.Name, deps []ident.Name) {
	w.cmds <- command{requestID: uuid.New().String(), isUpdate: true, name: name, deps: deps}
}

// Delete submits a delete command and returns immediately.
func (w *Worker) Delete(name ident.Name) {
	w.cmds <- command{requestID: uuid.New().String(), isUpdate: true, isDelete: true, name: name}
}

// Query submits a query command and blocks until the worker replies. The
// reply channel is buffered so the worker's send can never block, even if
// this call were abandoned (spec.md §5 Cancellation and timeouts, §7 Reply
// -channel closure).
func (w *Worker) Query(kind QueryKind, name ident.Name, k int) Result {
	reply := make(chan Result, 1)
	w.cmds <- command{requestID: uuid.New().String(), kind: kind, name: name, k: k, reply: reply}
	return <-reply
}

func (w *Worker) run() {
	defer close(w.done)

	store := trace.NewStore()
	var counter trace.Time

	for cmd := range w.cmds {
		if cmd.isUpdate {
			w.applyUpdate(store, counter, cmd)
			continue
		}
		counter++
		store.Compact(counter)
		result := w.runQuery(store, counter, cmd)
		w.logger.Debug("query",
			"request_id", cmd.requestID,
			"kind", cmd.kind.String(),
			"name", uint64(cmd.name),
			"k", cmd.k,
			"tick", uint64(counter),
		)
		cmd.reply <- result
	}
}

func (w *Worker) applyUpdate(store *trace.Store, counter trace.Time, cmd command) {
	if cmd.isDelete {
		w.logger.Debug("delete", "request_id", cmd.requestID, "name", uint64(cmd.name), "tick", uint64(counter))
		store.Delete(cmd.name, counter)
		return
	}
	w.logger.Debug("upsert", "request_id", cmd.requestID, "name", uint64(cmd.name), "deps", cmd.deps, "tick", uint64(counter))
	store.Upsert(cmd.name, cmd.deps, counter)
}

func (w *Worker) runQuery(store *trace.Store, asOf trace.Time, cmd command) Result {
	tr := store.Forward
	if cmd.kind.reversed() {
		tr = store.Reverse
	}

	if !cmd.kind.closure() {
		return Result{List: oneHop(tr, cmd.name, asOf)}
	}

	if cmd.kind == DependenciesK || cmd.kind == DependentsK {
		return Result{Closure: kHop(tr, cmd.name, cmd.k, asOf)}
	}
	return Result{Closure: cascade(tr, cmd.name, asOf)}
}
