// Copyright 2026 Seorim Labs
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package pipeline

import (
	"context"
	"errors"
	"log/slog"
	"runtime"
	"time"

	"github.com/panjf2000/ants/v2"

	"github.com/seorim/newsgate/core"
	"github.com/seorim/newsgate/queue"
	"github.com/seorim/newsgate/storage"
)

// stageFunc executes one pipeline stage against a record and reports what
// should happen next.
type stageFunc func(ctx context.Context, doc *core.Document, res *Resources) core.Outcome

// stageRegistry maps every queue stage to its executor.
var stageRegistry = map[core.Stage]stageFunc{
	core.StageInitialChecks:     runInitialChecks,
	core.StageContentExtraction: runContentExtraction,
	core.StageCategorization:    runCategorization,
	core.StageContentAnalysis:   runContentAnalysis,
	core.StageEmbedding:         runEmbedding,
	core.StageFinalization:      runFinalization,
}

// RetryPolicy bounds redelivery for one stage.
type RetryPolicy struct {
	MaxAttempts int
	Delay       time.Duration
}

func defaultRetryPolicies() map[core.Stage]RetryPolicy {
	return map[core.Stage]RetryPolicy{
		core.StageContentExtraction: {MaxAttempts: 2, Delay: 2 * time.Minute},
		core.StageEmbedding:         {MaxAttempts: 2, Delay: time.Minute},
		core.StageFinalization:      {MaxAttempts: 3, Delay: 5 * time.Minute},
	}
}

var defaultRetryPolicy = RetryPolicy{MaxAttempts: 3, Delay: time.Minute}

// Dispatcher drains the task queue, runs stage functions on a worker pool,
// and translates each Outcome into the matching queue and store operations.
// Stage functions themselves never touch the queue.
type Dispatcher struct {
	queue     *queue.Q
	resources *Resources
	pool      *ants.Pool

	policies     map[core.Stage]RetryPolicy
	batchSize    int
	pollInterval time.Duration
	logger       *slog.Logger
}

// DispatcherOption configures a Dispatcher.
type DispatcherOption func(*Dispatcher) error

// WithPoolSize sets the worker pool size for concurrent stage execution.
// Default is runtime.NumCPU() / 2, with a minimum of 1.
func WithPoolSize(size int) DispatcherOption {
	return func(d *Dispatcher) error {
		if size < 1 {
			size = 1
		}
		if d.pool != nil {
			d.pool.Release()
		}
		pool, err := ants.NewPool(size)
		if err != nil {
			return err
		}
		d.pool = pool
		return nil
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) DispatcherOption {
	return func(d *Dispatcher) error {
		if logger == nil {
			logger = slog.Default()
		}
		d.logger = logger.With("component", "dispatcher")
		return nil
	}
}

// WithRetryPolicy overrides the redelivery policy for one stage.
func WithRetryPolicy(stage core.Stage, policy RetryPolicy) DispatcherOption {
	return func(d *Dispatcher) error {
		if policy.MaxAttempts < 1 {
			return ErrInvalidRetryPolicy
		}
		d.policies[stage] = policy
		return nil
	}
}

// WithBatchSize sets how many tasks one poll claims. Default 16.
func WithBatchSize(n int) DispatcherOption {
	return func(d *Dispatcher) error {
		if n < 1 {
			n = 1
		}
		d.batchSize = n
		return nil
	}
}

// WithPollInterval sets the idle sleep between empty polls. Default 1s.
func WithPollInterval(interval time.Duration) DispatcherOption {
	return func(d *Dispatcher) error {
		if interval <= 0 {
			interval = time.Second
		}
		d.pollInterval = interval
		return nil
	}
}

// NewDispatcher creates a dispatcher over the given queue and resources.
func NewDispatcher(q *queue.Q, res *Resources, opts ...DispatcherOption) (*Dispatcher, error) {
	if q == nil {
		return nil, ErrQueueRequired
	}
	if res == nil {
		return nil, ErrResourcesRequired
	}

	poolSize := runtime.NumCPU() / 2
	if poolSize < 1 {
		poolSize = 1
	}
	pool, err := ants.NewPool(poolSize)
	if err != nil {
		return nil, err
	}

	d := &Dispatcher{
		queue:        q,
		resources:    res,
		pool:         pool,
		policies:     defaultRetryPolicies(),
		batchSize:    16,
		pollInterval: time.Second,
		logger:       slog.Default().With("component", "dispatcher"),
	}

	for _, opt := range opts {
		if optErr := opt(d); optErr != nil {
			d.Release()
			return nil, optErr
		}
	}

	return d, nil
}

// Submit enqueues a new document at the head of the pipeline. The same
// document submitted twice before its first stage runs collapses into a
// single task.
func (d *Dispatcher) Submit(ctx context.Context, doc *core.Document) error {
	if doc == nil {
		return core.ErrInvalidDocument
	}
	doc.EnsureID()
	if err := doc.Validate(); err != nil {
		return err
	}
	return d.queue.Enqueue(ctx, core.StageInitialChecks, doc.ID, storage.MarshalDocument(doc))
}

// Run claims and executes tasks until ctx is cancelled. It returns the
// context error after the worker pool has drained in-flight tasks.
func (d *Dispatcher) Run(ctx context.Context) error {
	d.logger.Info("dispatcher started", "batch_size", d.batchSize, "pool_size", d.pool.Cap())

	for {
		if err := ctx.Err(); err != nil {
			d.logger.Info("dispatcher stopping", "reason", err)
			return err
		}

		tasks, err := d.queue.BatchClaim(ctx, d.batchSize)
		if err != nil {
			if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
				return err
			}
			d.logger.Error("claim failed", "err", err)
			d.sleep(ctx)
			continue
		}

		if len(tasks) == 0 {
			d.sleep(ctx)
			continue
		}

		for _, task := range tasks {
			task := task
			if perr := d.pool.Submit(func() {
				d.handle(ctx, task)
			}); perr != nil {
				d.logger.Error("pool submit failed, releasing task", "key", task.Key, "err", perr)
				if nerr := d.queue.Nack(ctx, task.Key, 0); nerr != nil {
					d.logger.Error("nack failed", "key", task.Key, "err", nerr)
				}
			}
		}
	}
}

// ProcessOnce drains the currently visible tasks synchronously and reports
// how many it executed. Used by tests and the one-shot CLI path.
func (d *Dispatcher) ProcessOnce(ctx context.Context) (int, error) {
	processed := 0
	for {
		tasks, err := d.queue.BatchClaim(ctx, d.batchSize)
		if err != nil {
			return processed, err
		}
		if len(tasks) == 0 {
			return processed, nil
		}
		for _, task := range tasks {
			d.handle(ctx, task)
			processed++
		}
	}
}

// handle runs one claimed task through its stage function and applies the
// resulting Outcome.
func (d *Dispatcher) handle(ctx context.Context, task *queue.Task) {
	run, ok := stageRegistry[task.Stage]
	if !ok {
		d.logger.Error("unknown stage in queue, dropping task", "key", task.Key, "stage", task.Stage)
		d.ack(ctx, task)
		return
	}

	doc, err := storage.UnmarshalDocument(task.Payload)
	if err != nil {
		d.logger.Error("undecodable payload, dropping task", "key", task.Key, "err", err)
		d.ack(ctx, task)
		return
	}

	outcome := run(ctx, doc, d.resources)

	switch outcome.Kind {
	case core.ActionAdvance:
		if err := d.queue.Enqueue(ctx, outcome.Next, doc.ID, storage.MarshalDocument(doc)); err != nil {
			d.logger.Error("enqueue next stage failed, redelivering", "key", task.Key, "next", outcome.Next, "err", err)
			d.nack(ctx, task, 0)
			return
		}
		d.ack(ctx, task)

	case core.ActionDrop:
		d.logger.Info("record dropped", "id", doc.ID, "stage", task.Stage, "reason", outcome.Reason)
		d.ack(ctx, task)

	case core.ActionBlacklist:
		if err := d.resources.Blacklist.PutRejected(ctx, doc, task.Stage, outcome.Reason); err != nil {
			d.logger.Error("blacklist write failed, redelivering", "key", task.Key, "err", err)
			d.nack(ctx, task, 0)
			return
		}
		d.logger.Info("record blacklisted", "id", doc.ID, "stage", task.Stage, "reason", outcome.Reason)
		d.ack(ctx, task)

	case core.ActionComplete:
		d.logger.Info("record completed", "id", doc.ID)
		d.ack(ctx, task)

	case core.ActionRetry:
		policy, ok := d.policies[task.Stage]
		if !ok {
			policy = defaultRetryPolicy
		}
		if task.Attempts >= policy.MaxAttempts {
			d.logger.Error("task failed permanently",
				"key", task.Key, "attempts", task.Attempts, "err", outcome.Err)
			d.ack(ctx, task)
			return
		}
		d.logger.Warn("task redelivery scheduled",
			"key", task.Key, "attempt", task.Attempts, "delay", policy.Delay, "err", outcome.Err)
		d.nack(ctx, task, policy.Delay)

	default:
		d.logger.Error("stage returned no outcome, dropping task", "key", task.Key, "stage", task.Stage)
		d.ack(ctx, task)
	}
}

func (d *Dispatcher) ack(ctx context.Context, task *queue.Task) {
	if err := d.queue.Ack(ctx, task.Key); err != nil {
		d.logger.Error("ack failed", "key", task.Key, "err", err)
	}
}

func (d *Dispatcher) nack(ctx context.Context, task *queue.Task, delay time.Duration) {
	if err := d.queue.Nack(ctx, task.Key, delay); err != nil {
		d.logger.Error("nack failed", "key", task.Key, "err", err)
	}
}

func (d *Dispatcher) sleep(ctx context.Context) {
	timer := time.NewTimer(d.pollInterval)
	defer timer.Stop()
	select {
	case <-ctx.Done():
	case <-timer.C:
	}
}

// Release releases the worker pool. The dispatcher must not be used after
// calling Release.
func (d *Dispatcher) Release() {
	if d.pool != nil {
		d.pool.Release()
	}
}
