package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/nvarma/resumind/internal/aiextract"
	"github.com/nvarma/resumind/internal/config"
	"github.com/nvarma/resumind/internal/engine"
	"github.com/nvarma/resumind/internal/labelstudio"
)

// Orchestrator manages the batch annotation pipeline.
type Orchestrator struct {
	jobs   *JobStore
	queue  chan *Job
	engine *engine.Engine
	ls     *labelstudio.Client
	gemini *aiextract.GeminiClient
	log    *slog.Logger
	cfg    config.Config

	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewOrchestrator creates the pipeline; Start launches its workers.
func NewOrchestrator(cfg config.Config, eng *engine.Engine, ls *labelstudio.Client, gemini *aiextract.GeminiClient, log *slog.Logger) *Orchestrator {
	return &Orchestrator{
		jobs:   NewJobStore(cfg.JobTTL),
		queue:  make(chan *Job, cfg.MaxQueueSize),
		engine: eng,
		ls:     ls,
		gemini: gemini,
		log:    log,
		cfg:    cfg,
	}
}

// Start launches worker goroutines.
func (o *Orchestrator) Start(ctx context.Context) {
	workerCtx, cancel := context.WithCancel(ctx)
	o.cancel = cancel

	for range o.cfg.WorkerCount {
		o.wg.Add(1)
		go func() {
			defer o.wg.Done()
			w := NewWorker(o.engine, o.ls, o.gemini, o.log, o.cfg.MaxConcurrentAI)
			for {
				select {
				case <-workerCtx.Done():
					return
				case job, ok := <-o.queue:
					if !ok {
						return
					}
					w.Process(workerCtx, job)
				}
			}
		}()
	}

	// Start job store cleanup.
	o.wg.Add(1)
	go func() {
		defer o.wg.Done()
		ticker := time.NewTicker(5 * time.Minute)
		defer ticker.Stop()
		for {
			select {
			case <-workerCtx.Done():
				return
			case <-ticker.C:
				o.jobs.Cleanup()
			}
		}
	}()
}

// Stop gracefully shuts down the pipeline.
func (o *Orchestrator) Stop() {
	if o.cancel != nil {
		o.cancel()
	}
	close(o.queue)
	o.wg.Wait()
}

// Submit queues a new job for processing.
func (o *Orchestrator) Submit(job *Job) error {
	o.jobs.Put(job)
	select {
	case o.queue <- job:
		return nil
	default:
		job.SetStatus(StatusFailed, "queue_full")
		return fmt.Errorf("job queue is full (%d)", o.cfg.MaxQueueSize)
	}
}

// GetJob returns a job by ID.
func (o *Orchestrator) GetJob(id string) *Job {
	return o.jobs.Get(id)
}

// QueueDepth returns current queue depth.
func (o *Orchestrator) QueueDepth() int {
	return len(o.queue)
}

// LabelStudioClient returns the annotation client for direct use by API
// handlers.
func (o *Orchestrator) LabelStudioClient() *labelstudio.Client {
	return o.ls
}

// GeminiClient returns the AI extraction client for direct use by API
// handlers.
func (o *Orchestrator) GeminiClient() *aiextract.GeminiClient {
	return o.gemini
}

// Engine returns the extraction engine.
func (o *Orchestrator) Engine() *engine.Engine {
	return o.engine
}
