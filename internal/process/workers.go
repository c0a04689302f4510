package process

import (
	"context"
	"log/slog"
	"sync"

	"github.com/tessio/llm-pdf-reader/models"
	"github.com/tessio/llm-pdf-reader/pkg/reader"
)

// Job is one file for a worker to process.
type Job struct {
	Path string
}

// Result pairs a file with its envelope. Err is only set for failures that
// happen before an envelope can be produced.
type Result struct {
	Path    string
	Payload *models.DocumentResult
	Err     error
}

// runPool processes files through a fixed worker pool. Extraction, OCR and
// chunking are CPU-bound, so the pool keeps them off the coordinating
// goroutine and bounds parallelism at workerCount.
func runPool(ctx context.Context, logger *slog.Logger, svc *reader.Service, files []string, workerCount int, process func(context.Context, string) (*models.DocumentResult, error)) []Result {
	var wg sync.WaitGroup
	jobs := make(chan Job, len(files))
	results := make(chan Result, len(files))

	if workerCount > len(files) {
		workerCount = len(files)
	}
	for w := 1; w <= workerCount; w++ {
		wg.Add(1)
		go worker(ctx, w, logger, &wg, jobs, results, process)
	}

	for _, path := range files {
		jobs <- Job{Path: path}
	}
	close(jobs)

	wg.Wait()
	close(results)

	byPath := make(map[string]Result, len(files))
	for result := range results {
		byPath[result.Path] = result
	}

	// Restore input order; channel order depends on worker scheduling.
	ordered := make([]Result, 0, len(files))
	for _, path := range files {
		ordered = append(ordered, byPath[path])
	}

	stats := svc.CacheStats()
	logger.Info("all workers finished",
		"files", len(files),
		"cache_hits", stats.Hits,
		"cache_misses", stats.Misses,
		"cache_evictions", stats.Evictions)
	return ordered
}

func worker(ctx context.Context, id int, logger *slog.Logger, wg *sync.WaitGroup, jobs <-chan Job, results chan<- Result, process func(context.Context, string) (*models.DocumentResult, error)) {
	defer wg.Done()
	for job := range jobs {
		logger.Info("worker started job", "worker_id", id, "file", job.Path)
		payload, err := process(ctx, job.Path)
		if err != nil {
			logger.Error("processing failed", "worker_id", id, "file", job.Path, "error", err)
			results <- Result{Path: job.Path, Err: err}
			continue
		}
		results <- Result{Path: job.Path, Payload: payload}
		logger.Info("worker finished job", "worker_id", id, "file", job.Path)
	}
}
