package batch

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"runtime"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"panothumb/internal/thumbnail"
)

// CollectPaths keeps the arguments that name existing regular files.
// Directories and missing paths are dropped without comment.
func CollectPaths(args []string) []string {
	var paths []string
	for _, arg := range args {
		info, err := os.Stat(arg)
		if err != nil || !info.Mode().IsRegular() {
			continue
		}
		paths = append(paths, arg)
	}
	return paths
}

// Run fans paths out to a pool of workers and blocks until every file
// has been processed. Results are reduced by a single collector, so the
// returned Summary counts each success exactly once. A cancelled ctx stops
// dispatch; files a worker has already started still complete.
func Run(ctx context.Context, paths []string, proc Processor, opts Options, logger *zap.Logger, updates chan<- ProgressUpdate) (Summary, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	summary := Summary{Outcomes: make(map[thumbnail.Outcome]int)}

	jobs := make(chan Job)
	results := make(chan thumbnail.Result)

	workers := opts.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	logger.Debug("starting workers", zap.Int("workers", workers), zap.Int("files", len(paths)))

	g := new(errgroup.Group)
	for i := 0; i < workers; i++ {
		g.Go(func() error {
			worker(ctx, jobs, results, proc, updates)
			return nil
		})
	}

	collectorDone := make(chan struct{})
	go func() {
		defer close(collectorDone)
		for res := range results {
			summary.Total++
			summary.Outcomes[res.Outcome]++
			if res.Outcome == thumbnail.Succeeded {
				summary.Processed++
			}
			summary.SaveErrors += len(res.FailedSaves())
		}
	}()

	producerErr := make(chan error, 1)
	go func() {
		defer close(jobs)
		for _, path := range paths {
			job := Job{Path: path, Display: filepath.Base(path)}
			select {
			case jobs <- job:
			case <-ctx.Done():
				producerErr <- ctx.Err()
				return
			}
		}
		producerErr <- nil
	}()

	_ = g.Wait()
	close(results)
	<-collectorDone

	logger.Debug("batch finished",
		zap.Int("total", summary.Total),
		zap.Int("processed", summary.Processed),
		zap.Int("save_errors", summary.SaveErrors),
	)

	if err := <-producerErr; err != nil && !errors.Is(err, context.Canceled) {
		return summary, err
	}
	return summary, nil
}

func worker(ctx context.Context, jobs <-chan Job, results chan<- thumbnail.Result, proc Processor, updates chan<- ProgressUpdate) {
	for job := range jobs {
		if ctx.Err() != nil {
			return
		}
		if updates != nil {
			updates <- ProgressUpdate{Kind: EventStarted, Display: job.Display}
		}

		res := proc.Process(job.Path)

		if updates != nil {
			updates <- ProgressUpdate{
				Kind:        EventFinished,
				Display:     job.Display,
				Outcome:     res.Outcome,
				FailedSaves: res.FailedSaves(),
			}
		}
		results <- res
	}
}
