package glot

import "sync"

// runWorkers fans files out to a fixed pool of workers, each running process
// on its jobs, and gathers all results. Result order is not deterministic;
// callers sort.
func runWorkers[T any](files []FileJob, jobs int, process func(FileJob) []T) []T {
	results := make(chan T, 128)
	jobQueue := make(chan FileJob, 128)
	var wg sync.WaitGroup

	workerCount := jobs
	if workerCount < 1 {
		workerCount = 1
	}
	if workerCount > len(files) {
		workerCount = len(files)
	}

	worker := func() {
		defer wg.Done()
		for job := range jobQueue {
			for _, r := range process(job) {
				results <- r
			}
		}
	}

	wg.Add(workerCount)
	for i := 0; i < workerCount; i++ {
		go worker()
	}

	go func() {
		for _, f := range files {
			jobQueue <- f
		}
		close(jobQueue)
	}()

	go func() {
		wg.Wait()
		close(results)
	}()

	var all []T
	for r := range results {
		all = append(all, r)
	}

	return all
}
