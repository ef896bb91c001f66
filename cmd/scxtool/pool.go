package main

import "sync"

type fileResult struct {
	path string
	line string
	err  error
}

// processFiles runs fn over paths on a fixed number of workers and returns
// the results in input order.
func processFiles(paths []string, workers int, fn func(path string) (string, error)) []fileResult {
	type job struct {
		index int
		path  string
	}

	if workers < 1 {
		workers = 1
	}
	if workers > len(paths) {
		workers = len(paths)
	}

	results := make([]fileResult, len(paths))
	jobs := make(chan job, workers*2)
	var wg sync.WaitGroup

	worker := func() {
		defer wg.Done()
		for j := range jobs {
			line, err := fn(j.path)
			results[j.index] = fileResult{path: j.path, line: line, err: err}
		}
	}

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go worker()
	}

	for i, p := range paths {
		jobs <- job{index: i, path: p}
	}

	close(jobs)
	wg.Wait()
	return results
}
