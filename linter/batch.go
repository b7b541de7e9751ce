// Copyright 2024 The lintsql Authors
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

package linter

import (
	"context"
	"runtime"
	"sort"
	"sync"
)

// BatchInput is one file handed to LintBatch.
type BatchInput struct {
	Filename string
	Source   string
}

// BatchOutput pairs a file's lint result with its reconstructed source
// (only meaningful when the batch ran with fix; otherwise Fixed equals
// the file's original source) and any hard pipeline error.
type BatchOutput struct {
	Result FileResult
	Fixed  string
	Err    error
}

// LintBatch runs LintFile over files concurrently, using a bounded worker
// pool sized to GOMAXPROCS — the one place this module reaches for raw
// sync/channels rather than a third-party concurrency library, since the
// job is exactly what the standard library already does well and no
// example in the retrieval pack reaches for a pool library to do it.
// Cancellation via ctx is observed between files, not mid-file: a file
// whose job has started runs to completion.
func (lt *Linter) LintBatch(ctx context.Context, files []BatchInput, fix bool, templaterContext map[string]string) ([]BatchOutput, Stats) {
	workers := runtime.GOMAXPROCS(0)
	if workers > len(files) {
		workers = len(files)
	}
	if workers < 1 {
		workers = 1
	}

	jobs := make(chan int, len(files))
	out := make([]BatchOutput, len(files))

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				select {
				case <-ctx.Done():
					out[i] = BatchOutput{Err: ctx.Err()}
					continue
				default:
				}
				f := files[i]
				res, fixed, err := lt.LintFile(f.Filename, f.Source, fix, templaterContext)
				out[i] = BatchOutput{Result: res, Fixed: fixed, Err: err}
			}
		}()
	}
	for i := range files {
		jobs <- i
	}
	close(jobs)
	wg.Wait()

	results := make([]FileResult, 0, len(out))
	for _, o := range out {
		if o.Err == nil {
			results = append(results, o.Result)
		}
	}
	sort.Slice(results, func(i, j int) bool { return results[i].Filepath < results[j].Filepath })
	return out, BuildStats(results)
}
