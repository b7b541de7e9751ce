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

import "github.com/lintsql/lintsql/violation"

// FileResult is the per-file record spec §6 names ("a list of {filepath,
// violations: [...]}").
type FileResult struct {
	Filepath   string               `json:"filepath"`
	Violations []violation.InfoDict `json:"violations"`
}

// Clean reports whether the file has no reported violations.
func (r FileResult) Clean() bool { return len(r.Violations) == 0 }

func newFileResult(filepath string, vs violation.List) FileResult {
	infos := make([]violation.InfoDict, len(vs))
	for i, v := range vs {
		infos[i] = v.GetInfoDict()
	}
	return FileResult{Filepath: filepath, Violations: infos}
}

// Stats summarizes a batch run (spec §6's "summary counts") and supplies
// the process exit code (spec §7: 0 when every file is clean, 65
// otherwise — sysexits.h's EX_DATAERR, the teacher's own convention for
// "input was malformed/diagnosable, not a tool fault").
type Stats struct {
	Files        int      `json:"files"`
	Clean        int      `json:"clean"`
	Unclean      int      `json:"unclean"`
	Violations   int      `json:"violations"`
	CleanFiles   []string `json:"clean_files"`
	UncleanFiles []string `json:"unclean_files"`
	ExitCode     int      `json:"exit_code"`
}

// BuildStats aggregates per-file results into a Stats summary.
func BuildStats(results []FileResult) Stats {
	s := Stats{Files: len(results)}
	for _, r := range results {
		if r.Clean() {
			s.Clean++
			s.CleanFiles = append(s.CleanFiles, r.Filepath)
		} else {
			s.Unclean++
			s.UncleanFiles = append(s.UncleanFiles, r.Filepath)
		}
		s.Violations += len(r.Violations)
	}
	if s.Violations > 0 {
		s.ExitCode = 65
	}
	return s
}
