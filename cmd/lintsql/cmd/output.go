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

package cmd

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/google/uuid"
	"github.com/kr/pretty"
	digest "github.com/opencontainers/go-digest"

	"github.com/lintsql/lintsql/linter"
)

// runReport is the per-invocation envelope a lint/fix run prints: a fresh
// run ID for correlating this run's output with its log lines, and one
// entry per file with its content digest (so a caller can tell, without
// re-reading the file, whether two runs saw the same source).
type runReport struct {
	RunID string       `json:"run_id"`
	Files []fileReport `json:"files"`
	Stats linter.Stats `json:"stats"`
}

type fileReport struct {
	Filepath string            `json:"filepath"`
	Digest   string            `json:"digest"`
	Result   linter.FileResult `json:"result"`
}

func newRunReport(outs []linter.BatchOutput, files []linter.BatchInput) runReport {
	report := runReport{RunID: uuid.New().String()}
	var results []linter.FileResult
	for i, o := range outs {
		if o.Err != nil {
			continue
		}
		report.Files = append(report.Files, fileReport{
			Filepath: files[i].Filename,
			Digest:   digest.FromString(files[i].Source).String(),
			Result:   o.Result,
		})
		results = append(results, o.Result)
	}
	report.Stats = linter.BuildStats(results)
	return report
}

// writeReport renders report to w, either as compact JSON (the default,
// machine-readable) or as a pretty-printed Go value (--pretty, for a
// human at a terminal).
func writeReport(w io.Writer, report runReport, pretty_ bool) error {
	if pretty_ {
		_, err := pretty.Fprintf(w, "%v\n", report)
		return err
	}
	enc := json.NewEncoder(w)
	return enc.Encode(report)
}

func reportBatchErrors(w io.Writer, outs []linter.BatchOutput, files []linter.BatchInput) {
	for i, o := range outs {
		if o.Err != nil {
			fmt.Fprintf(w, "lintsql: %s: %v\n", files[i].Filename, o.Err)
		}
	}
}
