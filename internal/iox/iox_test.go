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

package iox

import (
	"path/filepath"
	"testing"

	"github.com/go-quicktest/qt"
)

func TestDecodeStripsBOM(t *testing.T) {
	withBOM := append([]byte{0xEF, 0xBB, 0xBF}, []byte("select 1")...)
	got, err := Decode(withBOM)
	qt.Assert(t, qt.IsNil(err))
	qt.Assert(t, qt.Equals(got, "select 1"))
}

func TestDecodePlainUTF8Unchanged(t *testing.T) {
	got, err := Decode([]byte("select * from t"))
	qt.Assert(t, qt.IsNil(err))
	qt.Assert(t, qt.Equals(got, "select * from t"))
}

func TestReadWriteFileRoundTrips(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "q.sql")

	qt.Assert(t, qt.IsNil(WriteFile(path, "select 1")))
	got, err := ReadFile(path)
	qt.Assert(t, qt.IsNil(err))
	qt.Assert(t, qt.Equals(got, "select 1"))
}
