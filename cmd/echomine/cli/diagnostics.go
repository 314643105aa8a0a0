// Copyright 2026 Benoit Pereira da Silva
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//	http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package cli

import (
	"fmt"
	"io"

	"go.uber.org/zap"

	"github.com/aucontraire/echomine/internal/econst"
	"github.com/aucontraire/echomine/pkg/echomine/diagnostics"
)

// skipReporter bundles an in-memory skip log with a logging callback,
// satisfying both an adapter's on_skip shape and the CLI's end-of-run
// summary (supplemented feature 2: "N conversations skipped").
type skipReporter struct {
	log *diagnostics.SkipLog
}

func newSkipReporter() *skipReporter {
	return &skipReporter{log: diagnostics.NewSkipLog(econst.SkipLogLimit)}
}

// onSkip is passed as an adapter's on_skip callback.
func (r *skipReporter) onSkip(index int, id, kind, detail string) {
	r.log.OnSkip(index, id, kind, detail)
	logger.Debug("skipped malformed record",
		zap.Int("index", index),
		zap.String("id", id),
		zap.String("kind", kind),
		zap.String("detail", detail),
	)
}

// onProgress is passed as an adapter's progress callback.
func (r *skipReporter) onProgress(count int) {
	logger.Debug("streaming progress", zap.Int("conversations_processed", count))
}

// summarize prints the "N conversations skipped" line to w when at least
// one record was skipped (supplemented feature 2).
func (r *skipReporter) summarize(w io.Writer) {
	n := r.log.Len()
	if n == 0 {
		return
	}
	fmt.Fprintf(w, "%d conversation(s) skipped (see --verbose)\n", n)
}
