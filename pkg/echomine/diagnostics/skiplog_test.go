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

package diagnostics_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aucontraire/echomine/pkg/echomine/diagnostics"
)

func TestSkipLogBoundsByLimit(t *testing.T) {
	log := diagnostics.NewSkipLog(3)
	for i := 0; i < 10; i++ {
		log.OnSkip(i, "", "validation", fmt.Sprintf("detail %d", i))
	}
	assert.Equal(t, 3, log.Len())

	events := log.Events()
	require.Len(t, events, 3)
	// Oldest-first eviction: only the last three survive.
	assert.Equal(t, 7, events[0].Index)
	assert.Equal(t, 8, events[1].Index)
	assert.Equal(t, 9, events[2].Index)
}

func TestSkipLogUnboundedWhenLimitZero(t *testing.T) {
	log := diagnostics.NewSkipLog(0)
	for i := 0; i < 50; i++ {
		log.OnSkip(i, "", "validation", "x")
	}
	assert.Equal(t, 50, log.Len())
}

func TestSkipLogChainInvokesBoth(t *testing.T) {
	log := diagnostics.NewSkipLog(10)
	var calledWith string
	chained := log.Chain(func(index int, id, kind, detail string) {
		calledWith = detail
	})
	chained(0, "id1", "validation", "boom")

	assert.Equal(t, "boom", calledWith)
	assert.Equal(t, 1, log.Len())
}

func TestSkipLogRunIDsAreUnique(t *testing.T) {
	a := diagnostics.NewSkipLog(1)
	b := diagnostics.NewSkipLog(1)
	assert.NotEqual(t, a.RunID, b.RunID)
}
