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

package provider_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aucontraire/echomine/pkg/echomine/errrs"
	"github.com/aucontraire/echomine/pkg/echomine/provider"
)

func TestDetectEmptyArrayDefaultsOpenAI(t *testing.T) {
	kind, err := provider.Detect(strings.NewReader("[]"))
	require.NoError(t, err)
	assert.Equal(t, provider.OpenAI, kind)
}

func TestDetectClaude(t *testing.T) {
	kind, err := provider.Detect(strings.NewReader(`[{"uuid":"c1","chat_messages":[]}]`))
	require.NoError(t, err)
	assert.Equal(t, provider.Claude, kind)
}

func TestDetectOpenAI(t *testing.T) {
	kind, err := provider.Detect(strings.NewReader(`[{"id":"c1","mapping":{}}]`))
	require.NoError(t, err)
	assert.Equal(t, provider.OpenAI, kind)
}

func TestDetectUnsupported(t *testing.T) {
	_, err := provider.Detect(strings.NewReader(`[{"id":"c1"}]`))
	require.Error(t, err)
	var unsupported *errrs.UnsupportedFormatError
	assert.ErrorAs(t, err, &unsupported)
}

func TestDetectInvalidJSON(t *testing.T) {
	_, err := provider.Detect(strings.NewReader(`not json`))
	require.Error(t, err)
	var parseErr *errrs.ParseError
	assert.ErrorAs(t, err, &parseErr)
}
