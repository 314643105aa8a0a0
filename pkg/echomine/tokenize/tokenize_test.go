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

package tokenize_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/aucontraire/echomine/pkg/echomine/tokenize"
)

func TestTokensLatin(t *testing.T) {
	got := tokenize.Tokens("Python? Yes, python!")
	assert.Equal(t, []string{"python", "yes", "python"}, got)
}

func TestTokensMixedScript(t *testing.T) {
	got := tokenize.Tokens("Python很适合初学者")
	assert.Equal(t, []string{"python", "很", "适", "合", "初", "学", "者"}, got)
}

func TestTokensCaseInsensitive(t *testing.T) {
	assert.Equal(t, tokenize.Tokens("PYTHON"), tokenize.Tokens("python"))
}

func TestTokensEmpty(t *testing.T) {
	assert.Empty(t, tokenize.Tokens(""))
	assert.Empty(t, tokenize.Tokens("   "))
}

func TestTokensPunctuationOnly(t *testing.T) {
	assert.Empty(t, tokenize.Tokens("---...!!!"))
}
