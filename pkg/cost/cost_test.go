// Copyright 2025 walteh LLC
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
package cost

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEstimate(t *testing.T) {
	pricing := Pricing{InputPerMillion: 2.50, OutputPerMillion: 10.00}

	tests := []struct {
		name   string
		tokens Tokens
		want   float64
	}{
		{name: "zero", tokens: Tokens{}, want: 0},
		{name: "one_million_each", tokens: Tokens{Input: 1_000_000, Output: 1_000_000}, want: 12.50},
		{name: "typical", tokens: Tokens{Input: 10_000, Output: 2_000}, want: 0.045},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, Estimate(tt.tokens, pricing), 1e-9)
		})
	}
}

func TestFormat(t *testing.T) {
	tests := []struct {
		dollars float64
		want    string
	}{
		{0, "$0.00"},
		{0.046, "$0.05"},
		{12.5, "$12.50"},
		{1234.5, "$1,234.50"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, Format(tt.dollars))
		})
	}
}
