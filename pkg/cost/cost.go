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
// Package cost estimates the dollar cost of a request from its token usage.
package cost

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// 💰 Pricing holds dollar prices per million tokens
type Pricing struct {
	InputPerMillion  float64
	OutputPerMillion float64
}

// 🔢 Tokens counts billed tokens
type Tokens struct {
	Input  int
	Output int
}

// Estimate returns the cost in dollars
func Estimate(tokens Tokens, p Pricing) float64 {
	return float64(tokens.Input)*p.InputPerMillion/1_000_000 +
		float64(tokens.Output)*p.OutputPerMillion/1_000_000
}

var printer = message.NewPrinter(language.English)

// Format renders dollars with two decimals and thousands separators, e.g. $1,234.50
func Format(dollars float64) string {
	return printer.Sprintf("$%.2f", dollars)
}
