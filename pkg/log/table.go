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

package log

import (
	"fmt"
	"strings"

	"github.com/pterm/pterm"
)

// 📊 Row is a single label/value line of a summary table
type Row struct {
	Label string
	Value string
}

// 📊 Table renders a two-column summary to the console and records each row
func (l *Logger) Table(title string, rows []Row) {
	data := pterm.TableData{{"", title}}
	for _, r := range rows {
		data = append(data, []string{r.Label, r.Value})
	}

	rendered, err := pterm.DefaultTable.WithHasHeader().WithData(data).Srender()
	if err != nil {
		// fall back to plain lines, the table is cosmetic
		var b strings.Builder
		for _, r := range rows {
			fmt.Fprintf(&b, "%s: %s\n", r.Label, r.Value)
		}
		rendered = b.String()
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	fmt.Fprintln(l.console)
	fmt.Fprintln(l.console, strings.TrimRight(rendered, "\n"))

	ev := l.zlog.Info()
	for _, r := range rows {
		ev = ev.Str(r.Label, r.Value)
	}
	ev.Msg(title)
}
