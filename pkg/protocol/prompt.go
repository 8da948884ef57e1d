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

package protocol

import "strings"

const (
	fileHeader   = "### File: "
	deleteHeader = "### DELETE: "
	fence        = "```"
)

// 📜 SystemDirective is the fixed system-role message sent with every request
const SystemDirective = "You are a programmer that can modify code based on user instructions. " +
	"For files that you modify, print the entire file with the changes. " +
	"Additionally, if any files need to be deleted, specify them using the following format:\n\n" +
	deleteHeader + "<file_path>\n" +
	"Do not add code comments that describe changes."

// grammarReminder closes every user message and restates the response format
const grammarReminder = "Please provide the modified code for each file in the following format:\n\n" +
	fileHeader + "<file_path>\n" +
	fence + "<language>\n" +
	"<modified_code>\n" +
	fence + "\n\n" +
	"If any files need to be deleted, specify them using the following format:\n\n" +
	deleteHeader + "<file_path>\n"

// ✉️ BuildUserMessage composes the user-role message: the instruction, the
// rendered codebase and the grammar reminder
func BuildUserMessage(instruction, payload string) string {
	var b strings.Builder
	b.WriteString(instruction)
	b.WriteString("\n\nHere is the existing codebase:\n\n")
	b.WriteString(payload)
	b.WriteString("\n\n")
	b.WriteString(grammarReminder)
	return b.String()
}
