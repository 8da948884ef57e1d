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

/*
Package protocol defines the text exchanged with the oracle.

📤 Request: SystemDirective plus a user message built by BuildUserMessage
(instruction, rendered codebase, grammar reminder).

📥 Response grammar:

	### File: src/app.py
	```python
	<full replacement content>
	```

	### DELETE: src/old.py

Every edit is a full-file replacement; there is no patch format.
*/
package protocol
