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
Package oracle sends transformation requests to a code-generation service.

	+-----------+      +-------------------+      +----------------+
	| Requester | ---> | Client (one call) | ---> | openai/ollama/ |
	|  retries  |      |  Ready, Complete  |      |     gemini     |
	+-----------+      +-------------------+      +----------------+

🔁 Retry: attempts 1..N. After failed attempt k (k < N) the requester sleeps
2^k backoff units, so with a one second unit and three attempts the waits
are 2s and 4s. There is no wait after the final attempt.

❌ Errors:
  - *ConfigError wraps problems no retry can fix (ErrMissingCredential)
  - *RetryExhaustedError wraps the last failure once attempts run out
  - a response without choices or candidates is a failed attempt (ErrEmptyResponse)
*/
package oracle
