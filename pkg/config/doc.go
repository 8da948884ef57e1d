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
Package config manages configuration parsing and validation for autocode.

	                 +-------------+
	                 |  Default()  |
	                 +------+------+
	                        |
	      +-----------------+-----------------+
	      |                 |                 |
	+-----+-----+     +-----+-----+     +-----+-----+
	|   YAML    |     |    HCL    |     |   JSON    |
	|  Parser   |     |  Parser   |     |  Parser   |
	+-----------+     +-----------+     +-----------+
	                        |
	                 +------+------+
	                 |  Validate() |
	                 +-------------+

🎯 Purpose:
  - Loads .autocode.yaml, .autocode.yml, .autocode.hcl or .autocode.json
  - Decodes on top of the defaults so files only carry what they change
  - Rejects unknown keys, unknown modes and providers, and bad durations

🔄 Flow:
 1. Discover (or Load with an explicit path) picks a parser by extension
 2. The parser decodes onto Default()
 3. Validate normalizes paths and fills per-provider defaults
 4. Command-line flags override individual fields, then Validate runs again

🔍 Example (YAML):

	selection:
	  mode: whitelist
	  include_dirs: [src, lib]
	oracle:
	  provider: ollama
	  model: qwen2.5-coder
	  max_retries: 5
	  backoff_unit: 500ms

🔍 Example (HCL):

	selection {
	  mode         = "blacklist"
	  exclude_dirs = ["node_modules", ".git", "dist"]
	}

	oracle {
	  provider    = "gemini"
	  api_key_env = "MY_GEMINI_KEY"
	}
*/
package config
