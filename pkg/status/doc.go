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
Package status applies file system changes under a root and tracks what happened to each path.

	            +-------------+
	            |   Status    |
	            |  (Manager)  |
	            +------+------+
	                   |
	      +-----------+-----------+
	      |                       |
	+-----+-----+           +----+----+
	|   Files   |           |  Logs   |
	| (Storage) |           | (UI/UX) |
	+-----------+           +---------+

🎯 Purpose:
  - Resolve relative paths against the root and refuse ones that escape it
  - Write files atomically (temp file + rename) keeping existing permissions
  - Delete files and directory trees
  - Record a FileInfo per path and echo it through the logger

🤝 Interfaces:
  - FileManager: file system operations
  - StatusReporter: status tracking and progress
  - FileFormatter: human readable status lines

🔍 Example:

	mgr := status.New(root, logger)

	if err := mgr.WriteFileAtomic(ctx, "src/app.py", content); err != nil {
		return err
	}
	mgr.TrackFile(ctx, status.FileInfo{Path: "src/app.py", Status: status.StatusModified, Action: "write"})

	for _, info := range mgr.ListFiles(ctx) {
		fmt.Println(info.Path, info.Status)
	}
*/
package status
