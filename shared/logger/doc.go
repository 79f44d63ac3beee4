// Copyright 2025 SpecForge
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
Package logger provides structured JSON logging for SpecForge components.

Each log entry is a single JSON line on stdout containing the timestamp
(RFC3339Nano), level, component, container hostname, optional request ID
for correlation, the message, and arbitrary custom fields. The format is
consumable by CloudWatch, ELK, or any other log aggregation system.

Create a logger per component:

	log := logger.New("processor")

Log with request context:

	log.Info("req-456", "Extracted artifacts", map[string]interface{}{
	    "artifact_count": 12,
	})

Logger instances are safe for concurrent use from multiple goroutines.
*/
package logger
