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
Package config loads service configuration.

Settings come from three layers, later layers winning: built-in
defaults, an optional YAML file with ${VAR} and ${VAR:-default}
environment expansion, and SPECFORGE_* environment overrides.
EnsureWorkspace creates the on-disk working directories at startup.
*/
package config
