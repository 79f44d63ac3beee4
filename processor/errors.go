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

package processor

import (
	"errors"
	"fmt"
)

// CompressionError is fatal for a single compression or inspection call:
// missing source directory, a source path that is not a directory, a write
// failure, or a corrupt archive on inspect. It always carries the original
// cause. Callers must treat any CompressionError as "no usable output
// produced".
type CompressionError struct {
	Op  string
	Err error
}

// Error returns the failure description including the original cause
func (e *CompressionError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Op, e.Err)
	}
	return e.Op
}

// Unwrap returns the underlying cause
func (e *CompressionError) Unwrap() error {
	return e.Err
}

// newCompressionError wraps a cause into a CompressionError
func newCompressionError(op string, err error) *CompressionError {
	return &CompressionError{Op: op, Err: err}
}

// IsCompressionError reports whether err is (or wraps) a CompressionError
func IsCompressionError(err error) bool {
	var ce *CompressionError
	return errors.As(err, &ce)
}
