// Copyright 2025 The Rivaas Authors
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

package logging

import "errors"

// Sentinel errors returned by [New] and [Logger.SetLevel].
//
//	if err := logger.SetLevel(level); errors.Is(err, logging.ErrCannotChangeLevel) {
//	    // level is controlled by the custom handler
//	}
var (
	// ErrNilHandler indicates a nil handler was provided to [WithHandler].
	ErrNilHandler = errors.New("custom handler is nil")

	// ErrNilOutput indicates a nil writer was provided to [WithOutput].
	ErrNilOutput = errors.New("output writer cannot be nil")

	// ErrInvalidHandler indicates an unsupported handler type was specified.
	// Valid types: JSONHandler, TextHandler, ConsoleHandler.
	ErrInvalidHandler = errors.New("invalid handler type")

	// ErrCannotChangeLevel is returned by [Logger.SetLevel] when the logger
	// writes to a custom handler.
	ErrCannotChangeLevel = errors.New("cannot change level on custom handler")
)
