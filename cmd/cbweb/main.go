// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package main is the entry point of the cbweb executable.
package main

import "github.com/circuitbhai/cbweb/cmd/cbweb/command"

func main() {
	command.Execute()
}
