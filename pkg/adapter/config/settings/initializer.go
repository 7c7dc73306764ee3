// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package settings

// Nil2Zero makes the (*t) pointer, if it is nil, point to a newly
// allocated zero value of T. A non-nil (*t) is left unchanged.
func Nil2Zero[T any](t **T) {
	if (*t) != nil {
		return
	}
	var zero T
	(*t) = &zero
}

// Default makes the (*t) pointer, if it is nil, point to a newly
// allocated copy of the def value. A non-nil (*t) is left unchanged.
func Default[T any](t **T, def T) {
	if (*t) != nil {
		return
	}
	(*t) = &def
}
