// Copyright (c) 2023-2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package serdser provides the (de)serialization helpers which are
// shared by the resource packages. Requests are bound and validated by
// Bind, validation failures are reported as a map from field names to
// their error messages, and other errors are reported by SerErr as a
// {"detail": "..."} object.
package serdser

import (
	"errors"
	"net/http"

	"github.com/circuitbhai/cbweb/pkg/core/cerr"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// Bind decodes the c request into req using the b binding and
// validates it with the binding struct tags. If it fails, a proper
// response is written and false is returned, so the caller should
// return immediately.
func Bind(c *gin.Context, req any, b binding.Binding) bool {
	return report(c, c.ShouldBindWith(req, b))
}

// BindURI works like Bind, but decodes the path parameters.
func BindURI(c *gin.Context, req any) bool {
	return report(c, c.ShouldBindUri(req))
}

func report(c *gin.Context, err error) bool {
	switch err := err.(type) {
	case nil:
		return true
	case *validator.InvalidValidationError:
		c.JSON(http.StatusInternalServerError, gin.H{
			"detail": err.Error(),
		})
	case validator.ValidationErrors:
		var nameToErrs map[string][]string
		for _, ferr := range err {
			AddErr(&nameToErrs, ferr.Field(), ferr.Error())
		}
		c.JSON(http.StatusBadRequest, nameToErrs)
	default:
		c.JSON(http.StatusBadRequest, gin.H{
			"detail": err.Error(),
		})
	}
	return false
}

// AddErr appends msgs to the name entry of the errs map, allocating
// the map if it is nil.
func AddErr(errs *map[string][]string, name string, msgs ...string) {
	if (*errs) == nil {
		*errs = make(map[string][]string)
	}
	(*errs)[name] = append((*errs)[name], msgs...)
}

// Assert calls AddErr if ok is false and returns ok.
func Assert(
	errs *map[string][]string, ok bool, name string, msgs ...string,
) bool {
	if ok {
		return true
	}
	AddErr(errs, name, msgs...)
	return false
}

// SerErr writes err as a {"detail": "..."} response. The status code
// is taken from a wrapped cerr.Error, defaulting to 500.
func SerErr(c *gin.Context, err error) {
	var ce *cerr.Error
	if errors.As(err, &ce) {
		c.JSON(ce.HTTPStatusCode, gin.H{
			"detail": ce.Err.Error(),
		})
		return
	}
	c.JSON(http.StatusInternalServerError, gin.H{
		"detail": err.Error(),
	})
}
