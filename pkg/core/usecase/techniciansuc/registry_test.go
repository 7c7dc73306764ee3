// Copyright (c) 2024 CircuitBhai
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package techniciansuc_test

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/circuitbhai/cbweb/internal/test/memrepo"
	"github.com/circuitbhai/cbweb/pkg/core/cerr"
	"github.com/circuitbhai/cbweb/pkg/core/model"
	"github.com/circuitbhai/cbweb/pkg/core/usecase/techniciansuc"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func registration(email string, specialties ...string) model.TechnicianRegistration {
	return model.TechnicianRegistration{
		Name:        "Fixers " + email,
		Email:       email,
		Phone:       "+91 11 2345 6789",
		Address:     "Karol Bagh, New Delhi",
		Specialties: specialties,
	}
}

func statusCode(t *testing.T, err error) int {
	t.Helper()
	var ce *cerr.Error
	require.ErrorAs(t, err, &ce)
	return ce.HTTPStatusCode
}

func TestRegisterAndReview(t *testing.T) {
	ctx := context.Background()
	techs := &memrepo.Technicians{}
	uc, err := techniciansuc.New(&memrepo.Pool{}, techs, nil)
	require.NoError(t, err)

	tech, err := uc.Register(
		ctx, registration("a@example.com", " phones ", "", "laptops"),
	)
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, tech.ID)
	assert.Equal(t, model.TechnicianStatusPending, tech.Status)
	assert.Equal(t, []string{"phones", "laptops"}, tech.Specialties)
	assert.False(t, tech.CreatedAt.IsZero())

	_, err = uc.Register(ctx, registration("A@example.com", "tv"))
	assert.Equal(t, http.StatusConflict, statusCode(t, err))

	_, err = uc.Register(ctx, registration("b@example.com", " "))
	assert.Equal(t, http.StatusBadRequest, statusCode(t, err))
	assert.ErrorIs(t, err, model.ErrMissingField)

	list, err := uc.ListApproved(ctx, "")
	require.NoError(t, err)
	assert.Empty(t, list, "pending technicians must not be listed")

	approved, err := uc.Review(ctx, tech.ID, model.TechnicianStatusApproved)
	require.NoError(t, err)
	assert.Equal(t, model.TechnicianStatusApproved, approved.Status)

	list, err = uc.ListApproved(ctx, "phones")
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, tech.ID, list[0].ID)
	list, err = uc.ListApproved(ctx, "tv")
	require.NoError(t, err)
	assert.Empty(t, list)

	_, err = uc.Review(ctx, tech.ID, "archived")
	assert.Equal(t, http.StatusBadRequest, statusCode(t, err))
	_, err = uc.Review(ctx, uuid.New(), model.TechnicianStatusRejected)
	assert.Equal(t, http.StatusNotFound, statusCode(t, err))
}

func TestListApprovedOrdersByRating(t *testing.T) {
	techs := &memrepo.Technicians{}
	for _, r := range []*float64{ptr(3.5), nil, ptr(4.9), ptr(4.1)} {
		techs.Put(model.Technician{
			ID: uuid.New(), Status: model.TechnicianStatusApproved, Rating: r,
		})
	}
	uc, err := techniciansuc.New(&memrepo.Pool{}, techs, nil)
	require.NoError(t, err)
	list, err := uc.ListApproved(context.Background(), "")
	require.NoError(t, err)
	require.Len(t, list, 4)
	assert.Equal(t, 4.9, *list[0].Rating)
	assert.Equal(t, 4.1, *list[1].Rating)
	assert.Equal(t, 3.5, *list[2].Rating)
	assert.Nil(t, list[3].Rating)
}

func TestPoolFailure(t *testing.T) {
	boom := errors.New("connection refused")
	uc, err := techniciansuc.New(
		&memrepo.Pool{Err: boom}, &memrepo.Technicians{}, nil,
	)
	require.NoError(t, err)
	_, err = uc.Register(context.Background(), registration("c@example.com", "tv"))
	assert.ErrorIs(t, err, boom)
	list, err := uc.ListApproved(context.Background(), "")
	assert.ErrorIs(t, err, boom)
	assert.Nil(t, list)
}

func ptr[T any](v T) *T {
	return &v
}
