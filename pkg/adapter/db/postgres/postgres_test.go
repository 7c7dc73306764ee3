// Copyright (c) 2024 CircuitBhai
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package postgres_test

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/circuitbhai/cbweb/internal/test/dbcontainer"
	"github.com/circuitbhai/cbweb/pkg/adapter/db/postgres"
	"github.com/circuitbhai/cbweb/pkg/adapter/db/postgres/bookingsrp"
	"github.com/circuitbhai/cbweb/pkg/adapter/db/postgres/techniciansrp"
	"github.com/circuitbhai/cbweb/pkg/core/cerr"
	"github.com/circuitbhai/cbweb/pkg/core/model"
	"github.com/circuitbhai/cbweb/pkg/core/repo"
	"github.com/circuitbhai/cbweb/pkg/core/usecase/bookingsuc"
	"github.com/circuitbhai/cbweb/pkg/core/usecase/techniciansuc"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

type ReposTestSuite struct {
	Ctx  context.Context
	Pool *postgres.Pool
}

func TestReposTestSuite(t *testing.T) {
	ctx := context.Background()
	_, pool, dfrs, ok := dbcontainer.New(ctx, 60*time.Second, t)
	for _, f := range dfrs {
		defer f()
	}
	if !ok {
		return // errors are already logged
	}
	rts := &ReposTestSuite{Ctx: ctx, Pool: pool}
	t.Run("schema is idempotent", rts.TestInitSchemaTwice)
	t.Run("technicians", rts.TestTechnicians)
	t.Run("bookings", rts.TestBookings)
}

func statusCode(t *testing.T, err error) int {
	t.Helper()
	var ce *cerr.Error
	require.ErrorAs(t, err, &ce)
	return ce.HTTPStatusCode
}

func (rts *ReposTestSuite) TestInitSchemaTwice(t *testing.T) {
	require.NoError(t, postgres.InitSchema(rts.Ctx, rts.Pool))
}

func (rts *ReposTestSuite) TestTechnicians(t *testing.T) {
	r := require.New(t)
	techsrp := techniciansrp.New()
	uc, err := techniciansuc.New(rts.Pool, techsrp, nil)
	r.NoError(err)

	loc := model.Coordinate{Lat: 28.62, Lon: 77.21}
	reg := model.TechnicianRegistration{
		Name:        "Karol Bagh Fixers",
		Email:       "kb@example.com",
		Phone:       "011-123",
		Address:     "Karol Bagh",
		Location:    &loc,
		Specialties: []string{"phones", "tablets"},
	}
	tech, err := uc.Register(rts.Ctx, reg)
	r.NoError(err)

	reg.Email = "KB@example.com"
	_, err = uc.Register(rts.Ctx, reg)
	r.Equal(http.StatusConflict, statusCode(t, err))

	far := model.Coordinate{Lat: 19.07, Lon: 72.87}
	reg.Email, reg.Location = "mumbai@example.com", &far
	other, err := uc.Register(rts.Ctx, reg)
	r.NoError(err)

	list, err := uc.ListApproved(rts.Ctx, "")
	r.NoError(err)
	r.Empty(list)

	_, err = uc.Review(rts.Ctx, tech.ID, model.TechnicianStatusApproved)
	r.NoError(err)
	_, err = uc.Review(rts.Ctx, other.ID, model.TechnicianStatusApproved)
	r.NoError(err)
	_, err = uc.Review(rts.Ctx, uuid.New(), model.TechnicianStatusApproved)
	r.Equal(http.StatusNotFound, statusCode(t, err))

	list, err = uc.ListApproved(rts.Ctx, "tablets")
	r.NoError(err)
	r.Len(list, 2)
	list, err = uc.ListApproved(rts.Ctx, "laptops")
	r.NoError(err)
	r.Empty(list)

	ds := techniciansuc.NewDirectorySource(rts.Pool, techsrp)
	cands, err := ds.Nearby(rts.Ctx, model.PlaceQuery{
		Origin:       model.Coordinate{Lat: 28.6139, Lon: 77.209},
		RadiusMeters: 10000,
	})
	r.NoError(err)
	r.Len(cands, 1)
	r.Equal(tech.ID.String(), cands[0].ID)
	r.Equal(&loc, cands[0].Coordinate)
	r.Equal([]string{"phones", "tablets"}, list0(t, uc).Specialties)
}

func list0(t *testing.T, uc *techniciansuc.UseCase) model.Technician {
	t.Helper()
	list, err := uc.ListApproved(context.Background(), "phones")
	require.NoError(t, err)
	require.NotEmpty(t, list)
	return list[0]
}

func (rts *ReposTestSuite) TestBookings(t *testing.T) {
	r := require.New(t)
	uc, err := bookingsuc.New(rts.Pool, bookingsrp.New())
	r.NoError(err)

	br := model.BookingRequest{
		CustomerName:   "Asha",
		CustomerPhone:  "98100",
		TechnicianID:   "ChIJxxxxx",
		TechnicianName: "ABC Mobile Repair",
		DeviceType:     "phone",
		Issue:          "screen",
		Notes:          "call first",
	}
	b1, err := uc.Create(rts.Ctx, br)
	r.NoError(err)

	br.TechnicianID = uuid.NewString()
	br.TechnicianSource = model.SourceDirectory
	_, err = uc.Create(rts.Ctx, br)
	r.Equal(http.StatusNotFound, statusCode(t, err))

	var techID uuid.UUID
	err = rts.Pool.Conn(rts.Ctx, func(ctx context.Context, c repo.Conn) error {
		rows, err := c.Query(
			ctx, "SELECT id FROM technicians ORDER BY created_at LIMIT 1",
		)
		if err != nil {
			return err
		}
		defer rows.Close()
		for rows.Next() {
			if err := rows.Scan(&techID); err != nil {
				return err
			}
		}
		return rows.Err()
	})
	r.NoError(err)
	r.NotEqual(uuid.Nil, techID, "technicians test must run first")
	br.TechnicianID = techID.String()
	b2, err := uc.Create(rts.Ctx, br)
	r.NoError(err)

	all, err := uc.List(rts.Ctx, "")
	r.NoError(err)
	r.Len(all, 2)
	r.Equal(b2.ID, all[0].ID)
	r.Equal(b1.ID, all[1].ID)
	r.Equal("call first", all[1].Notes)
	r.Equal(model.SourceGooglePlaces, all[1].TechnicianSource)

	mine, err := uc.List(rts.Ctx, techID.String())
	r.NoError(err)
	r.Len(mine, 1)
	r.Equal(techID.String(), mine[0].TechnicianID)

	got, err := uc.UpdateStatus(rts.Ctx, b1.ID, model.BookingStatusCancelled)
	r.NoError(err)
	r.Equal(model.BookingStatusCancelled, got.Status)
	_, err = uc.UpdateStatus(rts.Ctx, b1.ID, model.BookingStatusConfirmed)
	r.Equal(http.StatusConflict, statusCode(t, err))
	_, err = uc.UpdateStatus(rts.Ctx, uuid.New(), model.BookingStatusConfirmed)
	r.Equal(http.StatusNotFound, statusCode(t, err))

	var stored []any
	err = rts.Pool.Conn(rts.Ctx, func(ctx context.Context, c repo.Conn) error {
		return c.Tx(ctx, func(ctx context.Context, tx repo.Tx) error {
			rows, err := tx.Query(
				ctx, "SELECT status, device_type FROM bookings WHERE id = $1",
				b1.ID,
			)
			if err != nil {
				return err
			}
			defer rows.Close()
			for rows.Next() {
				if stored, err = rows.Values(); err != nil {
					return err
				}
			}
			return rows.Err()
		})
	})
	r.NoError(err)
	r.Equal([]any{"cancelled", b1.DeviceType}, stored)
}
