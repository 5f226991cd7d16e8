package garage

import (
	"context"
	"errors"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/keymaxprot/backend/internal/httpx"
)

func initTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&Vehicle{}, &VehicleOwnership{}, &ServiceRecord{}, &ServiceRecordItem{}))
	return db
}

func newTestService(t *testing.T) *Service {
	t.Helper()
	return &Service{Repo: &GormRepo{DB: initTestDB(t)}}
}

func vehicleRequest(vin, plate string) CreateVehicleRequest {
	return CreateVehicleRequest{
		Make:  "Toyota",
		Model: "Supra",
		Year:  1998,
		Color: "orange",
		VIN:   vin,
		Plate: plate,
	}
}

func TestCreateVehicleRegistersOwner(t *testing.T) {
	svc := newTestService(t)
	ownerID := uuid.New()

	v, err := svc.CreateVehicle(context.Background(), ownerID, vehicleRequest("VIN123", "ABC-123"))
	require.NoError(t, err)
	require.Len(t, v.Ownerships, 1)
	require.Equal(t, ownerID, v.Ownerships[0].UserID)
	require.Equal(t, RoleOwner, v.Ownerships[0].Role)
}

func TestCreateVehicleDuplicateVIN(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	_, err := svc.CreateVehicle(ctx, uuid.New(), vehicleRequest("VIN123", "ABC-123"))
	require.NoError(t, err)

	_, err = svc.CreateVehicle(ctx, uuid.New(), vehicleRequest("VIN123", "XYZ-999"))
	require.Error(t, err)

	_, err = svc.CreateVehicle(ctx, uuid.New(), vehicleRequest("VIN999", "ABC-123"))
	require.Error(t, err)
}

func TestAddOwnershipSecondOwnerRejected(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	v, err := svc.CreateVehicle(ctx, uuid.New(), vehicleRequest("VIN123", "ABC-123"))
	require.NoError(t, err)

	_, err = svc.AddOwnership(ctx, v.ID, OwnershipRequest{UserID: uuid.New(), Role: RoleOwner})
	require.True(t, errors.Is(err, httpx.ErrValidation))

	v, err = svc.AddOwnership(ctx, v.ID, OwnershipRequest{UserID: uuid.New(), Role: RoleDriver})
	require.NoError(t, err)
	require.Len(t, v.Ownerships, 2)
}

func TestAddOwnershipDuplicateUser(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()
	driverID := uuid.New()

	v, err := svc.CreateVehicle(ctx, uuid.New(), vehicleRequest("VIN123", "ABC-123"))
	require.NoError(t, err)

	_, err = svc.AddOwnership(ctx, v.ID, OwnershipRequest{UserID: driverID, Role: RoleDriver})
	require.NoError(t, err)

	_, err = svc.AddOwnership(ctx, v.ID, OwnershipRequest{UserID: driverID, Role: RoleDriver})
	require.True(t, errors.Is(err, httpx.ErrConflict))
}

func TestServiceRecords(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	v, err := svc.CreateVehicle(ctx, uuid.New(), vehicleRequest("VIN123", "ABC-123"))
	require.NoError(t, err)

	rec, err := svc.CreateRecord(ctx, v.ID, CreateRecordRequest{
		ServiceID:  uuid.New(),
		Cost:       450,
		Technician: "Marco",
		ProductsUsed: []ServiceRecordItem{
			{ProductID: uuid.New(), Quantity: 2},
		},
	})
	require.NoError(t, err)
	require.Equal(t, v.ID, rec.VehicleID)

	total, records, err := svc.ListRecords(ctx, v.ID, 0, 10)
	require.NoError(t, err)
	require.EqualValues(t, 1, total)
	require.Len(t, records, 1)

	_, err = svc.CreateRecord(ctx, uuid.New(), CreateRecordRequest{ServiceID: uuid.New()})
	require.True(t, errors.Is(err, httpx.ErrNotFound))

	_, err = svc.CreateRecord(ctx, v.ID, CreateRecordRequest{ServiceID: uuid.New(), Cost: -1})
	require.True(t, errors.Is(err, httpx.ErrValidation))
}
