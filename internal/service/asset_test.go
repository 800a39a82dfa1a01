package service

import (
	"context"
	"testing"

	"assetflow/internal/core"
	"assetflow/internal/database/mongodb/model"
	"assetflow/internal/dto"
	cErr "assetflow/internal/pkg/error"
	"assetflow/internal/telemetry"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestAssetListCategories(t *testing.T) {
	f := newFixture()
	svc := f.assetService()

	inStock, err := svc.List(context.Background(), f.caller(f.hr), "", "", core.CategoryInStock)
	require.NoError(t, err)
	require.Len(t, inStock, 2)
	for _, a := range inStock {
		assert.Greater(t, a.AssetQuantity, 0)
	}

	outOfStock, err := svc.List(context.Background(), f.caller(f.hr), "", "", core.CategoryOutOfStock)
	require.NoError(t, err)
	require.Len(t, outOfStock, 1)
	for _, a := range outOfStock {
		assert.LessOrEqual(t, a.AssetQuantity, 0)
	}

	nonReturnable, err := svc.List(context.Background(), f.caller(f.employee), "", "mu", core.CategoryNonReturnable)
	require.NoError(t, err)
	require.Len(t, nonReturnable, 1)
	assert.Equal(t, "Mug", nonReturnable[0].AssetName)
}

func TestAssetListScope(t *testing.T) {
	f := newFixture()
	svc := f.assetService()

	_, err := svc.List(context.Background(), f.caller(f.employee), f.otherHR.Email, "", core.CategoryNone)
	requireErrCode(t, err, cErr.FORBIDDEN)

	none, err := svc.List(context.Background(), f.caller(f.stranger), "", "", core.CategoryNone)
	require.NoError(t, err)
	assert.Empty(t, none)

	others, err := svc.List(context.Background(), f.caller(f.otherHR), "", "", core.CategoryNone)
	require.NoError(t, err)
	assert.Empty(t, others)
}

func TestAssetCreateForcesOwner(t *testing.T) {
	f := newFixture()
	created, err := f.assetService().Create(context.Background(), f.caller(f.hr), &dto.CreateAssetDto{
		AssetName:     "Chair",
		AssetType:     core.AssetTypeReturnable,
		AssetQuantity: 5,
	})
	require.NoError(t, err)
	assert.Equal(t, f.hr.Email, created.HREmail)
	assert.Equal(t, 5, created.AssetQuantity)
}

func TestAssetRestockRefreshesSnapshots(t *testing.T) {
	f := newFixture()
	request := f.seedRequest(f.empty, f.employee, core.RequestStatusPending)

	res, err := f.assetService().Restock(context.Background(), f.caller(f.hr), f.empty.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, res.AssetQuantity)

	stored, _ := f.requests.GetByID(context.Background(), request.ID)
	assert.Equal(t, 1, stored.AssetQuantity)

	_, err = f.assetService().Restock(context.Background(), f.caller(f.otherHR), f.empty.ID)
	requireErrCode(t, err, cErr.FORBIDDEN)
	assert.Equal(t, 1, f.assets.quantity(f.empty.ID))
}

func TestAssetUpdate(t *testing.T) {
	f := newFixture()
	request := f.seedRequest(f.laptop, f.employee, core.RequestStatusPending)
	qty := 7
	name := "Laptop Pro"

	res, err := f.assetService().Update(context.Background(), f.caller(f.hr), f.laptop.ID, dto.AssetUpdateDataDto{AssetName: &name, AssetQuantity: &qty})
	require.NoError(t, err)
	assert.Equal(t, "Laptop Pro", res.AssetName)
	assert.Equal(t, 7, res.AssetQuantity)
	stored, _ := f.requests.GetByID(context.Background(), request.ID)
	assert.Equal(t, 7, stored.AssetQuantity)

	negative := -1
	_, err = f.assetService().Update(context.Background(), f.caller(f.hr), f.laptop.ID, dto.AssetUpdateDataDto{AssetQuantity: &negative})
	requireErrCode(t, err, cErr.BAD_REQUEST_BODY)
	_, err = f.assetService().Update(context.Background(), f.caller(f.hr), f.laptop.ID, dto.AssetUpdateDataDto{})
	requireErrCode(t, err, cErr.BAD_REQUEST_BODY)
}

func TestAssetDelete(t *testing.T) {
	f := newFixture()
	svc := f.assetService()

	_, err := svc.Delete(context.Background(), f.caller(f.otherHR), f.mug.ID)
	requireErrCode(t, err, cErr.FORBIDDEN)

	res, err := svc.Delete(context.Background(), f.caller(f.hr), f.mug.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), res.DeletedCount)

	_, err = svc.Delete(context.Background(), f.caller(f.hr), primitive.NewObjectID())
	requireErrCode(t, err, cErr.NOT_FOUND)
}

func TestAssetDeleteBlockedByLiveRequests(t *testing.T) {
	f := newFixture()
	svc := f.assetService()
	approved := f.seedRequest(f.laptop, f.employee, core.RequestStatusApproved)
	pending := f.seedRequest(f.mug, f.employee, core.RequestStatusPending)
	f.seedRequest(f.empty, f.employee, core.RequestStatusReturned)

	for _, asset := range []model.Asset{f.laptop, f.mug} {
		_, err := svc.Delete(context.Background(), f.caller(f.hr), asset.ID)
		requireErrCode(t, err, cErr.INVALID_STATE)
		_, err = f.assets.GetByID(context.Background(), asset.ID)
		require.NoError(t, err, asset.AssetName)
	}

	// 被擋下的資產，其申請仍可正常結束並補回數量
	_, err := f.requestService().Decide(context.Background(), f.caller(f.employee), approved.ID, core.RequestStatusReturned, nil)
	require.NoError(t, err)
	assert.Equal(t, 4, f.assets.quantity(f.laptop.ID))
	_, err = f.requestService().Decide(context.Background(), f.caller(f.hr), pending.ID, core.RequestStatusRejected, nil)
	require.NoError(t, err)

	for _, asset := range []model.Asset{f.laptop, f.mug, f.empty} {
		res, err := svc.Delete(context.Background(), f.caller(f.hr), asset.ID)
		require.NoError(t, err, asset.AssetName)
		assert.Equal(t, int64(1), res.DeletedCount)
	}
}

func TestInventorySnapshot(t *testing.T) {
	f := newFixture()
	f.seedRequest(f.laptop, f.employee, core.RequestStatusPending)
	f.seedRequest(f.mug, f.employee, core.RequestStatusApproved)
	svc := NewInventoryService(&telemetry.Trace{}, &telemetry.Metric{}, f.assets, f.requests)

	outOfStock, pending, err := svc.Snapshot(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(1), outOfStock)
	assert.Equal(t, int64(1), pending)
}
