package service

import (
	"errors"
	"testing"
	"time"

	"assetflow/config"
	"assetflow/internal/core"
	"assetflow/internal/database/mongodb/model"
	cErr "assetflow/internal/pkg/error"
	"assetflow/internal/telemetry"

	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

var testNow = time.Date(2024, 6, 3, 9, 30, 0, 0, time.UTC)

type fixture struct {
	persons  *fakePersonStore
	assets   *fakeAssetStore
	requests *fakeAssetRequestStore
	payments *fakePaymentStore
	tx       *fakeTransactor
	gateway  *fakeGateway

	hr       model.Person
	otherHR  model.Person
	employee model.Person
	stranger model.Person
	laptop   model.Asset // Returnable, 3
	mug      model.Asset // Non-returnable, 2
	empty    model.Asset // Returnable, 0
}

func newFixture() *fixture {
	f := &fixture{
		hr:       model.Person{ID: primitive.NewObjectID(), Email: "hr@acme.io", Name: "Hana", Role: core.RoleHRManager},
		otherHR:  model.Person{ID: primitive.NewObjectID(), Email: "boss@other.io", Name: "Otto", Role: core.RoleHRManager},
		employee: model.Person{ID: primitive.NewObjectID(), Email: "emp@acme.io", Name: "Eli", Role: core.RoleEmployee, HREmail: "hr@acme.io"},
		stranger: model.Person{ID: primitive.NewObjectID(), Email: "solo@acme.io", Name: "Sam", Role: core.RoleEmployee},
	}
	f.laptop = model.Asset{ID: primitive.NewObjectID(), HREmail: f.hr.Email, AssetName: "Laptop", AssetType: core.AssetTypeReturnable, AssetQuantity: 3}
	f.mug = model.Asset{ID: primitive.NewObjectID(), HREmail: f.hr.Email, AssetName: "Mug", AssetType: core.AssetTypeNonReturnable, AssetQuantity: 2}
	f.empty = model.Asset{ID: primitive.NewObjectID(), HREmail: f.hr.Email, AssetName: "Monitor", AssetType: core.AssetTypeReturnable, AssetQuantity: 0}

	f.persons = newFakePersonStore(f.hr, f.otherHR, f.employee, f.stranger)
	f.assets = newFakeAssetStore(f.laptop, f.mug, f.empty)
	f.requests = newFakeAssetRequestStore()
	f.payments = newFakePaymentStore()
	f.tx = &fakeTransactor{stores: []snapshotter{f.persons, f.assets, f.requests, f.payments}}
	f.gateway = newFakeGateway()
	return f
}

func (f *fixture) caller(p model.Person) core.Caller {
	return core.Caller{Email: p.Email, Role: p.Role, HREmail: p.HREmail}
}

func (f *fixture) requestService() *AssetRequestService {
	s := NewAssetRequestService(&telemetry.Trace{}, &telemetry.Metric{}, f.persons, f.assets, f.requests, f.tx)
	s.now = func() time.Time { return testNow }
	return s
}

func (f *fixture) personService() *PersonService {
	return NewPersonService(&telemetry.Trace{}, f.persons, f.requests)
}

func (f *fixture) assetService() *AssetService {
	return NewAssetService(&telemetry.Trace{}, f.assets, f.requests, f.tx)
}

func (f *fixture) paymentService() *PaymentService {
	conf := &config.Configuration{Payment: config.Payment{Currency: "usd"}}
	return NewPaymentService(&telemetry.Trace{}, conf, f.gateway, f.payments, f.persons, f.tx)
}

// seedRequest 直接寫入一筆申請
func (f *fixture) seedRequest(asset model.Asset, employee model.Person, status core.RequestStatus) model.AssetRequest {
	request := model.AssetRequest{
		ID:             primitive.NewObjectID(),
		AssetID:        asset.ID,
		AssetName:      asset.AssetName,
		AssetType:      asset.AssetType,
		AssetQuantity:  asset.AssetQuantity,
		EmployeeEmail:  employee.Email,
		HREmail:        asset.HREmail,
		RequestingDate: testNow.Add(-time.Hour),
		RequestStatus:  status,
		Live:           status.Live(),
	}
	f.requests.mu.Lock()
	f.requests.byID[request.ID] = request
	f.requests.mu.Unlock()
	return request
}

func requireErrCode(t *testing.T, err error, code int) {
	t.Helper()
	require.Error(t, err)
	var appErr *cErr.Error
	require.True(t, errors.As(err, &appErr), "expected *cErr.Error, got %T", err)
	require.Equal(t, code, appErr.ErrorCode(), appErr.ErrorDesc())
}
