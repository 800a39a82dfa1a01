package service

import (
	"context"
	"testing"

	"assetflow/internal/core"
	"assetflow/internal/dto"
	cErr "assetflow/internal/pkg/error"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func floatPtr(v float64) *float64 { return &v }

func TestPaymentCreateIntentAmount(t *testing.T) {
	f := newFixture()
	svc := f.paymentService()

	res, err := svc.CreateIntent(context.Background(), f.caller(f.hr), &dto.CreatePaymentIntentDto{Price: floatPtr(8.5)})
	require.NoError(t, err)
	assert.Equal(t, int64(850), res.Amount)
	assert.Equal(t, "usd", res.Currency)
	assert.NotEmpty(t, res.ClientSecret)

	res, err = svc.CreateIntent(context.Background(), f.caller(f.hr), &dto.CreatePaymentIntentDto{Price: floatPtr(1), PackageID: "premium"})
	require.NoError(t, err)
	assert.Equal(t, int64(1500), res.Amount)

	_, err = svc.CreateIntent(context.Background(), f.caller(f.hr), &dto.CreatePaymentIntentDto{})
	requireErrCode(t, err, cErr.BAD_REQUEST_BODY)
	_, err = svc.CreateIntent(context.Background(), f.caller(f.hr), &dto.CreatePaymentIntentDto{Price: floatPtr(0.001)})
	requireErrCode(t, err, cErr.BAD_REQUEST_BODY)
	_, err = svc.CreateIntent(context.Background(), f.caller(f.hr), &dto.CreatePaymentIntentDto{PackageID: "gold"})
	requireErrCode(t, err, cErr.BAD_REQUEST_BODY)

	assert.Equal(t, []int64{850, 1500}, f.gateway.created)
}

func TestPaymentConfirmRecordsOnceAndSetsPackage(t *testing.T) {
	f := newFixture()
	f.gateway = newFakeGateway(&PaymentIntent{ID: "pi_1", Status: PaymentIntentSucceeded, Amount: 800, Currency: "usd", Metadata: map[string]string{"email": "hr@acme.io", "packageId": "standard"}})
	svc := f.paymentService()
	req := &dto.ConfirmPaymentDto{TransactionID: "pi_1", PackageID: "standard"}

	first, err := svc.Confirm(context.Background(), f.caller(f.hr), req)
	require.NoError(t, err)
	assert.Equal(t, int64(800), first.Amount)
	assert.Equal(t, f.hr.Email, first.Email)
	assert.Equal(t, "standard", f.persons.byID[f.hr.ID].Package)

	second, err := svc.Confirm(context.Background(), f.caller(f.hr), req)
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)
	assert.Len(t, f.payments.byTx, 1)
	assert.Equal(t, 1, f.gateway.retrieve, "repeat confirmation is answered from the store")

	history, err := svc.List(context.Background(), f.caller(f.hr))
	require.NoError(t, err)
	assert.Len(t, history, 1)
}

func TestPaymentConfirmRejections(t *testing.T) {
	f := newFixture()
	f.gateway = newFakeGateway(
		&PaymentIntent{ID: "pi_pending", Status: "requires_payment_method", Amount: 500, Currency: "usd", Metadata: map[string]string{"email": "hr@acme.io"}},
		&PaymentIntent{ID: "pi_short", Status: PaymentIntentSucceeded, Amount: 100, Currency: "usd", Metadata: map[string]string{"email": "hr@acme.io"}},
	)
	svc := f.paymentService()

	_, err := svc.Confirm(context.Background(), f.caller(f.hr), &dto.ConfirmPaymentDto{TransactionID: "pi_pending", PackageID: "basic"})
	requireErrCode(t, err, cErr.INVALID_STATE)
	_, err = svc.Confirm(context.Background(), f.caller(f.hr), &dto.ConfirmPaymentDto{TransactionID: "pi_short", PackageID: "basic"})
	requireErrCode(t, err, cErr.INVALID_STATE)
	_, err = svc.Confirm(context.Background(), f.caller(f.hr), &dto.ConfirmPaymentDto{TransactionID: "pi_short", PackageID: "basic", Email: f.otherHR.Email})
	requireErrCode(t, err, cErr.FORBIDDEN)
	_, err = svc.Confirm(context.Background(), f.caller(f.hr), &dto.ConfirmPaymentDto{TransactionID: "pi_short", PackageID: "gold"})
	requireErrCode(t, err, cErr.BAD_REQUEST_BODY)

	assert.Empty(t, f.payments.byTx)
	assert.Empty(t, f.persons.byID[f.hr.ID].Package)
}

func TestPaymentConfirmRollsBackWhenPersonMissing(t *testing.T) {
	f := newFixture()
	f.gateway = newFakeGateway(&PaymentIntent{ID: "pi_ghost", Status: PaymentIntentSucceeded, Amount: 500, Currency: "usd", Metadata: map[string]string{"email": "ghost@acme.io"}})

	_, err := f.paymentService().Confirm(context.Background(), core.Caller{Email: "ghost@acme.io", Role: core.RoleHRManager}, &dto.ConfirmPaymentDto{TransactionID: "pi_ghost", PackageID: "basic"})
	requireErrCode(t, err, cErr.NOT_FOUND)
	assert.Empty(t, f.payments.byTx)
}

func TestPaymentConfirmRequiresMatchingIntent(t *testing.T) {
	paid := func(id string, currency string, metadata map[string]string) *PaymentIntent {
		return &PaymentIntent{ID: id, Status: PaymentIntentSucceeded, Amount: 1500, Currency: currency, Metadata: metadata}
	}
	cases := []struct {
		name   string
		intent *PaymentIntent
		code   int
	}{
		{"another payer", paid("pi_other", "usd", map[string]string{"email": "boss@other.io", "packageId": "premium"}), cErr.FORBIDDEN},
		{"no owner metadata", paid("pi_bare", "usd", nil), cErr.FORBIDDEN},
		{"different currency", paid("pi_eur", "eur", map[string]string{"email": "hr@acme.io", "packageId": "premium"}), cErr.INVALID_STATE},
		{"different package", paid("pi_basic", "usd", map[string]string{"email": "hr@acme.io", "packageId": "basic"}), cErr.INVALID_STATE},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			f := newFixture()
			f.gateway = newFakeGateway(tc.intent)

			_, err := f.paymentService().Confirm(context.Background(), f.caller(f.hr), &dto.ConfirmPaymentDto{TransactionID: tc.intent.ID, PackageID: "premium"})
			requireErrCode(t, err, tc.code)
			assert.Empty(t, f.payments.byTx)
			assert.Empty(t, f.persons.byID[f.hr.ID].Package)
		})
	}

	f := newFixture()
	f.gateway = newFakeGateway(paid("pi_mine", "USD", map[string]string{"email": "HR@acme.io"}))
	res, err := f.paymentService().Confirm(context.Background(), f.caller(f.hr), &dto.ConfirmPaymentDto{TransactionID: "pi_mine", PackageID: "premium"})
	require.NoError(t, err)
	assert.Equal(t, "premium", res.PackageID)
	assert.Equal(t, "premium", f.persons.byID[f.hr.ID].Package)
}
