package service

import (
	"errors"

	"assetflow/internal/database/mongodb/repository"
	cErr "assetflow/internal/pkg/error"

	"github.com/google/wire"
)

var ProviderSet = wire.NewSet(
	NewHealthService,
	NewAuthService,
	NewPersonService,
	NewAssetService,
	NewAssetRequestService,
	NewPaymentService,
	NewInventoryService,
	NewStripeGateway,
	wire.Bind(new(PersonStore), new(*repository.PersonRepository)),
	wire.Bind(new(AssetStore), new(*repository.AssetRepository)),
	wire.Bind(new(AssetRequestStore), new(*repository.AssetRequestRepository)),
	wire.Bind(new(PaymentStore), new(*repository.PaymentRepository)),
	wire.Bind(new(Transactor), new(*repository.Transactor)),
	wire.Bind(new(PaymentGateway), new(*StripeGateway)),
)

// storeError repository 錯誤轉成 cErr；已是 cErr 的原樣回傳
func storeError(err error, notFoundDesc string, op string) error {
	var appErr *cErr.Error
	switch {
	case errors.As(err, &appErr):
		return appErr
	case repository.IsNotFound(err):
		return cErr.NotFound(notFoundDesc)
	case errors.Is(err, repository.ErrInsufficientQuantity):
		return cErr.InvalidState("asset is out of stock")
	case errors.Is(err, repository.ErrStaleTransition):
		return cErr.InvalidState("request status has changed, reload and retry")
	}
	return cErr.DatabaseError("database " + op + " error")
}
