package service

import (
	"context"
	"errors"
	"math"
	"strings"

	"assetflow/config"
	"assetflow/internal/core"
	"assetflow/internal/database/mongodb/model"
	"assetflow/internal/database/mongodb/repository"
	"assetflow/internal/dto"
	cErr "assetflow/internal/pkg/error"
	"assetflow/internal/telemetry"
)

var errPaymentRecorded = errors.New("payment already recorded")

type PaymentService struct {
	trace      *telemetry.Trace
	gateway    PaymentGateway
	payments   PaymentStore
	persons    PersonStore
	transactor Transactor
	currency   string
}

func NewPaymentService(
	trace *telemetry.Trace,
	conf *config.Configuration,
	gateway PaymentGateway,
	payments PaymentStore,
	persons PersonStore,
	transactor Transactor,
) *PaymentService {
	return &PaymentService{
		trace:      trace,
		gateway:    gateway,
		payments:   payments,
		persons:    persons,
		transactor: transactor,
		currency:   conf.Payment.Currency,
	}
}

// CreateIntent packageId 優先；否則 price 換算成最小貨幣單位
func (s *PaymentService) CreateIntent(ctx context.Context, caller core.Caller, req *dto.CreatePaymentIntentDto) (*dto.PaymentIntentResponseDto, error) {
	ctx, span, end := s.trace.WithSpan(ctx)
	defer end(nil)

	amount, err := intentAmount(req)
	if err != nil {
		return nil, err
	}
	metadata := map[string]string{"email": caller.Email}
	if req.PackageID != "" {
		metadata["packageId"] = req.PackageID
	}

	intent, err := s.gateway.CreateIntent(ctx, amount, s.currency, metadata)
	s.trace.ApplyTraceAttributes(span, core.TracePaymentMeta{
		Op:        "create_intent",
		Email:     caller.Email,
		PackageID: req.PackageID,
		Amount:    amount,
		Currency:  s.currency,
	})
	if err != nil {
		end(err)
		return nil, err
	}
	return &dto.PaymentIntentResponseDto{ClientSecret: intent.ClientSecret, Amount: amount, Currency: s.currency}, nil
}

// Confirm 確認付款成功後記錄並設定方案；同一 transactionId 只記一次
func (s *PaymentService) Confirm(ctx context.Context, caller core.Caller, req *dto.ConfirmPaymentDto) (*dto.PaymentResponseDto, error) {
	ctx, span, end := s.trace.WithSpan(ctx)
	defer end(nil)

	email := caller.Email
	if req.Email != "" && normalizeEmail(req.Email) != caller.Email {
		return nil, cErr.Forbidden("email must match the signed-in user")
	}
	pkg, ok := core.FindSubscriptionPackage(req.PackageID)
	if !ok {
		return nil, cErr.BadRequestBody("unknown packageId")
	}

	if existing, err := s.payments.GetByTransactionID(ctx, req.TransactionID); err == nil {
		return s.existingPayment(existing, caller)
	} else if !repository.IsNotFound(err) {
		end(err)
		return nil, storeError(err, "", "ConfirmPayment")
	}

	intent, err := s.gateway.RetrieveIntent(ctx, req.TransactionID)
	if err != nil {
		end(err)
		return nil, err
	}
	meta := core.TracePaymentMeta{
		Op:            "confirm",
		Email:         email,
		PackageID:     pkg.ID,
		Amount:        intent.Amount,
		Currency:      intent.Currency,
		TransactionID: intent.ID,
		Status:        intent.Status,
	}
	s.trace.ApplyTraceAttributes(span, meta)
	if err := s.checkIntent(intent, email, pkg); err != nil {
		return nil, err
	}

	var recorded *model.Payment
	err = s.transactor.WithTransaction(ctx, func(txCtx context.Context) error {
		payment, err := s.payments.Create(txCtx, &model.Payment{
			Email:         email,
			Amount:        intent.Amount,
			Currency:      intent.Currency,
			PackageID:     pkg.ID,
			TransactionID: req.TransactionID,
		})
		if err != nil {
			if repository.IsDuplicateKey(err) {
				return errPaymentRecorded
			}
			return err
		}
		packageID := pkg.ID
		matched, err := s.persons.UpdateByEmail(txCtx, email, model.PersonPatch{Package: &packageID})
		if err != nil {
			return err
		}
		if matched == 0 {
			return cErr.NotFound("user not found")
		}
		recorded = payment
		return nil
	})
	if errors.Is(err, errPaymentRecorded) {
		existing, getErr := s.payments.GetByTransactionID(ctx, req.TransactionID)
		if getErr != nil {
			end(getErr)
			return nil, storeError(getErr, "payment not found", "ConfirmPayment")
		}
		return s.existingPayment(existing, caller)
	}
	if err != nil {
		end(err)
		return nil, storeError(err, "user not found", "ConfirmPayment")
	}
	return modelToPaymentResponseDto(recorded), nil
}

func (s *PaymentService) List(ctx context.Context, caller core.Caller) ([]*dto.PaymentResponseDto, error) {
	ctx, _, end := s.trace.WithSpan(ctx)
	defer end(nil)

	payments, err := s.payments.ListByEmail(ctx, caller.Email)
	if err != nil {
		end(err)
		return nil, storeError(err, "", "ListPayments")
	}
	return mapSlice(payments, modelToPaymentResponseDto), nil
}

func (s *PaymentService) existingPayment(payment *model.Payment, caller core.Caller) (*dto.PaymentResponseDto, error) {
	if payment.Email != caller.Email {
		return nil, cErr.Forbidden("transaction belongs to another user")
	}
	return modelToPaymentResponseDto(payment), nil
}

// checkIntent intent 必須由本人建立、已付款，且幣別、方案、金額與本次確認一致
func (s *PaymentService) checkIntent(intent *PaymentIntent, email string, pkg core.SubscriptionPackage) error {
	if normalizeEmail(intent.Metadata["email"]) != email {
		return cErr.Forbidden("payment intent belongs to another user")
	}
	if intent.Status != PaymentIntentSucceeded {
		return cErr.InvalidState("payment has not succeeded")
	}
	if !strings.EqualFold(intent.Currency, s.currency) {
		return cErr.InvalidState("payment currency does not match")
	}
	if packageID, ok := intent.Metadata["packageId"]; ok && packageID != pkg.ID {
		return cErr.InvalidState("payment was made for another package")
	}
	if intent.Amount < pkg.Price {
		return cErr.InvalidState("paid amount does not cover the package price")
	}
	return nil
}

func intentAmount(req *dto.CreatePaymentIntentDto) (int64, error) {
	if req.PackageID != "" {
		pkg, ok := core.FindSubscriptionPackage(req.PackageID)
		if !ok {
			return 0, cErr.BadRequestBody("unknown packageId")
		}
		return pkg.Price, nil
	}
	if req.Price == nil {
		return 0, cErr.BadRequestBody("price or packageId is required")
	}
	amount := int64(math.Round(*req.Price * 100))
	if amount <= 0 {
		return 0, cErr.BadRequestBody("price must be greater than zero")
	}
	return amount, nil
}
