package service

import (
	"context"
	"time"

	"assetflow/internal/core"
	"assetflow/internal/database/mongodb/model"
	"assetflow/internal/database/mongodb/repository"
	"assetflow/internal/dto"
	cErr "assetflow/internal/pkg/error"
	"assetflow/internal/telemetry"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type AssetRequestService struct {
	trace      *telemetry.Trace
	metric     *telemetry.Metric
	persons    PersonStore
	assets     AssetStore
	requests   AssetRequestStore
	transactor Transactor
	now        func() time.Time
}

func NewAssetRequestService(
	trace *telemetry.Trace,
	metric *telemetry.Metric,
	persons PersonStore,
	assets AssetStore,
	requests AssetRequestStore,
	transactor Transactor,
) *AssetRequestService {
	return &AssetRequestService{
		trace:      trace,
		metric:     metric,
		persons:    persons,
		assets:     assets,
		requests:   requests,
		transactor: transactor,
		now:        time.Now,
	}
}

// Submit 員工提出申請，送出時不檢查庫存
func (s *AssetRequestService) Submit(ctx context.Context, caller core.Caller, req *dto.CreateAssetRequestDto) (*dto.AssetRequestResponseDto, error) {
	ctx, span, end := s.trace.WithSpan(ctx)
	defer end(nil)

	hrEmail := normalizeEmail(req.HREmail)
	assetID, err := primitive.ObjectIDFromHex(req.AssetID)
	if err != nil {
		return nil, cErr.BadRequestBody("invalid assetID")
	}

	employee, err := s.persons.GetByEmail(ctx, caller.Email)
	if err != nil {
		end(err)
		return nil, storeError(err, "employee not found", "SubmitRequest")
	}
	if employee.HREmail == "" || employee.HREmail != hrEmail {
		return nil, cErr.NotFound("employee is not affiliated with hr_email")
	}
	asset, err := s.assets.GetByID(ctx, assetID)
	if err != nil {
		end(err)
		return nil, storeError(err, "asset not found", "SubmitRequest")
	}
	if asset.HREmail != hrEmail {
		return nil, cErr.NotFound("asset not found")
	}

	created, err := s.requests.Create(ctx, &model.AssetRequest{
		AssetID:        asset.ID,
		AssetName:      asset.AssetName,
		AssetType:      asset.AssetType,
		AssetQuantity:  asset.AssetQuantity,
		EmployeeEmail:  employee.Email,
		EmployeeName:   employee.Name,
		HREmail:        hrEmail,
		RequestingDate: s.now().UTC(),
		RequestMessage: req.RequestMessage,
		RequestStatus:  core.RequestStatusPending,
	})
	if err != nil {
		if repository.IsDuplicateKey(err) {
			return nil, cErr.InvalidState("a pending or approved request for this asset already exists")
		}
		end(err)
		return nil, storeError(err, "", "SubmitRequest")
	}

	s.trace.ApplyTraceAttributes(span, core.TraceAssetRequestMeta{
		Op:        "submit",
		RequestID: created.ID.Hex(),
		AssetID:   asset.ID.Hex(),
		Employee:  employee.Email,
		To:        string(core.RequestStatusPending),
	})
	s.metric.ObserveTransition(core.RequestStatusPending)
	return modelToAssetRequestResponseDto(created), nil
}

// Decide 狀態轉移與庫存調整在同一個 transaction 內完成
func (s *AssetRequestService) Decide(
	ctx context.Context,
	caller core.Caller,
	id primitive.ObjectID,
	to core.RequestStatus,
	at *time.Time,
) (*dto.AssetRequestResponseDto, error) {
	ctx, span, end := s.trace.WithSpan(ctx)
	defer end(nil)

	current, err := s.requests.GetByID(ctx, id)
	if err != nil {
		end(err)
		return nil, storeError(err, "asset request not found", "DecideRequest")
	}
	if err := authorizeDecision(caller, current, to); err != nil {
		return nil, err
	}
	from := current.RequestStatus
	if !core.CanTransition(from, to) {
		return nil, cErr.InvalidState("cannot change request from " + string(from) + " to " + string(to))
	}
	delta, err := quantityDelta(from, to, current.AssetType)
	if err != nil {
		return nil, err
	}
	decidedAt := s.now().UTC()
	if at != nil && !at.IsZero() {
		decidedAt = at.UTC()
	}

	meta := core.TraceAssetRequestMeta{
		Op:        "decide",
		RequestID: id.Hex(),
		AssetID:   current.AssetID.Hex(),
		Employee:  current.EmployeeEmail,
		From:      string(from),
		To:        string(to),
		Delta:     delta,
	}
	s.trace.ApplyTraceAttributes(span, meta)

	var updated *model.AssetRequest
	err = s.transactor.WithTransaction(ctx, func(txCtx context.Context) error {
		var asset *model.Asset
		if delta != 0 {
			adjusted, err := s.assets.AdjustQuantity(txCtx, current.AssetID, delta)
			if err != nil {
				return err
			}
			asset = adjusted
		}
		transitioned, err := s.requests.Transition(txCtx, id, from, to, decidedAt)
		if err != nil {
			return err
		}
		if asset != nil {
			if _, err := s.requests.SyncAssetQuantity(txCtx, asset.ID, asset.AssetQuantity); err != nil {
				return err
			}
			transitioned.AssetQuantity = asset.AssetQuantity
		}
		updated = transitioned
		return nil
	})
	if err != nil {
		end(err)
		return nil, storeError(err, "asset not found", "DecideRequest")
	}
	s.metric.ObserveTransition(to)
	return modelToAssetRequestResponseDto(updated), nil
}

// List 員工固定看自己的申請，HR 固定看自己團隊的申請
func (s *AssetRequestService) List(ctx context.Context, caller core.Caller, query core.AssetRequestQuery) ([]*dto.AssetRequestResponseDto, error) {
	ctx, span, end := s.trace.WithSpan(ctx)
	defer end(nil)

	if caller.IsHR() {
		query.HREmail = caller.Email
		query.EmployeeEmail = normalizeEmail(query.EmployeeEmail)
	} else {
		query.HREmail = ""
		query.EmployeeEmail = caller.Email
	}

	requests, err := s.requests.List(ctx, query)
	s.trace.ApplyTraceAttributes(span, core.TraceListMeta{
		Op: "asset_requests.list",
		Filter: map[string]any{
			"hr_email":      query.HREmail,
			"employeeEmail": query.EmployeeEmail,
			"requestStatus": string(query.Status),
			"category":      string(query.Category),
		},
		ResultCount: len(requests),
	})
	if err != nil {
		end(err)
		return nil, storeError(err, "", "ListRequests")
	}
	return mapSlice(requests, modelToAssetRequestResponseDto), nil
}

// authorizeDecision 審核需為所屬 HR；歸還 / 取消可由申請人或所屬 HR 操作
func authorizeDecision(caller core.Caller, request *model.AssetRequest, to core.RequestStatus) error {
	owningHR := caller.IsHR() && request.HREmail == caller.Email
	switch to {
	case core.RequestStatusApproved, core.RequestStatusRejected:
		if !owningHR {
			return cErr.Forbidden("only the owning hr manager can approve or reject")
		}
	case core.RequestStatusReturned, core.RequestStatusCancelled:
		if !owningHR && request.EmployeeEmail != caller.Email {
			return cErr.Forbidden("cannot change another employee's request")
		}
	default:
		return cErr.BadRequestBody("invalid requestStatus")
	}
	return nil
}

// quantityDelta 庫存變化只由狀態轉移推導
func quantityDelta(from, to core.RequestStatus, assetType core.AssetType) (int, error) {
	switch {
	case from == core.RequestStatusPending && to == core.RequestStatusApproved:
		return -1, nil
	case from == core.RequestStatusApproved && to == core.RequestStatusReturned:
		if assetType != core.AssetTypeReturnable {
			return 0, cErr.InvalidState("non-returnable assets cannot be returned")
		}
		return 1, nil
	case from == core.RequestStatusApproved && to == core.RequestStatusCancelled:
		return 1, nil
	}
	return 0, nil
}
