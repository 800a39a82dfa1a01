package service

import (
	"context"

	"assetflow/internal/core"
	"assetflow/internal/database/mongodb/model"
	"assetflow/internal/dto"
	cErr "assetflow/internal/pkg/error"
	"assetflow/internal/telemetry"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type AssetService struct {
	trace      *telemetry.Trace
	assets     AssetStore
	requests   AssetRequestStore
	transactor Transactor
}

func NewAssetService(trace *telemetry.Trace, assets AssetStore, requests AssetRequestStore, transactor Transactor) *AssetService {
	return &AssetService{trace: trace, assets: assets, requests: requests, transactor: transactor}
}

// List HR 看自己的資產；員工只能看所屬 HR 的資產
func (s *AssetService) List(ctx context.Context, caller core.Caller, hrEmail, searchText string, category core.AssetCategory) ([]*dto.AssetResponseDto, error) {
	ctx, span, end := s.trace.WithSpan(ctx)
	defer end(nil)

	owner := caller.HREmail
	if caller.IsHR() {
		owner = caller.Email
	}
	hrEmail = normalizeEmail(hrEmail)
	if hrEmail != "" && hrEmail != owner {
		return nil, cErr.Forbidden("cannot read another team's assets")
	}
	if owner == "" {
		return []*dto.AssetResponseDto{}, nil
	}

	assets, err := s.assets.List(ctx, core.AssetQuery{HREmail: owner, SearchText: searchText, Category: category})
	s.trace.ApplyTraceAttributes(span, core.TraceListMeta{
		Op:          "assets.list",
		Filter:      map[string]any{"hr_email": owner, "searchText": searchText, "category": string(category)},
		ResultCount: len(assets),
	})
	if err != nil {
		end(err)
		return nil, storeError(err, "", "ListAssets")
	}
	return mapSlice(assets, modelToAssetResponseDto), nil
}

// Create 擁有者一律為呼叫者
func (s *AssetService) Create(ctx context.Context, caller core.Caller, req *dto.CreateAssetDto) (*dto.AssetResponseDto, error) {
	ctx, _, end := s.trace.WithSpan(ctx)
	defer end(nil)

	created, err := s.assets.Create(ctx, &model.Asset{
		HREmail:       caller.Email,
		AssetName:     req.AssetName,
		AssetType:     req.AssetType,
		AssetQuantity: req.AssetQuantity,
		Description:   req.Description,
	})
	if err != nil {
		end(err)
		return nil, storeError(err, "", "CreateAsset")
	}
	return modelToAssetResponseDto(created), nil
}

// Delete 仍有 pending / approved 申請時不可刪，否則歸還與取消無處補回數量
func (s *AssetService) Delete(ctx context.Context, caller core.Caller, id primitive.ObjectID) (*dto.DeleteAssetResponseDto, error) {
	ctx, _, end := s.trace.WithSpan(ctx)
	defer end(nil)

	var deleted int64
	err := s.transactor.WithTransaction(ctx, func(txCtx context.Context) error {
		if _, err := s.ownedAsset(txCtx, caller, id); err != nil {
			return err
		}
		live, err := s.requests.CountLiveByAsset(txCtx, id)
		if err != nil {
			return err
		}
		if live > 0 {
			return cErr.InvalidState("asset still has pending or approved requests")
		}
		deleted, err = s.assets.DeleteByID(txCtx, id)
		return err
	})
	if err != nil {
		end(err)
		return nil, storeError(err, "asset not found", "DeleteAsset")
	}
	return &dto.DeleteAssetResponseDto{DeletedCount: deleted}, nil
}

// Restock 數量 +1 並同步申請紀錄上的快照
func (s *AssetService) Restock(ctx context.Context, caller core.Caller, id primitive.ObjectID) (*dto.AssetResponseDto, error) {
	ctx, _, end := s.trace.WithSpan(ctx)
	defer end(nil)

	var updated *model.Asset
	err := s.transactor.WithTransaction(ctx, func(txCtx context.Context) error {
		if _, err := s.ownedAsset(txCtx, caller, id); err != nil {
			return err
		}
		asset, err := s.assets.AdjustQuantity(txCtx, id, 1)
		if err != nil {
			return err
		}
		if _, err := s.requests.SyncAssetQuantity(txCtx, id, asset.AssetQuantity); err != nil {
			return err
		}
		updated = asset
		return nil
	})
	if err != nil {
		end(err)
		return nil, storeError(err, "asset not found", "RestockAsset")
	}
	return modelToAssetResponseDto(updated), nil
}

// Update 合併欄位；數量變動時同步快照
func (s *AssetService) Update(ctx context.Context, caller core.Caller, id primitive.ObjectID, data dto.AssetUpdateDataDto) (*dto.AssetResponseDto, error) {
	ctx, _, end := s.trace.WithSpan(ctx)
	defer end(nil)

	patch := model.AssetPatch{
		AssetName:     data.AssetName,
		AssetType:     data.AssetType,
		AssetQuantity: data.AssetQuantity,
		Description:   data.Description,
	}
	if patch.IsEmpty() {
		return nil, cErr.BadRequestBody("updatedData has no fields to update")
	}
	if patch.AssetQuantity != nil && *patch.AssetQuantity < 0 {
		return nil, cErr.BadRequestBody("assetQuantity must not be negative")
	}
	if patch.AssetType != nil && !patch.AssetType.Valid() {
		return nil, cErr.BadRequestBody("invalid assetType")
	}

	var updated *model.Asset
	err := s.transactor.WithTransaction(ctx, func(txCtx context.Context) error {
		if _, err := s.ownedAsset(txCtx, caller, id); err != nil {
			return err
		}
		asset, err := s.assets.Update(txCtx, id, patch)
		if err != nil {
			return err
		}
		if patch.AssetQuantity != nil {
			if _, err := s.requests.SyncAssetQuantity(txCtx, id, asset.AssetQuantity); err != nil {
				return err
			}
		}
		updated = asset
		return nil
	})
	if err != nil {
		end(err)
		return nil, storeError(err, "asset not found", "UpdateAsset")
	}
	return modelToAssetResponseDto(updated), nil
}

func (s *AssetService) ownedAsset(ctx context.Context, caller core.Caller, id primitive.ObjectID) (*model.Asset, error) {
	asset, err := s.assets.GetByID(ctx, id)
	if err != nil {
		return nil, storeError(err, "asset not found", "GetAsset")
	}
	if asset.HREmail != caller.Email {
		return nil, cErr.Forbidden("asset belongs to another hr manager")
	}
	return asset, nil
}
