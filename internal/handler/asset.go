package handler

import (
	"assetflow/internal/core"
	"assetflow/internal/dto"
	"assetflow/internal/pkg/response"
	"assetflow/internal/service"
	"assetflow/internal/telemetry"
	"assetflow/utils/validate"

	"github.com/gin-gonic/gin"
)

type AssetHandler struct {
	trace        *telemetry.Trace
	assetService *service.AssetService
}

func NewAssetHandler(trace *telemetry.Trace, assetService *service.AssetService) *AssetHandler {
	return &AssetHandler{trace: trace, assetService: assetService}
}

// List 資產目錄
// @Summary 依 HR、關鍵字與分類列出資產
// @Tags Asset
// @Security BearerAuth
// @Produce json
// @Param hr_email query string false "HR email，預設為呼叫者所屬 HR"
// @Param searchText query string false "資產名稱關鍵字"
// @Param category query string false "Returnable | Non-returnable | In Stock | Out of Stock"
// @Success 200 {array} dto.AssetResponseDto
// @Failure 400 {object} response.Response
// @Failure 403 {object} response.Response
// @Router /assets [get]
func (h *AssetHandler) List(c *gin.Context) {
	ctx, span, end := h.trace.WithSpan(c)
	defer end(nil)

	caller, err := callerOf(c)
	if err != nil {
		response.AbortWithError(c, err)
		return
	}
	category, err := validate.ParseCategory(c.Query("category"))
	if err != nil {
		end(err)
		response.AbortWithError(c, err)
		return
	}
	hrEmail := c.Query("hr_email")
	searchText := c.Query("searchText")
	assets, err := h.assetService.List(ctx, caller, hrEmail, searchText, category)
	h.trace.ApplyTraceAttributes(span, core.TraceListMeta{
		Op:          "assets",
		Filter:      map[string]any{"hr_email": hrEmail, "searchText": searchText, "category": string(category)},
		ResultCount: len(assets),
	})
	if err != nil {
		end(err)
		response.AbortWithError(c, err)
		return
	}
	response.Success(c, assets)
}

// Create 新增資產
// @Summary 新增資產，擁有者為呼叫者
// @Tags Asset
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param body body dto.CreateAssetDto true "資產"
// @Success 201 {object} dto.AssetResponseDto
// @Failure 400 {object} response.Response
// @Failure 403 {object} response.Response
// @Router /assets [post]
func (h *AssetHandler) Create(c *gin.Context) {
	ctx, _, end := h.trace.WithSpan(c)
	defer end(nil)

	caller, err := callerOf(c)
	if err != nil {
		response.AbortWithError(c, err)
		return
	}
	var req dto.CreateAssetDto
	if cause, respErr := validate.BindAndValidate(c, &req); cause != nil {
		end(cause)
		response.AbortWithError(c, respErr)
		return
	}
	asset, err := h.assetService.Create(ctx, caller, &req)
	if err != nil {
		end(err)
		response.AbortWithError(c, err)
		return
	}
	response.Create(c, asset)
}

// Delete 刪除資產
// @Summary 刪除資產（productId 為舊欄位）
// @Tags Asset
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param body body dto.DeleteAssetDto true "assetID 或 productId"
// @Success 200 {object} dto.DeleteAssetResponseDto
// @Failure 400 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /assets [delete]
func (h *AssetHandler) Delete(c *gin.Context) {
	ctx, _, end := h.trace.WithSpan(c)
	defer end(nil)

	caller, err := callerOf(c)
	if err != nil {
		response.AbortWithError(c, err)
		return
	}
	var req dto.DeleteAssetDto
	if cause, respErr := validate.BindAndValidate(c, &req); cause != nil {
		end(cause)
		response.AbortWithError(c, respErr)
		return
	}
	id, cause, respErr := validate.ParseObjectIDHex(req.TargetID(), "assetID")
	if cause != nil {
		end(cause)
		response.AbortWithError(c, respErr)
		return
	}
	result, err := h.assetService.Delete(ctx, caller, id)
	if err != nil {
		end(err)
		response.AbortWithError(c, err)
		return
	}
	response.Success(c, result)
}

// Restock 數量 +1
// @Summary 補貨一件
// @Tags Asset
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param body body dto.RestockAssetDto true "assetID"
// @Success 200 {object} dto.AssetResponseDto
// @Failure 400 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /assets [patch]
func (h *AssetHandler) Restock(c *gin.Context) {
	ctx, _, end := h.trace.WithSpan(c)
	defer end(nil)

	caller, err := callerOf(c)
	if err != nil {
		response.AbortWithError(c, err)
		return
	}
	var req dto.RestockAssetDto
	if cause, respErr := validate.BindAndValidate(c, &req); cause != nil {
		end(cause)
		response.AbortWithError(c, respErr)
		return
	}
	id, cause, respErr := validate.ParseObjectIDHex(req.AssetID, "assetID")
	if cause != nil {
		end(cause)
		response.AbortWithError(c, respErr)
		return
	}
	asset, err := h.assetService.Restock(ctx, caller, id)
	if err != nil {
		end(err)
		response.AbortWithError(c, err)
		return
	}
	response.Success(c, asset)
}

// Update 合併更新
// @Summary 更新資產欄位
// @Tags Asset
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param body body dto.UpdateAssetDto true "_id 與 updatedData"
// @Success 200 {object} dto.AssetResponseDto
// @Failure 400 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /assets_update [patch]
func (h *AssetHandler) Update(c *gin.Context) {
	ctx, _, end := h.trace.WithSpan(c)
	defer end(nil)

	caller, err := callerOf(c)
	if err != nil {
		response.AbortWithError(c, err)
		return
	}
	var req dto.UpdateAssetDto
	if cause, respErr := validate.BindAndValidate(c, &req); cause != nil {
		end(cause)
		response.AbortWithError(c, respErr)
		return
	}
	id, cause, respErr := validate.ParseObjectIDHex(req.ID, "_id")
	if cause != nil {
		end(cause)
		response.AbortWithError(c, respErr)
		return
	}
	asset, err := h.assetService.Update(ctx, caller, id, req.UpdatedData)
	if err != nil {
		end(err)
		response.AbortWithError(c, err)
		return
	}
	response.Success(c, asset)
}
