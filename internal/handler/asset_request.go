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

type AssetRequestHandler struct {
	trace               *telemetry.Trace
	assetRequestService *service.AssetRequestService
}

func NewAssetRequestHandler(trace *telemetry.Trace, assetRequestService *service.AssetRequestService) *AssetRequestHandler {
	return &AssetRequestHandler{trace: trace, assetRequestService: assetRequestService}
}

// List 申請紀錄
// @Summary 列出資產申請；員工只看自己的，HR 只看自己團隊的
// @Tags AssetRequest
// @Security BearerAuth
// @Produce json
// @Param hr_email query string false "HR email"
// @Param employeeEmail query string false "員工 email"
// @Param requestStatus query string false "pending | approved | rejected | returned | cancelled"
// @Param searchText query string false "資產名稱關鍵字"
// @Param category query string false "Returnable | Non-returnable | In Stock | Out of Stock"
// @Success 200 {array} dto.AssetRequestResponseDto
// @Failure 400 {object} response.Response
// @Router /asset_distribution [get]
func (h *AssetRequestHandler) List(c *gin.Context) {
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
	status, err := validate.ParseRequestStatus(c.Query("requestStatus"))
	if err != nil {
		end(err)
		response.AbortWithError(c, err)
		return
	}
	query := core.AssetRequestQuery{
		HREmail:       c.Query("hr_email"),
		EmployeeEmail: c.Query("employeeEmail"),
		Status:        status,
		SearchText:    c.Query("searchText"),
		Category:      category,
	}
	requests, err := h.assetRequestService.List(ctx, caller, query)
	h.trace.ApplyTraceAttributes(span, core.TraceListMeta{
		Op: "asset_requests",
		Filter: map[string]any{
			"hr_email":      query.HREmail,
			"employeeEmail": query.EmployeeEmail,
			"requestStatus": string(query.Status),
			"searchText":    query.SearchText,
			"category":      string(query.Category),
		},
		ResultCount: len(requests),
	})
	if err != nil {
		end(err)
		response.AbortWithError(c, err)
		return
	}
	response.Success(c, requests)
}

// Submit 送出申請
// @Summary 員工向所屬 HR 申請資產
// @Tags AssetRequest
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param body body dto.CreateAssetRequestDto true "申請內容"
// @Success 201 {object} dto.AssetRequestResponseDto
// @Failure 400 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /asset_distribution [post]
func (h *AssetRequestHandler) Submit(c *gin.Context) {
	ctx, _, end := h.trace.WithSpan(c)
	defer end(nil)

	caller, err := callerOf(c)
	if err != nil {
		response.AbortWithError(c, err)
		return
	}
	var req dto.CreateAssetRequestDto
	if cause, respErr := validate.BindAndValidate(c, &req); cause != nil {
		end(cause)
		response.AbortWithError(c, respErr)
		return
	}
	created, err := h.assetRequestService.Submit(ctx, caller, &req)
	if err != nil {
		end(err)
		response.AbortWithError(c, err)
		return
	}
	response.Create(c, created)
}

// Decide 狀態轉移
// @Summary 核准 / 拒絕 / 歸還 / 取消申請，庫存隨狀態調整
// @Tags AssetRequest
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param body body dto.DecideAssetRequestDto true "_id 與目標狀態"
// @Success 200 {object} dto.AssetRequestResponseDto
// @Failure 400 {object} response.Response
// @Failure 403 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /asset_distribution [patch]
func (h *AssetRequestHandler) Decide(c *gin.Context) {
	ctx, _, end := h.trace.WithSpan(c)
	defer end(nil)

	caller, err := callerOf(c)
	if err != nil {
		response.AbortWithError(c, err)
		return
	}
	var req dto.DecideAssetRequestDto
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
	updated, err := h.assetRequestService.Decide(ctx, caller, id, req.RequestStatus, req.Date)
	if err != nil {
		end(err)
		response.AbortWithError(c, err)
		return
	}
	response.Success(c, updated)
}
