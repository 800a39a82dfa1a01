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

type PersonHandler struct {
	trace         *telemetry.Trace
	personService *service.PersonService
}

func NewPersonHandler(trace *telemetry.Trace, personService *service.PersonService) *PersonHandler {
	return &PersonHandler{trace: trace, personService: personService}
}

// Register 自助註冊
// @Summary 註冊人員（已存在則不變更）
// @Tags Person
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param body body dto.RegisterPersonDto true "人員資料"
// @Success 200 {object} dto.RegisterPersonResponseDto
// @Failure 400 {object} response.Response
// @Failure 403 {object} response.Response
// @Router /users [post]
func (h *PersonHandler) Register(c *gin.Context) {
	ctx, _, end := h.trace.WithSpan(c)
	defer end(nil)

	caller, err := callerOf(c)
	if err != nil {
		response.AbortWithError(c, err)
		return
	}
	var req dto.RegisterPersonDto
	if cause, respErr := validate.BindAndValidate(c, &req); cause != nil {
		end(cause)
		response.AbortWithError(c, respErr)
		return
	}
	result, err := h.personService.Register(ctx, caller, &req)
	if err != nil {
		response.AbortWithError(c, err)
		return
	}
	if result.InsertedID != nil {
		response.Create(c, result)
		return
	}
	response.Success(c, result)
}

// List 人員列表
// @Summary 團隊成員或尚未加入團隊的人員
// @Tags Person
// @Security BearerAuth
// @Produce json
// @Param hr_email query string false "HR email，帶入時查團隊"
// @Param searchText query string false "姓名關鍵字"
// @Success 200 {array} dto.PersonResponseDto
// @Failure 403 {object} response.Response
// @Router /users [get]
func (h *PersonHandler) List(c *gin.Context) {
	ctx, span, end := h.trace.WithSpan(c)
	defer end(nil)

	caller, err := callerOf(c)
	if err != nil {
		response.AbortWithError(c, err)
		return
	}
	hrEmail := c.Query("hr_email")
	searchText := c.Query("searchText")
	persons, err := h.personService.List(ctx, caller, hrEmail, searchText)
	h.trace.ApplyTraceAttributes(span, core.TraceListMeta{
		Op:          "persons",
		Filter:      map[string]any{"hr_email": hrEmail, "searchText": searchText},
		ResultCount: len(persons),
	})
	if err != nil {
		end(err)
		response.AbortWithError(c, err)
		return
	}
	response.Success(c, persons)
}

// ListTeam 指定 HR 的團隊
// @Summary 取得 HR 團隊成員
// @Tags Person
// @Security BearerAuth
// @Produce json
// @Param email path string true "HR email"
// @Success 200 {array} dto.PersonResponseDto
// @Failure 403 {object} response.Response
// @Router /users/{email} [get]
func (h *PersonHandler) ListTeam(c *gin.Context) {
	ctx, _, end := h.trace.WithSpan(c)
	defer end(nil)

	caller, err := callerOf(c)
	if err != nil {
		response.AbortWithError(c, err)
		return
	}
	persons, err := h.personService.ListTeam(ctx, caller, c.Param("email"))
	if err != nil {
		end(err)
		response.AbortWithError(c, err)
		return
	}
	response.Success(c, persons)
}

// GetRole 查詢角色
// @Summary 查詢人員角色
// @Tags Person
// @Security BearerAuth
// @Produce json
// @Param email path string true "email"
// @Success 200 {object} dto.RoleResponseDto
// @Router /users/role/{email} [get]
func (h *PersonHandler) GetRole(c *gin.Context) {
	ctx, _, end := h.trace.WithSpan(c)
	defer end(nil)

	role, err := h.personService.GetRole(ctx, c.Param("email"))
	if err != nil {
		end(err)
		response.AbortWithError(c, err)
		return
	}
	response.Success(c, role)
}

// Profile 個人資料與持有資產
// @Summary 人員資料與申請紀錄
// @Tags Person
// @Security BearerAuth
// @Produce json
// @Param email path string true "email"
// @Success 200 {object} dto.ProfileResponseDto
// @Failure 403 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /users/profile/{email} [get]
func (h *PersonHandler) Profile(c *gin.Context) {
	ctx, _, end := h.trace.WithSpan(c)
	defer end(nil)

	caller, err := callerOf(c)
	if err != nil {
		response.AbortWithError(c, err)
		return
	}
	profile, err := h.personService.Profile(ctx, caller, c.Param("email"))
	if err != nil {
		end(err)
		response.AbortWithError(c, err)
		return
	}
	response.Success(c, profile)
}

// Patch 單筆部分更新
// @Summary 更新人員資料，hr_email 空字串代表離開團隊
// @Tags Person
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param body body dto.PatchPersonDto true "更新欄位"
// @Success 200 {object} dto.PersonResponseDto
// @Failure 400 {object} response.Response
// @Failure 403 {object} response.Response
// @Router /users [patch]
func (h *PersonHandler) Patch(c *gin.Context) {
	ctx, _, end := h.trace.WithSpan(c)
	defer end(nil)

	caller, err := callerOf(c)
	if err != nil {
		response.AbortWithError(c, err)
		return
	}
	var req dto.PatchPersonDto
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
	person, err := h.personService.Patch(ctx, caller, id, &req)
	if err != nil {
		end(err)
		response.AbortWithError(c, err)
		return
	}
	response.Success(c, person)
}

// BulkPatch 批次更新
// @Summary HR 批次加入 / 移出團隊
// @Tags Person
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param body body dto.BulkPatchPersonDto true "ids 與更新欄位"
// @Success 200 {object} dto.BulkPatchResponseDto
// @Failure 400 {object} response.Response
// @Failure 403 {object} response.Response
// @Router /user [patch]
func (h *PersonHandler) BulkPatch(c *gin.Context) {
	ctx, _, end := h.trace.WithSpan(c)
	defer end(nil)

	caller, err := callerOf(c)
	if err != nil {
		response.AbortWithError(c, err)
		return
	}
	var req dto.BulkPatchPersonDto
	if cause, respErr := validate.BindAndValidate(c, &req); cause != nil {
		end(cause)
		response.AbortWithError(c, respErr)
		return
	}
	ids, cause, respErr := validate.ParseObjectIDs(req.IDs, "ids")
	if cause != nil {
		end(cause)
		response.AbortWithError(c, respErr)
		return
	}
	result, err := h.personService.BulkPatch(ctx, caller, ids, req.Data)
	if err != nil {
		end(err)
		response.AbortWithError(c, err)
		return
	}
	response.Success(c, result)
}
