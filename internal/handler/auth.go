package handler

import (
	"assetflow/internal/dto"
	"assetflow/internal/pkg/response"
	"assetflow/internal/service"
	"assetflow/internal/telemetry"
	"assetflow/utils/validate"

	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	trace       *telemetry.Trace
	authService *service.AuthService
}

func NewAuthHandler(trace *telemetry.Trace, authService *service.AuthService) *AuthHandler {
	return &AuthHandler{trace: trace, authService: authService}
}

// IssueToken 簽發 token
// @Summary 以 email 取得 JWT
// @Tags Auth
// @Accept json
// @Produce json
// @Param body body dto.IssueTokenDto true "email"
// @Success 200 {object} dto.TokenResponseDto
// @Failure 400 {object} response.Response
// @Failure 429 {object} response.Response
// @Router /jwt [post]
func (h *AuthHandler) IssueToken(c *gin.Context) {
	ctx, _, end := h.trace.WithSpan(c)
	defer end(nil)

	var req dto.IssueTokenDto
	if cause, respErr := validate.BindAndValidate(c, &req); cause != nil {
		end(cause)
		response.AbortWithError(c, respErr)
		return
	}
	token, err := h.authService.IssueToken(ctx, req.Email)
	if err != nil {
		response.AbortWithError(c, err)
		return
	}
	response.Success(c, token)
}
