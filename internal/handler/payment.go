package handler

import (
	"assetflow/internal/dto"
	"assetflow/internal/pkg/response"
	"assetflow/internal/service"
	"assetflow/internal/telemetry"
	"assetflow/utils/validate"

	"github.com/gin-gonic/gin"
)

type PaymentHandler struct {
	trace          *telemetry.Trace
	paymentService *service.PaymentService
}

func NewPaymentHandler(trace *telemetry.Trace, paymentService *service.PaymentService) *PaymentHandler {
	return &PaymentHandler{trace: trace, paymentService: paymentService}
}

// CreateIntent 建立付款意圖
// @Summary 建立 Stripe PaymentIntent
// @Tags Payment
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param body body dto.CreatePaymentIntentDto true "price 或 packageId"
// @Success 200 {object} dto.PaymentIntentResponseDto
// @Failure 400 {object} response.Response
// @Failure 502 {object} response.Response
// @Router /create-payment-intent [post]
func (h *PaymentHandler) CreateIntent(c *gin.Context) {
	ctx, _, end := h.trace.WithSpan(c)
	defer end(nil)

	caller, err := callerOf(c)
	if err != nil {
		response.AbortWithError(c, err)
		return
	}
	var req dto.CreatePaymentIntentDto
	if cause, respErr := validate.BindAndValidate(c, &req); cause != nil {
		end(cause)
		response.AbortWithError(c, respErr)
		return
	}
	intent, err := h.paymentService.CreateIntent(ctx, caller, &req)
	if err != nil {
		end(err)
		response.AbortWithError(c, err)
		return
	}
	response.Success(c, intent)
}

// Confirm 確認付款並套用方案
// @Summary 驗證 PaymentIntent 已成功，寫入付款紀錄並更新方案
// @Tags Payment
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param body body dto.ConfirmPaymentDto true "transactionId 與 packageId"
// @Success 201 {object} dto.PaymentResponseDto
// @Failure 400 {object} response.Response
// @Failure 403 {object} response.Response
// @Failure 502 {object} response.Response
// @Router /payments [post]
func (h *PaymentHandler) Confirm(c *gin.Context) {
	ctx, _, end := h.trace.WithSpan(c)
	defer end(nil)

	caller, err := callerOf(c)
	if err != nil {
		response.AbortWithError(c, err)
		return
	}
	var req dto.ConfirmPaymentDto
	if cause, respErr := validate.BindAndValidate(c, &req); cause != nil {
		end(cause)
		response.AbortWithError(c, respErr)
		return
	}
	payment, err := h.paymentService.Confirm(ctx, caller, &req)
	if err != nil {
		end(err)
		response.AbortWithError(c, err)
		return
	}
	response.Create(c, payment)
}

// List 付款紀錄
// @Summary 呼叫者的付款紀錄
// @Tags Payment
// @Security BearerAuth
// @Produce json
// @Success 200 {array} dto.PaymentResponseDto
// @Router /payments [get]
func (h *PaymentHandler) List(c *gin.Context) {
	ctx, _, end := h.trace.WithSpan(c)
	defer end(nil)

	caller, err := callerOf(c)
	if err != nil {
		response.AbortWithError(c, err)
		return
	}
	payments, err := h.paymentService.List(ctx, caller)
	if err != nil {
		end(err)
		response.AbortWithError(c, err)
		return
	}
	response.Success(c, payments)
}
