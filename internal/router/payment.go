package router

import (
	"assetflow/internal/core"
	"assetflow/internal/handler"
	"assetflow/internal/middleware"

	"github.com/gin-gonic/gin"
)

type PaymentRouter struct {
	paymentHandler *handler.PaymentHandler
	auth           *middleware.Auth
	rateLimit      *middleware.RateLimit
}

func NewPaymentRouter(
	paymentHandler *handler.PaymentHandler,
	auth *middleware.Auth,
	rateLimit *middleware.RateLimit,
) *PaymentRouter {
	return &PaymentRouter{paymentHandler: paymentHandler, auth: auth, rateLimit: rateLimit}
}

func (pr *PaymentRouter) RegisterRoutes(r *gin.Engine) {
	hr := pr.auth.Require(core.RoleHRManager)
	guard := pr.rateLimit.Guard("payment")

	r.POST("/create-payment-intent", guard, hr, pr.paymentHandler.CreateIntent)
	r.POST("/payments", guard, hr, pr.paymentHandler.Confirm)
	r.GET("/payments", hr, pr.paymentHandler.List)
}
