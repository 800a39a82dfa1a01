package router

import (
	"assetflow/internal/handler"
	"assetflow/internal/middleware"

	"github.com/gin-gonic/gin"
)

type AuthRouter struct {
	authHandler *handler.AuthHandler
	rateLimit   *middleware.RateLimit
}

func NewAuthRouter(authHandler *handler.AuthHandler, rateLimit *middleware.RateLimit) *AuthRouter {
	return &AuthRouter{authHandler: authHandler, rateLimit: rateLimit}
}

func (ar *AuthRouter) RegisterRoutes(r *gin.Engine) {
	r.POST("/jwt", ar.rateLimit.Guard("jwt"), ar.authHandler.IssueToken)
}
