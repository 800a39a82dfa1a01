package handler

import (
	"assetflow/internal/core"
	"assetflow/internal/middleware"
	cErr "assetflow/internal/pkg/error"

	"github.com/gin-gonic/gin"
	"github.com/google/wire"
)

// ProviderSet Provider对象集合
var ProviderSet = wire.NewSet(
	NewHealthHandler,
	NewAuthHandler,
	NewPersonHandler,
	NewAssetHandler,
	NewAssetRequestHandler,
	NewPaymentHandler,
)

// callerOf 取 Auth middleware 放入的呼叫者；路由未掛 Auth 時視為未登入
func callerOf(c *gin.Context) (core.Caller, error) {
	caller, ok := middleware.CallerFrom(c)
	if !ok || caller.Email == "" {
		return core.Caller{}, cErr.Unauthorized("unauthorized access")
	}
	return caller, nil
}
