package router

import (
	"assetflow/internal/core"
	"assetflow/internal/handler"
	"assetflow/internal/middleware"

	"github.com/gin-gonic/gin"
)

type AssetRouter struct {
	assetHandler        *handler.AssetHandler
	assetRequestHandler *handler.AssetRequestHandler
	auth                *middleware.Auth
}

func NewAssetRouter(
	assetHandler *handler.AssetHandler,
	assetRequestHandler *handler.AssetRequestHandler,
	auth *middleware.Auth,
) *AssetRouter {
	return &AssetRouter{
		assetHandler:        assetHandler,
		assetRequestHandler: assetRequestHandler,
		auth:                auth,
	}
}

func (ar *AssetRouter) RegisterRoutes(r *gin.Engine) {
	authed := ar.auth.Require()
	hr := ar.auth.Require(core.RoleHRManager)

	assets := r.Group("/assets")
	{
		assets.GET("", authed, ar.assetHandler.List)
		assets.POST("", hr, ar.assetHandler.Create)
		assets.DELETE("", hr, ar.assetHandler.Delete)
		assets.PATCH("", hr, ar.assetHandler.Restock)
	}
	r.PATCH("/assets_update", hr, ar.assetHandler.Update)

	// 申請紀錄；角色與擁有權在 service 判斷
	requests := r.Group("/asset_distribution", authed)
	{
		requests.GET("", ar.assetRequestHandler.List)
		requests.POST("", ar.assetRequestHandler.Submit)
		requests.PATCH("", ar.assetRequestHandler.Decide)
	}
}
