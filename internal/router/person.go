package router

import (
	"assetflow/internal/core"
	"assetflow/internal/handler"
	"assetflow/internal/middleware"

	"github.com/gin-gonic/gin"
)

type PersonRouter struct {
	personHandler *handler.PersonHandler
	auth          *middleware.Auth
}

func NewPersonRouter(personHandler *handler.PersonHandler, auth *middleware.Auth) *PersonRouter {
	return &PersonRouter{personHandler: personHandler, auth: auth}
}

func (pr *PersonRouter) RegisterRoutes(r *gin.Engine) {
	users := r.Group("/users", pr.auth.Require())
	{
		users.POST("", pr.personHandler.Register)
		users.PATCH("", pr.personHandler.Patch)
		users.GET("/role/:email", pr.personHandler.GetRole)
		users.GET("/profile/:email", pr.personHandler.Profile)
		users.GET("/:email", pr.personHandler.ListTeam)
	}
	hr := pr.auth.Require(core.RoleHRManager)
	r.GET("/users", hr, pr.personHandler.List)
	r.PATCH("/user", hr, pr.personHandler.BulkPatch)
}
