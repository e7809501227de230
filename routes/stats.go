package routes

import (
	"pintdiary/controllers"

	"github.com/gin-gonic/gin"
)

func GetStatsRouteHandler(ctx *gin.Context) {
	controllers.GetStats(ctx)
}
