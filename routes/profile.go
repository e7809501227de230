package routes

import (
	"pintdiary/controllers"

	"github.com/gin-gonic/gin"
)

func GetProfileRouteHandler(ctx *gin.Context) {
	controllers.GetProfile(ctx)
}

func UpdateProfileRouteHandler(ctx *gin.Context) {
	controllers.UpdateProfile(ctx)
}

func GetPassportRouteHandler(ctx *gin.Context) {
	controllers.GetPassport(ctx)
}
