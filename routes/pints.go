package routes

import (
	"pintdiary/controllers"

	"github.com/gin-gonic/gin"
)

func CreatePintRouteHandler(ctx *gin.Context) {
	controllers.CreatePint(ctx)
}

func ListPintsRouteHandler(ctx *gin.Context) {
	controllers.ListPints(ctx)
}

func UpdatePintRouteHandler(ctx *gin.Context) {
	controllers.UpdatePint(ctx)
}

func DeletePintRouteHandler(ctx *gin.Context) {
	controllers.DeletePint(ctx)
}

func UploadPintPhotoRouteHandler(ctx *gin.Context) {
	controllers.UploadPintPhoto(ctx)
}
