package routes

import (
	"pintdiary/controllers"

	"github.com/gin-gonic/gin"
)

func SearchNearbyPlacesRouteHandler(ctx *gin.Context) {
	controllers.SearchNearbyPlaces(ctx)
}

func SearchPlacesByTextRouteHandler(ctx *gin.Context) {
	controllers.SearchPlacesByText(ctx)
}
