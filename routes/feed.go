package routes

import (
	"pintdiary/controllers"

	"github.com/gin-gonic/gin"
)

func GetFriendsFeedRouteHandler(ctx *gin.Context) {
	controllers.GetFriendsFeed(ctx)
}

func GetFullFriendsFeedRouteHandler(ctx *gin.Context) {
	controllers.GetFullFriendsFeed(ctx)
}
