package routes

import (
	"pintdiary/controllers"

	"github.com/gin-gonic/gin"
)

func ConnectFriendRouteHandler(ctx *gin.Context) {
	controllers.ConnectFriendHandler(ctx)
}

func ListFriendsRouteHandler(ctx *gin.Context) {
	controllers.ListFriendsHandler(ctx)
}
