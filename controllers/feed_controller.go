package controllers

import (
	"context"
	"errors"
	"log"
	"net/http"
	"strconv"
	"time"

	"pintdiary/db"
	"pintdiary/services"

	"github.com/gin-gonic/gin"
)

// GetFriendsFeed returns one page of the caller's friends' pints, newest
// first.
func GetFriendsFeed(c *gin.Context) {
	uid := c.GetString("uid")
	if uid == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	pageSize := 10
	if limitStr := c.Query("limit"); limitStr != "" {
		if parsed, err := strconv.Atoi(limitStr); err == nil && parsed > 0 && parsed <= 50 {
			pageSize = parsed
		}
	}
	cursor := c.Query("cursor")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	user, err := db.GetUser(ctx, uid)
	if err != nil {
		if errors.Is(err, db.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		}
		return
	}

	page, err := services.FriendsPintsPage(ctx, user.FriendIDs, pageSize, cursor)
	if err != nil {
		log.Printf("Failed to fetch friends feed for %s: %v", uid, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch feed"})
		return
	}

	c.JSON(http.StatusOK, page)
}

// GetFullFriendsFeed returns every pint across all of the caller's
// friends, for the map view.
func GetFullFriendsFeed(c *gin.Context) {
	uid := c.GetString("uid")
	if uid == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	user, err := db.GetUser(ctx, uid)
	if err != nil {
		if errors.Is(err, db.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		}
		return
	}

	pints, err := services.AllFriendsPints(ctx, user.FriendIDs)
	if err != nil {
		log.Printf("Failed to fetch full friends feed for %s: %v", uid, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch feed"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"pints": pints})
}
