package controllers

import (
	"context"
	"errors"
	"log"
	"net/http"
	"time"

	"pintdiary/db"
	"pintdiary/models"
	"pintdiary/services"

	"github.com/gin-gonic/gin"
)

// ConnectFriendHandler connects two users symmetrically. The caller's leg
// is the primary write; the counterpart's friend-set write and badge
// evaluation are best-effort, so a partial failure can leave an asymmetric
// friendship until the link is scanned again.
func ConnectFriendHandler(c *gin.Context) {
	uid := c.GetString("uid")
	if uid == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	friendUID := c.Param("uid")
	if friendUID == uid {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Cannot add yourself as a friend"})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	friend, err := db.GetUser(ctx, friendUID)
	if err != nil {
		if errors.Is(err, db.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Friend not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		}
		return
	}

	// Initiator's leg first; this one must succeed.
	if err := db.AddFriend(ctx, uid, friendUID); err != nil {
		if errors.Is(err, db.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		} else {
			log.Printf("Failed to add friend for %s: %v", uid, err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to connect"})
		}
		return
	}

	// Counterpart's leg is fire-and-forget.
	if err := db.AddFriend(ctx, friendUID, uid); err != nil {
		log.Printf("Failed to add reciprocal friend for %s: %v", friendUID, err)
	}

	var newBadges []models.Badge
	event := services.BadgeEvent{Trigger: services.TriggerFriendConnected}
	if updated, err := db.GetUser(ctx, uid); err != nil {
		log.Printf("Failed to re-read user %s for badge check: %v", uid, err)
	} else {
		newBadges, err = services.AwardBadges(ctx, updated, event)
		if err != nil {
			log.Printf("Failed to award badges for %s: %v", uid, err)
		}
	}

	// The counterpart's badges are evaluated off the request path; their
	// failures are invisible to the initiator.
	go func(counterpartUID string) {
		bgCtx, bgCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer bgCancel()

		counterpart, err := db.GetUser(bgCtx, counterpartUID)
		if err != nil {
			log.Printf("Failed to read counterpart %s for badge check: %v", counterpartUID, err)
			return
		}
		if _, err := services.AwardBadges(bgCtx, counterpart, event); err != nil {
			log.Printf("Failed to award counterpart badges for %s: %v", counterpartUID, err)
		}
	}(friendUID)

	c.JSON(http.StatusOK, gin.H{
		"message":   "Connected with " + friend.DisplayName,
		"newBadges": badgeIDs(newBadges),
	})
}

// ListFriendsHandler returns the caller's friends as trimmed profiles.
func ListFriendsHandler(c *gin.Context) {
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

	friends, err := db.GetUsersByIDs(ctx, user.FriendIDs)
	if err != nil {
		log.Printf("Failed to load friends for %s: %v", uid, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load friends"})
		return
	}

	type friendEntry struct {
		UID         string  `json:"uid"`
		DisplayName string  `json:"displayName"`
		TotalPints  int     `json:"totalPints"`
		AvgRating   float64 `json:"avgRating"`
		PhotoURL    string  `json:"photoUrl,omitempty"`
	}
	entries := make([]friendEntry, 0, len(friends))
	for _, f := range friends {
		entries = append(entries, friendEntry{
			UID:         f.UID,
			DisplayName: f.DisplayName,
			TotalPints:  f.TotalPints,
			AvgRating:   f.AvgRating,
			PhotoURL:    f.PhotoURL,
		})
	}

	c.JSON(http.StatusOK, gin.H{"friends": entries})
}
