package controllers

import (
	"context"
	"errors"
	"log"
	"net/http"
	"time"

	"pintdiary/db"
	"pintdiary/models"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
)

// UpdateProfileRequest carries the editable profile display fields.
type UpdateProfileRequest struct {
	DisplayName *string `json:"displayName"`
	HomePub     *string `json:"homePub"`
	PhotoURL    *string `json:"photoURL"`
}

func badgeView(badges []models.Badge) []gin.H {
	views := make([]gin.H, 0, len(badges))
	for _, b := range badges {
		info := models.BadgeCatalog[b.ID]
		views = append(views, gin.H{
			"id":          b.ID,
			"earnedAt":    b.EarnedAt,
			"name":        info.Name,
			"description": info.Description,
			"icon":        info.Icon,
			"color":       info.Color,
		})
	}
	return views
}

// GetProfile retrieves and returns the caller's profile data
func GetProfile(ctx *gin.Context) {
	uid := ctx.GetString("uid")
	if uid == "" {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	dbCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	user, err := db.GetUser(dbCtx, uid)
	if err != nil {
		if errors.Is(err, db.ErrNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		} else {
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		}
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"profile": gin.H{
			"uid":         user.UID,
			"displayName": user.DisplayName,
			"email":       user.Email,
			"totalPints":  user.TotalPints,
			"avgRating":   user.AvgRating,
			"socialPints": user.SocialPints,
			"friendCount": len(user.FriendIDs),
			"homePub":     user.HomePub,
			"photoURL":    user.PhotoURL,
			"createdAt":   user.CreatedAt,
		},
		"badges": badgeView(user.Badges),
	})
}

// UpdateProfile updates the caller's display fields
func UpdateProfile(ctx *gin.Context) {
	uid := ctx.GetString("uid")
	if uid == "" {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var req UpdateProfileRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "details": err.Error()})
		return
	}

	fields := bson.M{}
	if req.DisplayName != nil {
		if *req.DisplayName == "" {
			ctx.JSON(http.StatusBadRequest, gin.H{"error": "Display name cannot be empty"})
			return
		}
		fields["displayName"] = *req.DisplayName
	}
	if req.HomePub != nil {
		fields["homePub"] = *req.HomePub
	}
	if req.PhotoURL != nil {
		fields["photoURL"] = *req.PhotoURL
	}
	if len(fields) == 0 {
		ctx.JSON(http.StatusOK, gin.H{"message": "Nothing to update"})
		return
	}

	dbCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := db.UpdateUserFields(dbCtx, uid, fields); err != nil {
		if errors.Is(err, db.ErrNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		} else {
			log.Printf("Failed to update profile for %s: %v", uid, err)
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update profile"})
		}
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"message": "Profile updated"})
}

// GetPassport returns another user's public passport: display fields,
// badges and their most recent pints. This backs the QR-code friend flow.
func GetPassport(ctx *gin.Context) {
	targetUID := ctx.Param("uid")
	if targetUID == "" {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Missing user ID"})
		return
	}

	dbCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	user, err := db.GetUser(dbCtx, targetUID)
	if err != nil {
		if errors.Is(err, db.ErrNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		} else {
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		}
		return
	}

	recent, _, err := db.PintsByOwner(dbCtx, targetUID, 10, "")
	if err != nil {
		log.Printf("Failed to fetch recent pints for %s: %v", targetUID, err)
		recent = nil
	}

	ctx.JSON(http.StatusOK, gin.H{
		"passport": gin.H{
			"uid":         user.UID,
			"displayName": user.DisplayName,
			"totalPints":  user.TotalPints,
			"avgRating":   user.AvgRating,
			"homePub":     user.HomePub,
			"photoURL":    user.PhotoURL,
		},
		"badges":      badgeView(user.Badges),
		"recentPints": recent,
	})
}
