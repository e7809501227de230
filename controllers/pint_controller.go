package controllers

import (
	"context"
	"errors"
	"log"
	"net/http"
	"strconv"
	"time"

	"pintdiary/db"
	"pintdiary/models"
	"pintdiary/services"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// CreatePintRequest is the payload for logging a pint.
type CreatePintRequest struct {
	PubName     string   `json:"pubName" binding:"required"`
	Address     string   `json:"address"`
	PlaceID     string   `json:"placeId"`
	Lat         float64  `json:"lat"`
	Lng         float64  `json:"lng"`
	Rating      int      `json:"rating" binding:"required"`
	Tags        []string `json:"tags"`
	Note        string   `json:"note"`
	PhotoURL    string   `json:"photoUrl"`
	WithFriends []string `json:"withFriends"`
}

// UpdatePintRequest carries the editable pint fields. Owner, creation time
// and tagged friends are fixed at creation.
type UpdatePintRequest struct {
	PubName  *string   `json:"pubName"`
	Address  *string   `json:"address"`
	PlaceID  *string   `json:"placeId"`
	Lat      *float64  `json:"lat"`
	Lng      *float64  `json:"lng"`
	Rating   *int      `json:"rating"`
	Tags     *[]string `json:"tags"`
	Note     *string   `json:"note"`
	PhotoURL *string   `json:"photoUrl"`
}

func validatePintFields(pubName string, rating int, tags []string, note string) string {
	if pubName == "" {
		return "Pub name is required"
	}
	if rating < 1 || rating > 5 {
		return "Rating must be between 1 and 5"
	}
	for _, tag := range tags {
		if !models.IsValidTag(tag) {
			return "Unknown tag: " + tag
		}
	}
	if len(note) > models.MaxNoteLength {
		return "Note is too long"
	}
	return ""
}

// CreatePint logs a pint for the caller. The pint write is the primary
// operation; counter updates and badge evaluation afterwards are
// best-effort and never fail the request.
func CreatePint(c *gin.Context) {
	uid := c.GetString("uid")
	if uid == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var req CreatePintRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "details": err.Error()})
		return
	}
	if msg := validatePintFields(req.PubName, req.Rating, req.Tags, req.Note); msg != "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": msg})
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

	// Tagged friends must come from the caller's friend set.
	var withFriends []string
	for _, fid := range req.WithFriends {
		if user.HasFriend(fid) {
			withFriends = append(withFriends, fid)
		}
	}

	pint := &models.Pint{
		UserID:      uid,
		PubName:     req.PubName,
		Address:     req.Address,
		PlaceID:     req.PlaceID,
		Lat:         req.Lat,
		Lng:         req.Lng,
		Rating:      req.Rating,
		Tags:        req.Tags,
		Note:        req.Note,
		PhotoURL:    req.PhotoURL,
		WithFriends: withFriends,
		CreatedAt:   time.Now(),
	}

	id, err := db.InsertPint(ctx, pint)
	if err != nil {
		log.Printf("Failed to insert pint for %s: %v", uid, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to log pint"})
		return
	}
	pint.ID = id

	// Counter maintenance off the snapshot read above. A failure here
	// leaves the aggregates stale until the next stats recompute.
	hasFriends := len(withFriends) > 0
	if err := services.ApplyPintAdded(ctx, user, req.Rating, hasFriends); err != nil {
		log.Printf("Failed to update counters for %s: %v", uid, err)
	}

	var newBadges []models.Badge
	if updated, err := db.GetUser(ctx, uid); err != nil {
		log.Printf("Failed to re-read user %s for badge check: %v", uid, err)
	} else {
		event := services.BadgeEvent{Trigger: services.TriggerPintAdded, TaggedFriends: len(withFriends)}
		newBadges, err = services.AwardBadges(ctx, updated, event)
		if err != nil {
			log.Printf("Failed to award badges for %s: %v", uid, err)
		}
	}

	c.JSON(http.StatusCreated, gin.H{"pint": pint, "newBadges": badgeIDs(newBadges)})
}

func badgeIDs(badges []models.Badge) []string {
	ids := make([]string, 0, len(badges))
	for _, b := range badges {
		ids = append(ids, b.ID)
	}
	return ids
}

// ListPints returns one page of the caller's diary, newest first.
func ListPints(c *gin.Context) {
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

	pints, next, err := db.PintsByOwner(ctx, uid, pageSize, cursor)
	if err != nil {
		log.Printf("Failed to list pints for %s: %v", uid, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch pints"})
		return
	}

	hasMore := len(pints) == pageSize
	resp := gin.H{"pints": pints, "hasMore": hasMore}
	if hasMore {
		resp["nextCursor"] = next
	}
	c.JSON(http.StatusOK, resp)
}

// UpdatePint edits a pint owned by the caller. A rating change triggers a
// full recompute of the owner's average over the current history.
func UpdatePint(c *gin.Context) {
	uid := c.GetString("uid")
	if uid == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	pintID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid pint ID"})
		return
	}

	var req UpdatePintRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "details": err.Error()})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	pint, err := db.GetPintOwned(ctx, pintID, uid)
	if err != nil {
		switch {
		case errors.Is(err, db.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Pint not found"})
		case errors.Is(err, db.ErrUnauthorized):
			c.JSON(http.StatusForbidden, gin.H{"error": "Not your pint"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		}
		return
	}

	fields := bson.M{}
	if req.PubName != nil {
		fields["pubName"] = *req.PubName
	}
	if req.Address != nil {
		fields["address"] = *req.Address
	}
	if req.PlaceID != nil {
		fields["placeId"] = *req.PlaceID
	}
	if req.Lat != nil {
		fields["lat"] = *req.Lat
	}
	if req.Lng != nil {
		fields["lng"] = *req.Lng
	}
	if req.Rating != nil {
		fields["rating"] = *req.Rating
	}
	if req.Tags != nil {
		fields["tags"] = *req.Tags
	}
	if req.Note != nil {
		fields["note"] = *req.Note
	}
	if req.PhotoURL != nil {
		fields["photoUrl"] = *req.PhotoURL
	}
	if len(fields) == 0 {
		c.JSON(http.StatusOK, gin.H{"message": "Nothing to update"})
		return
	}

	pubName := pint.PubName
	if req.PubName != nil {
		pubName = *req.PubName
	}
	rating := pint.Rating
	if req.Rating != nil {
		rating = *req.Rating
	}
	tags := pint.Tags
	if req.Tags != nil {
		tags = *req.Tags
	}
	note := pint.Note
	if req.Note != nil {
		note = *req.Note
	}
	if msg := validatePintFields(pubName, rating, tags, note); msg != "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": msg})
		return
	}

	if err := db.UpdatePintFields(ctx, pintID, fields); err != nil {
		log.Printf("Failed to update pint %s: %v", pintID.Hex(), err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update pint"})
		return
	}

	// Average maintenance is secondary; an unchanged rating skips it
	// entirely.
	if req.Rating != nil && *req.Rating != pint.Rating {
		pints, err := db.AllPintsByOwner(ctx, uid)
		if err != nil {
			log.Printf("Failed to fetch pints for average recompute: %v", err)
		} else if err := services.ApplyRatingEdited(ctx, uid, pints, pintID, pint.Rating, *req.Rating); err != nil {
			log.Printf("Failed to recompute average for %s: %v", uid, err)
		}
	}

	c.JSON(http.StatusOK, gin.H{"message": "Pint updated"})
}

// DeletePint removes a pint owned by the caller and decrements their pint
// count. The stored average is intentionally left as-is on delete; the
// stats endpoint recomputes it from the remaining history.
func DeletePint(c *gin.Context) {
	uid := c.GetString("uid")
	if uid == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	pintID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid pint ID"})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if _, err := db.GetPintOwned(ctx, pintID, uid); err != nil {
		switch {
		case errors.Is(err, db.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Pint not found"})
		case errors.Is(err, db.ErrUnauthorized):
			c.JSON(http.StatusForbidden, gin.H{"error": "Not your pint"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		}
		return
	}

	if err := db.DeletePint(ctx, pintID); err != nil {
		log.Printf("Failed to delete pint %s: %v", pintID.Hex(), err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete pint"})
		return
	}

	if err := services.ApplyPintDeleted(ctx, uid); err != nil {
		log.Printf("Failed to decrement pint count for %s: %v", uid, err)
	}

	c.JSON(http.StatusOK, gin.H{"message": "Pint deleted"})
}

// UploadPintPhoto stores a pint photo and returns its public URL.
func UploadPintPhoto(c *gin.Context) {
	uid := c.GetString("uid")
	if uid == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	fileHeader, err := c.FormFile("photo")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing photo file"})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	url, err := services.UploadPintPhoto(ctx, uid, fileHeader)
	if err != nil {
		log.Printf("Failed to upload photo for %s: %v", uid, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to upload photo"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"photoUrl": url})
}
