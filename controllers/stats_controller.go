package controllers

import (
	"context"
	"log"
	"net/http"
	"time"

	"pintdiary/db"
	"pintdiary/services"

	"github.com/gin-gonic/gin"
)

// GetStats recomputes the caller's statistics from their full pint
// history. This path never trusts the denormalised counters, so any drift
// they picked up heals here.
func GetStats(c *gin.Context) {
	uid := c.GetString("uid")
	if uid == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	pints, err := db.AllPintsByOwner(ctx, uid)
	if err != nil {
		log.Printf("Failed to fetch pints for stats: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to compute stats"})
		return
	}

	c.JSON(http.StatusOK, services.ComputeStats(pints))
}
