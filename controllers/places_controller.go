package controllers

import (
	"context"
	"log"
	"net/http"
	"strconv"
	"time"

	"pintdiary/services"

	"github.com/gin-gonic/gin"
)

// SearchNearbyPlaces finds pubs around the given coordinate.
func SearchNearbyPlaces(c *gin.Context) {
	lat, err := strconv.ParseFloat(c.Query("lat"), 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid lat"})
		return
	}
	lng, err := strconv.ParseFloat(c.Query("lng"), 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid lng"})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	results, err := services.SearchNearbyPubs(ctx, lat, lng)
	if err != nil {
		log.Printf("Nearby place search failed: %v", err)
		c.JSON(http.StatusBadGateway, gin.H{"error": "Place search failed"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"places": results})
}

// SearchPlacesByText finds pubs matching a free-text query.
func SearchPlacesByText(c *gin.Context) {
	query := c.Query("q")
	if query == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing query"})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	results, err := services.SearchPubsByText(ctx, query)
	if err != nil {
		log.Printf("Place text search failed: %v", err)
		c.JSON(http.StatusBadGateway, gin.H{"error": "Place search failed"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"places": results})
}
