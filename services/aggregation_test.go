package services

import (
	"context"
	"testing"
	"time"

	"pintdiary/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func pintAt(pub string, rating int, createdAt time.Time) models.Pint {
	return models.Pint{
		ID:        primitive.NewObjectID(),
		UserID:    "user-1",
		PubName:   pub,
		Rating:    rating,
		CreatedAt: createdAt,
	}
}

func TestRound1(t *testing.T) {
	assert.Equal(t, 4.0, Round1(4.0))
	assert.Equal(t, 4.3, Round1(4.25))
	assert.Equal(t, 3.7, Round1(11.0/3.0))
	assert.Equal(t, 4.0, Round1(3.999))
	assert.Equal(t, 0.0, Round1(0))
}

func TestNextAverageSequentialAdds(t *testing.T) {
	ratings := []int{5, 3, 4, 2, 5, 1, 4}

	total := 0
	avg := 0.0
	sum := 0
	for _, r := range ratings {
		total, avg = NextAverage(total, avg, r)
		sum += r
	}

	require.Equal(t, len(ratings), total)
	assert.Equal(t, Round1(float64(sum)/float64(len(ratings))), avg)
}

func TestNextAverageFirstPint(t *testing.T) {
	total, avg := NextAverage(0, 0, 4)
	assert.Equal(t, 1, total)
	assert.Equal(t, 4.0, avg)
}

func TestRecomputeAverageReplacesRating(t *testing.T) {
	p1 := pintAt("The Stag", 5, time.Now())
	p2 := pintAt("The Stag", 3, time.Now())
	p3 := pintAt("O'Donoghue's", 1, time.Now())

	avg := RecomputeAverage([]models.Pint{p1, p2, p3}, p3.ID, 4)
	assert.Equal(t, 4.0, avg)
}

func TestRecomputeAverageEmptyHistory(t *testing.T) {
	assert.Equal(t, 0.0, RecomputeAverage(nil, primitive.NewObjectID(), 5))
}

func TestApplyRatingEditedUnchangedIsNoOp(t *testing.T) {
	// An unchanged rating must return before any store access; the store
	// is not connected in tests, so a write attempt would panic.
	err := ApplyRatingEdited(context.Background(), "user-1", nil, primitive.NewObjectID(), 3, 3)
	require.NoError(t, err)
}

func TestComputeStatsEmpty(t *testing.T) {
	stats := ComputeStats(nil)

	assert.Equal(t, 0, stats.TotalPints)
	assert.Equal(t, 0, stats.UniquePubs)
	assert.Equal(t, 0.0, stats.AvgRating)
	assert.Nil(t, stats.BestPub)
	assert.Equal(t, 0.0, stats.BestPubRating)
	for r := 1; r <= 5; r++ {
		assert.Equal(t, 0, stats.RatingDistribution[r])
	}
	for _, day := range []string{"Sun", "Mon", "Tue", "Wed", "Thu", "Fri", "Sat"} {
		assert.Equal(t, 0, stats.DayOfWeekDistribution[day])
	}
}

func TestComputeStatsBestPubScenario(t *testing.T) {
	now := time.Now()
	pints := []models.Pint{
		pintAt("The Stag", 5, now),
		pintAt("The Stag", 3, now.Add(-time.Hour)),
		pintAt("O'Donoghue's", 4, now.Add(-2*time.Hour)),
	}

	stats := ComputeStats(pints)

	assert.Equal(t, 3, stats.TotalPints)
	assert.Equal(t, 2, stats.UniquePubs)
	assert.Equal(t, 4.0, stats.AvgRating)
	require.NotNil(t, stats.BestPub)
	// Only The Stag has two visits, even though O'Donoghue's single pint
	// rates higher on its own.
	assert.Equal(t, "The Stag", *stats.BestPub)
	assert.Equal(t, 4.0, stats.BestPubRating)
}

func TestComputeStatsNoPubQualifies(t *testing.T) {
	now := time.Now()
	pints := []models.Pint{
		pintAt("The Black Harp", 5, now),
		pintAt("Mulligan's", 4, now),
		pintAt("The Long Hall", 3, now),
	}

	stats := ComputeStats(pints)

	assert.Equal(t, 3, stats.UniquePubs)
	assert.Nil(t, stats.BestPub)
	assert.Equal(t, 0.0, stats.BestPubRating)
}

func TestComputeStatsDistributions(t *testing.T) {
	// 2026-08-30 is a Sunday.
	sunday := time.Date(2026, 8, 30, 20, 0, 0, 0, time.UTC)
	monday := sunday.AddDate(0, 0, 1)

	pints := []models.Pint{
		pintAt("The Stag", 5, sunday),
		pintAt("The Stag", 5, sunday),
		pintAt("The Stag", 2, monday),
	}

	stats := ComputeStats(pints)

	assert.Equal(t, 2, stats.RatingDistribution[5])
	assert.Equal(t, 1, stats.RatingDistribution[2])
	assert.Equal(t, 0, stats.RatingDistribution[3])
	assert.Equal(t, 2, stats.DayOfWeekDistribution["Sun"])
	assert.Equal(t, 1, stats.DayOfWeekDistribution["Mon"])
	assert.Equal(t, 0, stats.DayOfWeekDistribution["Fri"])
}

func TestComputeStatsBestPubTieKeepsFirst(t *testing.T) {
	now := time.Now()
	pints := []models.Pint{
		pintAt("First Pub", 4, now),
		pintAt("First Pub", 4, now),
		pintAt("Second Pub", 4, now),
		pintAt("Second Pub", 4, now),
	}

	stats := ComputeStats(pints)

	require.NotNil(t, stats.BestPub)
	assert.Equal(t, "First Pub", *stats.BestPub)
}
