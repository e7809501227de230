package services

import (
	"context"
	"math"

	"pintdiary/db"
	"pintdiary/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

var dayNames = [7]string{"Sun", "Mon", "Tue", "Wed", "Thu", "Fri", "Sat"}

// Round1 rounds half-up to one decimal place.
func Round1(x float64) float64 {
	return math.Floor(x*10+0.5) / 10
}

// NextAverage computes the running average after one more pint, from the
// pre-increment counters. Concurrent adds can both read the same stale
// counters and drift the result; the counters are a best-effort cache,
// and the stats path recomputes from the full history.
func NextAverage(totalPints int, avgRating float64, rating int) (newTotal int, newAvg float64) {
	newTotal = totalPints + 1
	newAvg = Round1((avgRating*float64(totalPints) + float64(rating)) / float64(newTotal))
	return newTotal, newAvg
}

// RecomputeAverage returns the exact mean over the pint set with pintID's
// rating replaced by newRating. A full recompute on edit avoids compounding
// rounding error from incremental deltas.
func RecomputeAverage(pints []models.Pint, pintID primitive.ObjectID, newRating int) float64 {
	if len(pints) == 0 {
		return 0
	}
	sum := 0
	for _, p := range pints {
		if p.ID == pintID {
			sum += newRating
		} else {
			sum += p.Rating
		}
	}
	return Round1(float64(sum) / float64(len(pints)))
}

// ApplyPintAdded updates the owner's denormalised counters after a pint is
// logged, using the counters already read on the given snapshot.
func ApplyPintAdded(ctx context.Context, user *models.User, rating int, hasFriends bool) error {
	_, newAvg := NextAverage(user.TotalPints, user.AvgRating, rating)
	socialDelta := 0
	if hasFriends {
		socialDelta = 1
	}
	return db.ApplyPintCounters(ctx, user.UID, newAvg, socialDelta)
}

// ApplyRatingEdited recomputes and stores the owner's average after a
// rating edit. No-op when the rating is unchanged.
func ApplyRatingEdited(ctx context.Context, uid string, pints []models.Pint, pintID primitive.ObjectID, oldRating, newRating int) error {
	if oldRating == newRating {
		return nil
	}
	newAvg := RecomputeAverage(pints, pintID, newRating)
	return db.UpdateUserFields(ctx, uid, bson.M{"avgRating": newAvg})
}

// ApplyPintDeleted decrements the owner's pint count. The average is left
// untouched on delete; it goes stale until the next full recompute.
func ApplyPintDeleted(ctx context.Context, uid string) error {
	return db.IncrementUserField(ctx, uid, "totalPints", -1)
}

// ComputeStats derives the full statistics view in a single pass over the
// owner's pint history.
func ComputeStats(pints []models.Pint) models.Stats {
	stats := models.Stats{
		RatingDistribution:    map[int]int{1: 0, 2: 0, 3: 0, 4: 0, 5: 0},
		DayOfWeekDistribution: map[string]int{"Sun": 0, "Mon": 0, "Tue": 0, "Wed": 0, "Thu": 0, "Fri": 0, "Sat": 0},
	}
	if len(pints) == 0 {
		return stats
	}

	type pubGroup struct {
		sum   int
		count int
	}
	pubs := make(map[string]*pubGroup)
	pubOrder := make([]string, 0)
	totalRating := 0

	for _, p := range pints {
		totalRating += p.Rating
		if p.Rating >= 1 && p.Rating <= 5 {
			stats.RatingDistribution[p.Rating]++
		}
		stats.DayOfWeekDistribution[dayNames[p.CreatedAt.Weekday()]]++

		g, ok := pubs[p.PubName]
		if !ok {
			g = &pubGroup{}
			pubs[p.PubName] = g
			pubOrder = append(pubOrder, p.PubName)
		}
		g.sum += p.Rating
		g.count++
	}

	stats.TotalPints = len(pints)
	stats.UniquePubs = len(pubs)
	stats.AvgRating = Round1(float64(totalRating) / float64(len(pints)))

	// Best pub needs at least two visits; ties keep the first pub
	// encountered in history order.
	bestAvg := 0.0
	for _, name := range pubOrder {
		g := pubs[name]
		if g.count < 2 {
			continue
		}
		avg := float64(g.sum) / float64(g.count)
		if avg > bestAvg {
			bestAvg = avg
			pub := name
			stats.BestPub = &pub
			stats.BestPubRating = Round1(avg)
		}
	}

	return stats
}
