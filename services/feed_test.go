package services

import (
	"fmt"
	"testing"
	"time"

	"pintdiary/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestBatchOwners(t *testing.T) {
	ids := make([]string, 65)
	for i := range ids {
		ids[i] = fmt.Sprintf("friend-%d", i)
	}

	batches := batchOwners(ids, 30)

	require.Len(t, batches, 3)
	assert.Len(t, batches[0], 30)
	assert.Len(t, batches[1], 30)
	assert.Len(t, batches[2], 5)
	assert.Equal(t, "friend-0", batches[0][0])
	assert.Equal(t, "friend-64", batches[2][4])
}

func TestBatchOwnersSingleBatch(t *testing.T) {
	batches := batchOwners([]string{"a", "b"}, 30)

	require.Len(t, batches, 1)
	assert.Equal(t, []string{"a", "b"}, batches[0])
}

func TestSortPintsByCreatedDescRestoresGlobalOrder(t *testing.T) {
	base := time.Date(2026, 8, 1, 18, 0, 0, 0, time.UTC)

	// Two per-owner batches, each ordered internally, interleaved in time
	// the way concatenation would leave them.
	batchA := []models.Pint{
		{ID: primitive.NewObjectID(), UserID: "a", CreatedAt: base.Add(5 * time.Hour)},
		{ID: primitive.NewObjectID(), UserID: "a", CreatedAt: base.Add(1 * time.Hour)},
	}
	batchB := []models.Pint{
		{ID: primitive.NewObjectID(), UserID: "b", CreatedAt: base.Add(6 * time.Hour)},
		{ID: primitive.NewObjectID(), UserID: "b", CreatedAt: base.Add(2 * time.Hour)},
	}

	all := append(append([]models.Pint{}, batchA...), batchB...)
	sortPintsByCreatedDesc(all)

	for i := 1; i < len(all); i++ {
		assert.True(t, all[i-1].CreatedAt.After(all[i].CreatedAt),
			"expected strictly descending createdAt at index %d", i)
	}
	assert.Equal(t, "b", all[0].UserID)
}

func TestSortPintsByCreatedDescIsStableOnTies(t *testing.T) {
	ts := time.Date(2026, 8, 1, 18, 0, 0, 0, time.UTC)
	first := primitive.NewObjectID()
	second := primitive.NewObjectID()

	pints := []models.Pint{
		{ID: first, CreatedAt: ts},
		{ID: second, CreatedAt: ts},
	}
	sortPintsByCreatedDesc(pints)

	// Identical timestamps keep their incoming relative order.
	assert.Equal(t, first, pints[0].ID)
	assert.Equal(t, second, pints[1].ID)
}
