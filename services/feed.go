package services

import (
	"context"
	"sort"

	"pintdiary/db"
	"pintdiary/models"
)

// FeedPage is one page of the combined friends feed.
type FeedPage struct {
	Pints      []models.Pint `json:"pints"`
	NextCursor string        `json:"nextCursor,omitempty"`
	HasMore    bool          `json:"hasMore"`
}

// FriendsPintsPage returns one reverse-chronological page of pints across
// the user's friends. The store caps owner-set membership queries at
// db.MaxOwnersPerQuery ids, and a cursor is only valid against a single
// query, so the paginated path queries the first 30 friends only; accounts
// past that miss the overflow friends here. The full path below covers
// every friend.
func FriendsPintsPage(ctx context.Context, friendIDs []string, pageSize int, cursor string) (FeedPage, error) {
	if len(friendIDs) == 0 {
		return FeedPage{}, nil
	}
	owners := friendIDs
	if len(owners) > db.MaxOwnersPerQuery {
		owners = owners[:db.MaxOwnersPerQuery]
	}

	pints, next, err := db.PintsByOwnerSet(ctx, owners, pageSize, cursor)
	if err != nil {
		return FeedPage{}, err
	}

	page := FeedPage{Pints: pints}
	// A full page is assumed to have more behind it. A false positive on
	// an exact boundary costs one empty follow-up page.
	if len(pints) == pageSize {
		page.HasMore = true
		page.NextCursor = next
	}
	return page, nil
}

// AllFriendsPints returns every pint across all of the user's friends,
// newest first. Friends are queried in batches of at most
// db.MaxOwnersPerQuery ids; each batch comes back ordered, but batch
// concatenation is not globally ordered, so the final stable sort is
// mandatory.
func AllFriendsPints(ctx context.Context, friendIDs []string) ([]models.Pint, error) {
	if len(friendIDs) == 0 {
		return nil, nil
	}

	var all []models.Pint
	for _, batch := range batchOwners(friendIDs, db.MaxOwnersPerQuery) {
		pints, err := db.AllPintsByOwnerSet(ctx, batch)
		if err != nil {
			return nil, err
		}
		all = append(all, pints...)
	}

	sortPintsByCreatedDesc(all)
	return all, nil
}

// batchOwners splits an owner-id set into query-sized slices.
func batchOwners(ids []string, size int) [][]string {
	var batches [][]string
	for start := 0; start < len(ids); start += size {
		end := start + size
		if end > len(ids) {
			end = len(ids)
		}
		batches = append(batches, ids[start:end])
	}
	return batches
}

// sortPintsByCreatedDesc restores global newest-first order. The sort is
// stable: pints with identical timestamps keep their store-returned
// relative order.
func sortPintsByCreatedDesc(pints []models.Pint) {
	sort.SliceStable(pints, func(i, j int) bool {
		return pints[i].CreatedAt.After(pints[j].CreatedAt)
	})
}
