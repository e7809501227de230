package db

import (
	"context"
	"fmt"

	"pintdiary/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// GetUser fetches a user document by its auth uid.
func GetUser(ctx context.Context, uid string) (*models.User, error) {
	var user models.User
	err := usersCollection().FindOne(ctx, bson.M{"_id": uid}).Decode(&user)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to fetch user %s: %w", uid, err)
	}
	return &user, nil
}

// CreateUser inserts a fresh user document. Counters start at zero.
func CreateUser(ctx context.Context, user *models.User) error {
	_, err := usersCollection().InsertOne(ctx, user)
	if err != nil {
		return fmt.Errorf("failed to create user %s: %w", user.UID, err)
	}
	return nil
}

// UpdateUserFields applies a partial $set on the user document.
func UpdateUserFields(ctx context.Context, uid string, fields bson.M) error {
	res, err := usersCollection().UpdateOne(ctx, bson.M{"_id": uid}, bson.M{"$set": fields})
	if err != nil {
		return fmt.Errorf("failed to update user %s: %w", uid, err)
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// IncrementUserField atomically adds delta to a numeric counter field.
func IncrementUserField(ctx context.Context, uid, field string, delta int) error {
	_, err := usersCollection().UpdateOne(ctx, bson.M{"_id": uid}, bson.M{"$inc": bson.M{field: delta}})
	if err != nil {
		return fmt.Errorf("failed to increment %s for user %s: %w", field, uid, err)
	}
	return nil
}

// ApplyPintCounters applies the aggregate update after a pint is logged:
// totalPints and socialPints via atomic increments, avgRating as a plain
// set. The average is a best-effort denormalised field; concurrent adds
// can make it drift and the stats path recomputes it from history.
func ApplyPintCounters(ctx context.Context, uid string, avgRating float64, socialDelta int) error {
	inc := bson.M{"totalPints": 1}
	if socialDelta != 0 {
		inc["socialPints"] = socialDelta
	}
	update := bson.M{
		"$inc": inc,
		"$set": bson.M{"avgRating": avgRating},
	}
	_, err := usersCollection().UpdateOne(ctx, bson.M{"_id": uid}, update)
	if err != nil {
		return fmt.Errorf("failed to apply pint counters for user %s: %w", uid, err)
	}
	return nil
}

// AddFriend union-appends friendUID into uid's friend set. Safe to call
// with an id that is already present.
func AddFriend(ctx context.Context, uid, friendUID string) error {
	update := bson.M{"$addToSet": bson.M{"friendIds": friendUID}}
	res, err := usersCollection().UpdateOne(ctx, bson.M{"_id": uid}, update)
	if err != nil {
		return fmt.Errorf("failed to add friend for user %s: %w", uid, err)
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// AppendBadges appends newly earned badges to the user's badge set in one
// write. Callers check the held set first; a badge id is never pushed
// twice.
func AppendBadges(ctx context.Context, uid string, badges []models.Badge) error {
	if len(badges) == 0 {
		return nil
	}
	update := bson.M{"$push": bson.M{"badges": bson.M{"$each": badges}}}
	_, err := usersCollection().UpdateOne(ctx, bson.M{"_id": uid}, update)
	if err != nil {
		return fmt.Errorf("failed to append badges for user %s: %w", uid, err)
	}
	return nil
}

// GetUsersByIDs fetches user documents for a set of uids.
func GetUsersByIDs(ctx context.Context, uids []string) ([]models.User, error) {
	if len(uids) == 0 {
		return nil, nil
	}
	cursor, err := usersCollection().Find(ctx, bson.M{"_id": bson.M{"$in": uids}})
	if err != nil {
		return nil, fmt.Errorf("failed to fetch users: %w", err)
	}
	defer cursor.Close(ctx)

	var users []models.User
	if err := cursor.All(ctx, &users); err != nil {
		return nil, fmt.Errorf("failed to decode users: %w", err)
	}
	return users, nil
}
