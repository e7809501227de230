package db

import (
	"context"
	"encoding/base64"
	"fmt"
	"strconv"
	"strings"
	"time"

	"pintdiary/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MaxOwnersPerQuery is the ceiling on ids in one $in owner-set query.
const MaxOwnersPerQuery = 30

var pintSort = bson.D{{Key: "createdAt", Value: -1}, {Key: "_id", Value: -1}}

// EncodePintCursor builds the opaque continuation token for a page that
// ended on the given pint.
func EncodePintCursor(p models.Pint) string {
	raw := fmt.Sprintf("%d:%s", p.CreatedAt.UnixNano(), p.ID.Hex())
	return base64.URLEncoding.EncodeToString([]byte(raw))
}

// DecodePintCursor parses a continuation token back into its boundary.
func DecodePintCursor(cursor string) (time.Time, primitive.ObjectID, error) {
	raw, err := base64.URLEncoding.DecodeString(cursor)
	if err != nil {
		return time.Time{}, primitive.NilObjectID, fmt.Errorf("malformed cursor: %w", err)
	}
	parts := strings.SplitN(string(raw), ":", 2)
	if len(parts) != 2 {
		return time.Time{}, primitive.NilObjectID, fmt.Errorf("malformed cursor")
	}
	nanos, err := strconv.ParseInt(parts[0], 10, 64)
	if err != nil {
		return time.Time{}, primitive.NilObjectID, fmt.Errorf("malformed cursor: %w", err)
	}
	id, err := primitive.ObjectIDFromHex(parts[1])
	if err != nil {
		return time.Time{}, primitive.NilObjectID, fmt.Errorf("malformed cursor: %w", err)
	}
	return time.Unix(0, nanos), id, nil
}

// cursorFilter translates a continuation token into the boundary filter
// for the next page. Documents strictly after the boundary in the
// (createdAt desc, _id desc) order are returned.
func cursorFilter(cursor string) (bson.M, error) {
	boundary, id, err := DecodePintCursor(cursor)
	if err != nil {
		return nil, err
	}
	return bson.M{"$or": []bson.M{
		{"createdAt": bson.M{"$lt": boundary}},
		{"createdAt": boundary, "_id": bson.M{"$lt": id}},
	}}, nil
}

// InsertPint stores a new pint and returns its assigned id.
func InsertPint(ctx context.Context, pint *models.Pint) (primitive.ObjectID, error) {
	res, err := pintsCollection().InsertOne(ctx, pint)
	if err != nil {
		return primitive.NilObjectID, fmt.Errorf("failed to insert pint: %w", err)
	}
	id, _ := res.InsertedID.(primitive.ObjectID)
	return id, nil
}

// GetPint fetches a pint by id.
func GetPint(ctx context.Context, id primitive.ObjectID) (*models.Pint, error) {
	var pint models.Pint
	err := pintsCollection().FindOne(ctx, bson.M{"_id": id}).Decode(&pint)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to fetch pint %s: %w", id.Hex(), err)
	}
	return &pint, nil
}

// GetPintOwned fetches a pint and verifies uid owns it.
func GetPintOwned(ctx context.Context, id primitive.ObjectID, uid string) (*models.Pint, error) {
	pint, err := GetPint(ctx, id)
	if err != nil {
		return nil, err
	}
	if pint.UserID != uid {
		return nil, ErrUnauthorized
	}
	return pint, nil
}

// UpdatePintFields applies a partial $set on a pint document.
func UpdatePintFields(ctx context.Context, id primitive.ObjectID, fields bson.M) error {
	res, err := pintsCollection().UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": fields})
	if err != nil {
		return fmt.Errorf("failed to update pint %s: %w", id.Hex(), err)
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// DeletePint removes a pint document.
func DeletePint(ctx context.Context, id primitive.ObjectID) error {
	res, err := pintsCollection().DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("failed to delete pint %s: %w", id.Hex(), err)
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// PintsByOwner returns one page of the owner's pints, newest first, with
// the continuation token for the next page.
func PintsByOwner(ctx context.Context, uid string, limit int, cursor string) ([]models.Pint, string, error) {
	return queryPints(ctx, bson.M{"userId": uid}, limit, cursor)
}

// AllPintsByOwner returns the owner's full pint history, newest first.
func AllPintsByOwner(ctx context.Context, uid string) ([]models.Pint, error) {
	pints, _, err := queryPints(ctx, bson.M{"userId": uid}, 0, "")
	return pints, err
}

// PintsByOwnerSet returns one descending page of pints belonging to any of
// the given owners. Callers must keep len(uids) within MaxOwnersPerQuery.
func PintsByOwnerSet(ctx context.Context, uids []string, limit int, cursor string) ([]models.Pint, string, error) {
	if len(uids) > MaxOwnersPerQuery {
		return nil, "", fmt.Errorf("owner set exceeds %d ids", MaxOwnersPerQuery)
	}
	return queryPints(ctx, bson.M{"userId": bson.M{"$in": uids}}, limit, cursor)
}

// AllPintsByOwnerSet returns every pint belonging to any of the given
// owners, newest first. Same owner-set ceiling as PintsByOwnerSet.
func AllPintsByOwnerSet(ctx context.Context, uids []string) ([]models.Pint, error) {
	if len(uids) > MaxOwnersPerQuery {
		return nil, fmt.Errorf("owner set exceeds %d ids", MaxOwnersPerQuery)
	}
	pints, _, err := queryPints(ctx, bson.M{"userId": bson.M{"$in": uids}}, 0, "")
	return pints, err
}

func queryPints(ctx context.Context, filter bson.M, limit int, cursor string) ([]models.Pint, string, error) {
	if cursor != "" {
		boundary, err := cursorFilter(cursor)
		if err != nil {
			return nil, "", err
		}
		filter = bson.M{"$and": []bson.M{filter, boundary}}
	}

	opts := options.Find().SetSort(pintSort)
	if limit > 0 {
		opts.SetLimit(int64(limit))
	}

	c, err := pintsCollection().Find(ctx, filter, opts)
	if err != nil {
		return nil, "", fmt.Errorf("failed to query pints: %w", err)
	}
	defer c.Close(ctx)

	var pints []models.Pint
	if err := c.All(ctx, &pints); err != nil {
		return nil, "", fmt.Errorf("failed to decode pints: %w", err)
	}

	next := ""
	if len(pints) > 0 {
		next = EncodePintCursor(pints[len(pints)-1])
	}
	return pints, next, nil
}
