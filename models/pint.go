package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Pint is one logged pub visit. Lat/Lng of 0,0 means "no location".
// UserID, CreatedAt and WithFriends are fixed at creation; edits never
// touch them.
type Pint struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID      string             `bson:"userId" json:"userId"`
	PubName     string             `bson:"pubName" json:"pubName"`
	Address     string             `bson:"address" json:"address"`
	PlaceID     string             `bson:"placeId" json:"placeId"`
	Lat         float64            `bson:"lat" json:"lat"`
	Lng         float64            `bson:"lng" json:"lng"`
	Rating      int                `bson:"rating" json:"rating"`
	Tags        []string           `bson:"tags" json:"tags"`
	Note        string             `bson:"note" json:"note"`
	PhotoURL    string             `bson:"photoUrl,omitempty" json:"photoUrl,omitempty"`
	WithFriends []string           `bson:"withFriends,omitempty" json:"withFriends,omitempty"`
	CreatedAt   time.Time          `bson:"createdAt" json:"createdAt"`
}

// MaxNoteLength caps the free-text note on a pint.
const MaxNoteLength = 500

// AllTags is the fixed tag vocabulary a pint may carry.
var AllTags = []string{
	"Perfect Head",
	"Creamy",
	"Bitter",
	"Smooth",
	"Cold",
	"Lukewarm",
	"Well-poured",
	"Flat",
	"Hazy",
	"Lively",
}

// IsValidTag reports whether tag belongs to the fixed vocabulary.
func IsValidTag(tag string) bool {
	for _, t := range AllTags {
		if t == tag {
			return true
		}
	}
	return false
}
