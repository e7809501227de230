package models

import (
	"time"
)

// User defines a user entity. The document id is the opaque uid issued by
// the auth provider, so profile lookups never need an email index.
type User struct {
	UID         string    `bson:"_id" json:"uid"`
	DisplayName string    `bson:"displayName" json:"displayName"`
	Email       string    `bson:"email" json:"email"`
	TotalPints  int       `bson:"totalPints" json:"totalPints"`
	AvgRating   float64   `bson:"avgRating" json:"avgRating"`
	SocialPints int       `bson:"socialPints" json:"socialPints"`
	FriendIDs   []string  `bson:"friendIds,omitempty" json:"friendIds,omitempty"`
	Badges      []Badge   `bson:"badges,omitempty" json:"badges,omitempty"`
	HomePub     string    `bson:"homePub,omitempty" json:"homePub,omitempty"`
	PhotoURL    string    `bson:"photoURL,omitempty" json:"photoURL,omitempty"`
	CreatedAt   time.Time `bson:"createdAt" json:"createdAt"`
}

// HasFriend reports whether uid is already in the user's friend set.
func (u *User) HasFriend(uid string) bool {
	for _, id := range u.FriendIDs {
		if id == uid {
			return true
		}
	}
	return false
}

// HasBadge reports whether the user already earned the given badge.
func (u *User) HasBadge(badgeID string) bool {
	for _, b := range u.Badges {
		if b.ID == badgeID {
			return true
		}
	}
	return false
}
