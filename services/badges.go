package services

import (
	"context"
	"log"
	"time"

	"pintdiary/db"
	"pintdiary/models"
	"pintdiary/websocket"
)

// Badge trigger events.
const (
	TriggerFriendConnected = "friend_connected"
	TriggerPintAdded       = "pint_added"
)

// BadgeEvent carries the context of the mutation that triggered rule
// evaluation. TaggedFriends is the number of friends tagged on the pint
// for pint_added events.
type BadgeEvent struct {
	Trigger       string
	TaggedFriends int
}

type badgeRule struct {
	ID        string
	Trigger   string
	Qualifies func(u *models.User, ev BadgeEvent) bool
}

// badgeRules is the full award table. Adding a badge is a row here plus
// catalog metadata, not new control flow.
var badgeRules = []badgeRule{
	{
		ID:      models.BadgeFirstFriend,
		Trigger: TriggerFriendConnected,
		Qualifies: func(u *models.User, _ BadgeEvent) bool {
			return len(u.FriendIDs) >= 1
		},
	},
	{
		ID:      models.BadgeSocialButterfly,
		Trigger: TriggerFriendConnected,
		Qualifies: func(u *models.User, _ BadgeEvent) bool {
			return len(u.FriendIDs) >= 5
		},
	},
	{
		ID:      models.BadgeSocialPint,
		Trigger: TriggerPintAdded,
		Qualifies: func(u *models.User, ev BadgeEvent) bool {
			return ev.TaggedFriends >= 1 && u.SocialPints >= 1
		},
	},
	{
		ID:      models.BadgeRoundBuyer,
		Trigger: TriggerPintAdded,
		Qualifies: func(_ *models.User, ev BadgeEvent) bool {
			return ev.TaggedFriends >= 3
		},
	},
	{
		ID:      models.BadgePubCrawlers,
		Trigger: TriggerPintAdded,
		Qualifies: func(u *models.User, ev BadgeEvent) bool {
			return ev.TaggedFriends >= 1 && u.SocialPints >= 5
		},
	},
	{
		ID:      models.BadgeTheRegular,
		Trigger: TriggerPintAdded,
		Qualifies: func(u *models.User, ev BadgeEvent) bool {
			return ev.TaggedFriends >= 1 && u.SocialPints >= 10
		},
	},
}

// EvaluateBadges returns the badge ids the user newly qualifies for. The
// snapshot must already reflect the triggering mutation's counters.
// Already-held badges never re-qualify, so a second call with the same
// state returns nothing.
func EvaluateBadges(u *models.User, ev BadgeEvent) []string {
	var newlyEarned []string
	for _, rule := range badgeRules {
		if rule.Trigger != ev.Trigger {
			continue
		}
		if u.HasBadge(rule.ID) {
			continue
		}
		if rule.Qualifies(u, ev) {
			newlyEarned = append(newlyEarned, rule.ID)
		}
	}
	return newlyEarned
}

// AwardBadges evaluates the rule table for the user's current snapshot and
// appends any newly earned badges in one write. Each award is broadcast to
// connected clients. Returns the newly awarded badges.
func AwardBadges(ctx context.Context, user *models.User, ev BadgeEvent) ([]models.Badge, error) {
	ids := EvaluateBadges(user, ev)
	if len(ids) == 0 {
		return nil, nil
	}

	now := time.Now()
	badges := make([]models.Badge, 0, len(ids))
	for _, id := range ids {
		badges = append(badges, models.Badge{ID: id, EarnedAt: now})
	}

	if err := db.AppendBadges(ctx, user.UID, badges); err != nil {
		return nil, err
	}

	for _, b := range badges {
		websocket.BroadcastBadgeEvent(websocket.BadgeEvent{
			Type:      "badge_awarded",
			UserID:    user.UID,
			BadgeID:   b.ID,
			BadgeName: models.BadgeCatalog[b.ID].Name,
			Timestamp: b.EarnedAt,
		})
	}

	log.Printf("Awarded %d badge(s) to user %s", len(badges), user.UID)
	return badges, nil
}
