package services

import (
	"testing"
	"time"

	"pintdiary/models"

	"github.com/stretchr/testify/assert"
)

func userWith(friends int, socialPints int, held ...string) *models.User {
	u := &models.User{UID: "user-1", SocialPints: socialPints}
	for i := 0; i < friends; i++ {
		u.FriendIDs = append(u.FriendIDs, "friend")
	}
	for _, id := range held {
		u.Badges = append(u.Badges, models.Badge{ID: id, EarnedAt: time.Now()})
	}
	return u
}

func TestEvaluateFirstSocialPintAwardsRoundBuyerToo(t *testing.T) {
	// Tagging 3 friends on the first social pint qualifies both the
	// tag-count rule and the social-count rule.
	u := userWith(3, 1)
	ev := BadgeEvent{Trigger: TriggerPintAdded, TaggedFriends: 3}

	earned := EvaluateBadges(u, ev)

	assert.Contains(t, earned, models.BadgeRoundBuyer)
	assert.Contains(t, earned, models.BadgeSocialPint)
	assert.NotContains(t, earned, models.BadgePubCrawlers)
}

func TestEvaluateIsIdempotent(t *testing.T) {
	u := userWith(3, 1)
	ev := BadgeEvent{Trigger: TriggerPintAdded, TaggedFriends: 3}

	first := EvaluateBadges(u, ev)
	assert.NotEmpty(t, first)

	for _, id := range first {
		u.Badges = append(u.Badges, models.Badge{ID: id, EarnedAt: time.Now()})
	}

	second := EvaluateBadges(u, ev)
	assert.Empty(t, second)
}

func TestEvaluateNeverReawards(t *testing.T) {
	u := userWith(6, 12,
		models.BadgeFirstFriend,
		models.BadgeSocialButterfly,
		models.BadgeSocialPint,
		models.BadgeRoundBuyer,
		models.BadgePubCrawlers,
		models.BadgeTheRegular,
	)

	assert.Empty(t, EvaluateBadges(u, BadgeEvent{Trigger: TriggerFriendConnected}))
	assert.Empty(t, EvaluateBadges(u, BadgeEvent{Trigger: TriggerPintAdded, TaggedFriends: 5}))
}

func TestEvaluateFifthFriend(t *testing.T) {
	u := userWith(5, 0, models.BadgeFirstFriend)

	earned := EvaluateBadges(u, BadgeEvent{Trigger: TriggerFriendConnected})

	assert.Equal(t, []string{models.BadgeSocialButterfly}, earned)
}

func TestEvaluateFirstFriend(t *testing.T) {
	u := userWith(1, 0)

	earned := EvaluateBadges(u, BadgeEvent{Trigger: TriggerFriendConnected})

	assert.Equal(t, []string{models.BadgeFirstFriend}, earned)
}

func TestEvaluateTriggerScoping(t *testing.T) {
	// Five friends, but a pint_added event must not fire the friend-count
	// rules.
	u := userWith(5, 0)

	earned := EvaluateBadges(u, BadgeEvent{Trigger: TriggerPintAdded, TaggedFriends: 0})

	assert.Empty(t, earned)
}

func TestEvaluateSocialCountTiers(t *testing.T) {
	cases := []struct {
		socialPints int
		want        []string
	}{
		{1, []string{models.BadgeSocialPint}},
		{5, []string{models.BadgeSocialPint, models.BadgePubCrawlers}},
		{10, []string{models.BadgeSocialPint, models.BadgePubCrawlers, models.BadgeTheRegular}},
	}

	for _, tc := range cases {
		u := userWith(1, tc.socialPints)
		earned := EvaluateBadges(u, BadgeEvent{Trigger: TriggerPintAdded, TaggedFriends: 1})
		assert.ElementsMatch(t, tc.want, earned, "socialPints=%d", tc.socialPints)
	}
}

func TestEvaluateSoloPintAwardsNothing(t *testing.T) {
	u := userWith(2, 0)

	earned := EvaluateBadges(u, BadgeEvent{Trigger: TriggerPintAdded, TaggedFriends: 0})

	assert.Empty(t, earned)
}

func TestBadgeCatalogCoversAllRules(t *testing.T) {
	for _, rule := range badgeRules {
		_, ok := models.BadgeCatalog[rule.ID]
		assert.True(t, ok, "badge %s missing catalog metadata", rule.ID)
	}
}
