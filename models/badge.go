package models

import (
	"time"
)

// Badge ids. The set is fixed; awarding is append-only and at-most-once
// per user.
const (
	BadgeFirstFriend     = "first_friend"
	BadgeSocialPint      = "social_pint"
	BadgeRoundBuyer      = "round_buyer"
	BadgePubCrawlers     = "pub_crawlers"
	BadgeTheRegular      = "the_regular"
	BadgeSocialButterfly = "social_butterfly"
)

// Badge is an earned achievement on a user document. Insertion order is
// earn order.
type Badge struct {
	ID       string    `bson:"id" json:"id"`
	EarnedAt time.Time `bson:"earnedAt" json:"earnedAt"`
}

// BadgeInfo is display metadata for a badge id.
type BadgeInfo struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
	Color       string `json:"color"`
}

// BadgeCatalog maps every badge id to its display metadata.
var BadgeCatalog = map[string]BadgeInfo{
	BadgeFirstFriend: {
		Name:        "First Round",
		Description: "Connect your first friend",
		Icon:        "🤝",
		Color:       "#c9a84c",
	},
	BadgeSocialPint: {
		Name:        "Social Pint",
		Description: "Log a pint with a friend",
		Icon:        "🍺",
		Color:       "#4a7c59",
	},
	BadgeRoundBuyer: {
		Name:        "Round Buyer",
		Description: "Tag 3+ friends in one pint",
		Icon:        "🫗",
		Color:       "#2196F3",
	},
	BadgePubCrawlers: {
		Name:        "Pub Crawlers",
		Description: "Log 5 pints with friends",
		Icon:        "🗺️",
		Color:       "#FF9800",
	},
	BadgeTheRegular: {
		Name:        "The Regular",
		Description: "Log 10 pints with friends",
		Icon:        "⭐",
		Color:       "#9C27B0",
	},
	BadgeSocialButterfly: {
		Name:        "Social Butterfly",
		Description: "Connect 5 friends",
		Icon:        "🦋",
		Color:       "#E91E63",
	},
}
