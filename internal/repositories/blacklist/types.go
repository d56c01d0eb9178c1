package blacklist

// BanInput contains the two players to split
type BanInput struct {
	PlayerID       string
	BannedPlayerID string
}

// IsBannedInput contains the pair to check
type IsBannedInput struct {
	PlayerID      string
	OtherPlayerID string
}

// GetBannedInput contains the player whose bans to list
type GetBannedInput struct {
	PlayerID string
}

// GetBannedOutput contains the banned players
type GetBannedOutput struct {
	PlayerIDs []string
}
