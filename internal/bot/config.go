package bot

// BotConfig represents the configuration for the bot
type BotConfig struct {
	// Words per generated game candidate list
	GameListSize int
	// Words per flashcard session before suggesting a break
	FlashcardBatchSize int
}

// DefaultConfig returns the default bot configuration
func DefaultConfig() *BotConfig {
	return &BotConfig{
		GameListSize:       30,
		FlashcardBatchSize: 10,
	}
}
