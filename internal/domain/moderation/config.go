package moderation

// Config holds the rule tables and thresholds for the moderation engine.
// It is treated as immutable after construction; per-deployment custom
// lists are built by copying DefaultConfig and replacing slices.
type Config struct {
	// ProfanityWords are matched as whole tokens, case-insensitively,
	// in any of the platform's supported languages.
	ProfanityWords []string

	// ScamKeywords are matched as case-insensitive substrings.
	ScamKeywords []string

	// FakeListingKeywords are too-good-to-be-true phrases matched as
	// case-insensitive substrings.
	FakeListingKeywords []string

	// MaxExclamations and MaxQuestions bound repeated punctuation before
	// the text counts as spam.
	MaxExclamations int
	MaxQuestions    int

	// MaxCapsRuns bounds runs of 4+ consecutive uppercase letters.
	MaxCapsRuns int

	// MaxURLs bounds URL-like substrings.
	MaxURLs int
}

// DefaultConfig returns the platform's stock rule tables.
func DefaultConfig() Config {
	return Config{
		ProfanityWords: []string{
			// English
			"ass", "asshole", "bastard", "bitch", "bollocks", "bullshit",
			"crap", "cunt", "damn", "dick", "douche", "fuck", "fucker",
			"fucking", "motherfucker", "nigger", "piss", "prick", "pussy",
			"shit", "slut", "twat", "wanker", "whore",
			// Bangla
			"মূর্খ", "বোকা", "চোর", "ভন্ড",
		},
		ScamKeywords: []string{
			"guaranteed", "risk free", "100% profit", "get rich quick",
			"limited time", "act now", "click here", "make money fast",
			"no questions asked", "cash only", "wire transfer only",
			"western union", "moneygram", "bitcoin only",
			"urgent", "emergency sale", "must sell today",
			"free money", "free cash", "lottery", "prize",
			"congratulations you won", "claim your prize",
		},
		FakeListingKeywords: []string{
			"too good to be true", "unbelievable price", "amazing deal",
			"once in a lifetime", "below market value", "heavily discounted",
			"sacrifice sale", "distress sale", "foreclosure",
		},
		MaxExclamations: 5,
		MaxQuestions:    5,
		MaxCapsRuns:     3,
		MaxURLs:         2,
	}
}
