package moderation

import (
	"fmt"
	"regexp"
	"strings"
	"unicode"
)

// Result is the outcome of a single moderation or field check.
// Exactly one reason is reported per rejection.
type Result struct {
	Clean  bool
	Reason string
}

func clean() Result {
	return Result{Clean: true}
}

func rejected(reason string) Result {
	return Result{Clean: false, Reason: reason}
}

// MinRentAmount is the rent floor in BDT. The boundary is inclusive.
const MinRentAmount = 800

var (
	capsRunPattern = regexp.MustCompile(`[A-Z]{4,}`)
	urlPattern     = regexp.MustCompile(`(?:https?://)?(?:www\.)?[a-zA-Z0-9-]+\.[a-zA-Z]{2,}`)
	bdPhonePattern = regexp.MustCompile(`^01[0-9]{9}$`)
)

// Engine evaluates free text and individual fields against an immutable
// rule set. It holds no mutable state and performs no I/O.
type Engine struct {
	cfg       Config
	profanity map[string]struct{}
}

// NewEngine builds an engine from cfg. The config slices are read once
// at construction; later mutation of the caller's copy has no effect.
func NewEngine(cfg Config) *Engine {
	profanity := make(map[string]struct{}, len(cfg.ProfanityWords))
	for _, w := range cfg.ProfanityWords {
		profanity[strings.ToLower(w)] = struct{}{}
	}
	return &Engine{cfg: cfg, profanity: profanity}
}

// EvaluateText runs the text rules in fixed order, short-circuiting on the
// first failure: profanity, scam keywords, fake-listing indicators,
// punctuation spam, caps spam, URL spam. Empty input is vacuously clean.
func (e *Engine) EvaluateText(text string) Result {
	if text == "" {
		return clean()
	}

	lower := strings.ToLower(text)

	if word, found := e.findProfanity(lower); found {
		return rejected(fmt.Sprintf("contains inappropriate language: %q", word))
	}

	for _, keyword := range e.cfg.ScamKeywords {
		if strings.Contains(lower, strings.ToLower(keyword)) {
			return rejected(fmt.Sprintf("contains suspicious scam keyword: %q", keyword))
		}
	}

	for _, keyword := range e.cfg.FakeListingKeywords {
		if strings.Contains(lower, strings.ToLower(keyword)) {
			return rejected(fmt.Sprintf("contains fake listing indicator: %q", keyword))
		}
	}

	if strings.Count(text, "!") > e.cfg.MaxExclamations || strings.Count(text, "?") > e.cfg.MaxQuestions {
		return rejected("excessive punctuation detected (possible spam)")
	}

	if len(capsRunPattern.FindAllStringIndex(text, -1)) > e.cfg.MaxCapsRuns {
		return rejected("excessive capital letters detected (possible spam)")
	}

	if len(urlPattern.FindAllStringIndex(text, -1)) > e.cfg.MaxURLs {
		return rejected("contains too many URLs (possible spam)")
	}

	return clean()
}

// CheckPhone validates a contact phone number: the 11-digit Bangladesh
// mobile format, then a repeated-digit heuristic against fake numbers
// such as 01111111111.
func (e *Engine) CheckPhone(phone string) Result {
	if phone == "" {
		return clean()
	}

	if !bdPhonePattern.MatchString(phone) {
		return rejected("invalid Bangladesh phone number format (expected 01XXXXXXXXX)")
	}

	distinct := make(map[rune]struct{}, 10)
	for _, r := range phone {
		distinct[r] = struct{}{}
	}
	if len(distinct) < 4 {
		return rejected("suspicious phone number pattern (too many repeated digits)")
	}

	return clean()
}

// CheckRent validates the rent amount against the platform floor.
func (e *Engine) CheckRent(amount float64) Result {
	if amount < MinRentAmount {
		return rejected(fmt.Sprintf("rent must be at least %d BDT", MinRentAmount))
	}
	return clean()
}

// findProfanity tokenizes on non-letter/non-digit boundaries and looks
// each token up in the deny set. Matching is whole-token so that "class"
// or "assistant" do not trip on embedded entries.
func (e *Engine) findProfanity(lowerText string) (string, bool) {
	tokens := strings.FieldsFunc(lowerText, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
	for _, token := range tokens {
		if _, ok := e.profanity[token]; ok {
			return token, true
		}
	}
	return "", false
}
