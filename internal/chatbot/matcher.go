package chatbot

import (
	"strings"

	"github.com/MirBabaTravels/booking_svc/internal/model"
)

// Rule pairs an ordered list of trigger keywords with a canned answer. Rules
// are evaluated in slice order and the first match wins, so the order of a
// rule list is part of its behavior.
type Rule struct {
	Keywords []string
	Answer   string
}

// Matcher maps a free-text utterance to a canned answer without any natural
// language processing. Matching is plain lowercase substring comparison; no
// punctuation stripping or stemming is applied, which keeps the behavior
// predictable for the administrators writing the answers.
type Matcher struct {
	rules []Rule
}

// NewMatcher creates a Matcher falling back to the provided rule table.
func NewMatcher(rules []Rule) *Matcher {
	return &Matcher{rules: rules}
}

// Match selects the best canned answer for the utterance. Curated records are
// consulted first, in their given order: a record matches when the utterance
// contains its question, its question contains the utterance, or its answer
// contains the utterance. Only when no curated record matches is the builtin
// rule table consulted, returning the first rule with any keyword contained
// in the utterance. The second return value distinguishes "no match" from a
// matched empty answer so the caller can substitute its own fallback text.
func (matcher *Matcher) Match(utterance string, curated []model.FAQ) (string, bool) {
	normalizedUtterance := strings.ToLower(utterance)

	for _, record := range curated {
		normalizedQuestion := strings.ToLower(record.Question)
		normalizedAnswer := strings.ToLower(record.Answer)
		if strings.Contains(normalizedUtterance, normalizedQuestion) ||
			strings.Contains(normalizedQuestion, normalizedUtterance) ||
			strings.Contains(normalizedAnswer, normalizedUtterance) {
			return record.Answer, true
		}
	}

	for _, rule := range matcher.rules {
		for _, keyword := range rule.Keywords {
			if strings.Contains(normalizedUtterance, keyword) {
				return rule.Answer, true
			}
		}
	}

	return "", false
}
