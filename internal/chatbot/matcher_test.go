package chatbot_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/MirBabaTravels/booking_svc/internal/chatbot"
	"github.com/MirBabaTravels/booking_svc/internal/model"
)

func buildMatcher() *chatbot.Matcher {
	return chatbot.NewMatcher(chatbot.DefaultRules())
}

func TestMatchPrefersCuratedRecords(t *testing.T) {
	matcher := buildMatcher()
	curated := []model.FAQ{
		{Question: "best time to visit", Answer: "Curated answer about seasons."},
	}

	answer, matched := matcher.Match("What is the best time to visit Kashmir?", curated)
	require.True(t, matched)
	require.Equal(t, "Curated answer about seasons.", answer)
}

func TestMatchCuratedThreeWayContainment(t *testing.T) {
	matcher := buildMatcher()

	testCases := []struct {
		name      string
		utterance string
		record    model.FAQ
	}{
		{
			name:      "utterance contains question",
			utterance: "tell me about houseboat stays please",
			record:    model.FAQ{Question: "houseboat stays", Answer: "Houseboats on Dal Lake."},
		},
		{
			name:      "question contains utterance",
			utterance: "houseboat",
			record:    model.FAQ{Question: "do you offer houseboat stays", Answer: "Houseboats on Dal Lake."},
		},
		{
			name:      "answer contains utterance",
			utterance: "dal lake",
			record:    model.FAQ{Question: "accommodation options", Answer: "Houseboats on Dal Lake."},
		},
	}

	for _, testCase := range testCases {
		testCase := testCase
		t.Run(testCase.name, func(testingT *testing.T) {
			answer, matched := matcher.Match(testCase.utterance, []model.FAQ{testCase.record})
			require.True(testingT, matched)
			require.Equal(testingT, testCase.record.Answer, answer)
		})
	}
}

func TestMatchCuratedFirstMatchWins(t *testing.T) {
	matcher := buildMatcher()
	curated := []model.FAQ{
		{Question: "gulmarg", Answer: "First answer."},
		{Question: "gulmarg gondola", Answer: "Second answer."},
	}

	answer, matched := matcher.Match("is the gulmarg gondola open", curated)
	require.True(t, matched)
	require.Equal(t, "First answer.", answer)
}

func TestMatchFallsBackToBuiltinRules(t *testing.T) {
	matcher := buildMatcher()

	answer, matched := matcher.Match("What is the best time to visit?", nil)
	require.True(t, matched)
	require.Contains(t, answer, "Tulip Festival")

	greeting, greetingMatched := matcher.Match("Hello there", nil)
	require.True(t, greetingMatched)
	require.Contains(t, greeting, "Welcome to Mir Baba Tour and Travels")
}

func TestMatchBuiltinRuleOrderWins(t *testing.T) {
	matcher := buildMatcher()

	// "snow" triggers both the season rule and the Gulmarg rule; the season
	// rule sits earlier in the table so it shadows the later one.
	answer, matched := matcher.Match("snow season", nil)
	require.True(t, matched)
	require.Contains(t, answer, "Kashmir is beautiful year-round")
}

func TestMatchIsCaseInsensitive(t *testing.T) {
	matcher := buildMatcher()

	answer, matched := matcher.Match("PAHALGAM", nil)
	require.True(t, matched)
	require.Contains(t, answer, "Valley of Shepherds")
}

func TestMatchReportsNoMatchDistinctly(t *testing.T) {
	matcher := buildMatcher()

	answer, matched := matcher.Match("quantum chromodynamics", nil)
	require.False(t, matched)
	require.Empty(t, answer)
}

func TestMatchIsDeterministic(t *testing.T) {
	matcher := buildMatcher()
	curated := []model.FAQ{
		{Question: "gulmarg", Answer: "Curated Gulmarg answer."},
	}

	first, firstMatched := matcher.Match("gulmarg in winter", curated)
	for attempt := 0; attempt < 5; attempt++ {
		repeated, repeatedMatched := matcher.Match("gulmarg in winter", curated)
		require.Equal(t, firstMatched, repeatedMatched)
		require.Equal(t, first, repeated)
	}
}
