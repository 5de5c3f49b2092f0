package planner

import (
	"strings"

	"github.com/hyperengineering/stride/internal/types"
)

// keywordGroup maps a set of trigger keywords to a blueprint. Groups are
// evaluated in declaration order and the first hit wins, so the slice
// order IS the classification priority: language > muscle > exam >
// instrument > coding > business. Classification is not commutative; a
// goal matching several domains resolves to the earliest group.
type keywordGroup struct {
	blueprint types.BlueprintID
	keywords  []string
}

var keywordGroups = []keywordGroup{
	{types.BlueprintLanguage, []string{
		"language", "spanish", "french", "german", "italian", "japanese",
		"chinese", "mandarin", "korean", "portuguese", "english", "fluent",
		"vocabulary", "duolingo",
	}},
	{types.BlueprintMuscle, []string{
		"muscle", "gym", "strength", "lift", "weights", "bulk", "workout",
		"bench", "squat", "deadlift", "fitness", "bodybuilding",
	}},
	{types.BlueprintExamStudy, []string{
		"exam", "test", "certification", "certificate", "sat", "gre",
		"toefl", "ielts", "bar exam", "finals", "midterm", "study for",
	}},
	{types.BlueprintInstrument, []string{
		"guitar", "piano", "violin", "drums", "instrument", "ukulele",
		"saxophone", "cello", "flute", "music theory",
	}},
	{types.BlueprintCoding, []string{
		"code", "coding", "program", "programming", "website", "app",
		"software", "developer", "python", "javascript", "golang",
	}},
	{types.BlueprintMoneyOnline, []string{
		"money", "income", "business", "online business", "dropshipping",
		"freelance", "ecommerce", "e-commerce", "side hustle", "revenue",
		"youtube channel", "audience",
	}},
}

// SelectBlueprint classifies a goal's free text into exactly one blueprint
// identifier. Matching runs over the case-folded concatenation of title,
// description and category; no group matching falls back to generic, which
// never fails to produce a plan.
func SelectBlueprint(goal types.GoalInput) types.BlueprintID {
	text := strings.ToLower(goal.Title + " " + goal.Description + " " + goal.Category)
	for _, group := range keywordGroups {
		for _, kw := range group.keywords {
			if strings.Contains(text, kw) {
				return group.blueprint
			}
		}
	}
	return types.BlueprintGeneric
}
