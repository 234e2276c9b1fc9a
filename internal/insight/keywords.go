package insight

import "strings"

// Classifier buckets app names by substring match. The match is fuzzy by
// nature ("youtube music" counts as distracting), so the keyword sets live
// here as data rather than inline literals.
type Classifier struct {
	Distracting []string
	Productive  []string
}

func DefaultClassifier() Classifier {
	return Classifier{
		Distracting: []string{
			"social",
			"game",
			"video",
			"stream",
			"youtube",
			"instagram",
			"facebook",
			"twitter",
			"tiktok",
			"netflix",
			"reddit",
		},
		Productive: []string{
			"code",
			"study",
			"learn",
			"read",
		},
	}
}

func (c Classifier) IsDistracting(appName string) bool {
	return matchesAny(appName, c.Distracting)
}

func (c Classifier) IsProductive(appName string) bool {
	return matchesAny(appName, c.Productive)
}

func matchesAny(appName string, keywords []string) bool {
	name := strings.ToLower(appName)
	for _, keyword := range keywords {
		if strings.Contains(name, keyword) {
			return true
		}
	}
	return false
}
