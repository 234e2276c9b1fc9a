package insight

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"strings"
	"time"

	"reclaim/backend/internal/model"
)

const maxSuggestions = 3

type Config struct {
	APIKey   string
	Endpoint string
	Model    string
	Timeout  time.Duration
}

// Engine produces 1-3 personalized suggestions from a profile and recent
// usage. It prefers a remote provider call when one is configured and
// always completes via the local heuristic fallback, so Generate never
// fails: missing credentials, network errors, bad status codes and
// malformed payloads all degrade quality, never availability.
type Engine struct {
	apiKey     string
	endpoint   string
	model      string
	client     *http.Client
	classifier Classifier
}

func NewEngine(cfg Config) *Engine {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Engine{
		apiKey:     cfg.APIKey,
		endpoint:   cfg.Endpoint,
		model:      cfg.Model,
		client:     &http.Client{Timeout: timeout},
		classifier: DefaultClassifier(),
	}
}

func (e *Engine) Generate(ctx context.Context, profile model.Profile, logs []model.UsageLog) model.InsightData {
	if e.apiKey != "" && e.endpoint != "" {
		suggestions, err := e.remoteSuggestions(ctx, profile, logs)
		if err == nil && len(suggestions) > 0 {
			return model.InsightData{Suggestions: suggestions}
		}
		if err != nil {
			log.Printf("insight: remote provider failed, using local fallback: %v", err)
		}
	}
	return e.localInsight(profile, logs)
}

// usageStats aggregates the flattened app entries of one or more logs.
type usageStats struct {
	totalMinutes       int
	productiveMinutes  int
	distractingMinutes int
	topApp             model.AppUsage
	appNames           []string
}

// productivityRatio is the percentage of tracked minutes classified as
// productive, 0 when nothing was tracked.
func (s usageStats) productivityRatio() int {
	if s.totalMinutes == 0 {
		return 0
	}
	return s.productiveMinutes * 100 / s.totalMinutes
}

func (e *Engine) analyze(logs []model.UsageLog) usageStats {
	var stats usageStats
	for _, usageLog := range logs {
		for _, app := range usageLog.Apps {
			stats.appNames = append(stats.appNames, app.Name)
			stats.totalMinutes += app.Minutes
			if e.classifier.IsDistracting(app.Name) {
				stats.distractingMinutes += app.Minutes
			}
			if e.classifier.IsProductive(app.Name) {
				stats.productiveMinutes += app.Minutes
			}
			if app.Minutes > stats.topApp.Minutes || stats.topApp.Name == "" {
				stats.topApp = app
			}
		}
	}
	return stats
}

func (e *Engine) localInsight(profile model.Profile, logs []model.UsageLog) model.InsightData {
	stats := e.analyze(logs)
	return model.InsightData{
		Summary:     e.buildSummary(stats),
		Nudges:      e.buildNudges(profile, stats),
		Suggestions: e.buildSuggestions(profile, stats),
	}
}

func (e *Engine) buildSummary(stats usageStats) string {
	if stats.totalMinutes == 0 {
		return "No tracked usage yet. Log your app time to unlock personalized insights."
	}

	var parts []string
	if e.classifier.IsDistracting(stats.topApp.Name) {
		parts = append(parts, fmt.Sprintf(
			"You spent %s on %s, much of it likely at night, which cuts into sleep.",
			formatMinutes(stats.topApp.Minutes), stats.topApp.Name,
		))
	} else {
		parts = append(parts, fmt.Sprintf(
			"Your top app was %s at %s, a positive contributor to your day.",
			stats.topApp.Name, formatMinutes(stats.topApp.Minutes),
		))
	}

	ratio := stats.productivityRatio()
	switch {
	case ratio >= 60:
		parts = append(parts, fmt.Sprintf("Excellent focus: %d%% of your tracked time was productive.", ratio))
	case ratio >= 30:
		parts = append(parts, fmt.Sprintf("You maintained %d%% productive time. Keep building the habit.", ratio))
	default:
		parts = append(parts, fmt.Sprintf("Only %d%% of your tracked time was productive. Consider time-blocking your best hours.", ratio))
	}

	return strings.Join(parts, " ")
}

func (e *Engine) buildNudges(profile model.Profile, stats usageStats) []string {
	goal := lowerDeref(profile.Goal)
	var nudges []string

	if containsAny(goal, "coding", "programming") && stats.productiveMinutes < 60 {
		nudges = append(nudges, fmt.Sprintf(
			"Your goal is %q but you logged under an hour of productive app time. Aim for at least 1 hour a day on coding apps.",
			*profile.Goal,
		))
	}
	if containsAny(goal, "fitness", "workout", "gym", "exercise") && !stats.hasAppMatching("fit", "workout", "health", "gym") {
		nudges = append(nudges, fmt.Sprintf(
			"No fitness app showed up in your usage. Add one so your %q goal stays visible every day.",
			*profile.Goal,
		))
	}
	if containsAny(goal, "read", "book") && !stats.hasAppMatching("read", "book", "kindle") {
		nudges = append(nudges, fmt.Sprintf(
			"Nothing reading-related in your tracked apps yet. A reading app would keep your %q goal in front of you.",
			*profile.Goal,
		))
	}
	if stats.distractingMinutes > 120 {
		nudges = append(nudges, fmt.Sprintf(
			"Distracting apps took %s today. Set app limits on your top offenders.",
			formatMinutes(stats.distractingMinutes),
		))
	}
	if distraction := strings.TrimSpace(lowerDeref(profile.Distraction)); distraction != "" {
		nudges = append(nudges, fmt.Sprintf(
			"You flagged %q as your weak spot. Keep your phone out of reach during that window.",
			*profile.Distraction,
		))
	}

	if len(nudges) == 0 {
		nudges = append(nudges, "You're on track. Keep logging your usage to sharpen these insights.")
	}
	return nudges
}

// hasAppMatching reports whether any logged app name hits a keyword, so
// goal nudges about a missing app only fire when it is truly absent.
func (s usageStats) hasAppMatching(keywords ...string) bool {
	for _, name := range s.appNames {
		if containsAny(strings.ToLower(name), keywords...) {
			return true
		}
	}
	return false
}

func (e *Engine) buildSuggestions(profile model.Profile, stats usageStats) []model.Suggestion {
	goal := strings.TrimSpace(lowerDeref(profile.Goal))
	skill := strings.TrimSpace(lowerDeref(profile.Skill))
	var items []model.Suggestion

	dsaCovered := false
	switch {
	case containsAny(skill, "dsa", "algorithm"):
		dsaCovered = true
		items = append(items, model.Suggestion{
			Title:       "DSA Practice Session",
			Description: fmt.Sprintf("Sharpen your %s skills with a focused practice video.", *profile.Skill),
			Link:        searchLink(*profile.Skill + " practice problems"),
		})
		items = append(items, model.Suggestion{
			Title:       "Array & String Drills",
			Description: "Work through array and string problems to build pattern recognition.",
		})
	case containsAny(skill, "coding", "programming"):
		items = append(items, model.Suggestion{
			Title:       "Daily Problem Practice",
			Description: fmt.Sprintf("Keep your %s skills sharp with one problem a day.", *profile.Skill),
			Link:        "https://leetcode.com/problemset/",
		})
	case containsAny(skill, "web", "javascript", "react"):
		items = append(items, model.Suggestion{
			Title:       fmt.Sprintf("Level Up Your %s", *profile.Skill),
			Description: fmt.Sprintf("A structured course to take your %s skills further.", *profile.Skill),
			Link:        searchLink(*profile.Skill + " course"),
		})
	}

	switch {
	case containsAny(goal, "coding", "programming"):
		items = append(items, model.Suggestion{
			Title:       "Daily Coding Challenge",
			Description: fmt.Sprintf("Turn your %q goal into a daily habit with bite-sized challenges.", *profile.Goal),
			Link:        searchLink("daily coding challenge " + *profile.Goal),
		})
		if !dsaCovered {
			items = append(items, model.Suggestion{
				Title:       "DSA for Interviews",
				Description: "Data structures and algorithms prep that compounds toward your coding goal.",
				Link:        searchLink("data structures and algorithms interview prep"),
			})
		}
	case containsAny(goal, "fitness", "workout", "gym", "exercise"):
		items = append(items, model.Suggestion{
			Title:       "Home Workout",
			Description: fmt.Sprintf("A guided session to move your %q goal forward today.", *profile.Goal),
			Link:        searchLink("home workout " + *profile.Goal),
		})
	case containsAny(goal, "read", "book"):
		items = append(items, model.Suggestion{
			Title:       "Read More, Scroll Less",
			Description: "Practical tips to fit more reading into your day.",
			Link:        searchLink("read more books productivity tips"),
		})
	}

	if skill != "" && goal != "" && len(items) < maxSuggestions {
		items = append(items, model.Suggestion{
			Title:       fmt.Sprintf("%s for %s", *profile.Skill, *profile.Goal),
			Description: "Targeted content combining your skill focus with your main goal.",
			Link:        searchLink(*profile.Skill + " " + *profile.Goal),
		})
	}

	distraction := strings.TrimSpace(lowerDeref(profile.Distraction))
	if (distraction != "" || stats.distractingMinutes > 60) && len(items) < maxSuggestions {
		description := "A short detox routine keeps your biggest distraction in check."
		if stats.distractingMinutes > 0 {
			description = fmt.Sprintf("You lost %s to distracting apps today. A short detox routine can win some of it back.", formatMinutes(stats.distractingMinutes))
		}
		items = append(items, model.Suggestion{
			Title:       "Break the Scroll Habit",
			Description: description,
			Link:        searchLink("digital detox tips"),
		})
	}

	if inspiration := strings.TrimSpace(lowerDeref(profile.Inspiration)); inspiration != "" && len(items) < maxSuggestions {
		items = append(items, model.Suggestion{
			Title:       fmt.Sprintf("Get Inspired by %s", *profile.Inspiration),
			Description: fmt.Sprintf("Talks and interviews with %s to recharge your motivation.", *profile.Inspiration),
			Link:        searchLink(*profile.Inspiration + " motivation interview"),
		})
	}

	if len(items) < maxSuggestions {
		items = append(items, model.Suggestion{
			Title:       "Focus & Productivity Techniques",
			Description: "Proven methods to boost your focus and reclaim your time.",
			Link:        searchLink("productivity techniques focus"),
		})
	}

	for len(items) < maxSuggestions {
		items = append(items, model.Suggestion{
			Title:       "Personal Development",
			Description: "Resources for continuous learning and self-improvement.",
			Link:        searchLink("personal development"),
		})
	}

	return items[:maxSuggestions]
}

// searchLink builds a search query URL from free text. Links are always
// searches, never hardcoded video ids.
func searchLink(query string) string {
	return "https://www.youtube.com/results?search_query=" + url.QueryEscape(query)
}

func formatMinutes(minutes int) string {
	if minutes < 60 {
		return fmt.Sprintf("%dm", minutes)
	}
	if minutes%60 == 0 {
		return fmt.Sprintf("%dh", minutes/60)
	}
	return fmt.Sprintf("%dh %dm", minutes/60, minutes%60)
}

func lowerDeref(value *string) string {
	if value == nil {
		return ""
	}
	return strings.ToLower(*value)
}

func containsAny(haystack string, keywords ...string) bool {
	if haystack == "" {
		return false
	}
	for _, keyword := range keywords {
		if strings.Contains(haystack, keyword) {
			return true
		}
	}
	return false
}
