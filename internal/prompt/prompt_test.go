package prompt

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBuildSummaryPrompt(t *testing.T) {
	t.Run("fills all slots", func(t *testing.T) {
		out := BuildSummaryPrompt(SummaryParams{
			Username:     "octocat",
			Name:         "The Octocat",
			Bio:          "Mascot",
			Followers:    42,
			PublicRepos:  8,
			TotalStars:   120,
			TopRepos:     "hello-world (100★)",
			TopLanguages: "Go (3)",
			CommitCount:  17,
		})

		assert.Contains(t, out, "Analyze GitHub user @octocat")
		assert.Contains(t, out, "- Name: The Octocat")
		assert.Contains(t, out, "- Bio: Mascot")
		assert.Contains(t, out, "- Followers: 42")
		assert.Contains(t, out, "- Public repos: 8")
		assert.Contains(t, out, "- Total stars: 120")
		assert.Contains(t, out, "- Top repos (by stars, up to 5): hello-world (100★)")
		assert.Contains(t, out, "- Primary languages (top 3 by repo count): Go (3)")
		assert.Contains(t, out, "- Push events (last 30d): 17")
	})

	t.Run("missing optional fields render as N/A", func(t *testing.T) {
		out := BuildSummaryPrompt(SummaryParams{Username: "ghost"})

		assert.Contains(t, out, "- Name: N/A")
		assert.Contains(t, out, "- Bio: N/A")
		assert.Contains(t, out, "- Top repos (by stars, up to 5): N/A")
		assert.Contains(t, out, "- Primary languages (top 3 by repo count): N/A")
	})

	t.Run("deterministic for identical inputs", func(t *testing.T) {
		p := SummaryParams{Username: "octocat", TotalStars: 1}
		assert.Equal(t, BuildSummaryPrompt(p), BuildSummaryPrompt(p))
	})
}

func TestBuildComparePrompt(t *testing.T) {
	a := CompareParams{
		Username:     "alice",
		Name:         "Alice",
		Followers:    10,
		PublicRepos:  5,
		TotalStars:   50,
		TopRepos:     "tool (30★)",
		TopLanguages: "Rust (4)",
		Commits30d:   9,
	}
	b := CompareParams{Username: "bob"}

	out := BuildComparePrompt(a, b)

	assert.Contains(t, out, "User A: @alice")
	assert.Contains(t, out, "Profile: name=Alice, followers=10, public_repos=5")
	assert.Contains(t, out, "Repos: total_stars=50, top_repos=tool (30★), top_languages=Rust (4)")
	assert.Contains(t, out, "Activity: push_commits_30d=9")
	assert.Contains(t, out, "User B: @bob")
	assert.Contains(t, out, "Profile: name=N/A, followers=0, public_repos=0")
	assert.Contains(t, out, "Repos: total_stars=0, top_repos=N/A, top_languages=N/A")

	// A's section must precede B's.
	assert.Less(t, strings.Index(out, "User A:"), strings.Index(out, "User B:"))
}

func TestSystemPrompts(t *testing.T) {
	assert.NotEmpty(t, SystemSummary)
	assert.NotEmpty(t, SystemCompare)
	assert.NotEqual(t, SystemSummary, SystemCompare)
}
