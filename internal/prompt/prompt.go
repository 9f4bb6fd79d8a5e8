// Package prompt renders aggregated metrics and profile fields into the fixed
// narration templates sent to the chat-completion API. Output is a single
// deterministic string per call; missing optional fields render as "N/A".
package prompt

import "fmt"

// SystemSummary is the system prompt for single-profile summaries.
const SystemSummary = "You are a senior developer relations writer. Produce concise, accurate, high-signal profile summaries using only the provided data. Do NOT infer, guess, or mention private activity. Keep the tone neutral, developer-focused, and avoid fluff. Format the answer in Markdown with the exact sections and limits requested. If some data is missing, omit that detail without speculating."

// SystemCompare is the system prompt for two-profile comparisons.
const SystemCompare = "You are a senior developer relations writer. Produce concise, accurate, high-signal comparisons using only the provided data. Do NOT infer or guess. Keep tone neutral and developer-focused. Format strictly as requested."

// SummaryParams holds the slots of the single-profile summary template.
type SummaryParams struct {
	Username     string
	Name         string
	Bio          string
	Followers    int
	PublicRepos  int
	TotalStars   int
	TopRepos     string
	TopLanguages string
	CommitCount  int
}

// CompareParams holds the per-user slots of the comparison template.
type CompareParams struct {
	Username     string
	Name         string
	Followers    int
	PublicRepos  int
	TotalStars   int
	TopRepos     string
	TopLanguages string
	Commits30d   int
}

// BuildSummaryPrompt renders the single-profile summary prompt.
func BuildSummaryPrompt(p SummaryParams) string {
	return fmt.Sprintf(`Analyze GitHub user @%s using ONLY this snapshot:

Profile
- Name: %s
- Bio: %s
- Followers: %d
- Public repos: %d

Repos summary
- Total stars: %d
- Top repos (by stars, up to 5): %s
- Primary languages (top 3 by repo count): %s

Recent activity
- Push events (last 30d): %d

Write:
1) Summary (max 90 words) focusing on concrete strengths supported by the data.
2) Strengths (3-5 bullets). Each bullet starts with a **bold noun phrase**.
3) Suggestions (3-5 bullets) that are specific and actionable (docs, tests, topics, CI, issues, collaboration, visibility).

Rules:
- Do NOT mention missing/unknown data.
- Do NOT suggest things already evidenced as strong.
- No marketing language. Be direct.
- Markdown only. No preamble. No closing sentence.`,
		p.Username,
		orNA(p.Name),
		orNA(p.Bio),
		p.Followers,
		p.PublicRepos,
		p.TotalStars,
		orNA(p.TopRepos),
		orNA(p.TopLanguages),
		p.CommitCount,
	)
}

// BuildComparePrompt renders the two-profile comparison prompt.
func BuildComparePrompt(a, b CompareParams) string {
	return fmt.Sprintf(`Compare two GitHub users using ONLY this snapshot.

User A: @%s
Profile: name=%s, followers=%d, public_repos=%d
Repos: total_stars=%d, top_repos=%s, top_languages=%s
Activity: push_commits_30d=%d

User B: @%s
Profile: name=%s, followers=%d, public_repos=%d
Repos: total_stars=%d, top_repos=%s, top_languages=%s
Activity: push_commits_30d=%d

Write:
1) Summary (max 80 words) with data-backed contrast.
2) A vs B (3-6 bullets) with bold metric labels (e.g., **Total stars:** A X vs B Y).
3) Suggestions (3-5 bullets) tailored for each, prefixed with A: or B:.

Rules:
- No speculation; only use given data.
- No marketing language; be direct.
- Markdown only.`,
		a.Username, orNA(a.Name), a.Followers, a.PublicRepos,
		a.TotalStars, orNA(a.TopRepos), orNA(a.TopLanguages), a.Commits30d,
		b.Username, orNA(b.Name), b.Followers, b.PublicRepos,
		b.TotalStars, orNA(b.TopRepos), orNA(b.TopLanguages), b.Commits30d,
	)
}

func orNA(s string) string {
	if s == "" {
		return "N/A"
	}
	return s
}
