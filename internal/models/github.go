package models

// User is a GitHub user profile as returned by GET /users/{username}.
// Profiles are immutable snapshots; nothing in this service mutates them
// after decoding.
type User struct {
	Login       string `json:"login"`
	AvatarURL   string `json:"avatar_url"`
	HTMLURL     string `json:"html_url"`
	Name        string `json:"name,omitempty"`
	Company     string `json:"company,omitempty"`
	Blog        string `json:"blog,omitempty"`
	Location    string `json:"location,omitempty"`
	Bio         string `json:"bio,omitempty"`
	Followers   int    `json:"followers"`
	Following   int    `json:"following"`
	PublicRepos int    `json:"public_repos"`
}

// Repository is a GitHub repository as returned by GET /users/{username}/repos.
type Repository struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	FullName    string `json:"full_name"`
	HTMLURL     string `json:"html_url"`
	Description string `json:"description,omitempty"`
	StarsCount  int    `json:"stargazers_count"`
	Language    string `json:"language,omitempty"`
	ForksCount  int    `json:"forks_count"`
}

// CommitStub is the commit shape embedded in push event payloads.
type CommitStub struct {
	SHA     string `json:"sha"`
	Message string `json:"message"`
}

// EventPayload carries the fields of an event payload this service interprets.
// Only commits on push events are read; everything else passes through untouched.
type EventPayload struct {
	Commits []CommitStub `json:"commits,omitempty"`
}

// Event is a public GitHub event. Only the "PushEvent" type is semantically
// interpreted; other types are carried but ignored by aggregation.
type Event struct {
	ID        string        `json:"id"`
	Type      string        `json:"type"`
	CreatedAt string        `json:"created_at"`
	Repo      EventRepo     `json:"repo"`
	Payload   *EventPayload `json:"payload,omitempty"`
}

// EventRepo identifies the repository an event occurred in.
type EventRepo struct {
	Name string `json:"name"`
}

// PushEventType is the only event type counted by commit activity.
const PushEventType = "PushEvent"

// Snapshot is the (username, profile, repositories, events) tuple fetched for
// one account at one point in time. It is the unit of input to aggregation and
// narration.
type Snapshot struct {
	Username string       `json:"username"`
	User     *User        `json:"user"`
	Repos    []Repository `json:"repos"`
	Events   []Event      `json:"events,omitempty"`
}
