package config

import (
	"os"
	"strconv"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// Config holds all runtime configuration, loaded from the process environment.
type Config struct {
	Port string

	GitHub GitHubConfig
	OpenAI OpenAIConfig

	// ActivityWindowDays is the lookback window for commit activity.
	ActivityWindowDays int

	// NotesFile is the path of the JSON blob the notes store persists to when
	// no database connection string is configured.
	NotesFile string

	// DBConnectionString selects the Postgres-backed notes blob when set.
	DBConnectionString string
}

// GitHubConfig holds GitHub API configuration. The token is optional; without
// it requests run under anonymous rate limits.
type GitHubConfig struct {
	APIBaseURL    string
	Token         string
	ReposPerPage  int
	EventsPerPage int
}

// OpenAIConfig holds chat-completion API configuration. An empty APIKey puts
// the narration service in fallback mode.
type OpenAIConfig struct {
	APIKey  string
	Model   string
	BaseURL string
}

// Load reads configuration from the environment, applying defaults.
func Load() (*Config, error) {
	reposPerPage, err := strconv.Atoi(getEnv("REPOS_PER_PAGE", "100"))
	if err != nil {
		return nil, err
	}
	eventsPerPage, err := strconv.Atoi(getEnv("EVENTS_PER_PAGE", "100"))
	if err != nil {
		return nil, err
	}
	windowDays, err := strconv.Atoi(getEnv("ACTIVITY_WINDOW_DAYS", "30"))
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		Port: getEnv("PORT", "8080"),
		GitHub: GitHubConfig{
			APIBaseURL:    getEnv("GITHUB_API_BASE", "https://api.github.com"),
			Token:         getEnv("GITHUB_TOKEN", ""),
			ReposPerPage:  reposPerPage,
			EventsPerPage: eventsPerPage,
		},
		OpenAI: OpenAIConfig{
			APIKey:  getEnv("OPENAI_API_KEY", ""),
			Model:   getEnv("OPENAI_MODEL", "gpt-4o-mini"),
			BaseURL: getEnv("OPENAI_BASE_URL", "https://api.openai.com/v1"),
		},
		ActivityWindowDays: windowDays,
		NotesFile:          getEnv("NOTES_FILE", "git-scope-notes.json"),
		DBConnectionString: getEnv("DB_CONNECTION_STRING", ""),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if err := validation.ValidateStruct(c,
		validation.Field(&c.Port, validation.Required),
		validation.Field(&c.ActivityWindowDays, validation.Min(1)),
		validation.Field(&c.NotesFile, validation.Required.When(c.DBConnectionString == "")),
	); err != nil {
		return err
	}
	if err := validation.ValidateStruct(&c.GitHub,
		validation.Field(&c.GitHub.APIBaseURL, validation.Required),
		validation.Field(&c.GitHub.ReposPerPage, validation.Min(1), validation.Max(100)),
		validation.Field(&c.GitHub.EventsPerPage, validation.Min(1), validation.Max(100)),
	); err != nil {
		return err
	}
	return validation.ValidateStruct(&c.OpenAI,
		validation.Field(&c.OpenAI.Model, validation.Required),
		validation.Field(&c.OpenAI.BaseURL, validation.Required),
	)
}

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}
