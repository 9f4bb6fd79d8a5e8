package utils

import (
	"fmt"
	"strings"
)

// UserKey returns the note target key for a profile, e.g. "user:torvalds".
func UserKey(login string) string {
	return fmt.Sprintf("user:%s", login)
}

// RepoKey returns the note target key for a repository, e.g.
// "repo:torvalds/linux".
func RepoKey(fullName string) string {
	return fmt.Sprintf("repo:%s", fullName)
}

// ParseTargetKey splits a note target key into its kind and identifier.
// ok is false when the key has no "kind:identifier" shape.
func ParseTargetKey(key string) (kind, id string, ok bool) {
	i := strings.Index(key, ":")
	if i <= 0 || i == len(key)-1 {
		return "", "", false
	}
	return key[:i], key[i+1:], true
}
