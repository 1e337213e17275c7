package core

import (
	"slices"
	"strings"
)

// RepoConfig represents the structure of the .gitgrant.yml file kept at the
// root of a participating repository.
type RepoConfig struct {
	// Extra instructions appended to the evaluation prompt.
	CustomInstructions []string `yaml:"custom_instructions"`

	// Issues carrying any of these labels are left out of the bounty program.
	// Matching is case-insensitive. Example: ["wontfix", "duplicate"]
	ExcludeLabels []string `yaml:"exclude_labels"`
}

// DefaultRepoConfig returns a config with default values.
func DefaultRepoConfig() *RepoConfig {
	return &RepoConfig{
		CustomInstructions: []string{},
		ExcludeLabels:      []string{},
	}
}

// Excludes reports whether an issue with the given labels should be skipped.
func (c *RepoConfig) Excludes(labels []string) bool {
	if c == nil {
		return false
	}
	for _, label := range labels {
		if slices.ContainsFunc(c.ExcludeLabels, func(excluded string) bool {
			return strings.EqualFold(excluded, label)
		}) {
			return true
		}
	}
	return false
}
