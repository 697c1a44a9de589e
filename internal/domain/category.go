package domain

import "strings"

// CategoryRule maps leading command tokens to a category label. Rules are a
// plain ordered data table: the first rule whose token set contains the
// command's first word wins.
type CategoryRule struct {
	Tokens []string
	Label  string
}

// CategoryOther is the fallback label when no rule matches.
const CategoryOther = "Other"

// DefaultCategoryRules is the built-in categorization table, evaluated
// top-to-bottom.
var DefaultCategoryRules = []CategoryRule{
	{Tokens: []string{"git", "gco", "gst", "gaa", "gcm", "gp", "gl", "gh"}, Label: "Git"},
	{Tokens: []string{"docker", "docker-compose", "podman"}, Label: "Docker"},
	{Tokens: []string{"kubectl", "k", "helm", "kustomize"}, Label: "Kubernetes"},
	{Tokens: []string{"npm", "yarn", "pnpm", "node"}, Label: "Npm"},
	{Tokens: []string{"python", "python3", "pip", "pip3", "conda", "poetry", "pytest"}, Label: "Python"},
	{Tokens: []string{"ls", "cd", "pwd", "mkdir", "rm", "cp", "mv", "find", "grep"}, Label: "System"},
	{Tokens: []string{"vim", "nvim", "code", "nano", "emacs"}, Label: "Editor"},
}

// Categorize assigns a label to the command using the given rule table.
// Matching is on the first whitespace-delimited token only.
func Categorize(command string, rules []CategoryRule) string {
	first, _, _ := strings.Cut(strings.TrimSpace(command), " ")
	if first == "" {
		return CategoryOther
	}
	for _, rule := range rules {
		for _, token := range rule.Tokens {
			if first == token {
				return rule.Label
			}
		}
	}
	return CategoryOther
}
