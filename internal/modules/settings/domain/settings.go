package domain

import (
	"fmt"
	"net/url"
	"strings"
)

// Settings is the persisted plugin configuration. Field names follow the
// key-value layout the editor host stores: camelCase keys, associations as
// "path@project" rules, ignore entries as bare path fragments.
type Settings struct {
	Enabled             bool     `yaml:"enabled"`
	APIKey              string   `yaml:"apiKey"`
	APIURL              string   `yaml:"apiUrl"`
	DefaultProject      string   `yaml:"defaultProject"`
	IgnoreList          []string `yaml:"ignoreList"`
	ProjectAssociations []string `yaml:"projectAssociations"`
}

// Association maps a path fragment to a project name. Rule order matters:
// the first association whose fragment is contained in a file path wins.
type Association struct {
	Path    string
	Project string
}

func Default() Settings {
	return Settings{}
}

// Associations parses the stored "path@project" rules in configured order.
// Malformed rules are skipped rather than failing the whole list.
func (s Settings) Associations() []Association {
	out := make([]Association, 0, len(s.ProjectAssociations))
	for _, rule := range s.ProjectAssociations {
		path, project, ok := strings.Cut(rule, "@")
		path = strings.TrimSpace(path)
		project = strings.TrimSpace(project)
		if !ok || path == "" || project == "" {
			continue
		}
		out = append(out, Association{Path: path, Project: project})
	}
	return out
}

// ShouldIgnore reports whether a file path is excluded from tracking.
// Matching is bidirectional substring containment: an ignore entry inside
// the path, or the path inside the ignore entry.
func (s Settings) ShouldIgnore(path string) bool {
	if path == "" {
		return false
	}
	for _, entry := range s.IgnoreList {
		if entry == "" {
			continue
		}
		if strings.Contains(path, entry) || strings.Contains(entry, path) {
			return true
		}
	}
	return false
}

// ParseLines splits multi-line text surfaces (ignore list, associations)
// into their stored list form, dropping blank lines.
func ParseLines(text string) []string {
	lines := strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n")
	out := make([]string, 0, len(lines))
	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		out = append(out, line)
	}
	return out
}

// JoinLines renders a stored list back to its multi-line text surface.
func JoinLines(items []string) string {
	return strings.Join(items, "\n")
}

// NormalizeAPIURL validates a custom Wakapi base URL and normalizes it to
// its origin. An empty value means the default hosted API.
func NormalizeAPIURL(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", nil
	}
	parsed, err := url.Parse(raw)
	if err != nil {
		return "", fmt.Errorf("parse api url: %w", err)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return "", fmt.Errorf("api url must use http or https")
	}
	if parsed.Host == "" {
		return "", fmt.Errorf("api url must include a host")
	}
	return parsed.Scheme + "://" + parsed.Host, nil
}
