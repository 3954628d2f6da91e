package domain

import (
	"encoding/base64"
	"path"
	"path/filepath"
	"strings"
	"time"
)

const (
	// PluginUserAgent is the editor constant reported with every heartbeat.
	PluginUserAgent = "obsidian-wakatime/1.1.0"

	EntityTypeFile = "file"

	CategoryWriting = "writing"
	CategoryReading = "reading"

	// DefaultAPIBaseURL is the hosted WakaTime API. A configured custom
	// base URL (self-hosted Wakapi) replaces it.
	DefaultAPIBaseURL = "https://api.wakatime.com"

	heartbeatsPath = "/api/v1/users/current/heartbeats"
)

// Heartbeat is the exact JSON body posted to the tracking API. Nullable
// fields are pointers so absent values serialize as null.
type Heartbeat struct {
	Time      float64 `json:"time"`
	Entity    string  `json:"entity"`
	Type      string  `json:"type"`
	Project   string  `json:"project"`
	Language  *string `json:"language"`
	IsWrite   bool    `json:"is_write"`
	CursorPos *int    `json:"cursorpos"`
	LineNo    *int    `json:"lineno"`
	Plugin    string  `json:"plugin"`
	Category  string  `json:"category"`
}

// Association maps a path fragment to a project name, in configured order.
type Association struct {
	Path    string
	Project string
}

// BuildInput carries everything needed to assemble one heartbeat.
type BuildInput struct {
	VaultPath      string
	VaultName      string
	RelativePath   string
	IsWrite        bool
	Line           int
	Column         int
	HasCursor      bool
	At             time.Time
	DefaultProject string
	Associations   []Association
}

// Build assembles the heartbeat payload from an activity observation.
func Build(input BuildInput) Heartbeat {
	beat := Heartbeat{
		Time:    float64(input.At.UnixMilli()) / 1000.0,
		Entity:  filepath.Join(input.VaultPath, filepath.FromSlash(input.RelativePath)),
		Type:    EntityTypeFile,
		Project: ResolveProject(input.RelativePath, input.Associations, input.DefaultProject, input.VaultName),
		IsWrite: input.IsWrite,
		Plugin:  PluginUserAgent,
	}
	if language, ok := LanguageFor(input.RelativePath); ok {
		beat.Language = &language
		beat.Category = CategoryWriting
	} else {
		beat.Category = CategoryReading
	}
	if input.HasCursor {
		line := input.Line
		column := input.Column
		beat.LineNo = &line
		beat.CursorPos = &column
	}
	return beat
}

// languages is an extend-by-extension table, not a generic detector.
var languages = map[string]string{
	".md":       "Markdown",
	".markdown": "Markdown",
}

func LanguageFor(p string) (string, bool) {
	language, ok := languages[strings.ToLower(path.Ext(p))]
	return language, ok
}

// ResolveProject scans association rules in configured order; the first
// rule whose path fragment is contained in the file path wins. Without a
// match the configured default project applies, then the vault name.
func ResolveProject(p string, associations []Association, defaultProject, vaultName string) string {
	for _, a := range associations {
		if a.Path != "" && strings.Contains(p, a.Path) {
			return a.Project
		}
	}
	if defaultProject != "" {
		return defaultProject
	}
	return vaultName
}

// Target identifies the API endpoint and credential for one dispatch.
type Target struct {
	BaseURL string
	APIKey  string
}

// URL resolves the heartbeats endpoint: the custom base URL when one is
// configured, the default hosted API otherwise.
func (t Target) URL() string {
	base := strings.TrimRight(t.BaseURL, "/")
	if base == "" {
		base = DefaultAPIBaseURL
	}
	return base + heartbeatsPath
}

// AuthHeader returns the Authorization value. Self-hosted endpoints take a
// Basic-encoded key, the hosted API a Bearer token.
func (t Target) AuthHeader() string {
	if t.BaseURL != "" {
		return "Basic " + base64.StdEncoding.EncodeToString([]byte(t.APIKey))
	}
	return "Bearer " + t.APIKey
}
