package domain_test

import (
	"testing"

	"github.com/Kovah/obsidian-wakatime/internal/modules/settings/domain"
)

func TestAssociationsKeepConfiguredOrderAndSkipMalformedRules(t *testing.T) {
	t.Parallel()
	settings := domain.Settings{ProjectAssociations: []string{
		"a@P1",
		"a/b@P2",
		"broken-rule",
		"@no-path",
		"no-project@",
		"  work/notes @ Client ",
	}}
	assocs := settings.Associations()
	if len(assocs) != 3 {
		t.Fatalf("expected 3 parsed associations, got %d: %+v", len(assocs), assocs)
	}
	if assocs[0].Path != "a" || assocs[0].Project != "P1" {
		t.Fatalf("first rule wrong: %+v", assocs[0])
	}
	if assocs[1].Path != "a/b" || assocs[1].Project != "P2" {
		t.Fatalf("second rule wrong: %+v", assocs[1])
	}
	if assocs[2].Path != "work/notes" || assocs[2].Project != "Client" {
		t.Fatalf("trimmed rule wrong: %+v", assocs[2])
	}
}

func TestShouldIgnoreMatchesSubstringInBothDirections(t *testing.T) {
	t.Parallel()
	settings := domain.Settings{IgnoreList: []string{"daily", "archive/2024/old-notes"}}

	// ignore entry contained in path
	if !settings.ShouldIgnore("journal/daily/monday.md") {
		t.Fatalf("entry-in-path should be ignored")
	}
	// path contained in ignore entry
	if !settings.ShouldIgnore("archive/2024") {
		t.Fatalf("path-in-entry should be ignored")
	}
	if settings.ShouldIgnore("projects/site.md") {
		t.Fatalf("unrelated path must not be ignored")
	}
	if settings.ShouldIgnore("") {
		t.Fatalf("empty path must not be ignored")
	}
}

func TestParseLinesDropsBlanksAndNormalizesLineEndings(t *testing.T) {
	t.Parallel()
	lines := domain.ParseLines("one\r\n\n  two  \n\n\nthree")
	if len(lines) != 3 || lines[0] != "one" || lines[1] != "two" || lines[2] != "three" {
		t.Fatalf("unexpected parse result: %#v", lines)
	}
	if got := domain.JoinLines(lines); got != "one\ntwo\nthree" {
		t.Fatalf("join mismatch: %q", got)
	}
}

func TestNormalizeAPIURLReducesToOrigin(t *testing.T) {
	t.Parallel()
	got, err := domain.NormalizeAPIURL("https://wakapi.example.com/api/v1/users?x=1")
	if err != nil {
		t.Fatalf("normalize: %v", err)
	}
	if got != "https://wakapi.example.com" {
		t.Fatalf("expected origin, got %q", got)
	}
	if got, err := domain.NormalizeAPIURL("  "); err != nil || got != "" {
		t.Fatalf("blank url must normalize to empty, got %q err=%v", got, err)
	}
	if _, err := domain.NormalizeAPIURL("ftp://example.com"); err == nil {
		t.Fatalf("non-http scheme must fail")
	}
	if _, err := domain.NormalizeAPIURL("https://"); err == nil {
		t.Fatalf("missing host must fail")
	}
}
