package usecase_test

import (
	"context"
	"path/filepath"
	"testing"

	settingsout "github.com/Kovah/obsidian-wakatime/internal/modules/settings/adapter/out"
	"github.com/Kovah/obsidian-wakatime/internal/modules/settings/dto"
	settingsin "github.com/Kovah/obsidian-wakatime/internal/modules/settings/port/in"
	"github.com/Kovah/obsidian-wakatime/internal/modules/settings/service"
	"github.com/Kovah/obsidian-wakatime/internal/modules/settings/usecase"
	apperrors "github.com/Kovah/obsidian-wakatime/internal/platform/errors"
)

func newUsecase(t *testing.T) (context.Context, settingsin.Usecase) {
	t.Helper()
	path := filepath.Join(t.TempDir(), ".obsidian-wakatime", "settings.yaml")
	uc := usecase.NewInteractor(service.NewSettingsService(settingsout.NewYAMLSettingsStore(path)))
	return context.Background(), uc
}

func TestEnableWithoutAPIKeyIsRejectedAndToggleStaysOff(t *testing.T) {
	t.Parallel()
	ctx, uc := newUsecase(t)

	if _, err := uc.SetEnabled(ctx, dto.SetEnabledInput{Enabled: true}); err != apperrors.ErrAPIKeyRequired {
		t.Fatalf("expected api key gate, got %v", err)
	}
	out, err := uc.Get(ctx)
	if err != nil {
		t.Fatalf("get settings: %v", err)
	}
	if out.Enabled {
		t.Fatalf("toggle must stay off without an api key")
	}
}

func TestUpdatePersistsAndEnableSucceedsWithKey(t *testing.T) {
	t.Parallel()
	ctx, uc := newUsecase(t)

	updated, err := uc.Update(ctx, dto.UpdateInput{
		APIKey:           "waka_secret",
		APIURL:           "https://wakapi.example.com/api/",
		DefaultProject:   "Notes",
		IgnoreText:       "daily\ntemplates",
		AssociationsText: "work@Client\npersonal@Me",
	})
	if err != nil {
		t.Fatalf("update settings: %v", err)
	}
	if updated.APIURL != "https://wakapi.example.com" {
		t.Fatalf("api url must be normalized to origin, got %q", updated.APIURL)
	}
	if len(updated.IgnoreList) != 2 || len(updated.Associations) != 2 {
		t.Fatalf("lists not parsed: %+v", updated)
	}

	enabled, err := uc.SetEnabled(ctx, dto.SetEnabledInput{Enabled: true})
	if err != nil {
		t.Fatalf("enable: %v", err)
	}
	if !enabled.Enabled {
		t.Fatalf("expected tracking on")
	}

	// fresh read hits the store, not in-memory state
	reloaded, err := uc.Get(ctx)
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	if !reloaded.Enabled || reloaded.APIKey != "waka_secret" || reloaded.DefaultProject != "Notes" {
		t.Fatalf("persisted settings wrong: %+v", reloaded)
	}
	if reloaded.Associations[0].Path != "work" || reloaded.Associations[0].Project != "Client" {
		t.Fatalf("association order lost: %+v", reloaded.Associations)
	}
}

func TestClearingAPIKeyForcesTrackingOff(t *testing.T) {
	t.Parallel()
	ctx, uc := newUsecase(t)

	if _, err := uc.Update(ctx, dto.UpdateInput{APIKey: "waka_secret"}); err != nil {
		t.Fatalf("seed key: %v", err)
	}
	if _, err := uc.SetEnabled(ctx, dto.SetEnabledInput{Enabled: true}); err != nil {
		t.Fatalf("enable: %v", err)
	}
	out, err := uc.Update(ctx, dto.UpdateInput{APIKey: ""})
	if err != nil {
		t.Fatalf("clear key: %v", err)
	}
	if out.Enabled {
		t.Fatalf("clearing the key must force tracking off")
	}
}

func TestInvalidAPIURLRejectsTheWholeUpdate(t *testing.T) {
	t.Parallel()
	ctx, uc := newUsecase(t)

	if _, err := uc.Update(ctx, dto.UpdateInput{APIKey: "k", APIURL: "not a url at all ://"}); err == nil {
		t.Fatalf("invalid api url must fail")
	}
	out, err := uc.Get(ctx)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if out.APIKey != "" {
		t.Fatalf("failed update must not persist anything: %+v", out)
	}
}
