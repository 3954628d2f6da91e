package usecase_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	hclog "github.com/hashicorp/go-hclog"

	"github.com/Kovah/obsidian-wakatime/internal/modules/heartbeat/domain"
	"github.com/Kovah/obsidian-wakatime/internal/modules/heartbeat/dto"
	"github.com/Kovah/obsidian-wakatime/internal/modules/heartbeat/service"
	"github.com/Kovah/obsidian-wakatime/internal/modules/heartbeat/usecase"
	settingsdto "github.com/Kovah/obsidian-wakatime/internal/modules/settings/dto"
	apperrors "github.com/Kovah/obsidian-wakatime/internal/platform/errors"
)

type fakeSettings struct {
	out settingsdto.SettingsOutput
}

func (f *fakeSettings) Get(_ context.Context) (settingsdto.SettingsOutput, error) {
	return f.out, nil
}

func (f *fakeSettings) Update(_ context.Context, _ settingsdto.UpdateInput) (settingsdto.SettingsOutput, error) {
	return f.out, nil
}

func (f *fakeSettings) SetEnabled(_ context.Context, _ settingsdto.SetEnabledInput) (settingsdto.SettingsOutput, error) {
	return f.out, nil
}

type capturingClient struct {
	mu      sync.Mutex
	beats   []domain.Heartbeat
	targets []domain.Target
}

func (c *capturingClient) Send(_ context.Context, beat domain.Heartbeat, target domain.Target) (int, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.beats = append(c.beats, beat)
	c.targets = append(c.targets, target)
	return 201, nil
}

type nopStatus struct{}

func (nopStatus) SetStatus(string) {}
func (nopStatus) Notify(string)    {}

type fixedClock struct{ at time.Time }

func (c fixedClock) Now() time.Time { return c.at }

type staticID struct{}

func (staticID) New() string { return "id" }

func newSendUsecase(settings settingsdto.SettingsOutput) (*capturingClient, *service.HeartbeatService, func(context.Context, dto.SendInput) (dto.SendOutput, error)) {
	client := &capturingClient{}
	svc := service.NewHeartbeatService(
		fixedClock{at: time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)},
		staticID{},
		client,
		nopStatus{},
		nopStatus{},
		nil,
		hclog.NewNullLogger(),
	)
	uc := usecase.NewInteractor(svc, &fakeSettings{out: settings}, nil, "/home/user/Vault", "Vault")
	return client, svc, uc.Send
}

func TestSendIsRejectedWhileTrackingIsOff(t *testing.T) {
	t.Parallel()
	_, _, send := newSendUsecase(settingsdto.SettingsOutput{Enabled: false})
	if _, err := send(context.Background(), dto.SendInput{RelativePath: "a.md"}); !errors.Is(err, apperrors.ErrTrackingDisabled) {
		t.Fatalf("expected tracking-disabled error, got %v", err)
	}
}

func TestSendBuildsTheHeartbeatFromSettingsAndDispatches(t *testing.T) {
	t.Parallel()
	settings := settingsdto.SettingsOutput{
		Enabled: true,
		APIKey:  "waka_secret",
		APIURL:  "https://wakapi.example.com",
		Associations: []settingsdto.Association{
			{Path: "work", Project: "Client"},
		},
		DefaultProject: "Notes",
	}
	client, svc, send := newSendUsecase(settings)

	out, err := send(context.Background(), dto.SendInput{
		RelativePath: "work/plan.md",
		IsWrite:      true,
		Line:         7,
		Column:       2,
		HasCursor:    true,
		At:           time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC),
	})
	if err != nil {
		t.Fatalf("send: %v", err)
	}
	if out.Project != "Client" {
		t.Fatalf("association must win over default project, got %q", out.Project)
	}
	if out.Language != "Markdown" || out.Category != "writing" || !out.IsWrite {
		t.Fatalf("derived fields wrong: %+v", out)
	}

	svc.Wait()
	if len(client.beats) != 1 {
		t.Fatalf("expected 1 dispatched heartbeat, got %d", len(client.beats))
	}
	beat := client.beats[0]
	if beat.Entity != "/home/user/Vault/work/plan.md" {
		t.Fatalf("entity: %q", beat.Entity)
	}
	if beat.LineNo == nil || *beat.LineNo != 7 {
		t.Fatalf("lineno: %v", beat.LineNo)
	}
	target := client.targets[0]
	if target.BaseURL != "https://wakapi.example.com" || target.APIKey != "waka_secret" {
		t.Fatalf("target wrong: %+v", target)
	}
}

func TestTailWithoutALogIsEmpty(t *testing.T) {
	t.Parallel()
	client := &capturingClient{}
	svc := service.NewHeartbeatService(fixedClock{}, staticID{}, client, nopStatus{}, nopStatus{}, nil, hclog.NewNullLogger())
	uc := usecase.NewInteractor(svc, &fakeSettings{}, nil, "/v", "v")
	outcomes, err := uc.Tail(context.Background(), 10)
	if err != nil || len(outcomes) != 0 {
		t.Fatalf("expected empty tail, got %v err=%v", outcomes, err)
	}
}
