package in_test

import (
	"context"
	"errors"
	"testing"
	"time"

	settingsdto "github.com/Kovah/obsidian-wakatime/internal/modules/settings/dto"
	in "github.com/Kovah/obsidian-wakatime/internal/modules/tracker/adapter/in"
	"github.com/Kovah/obsidian-wakatime/internal/modules/tracker/dto"
	"github.com/Kovah/obsidian-wakatime/internal/modules/tracker/service"
	"github.com/Kovah/obsidian-wakatime/internal/modules/tracker/usecase"
	"github.com/Kovah/obsidian-wakatime/internal/platform/bridgerpc"
	apperrors "github.com/Kovah/obsidian-wakatime/internal/platform/errors"
)

type fakeSettings struct {
	out        settingsdto.SettingsOutput
	enabledErr error
}

func (f *fakeSettings) Get(_ context.Context) (settingsdto.SettingsOutput, error) {
	return f.out, nil
}

func (f *fakeSettings) Update(_ context.Context, _ settingsdto.UpdateInput) (settingsdto.SettingsOutput, error) {
	return f.out, nil
}

func (f *fakeSettings) SetEnabled(_ context.Context, input settingsdto.SetEnabledInput) (settingsdto.SettingsOutput, error) {
	if f.enabledErr != nil {
		return settingsdto.SettingsOutput{}, f.enabledErr
	}
	f.out.Enabled = input.Enabled
	return f.out, nil
}

type fakeSink struct {
	emitted []dto.EmitInput
}

func (f *fakeSink) Emit(_ context.Context, input dto.EmitInput) error {
	f.emitted = append(f.emitted, input)
	return nil
}

type fakeStatus struct {
	status string
	notice string
}

func (f *fakeStatus) Status() string { return f.status }

func (f *fakeStatus) TakeNotice() string {
	notice := f.notice
	f.notice = ""
	return notice
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

func newBridge(settings *fakeSettings) (*in.BridgeServer, *fakeSink, *fakeStatus) {
	sink := &fakeSink{}
	status := &fakeStatus{status: "WakaTime"}
	tracker := usecase.NewInteractor(service.NewTrackerService(), settings, sink, systemClock{})
	return in.NewBridgeServer(tracker, settings, status, "1.1.0"), sink, status
}

func TestGetMetadataReportsNameAndVersion(t *testing.T) {
	t.Parallel()
	bridge, _, _ := newBridge(&fakeSettings{})
	meta, err := bridge.GetMetadata(context.Background(), &bridgerpc.Empty{})
	if err != nil {
		t.Fatalf("metadata: %v", err)
	}
	if meta.Name != "obsidian-wakatime" || meta.Version != "1.1.0" {
		t.Fatalf("metadata wrong: %+v", meta)
	}
}

func TestRecordEventFlowsThroughTheMonitor(t *testing.T) {
	t.Parallel()
	settings := &fakeSettings{out: settingsdto.SettingsOutput{Enabled: true, APIKey: "k"}}
	bridge, sink, _ := newBridge(settings)
	ctx := context.Background()

	resp, err := bridge.RecordEvent(ctx, &bridgerpc.EventRequest{Kind: "save", Path: "a.md", Line: 3, Column: 1, HasCursor: true})
	if err != nil {
		t.Fatalf("record event: %v", err)
	}
	if !resp.Emitted {
		t.Fatalf("save must emit: %+v", resp)
	}
	if len(sink.emitted) != 1 || !sink.emitted[0].IsWrite || sink.emitted[0].Line != 3 {
		t.Fatalf("sink input wrong: %+v", sink.emitted)
	}

	// second pointer event on the same file inside the window
	resp, err = bridge.RecordEvent(ctx, &bridgerpc.EventRequest{Kind: "pointer", Path: "a.md"})
	if err != nil {
		t.Fatalf("second event: %v", err)
	}
	if resp.Emitted || resp.Reason != dto.ReasonDebounced {
		t.Fatalf("expected debounce over the bridge, got %+v", resp)
	}
}

func TestGetStatusDeliversEachNoticeOnce(t *testing.T) {
	t.Parallel()
	settings := &fakeSettings{out: settingsdto.SettingsOutput{Enabled: true, APIKey: "k"}}
	bridge, _, status := newBridge(settings)
	status.notice = "WakaTime heartbeat could not be sent."
	ctx := context.Background()

	resp, err := bridge.GetStatus(ctx, &bridgerpc.Empty{})
	if err != nil {
		t.Fatalf("status: %v", err)
	}
	if !resp.Enabled || resp.StatusText != "WakaTime" || resp.Notice == "" {
		t.Fatalf("status response wrong: %+v", resp)
	}

	resp, err = bridge.GetStatus(ctx, &bridgerpc.Empty{})
	if err != nil {
		t.Fatalf("second status: %v", err)
	}
	if resp.Notice != "" {
		t.Fatalf("notice must be consumed on first poll, got %q", resp.Notice)
	}
}

func TestSetEnabledPropagatesTheAPIKeyGate(t *testing.T) {
	t.Parallel()
	settings := &fakeSettings{enabledErr: apperrors.ErrAPIKeyRequired}
	bridge, _, _ := newBridge(settings)

	if _, err := bridge.SetEnabled(context.Background(), &bridgerpc.SetEnabledRequest{Enabled: true}); !errors.Is(err, apperrors.ErrAPIKeyRequired) {
		t.Fatalf("expected api key gate, got %v", err)
	}

	settings.enabledErr = nil
	settings.out = settingsdto.SettingsOutput{APIKey: "k"}
	resp, err := bridge.SetEnabled(context.Background(), &bridgerpc.SetEnabledRequest{Enabled: true})
	if err != nil {
		t.Fatalf("enable: %v", err)
	}
	if !resp.Enabled {
		t.Fatalf("expected enabled status, got %+v", resp)
	}
}
