package in

import (
	"context"
	"os"

	hclog "github.com/hashicorp/go-hclog"
	"github.com/hashicorp/go-plugin"

	settingsdto "github.com/Kovah/obsidian-wakatime/internal/modules/settings/dto"
	settingsin "github.com/Kovah/obsidian-wakatime/internal/modules/settings/port/in"
	"github.com/Kovah/obsidian-wakatime/internal/modules/tracker/dto"
	trackerin "github.com/Kovah/obsidian-wakatime/internal/modules/tracker/port/in"
	"github.com/Kovah/obsidian-wakatime/internal/platform/bridgerpc"
)

// StatusSource exposes the status-bar text and pending user notice to the
// host editor, which polls them over the bridge.
type StatusSource interface {
	Status() string
	TakeNotice() string
}

// BridgeServer is the extension-point surface the host editor talks to.
// The editor launches this process and streams raw input events; all
// monitor and dispatch logic stays host-agnostic behind it.
type BridgeServer struct {
	tracker  trackerin.Usecase
	settings settingsin.Usecase
	status   StatusSource
	version  string
}

func NewBridgeServer(tracker trackerin.Usecase, settings settingsin.Usecase, status StatusSource, version string) *BridgeServer {
	return &BridgeServer{tracker: tracker, settings: settings, status: status, version: version}
}

func (s *BridgeServer) GetMetadata(_ context.Context, _ *bridgerpc.Empty) (*bridgerpc.Metadata, error) {
	return &bridgerpc.Metadata{Name: "obsidian-wakatime", Version: s.version}, nil
}

func (s *BridgeServer) RecordEvent(ctx context.Context, in *bridgerpc.EventRequest) (*bridgerpc.EventResponse, error) {
	out, err := s.tracker.HandleEvent(ctx, dto.EventInput{
		Kind:      in.Kind,
		Path:      in.Path,
		Line:      in.Line,
		Column:    in.Column,
		HasCursor: in.HasCursor,
	})
	if err != nil {
		return nil, err
	}
	return &bridgerpc.EventResponse{Emitted: out.Emitted, Reason: out.Reason}, nil
}

func (s *BridgeServer) GetStatus(ctx context.Context, _ *bridgerpc.Empty) (*bridgerpc.StatusResponse, error) {
	settings, err := s.settings.Get(ctx)
	if err != nil {
		return nil, err
	}
	return &bridgerpc.StatusResponse{
		Enabled:    settings.Enabled,
		StatusText: s.status.Status(),
		Notice:     s.status.TakeNotice(),
	}, nil
}

func (s *BridgeServer) SetEnabled(ctx context.Context, in *bridgerpc.SetEnabledRequest) (*bridgerpc.StatusResponse, error) {
	settings, err := s.settings.SetEnabled(ctx, settingsdto.SetEnabledInput{Enabled: in.Enabled})
	if err != nil {
		return nil, err
	}
	return &bridgerpc.StatusResponse{
		Enabled:    settings.Enabled,
		StatusText: s.status.Status(),
		Notice:     s.status.TakeNotice(),
	}, nil
}

// Serve blocks, exposing the bridge over the go-plugin handshake until the
// host editor disconnects.
func (s *BridgeServer) Serve() {
	plugin.Serve(&plugin.ServeConfig{
		HandshakeConfig: bridgerpc.HandshakeConfig,
		Plugins:         bridgerpc.PluginMap(s),
		GRPCServer:      plugin.DefaultGRPCServer,
		Logger: hclog.New(&hclog.LoggerOptions{
			Name:   "obsidian-wakatime",
			Output: os.Stderr,
			Level:  hclog.Info,
		}),
	})
}
