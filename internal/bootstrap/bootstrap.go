package bootstrap

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	hclog "github.com/hashicorp/go-hclog"

	heartbeatinadapter "github.com/Kovah/obsidian-wakatime/internal/modules/heartbeat/adapter/in"
	heartbeatoutadapter "github.com/Kovah/obsidian-wakatime/internal/modules/heartbeat/adapter/out"
	heartbeatservice "github.com/Kovah/obsidian-wakatime/internal/modules/heartbeat/service"
	heartbeatusecase "github.com/Kovah/obsidian-wakatime/internal/modules/heartbeat/usecase"
	settingsinadapter "github.com/Kovah/obsidian-wakatime/internal/modules/settings/adapter/in"
	settingsoutadapter "github.com/Kovah/obsidian-wakatime/internal/modules/settings/adapter/out"
	settingsservice "github.com/Kovah/obsidian-wakatime/internal/modules/settings/service"
	settingsusecase "github.com/Kovah/obsidian-wakatime/internal/modules/settings/usecase"
	trackerinadapter "github.com/Kovah/obsidian-wakatime/internal/modules/tracker/adapter/in"
	trackeroutadapter "github.com/Kovah/obsidian-wakatime/internal/modules/tracker/adapter/out"
	trackerservice "github.com/Kovah/obsidian-wakatime/internal/modules/tracker/service"
	trackerusecase "github.com/Kovah/obsidian-wakatime/internal/modules/tracker/usecase"
	"github.com/Kovah/obsidian-wakatime/internal/platform/clock"
	"github.com/Kovah/obsidian-wakatime/internal/platform/config"
	"github.com/Kovah/obsidian-wakatime/internal/platform/id"
	uiapp "github.com/Kovah/obsidian-wakatime/internal/ui/app"
)

// Version is the plugin version reported to the host editor.
const Version = "1.1.0"

type App struct {
	SettingsCLI  settingsinadapter.CLIHandler
	TrackerCLI   trackerinadapter.CLIHandler
	HeartbeatCLI heartbeatinadapter.CLIHandler
	Bridge       *trackerinadapter.BridgeServer
	Heartbeats   *heartbeatservice.HeartbeatService
	Status       *heartbeatoutadapter.MemoryStatus
}

func New(cfg config.Config) (*App, error) {
	clk := clock.SystemClock{}
	ids := id.RandomHex{}

	settingsUC := settingsusecase.NewInteractor(settingsservice.NewSettingsService(
		settingsoutadapter.NewYAMLSettingsStore(cfg.SettingsPath),
	))

	dispatchLog, err := heartbeatoutadapter.NewSQLiteDispatchLog(cfg.DBPath)
	if err != nil {
		return nil, fmt.Errorf("new dispatch log: %w", err)
	}
	status := heartbeatoutadapter.NewMemoryStatus()
	heartbeatSvc := heartbeatservice.NewHeartbeatService(
		clk,
		ids,
		heartbeatoutadapter.NewHTTPAPIClient(),
		status,
		status,
		dispatchLog,
		hclog.Default().Named("heartbeat"),
	)
	heartbeatUC := heartbeatusecase.NewInteractor(heartbeatSvc, settingsUC, dispatchLog, cfg.VaultPath, cfg.VaultName())

	trackerUC := trackerusecase.NewInteractor(
		trackerservice.NewTrackerService(),
		settingsUC,
		trackeroutadapter.NewHeartbeatSinkAdapter(heartbeatUC),
		clk,
	)

	return &App{
		SettingsCLI:  settingsinadapter.NewCLIHandler(settingsUC),
		TrackerCLI:   trackerinadapter.NewCLIHandler(trackerUC),
		HeartbeatCLI: heartbeatinadapter.NewCLIHandler(heartbeatUC),
		Bridge:       trackerinadapter.NewBridgeServer(trackerUC, settingsUC, status, Version),
		Heartbeats:   heartbeatSvc,
		Status:       status,
	}, nil
}

func RunTUI(cfg config.Config, app *App) error {
	model := uiapp.NewModel(cfg.VaultName(), app.SettingsCLI, app.HeartbeatCLI, app.Status)
	program := tea.NewProgram(model, tea.WithAltScreen())
	_, err := program.Run()
	return err
}
