package main

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/Kovah/obsidian-wakatime/internal/bootstrap"
	heartbeatdto "github.com/Kovah/obsidian-wakatime/internal/modules/heartbeat/dto"
	settingsdto "github.com/Kovah/obsidian-wakatime/internal/modules/settings/dto"
	trackerdto "github.com/Kovah/obsidian-wakatime/internal/modules/tracker/dto"
	"github.com/Kovah/obsidian-wakatime/internal/platform/config"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		_, _ = fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var vaultPath string

	root := &cobra.Command{
		Use:           "obsidian-wakatime",
		Short:         "WakaTime/Wakapi heartbeat tracking for a markdown vault",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&vaultPath, "vault", ".", "vault path")

	root.AddCommand(newServeCmd(&vaultPath))
	root.AddCommand(newTUICmd(&vaultPath))
	root.AddCommand(newStatusCmd(&vaultPath))
	root.AddCommand(newEnableCmd(&vaultPath))
	root.AddCommand(newDisableCmd(&vaultPath))
	root.AddCommand(newSettingsCmd(&vaultPath))
	root.AddCommand(newSendCmd(&vaultPath))
	root.AddCommand(newEventCmd(&vaultPath))
	root.AddCommand(newLogCmd(&vaultPath))
	return root
}

func loadApp(vaultPath string) (*bootstrap.App, error) {
	cfg, err := config.New(vaultPath)
	if err != nil {
		return nil, err
	}
	return bootstrap.New(cfg)
}

func newServeCmd(vaultPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve the editor bridge (launched by the host editor)",
		RunE: func(_ *cobra.Command, _ []string) error {
			app, err := loadApp(*vaultPath)
			if err != nil {
				return err
			}
			app.Bridge.Serve()
			app.Heartbeats.Wait()
			return nil
		},
	}
}

func newTUICmd(vaultPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "tui",
		Short: "Run the status and settings terminal UI",
		RunE: func(_ *cobra.Command, _ []string) error {
			cfg, err := config.New(*vaultPath)
			if err != nil {
				return err
			}
			app, err := bootstrap.New(cfg)
			if err != nil {
				return err
			}
			return bootstrap.RunTUI(cfg, app)
		},
	}
}

func newStatusCmd(vaultPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show tracking status and the last dispatch outcome",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := loadApp(*vaultPath)
			if err != nil {
				return err
			}
			settings, err := app.SettingsCLI.Get(context.Background())
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "enabled=%t api_url=%s default_project=%s\n", settings.Enabled, orDefault(settings.APIURL, "wakatime.com"), settings.DefaultProject)
			outcomes, err := app.HeartbeatCLI.Tail(context.Background(), 1)
			if err != nil {
				return err
			}
			if len(outcomes) == 0 {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "no heartbeats dispatched yet")
				return nil
			}
			printOutcome(cmd, outcomes[0])
			return nil
		},
	}
}

func newEnableCmd(vaultPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "enable",
		Short: "Turn tracking on (requires an API key)",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := loadApp(*vaultPath)
			if err != nil {
				return err
			}
			if _, err := app.SettingsCLI.SetEnabled(context.Background(), true); err != nil {
				return err
			}
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), "tracking enabled")
			return nil
		},
	}
}

func newDisableCmd(vaultPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "disable",
		Short: "Turn tracking off",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := loadApp(*vaultPath)
			if err != nil {
				return err
			}
			if _, err := app.SettingsCLI.SetEnabled(context.Background(), false); err != nil {
				return err
			}
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), "tracking disabled")
			return nil
		},
	}
}

func newSettingsCmd(vaultPath *string) *cobra.Command {
	settings := &cobra.Command{Use: "settings", Short: "Inspect and edit plugin settings"}

	settings.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Show current settings",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := loadApp(*vaultPath)
			if err != nil {
				return err
			}
			out, err := app.SettingsCLI.Get(context.Background())
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "enabled: %t\napi_key: %s\napi_url: %s\ndefault_project: %s\n", out.Enabled, redact(out.APIKey), out.APIURL, out.DefaultProject)
			if len(out.IgnoreList) > 0 {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "ignore:\n  %s\n", strings.Join(out.IgnoreList, "\n  "))
			}
			if out.AssociationsText != "" {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "associations:\n  %s\n", strings.ReplaceAll(out.AssociationsText, "\n", "\n  "))
			}
			return nil
		},
	})

	var apiKey, apiURL, defaultProject, ignore, associations string
	set := &cobra.Command{
		Use:   "set",
		Short: "Update settings (omitted flags keep current values)",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := loadApp(*vaultPath)
			if err != nil {
				return err
			}
			current, err := app.SettingsCLI.Get(context.Background())
			if err != nil {
				return err
			}
			input := settingsdto.UpdateInput{
				APIKey:           current.APIKey,
				APIURL:           current.APIURL,
				DefaultProject:   current.DefaultProject,
				IgnoreText:       current.IgnoreText,
				AssociationsText: current.AssociationsText,
			}
			if cmd.Flags().Changed("api-key") {
				input.APIKey = apiKey
			}
			if cmd.Flags().Changed("api-url") {
				input.APIURL = apiURL
			}
			if cmd.Flags().Changed("default-project") {
				input.DefaultProject = defaultProject
			}
			if cmd.Flags().Changed("ignore") {
				input.IgnoreText = strings.ReplaceAll(ignore, ",", "\n")
			}
			if cmd.Flags().Changed("associations") {
				input.AssociationsText = strings.ReplaceAll(associations, ",", "\n")
			}
			out, err := app.SettingsCLI.Update(context.Background(), input)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "settings saved (enabled=%t)\n", out.Enabled)
			return nil
		},
	}
	set.Flags().StringVar(&apiKey, "api-key", "", "WakaTime/Wakapi API key")
	set.Flags().StringVar(&apiURL, "api-url", "", "custom Wakapi base URL (empty for wakatime.com)")
	set.Flags().StringVar(&defaultProject, "default-project", "", "default project name")
	set.Flags().StringVar(&ignore, "ignore", "", "comma-separated path fragments to exclude")
	set.Flags().StringVar(&associations, "associations", "", "comma-separated path@project rules")
	settings.AddCommand(set)

	return settings
}

func newSendCmd(vaultPath *string) *cobra.Command {
	var file string
	var write bool
	var line, cursor int
	send := &cobra.Command{
		Use:   "send --file <relative path>",
		Short: "Build and dispatch one heartbeat for a file",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if strings.TrimSpace(file) == "" {
				return fmt.Errorf("--file is required")
			}
			app, err := loadApp(*vaultPath)
			if err != nil {
				return err
			}
			input := heartbeatdto.SendInput{
				RelativePath: file,
				IsWrite:      write,
				At:           time.Now(),
			}
			if cmd.Flags().Changed("line") || cmd.Flags().Changed("cursor") {
				input.Line = line
				input.Column = cursor
				input.HasCursor = true
			}
			out, err := app.HeartbeatCLI.Send(context.Background(), input)
			if err != nil {
				return err
			}
			app.Heartbeats.Wait()
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "dispatched entity=%s project=%s category=%s\n", out.Entity, out.Project, out.Category)
			outcomes, err := app.HeartbeatCLI.Tail(context.Background(), 1)
			if err != nil {
				return err
			}
			if len(outcomes) > 0 {
				printOutcome(cmd, outcomes[0])
			}
			return nil
		},
	}
	send.Flags().StringVar(&file, "file", "", "vault-relative file path")
	send.Flags().BoolVar(&write, "write", false, "mark as write activity")
	send.Flags().IntVar(&line, "line", 0, "cursor line")
	send.Flags().IntVar(&cursor, "cursor", 0, "cursor column")
	return send
}

func newEventCmd(vaultPath *string) *cobra.Command {
	var kind, file string
	var line, cursor int
	event := &cobra.Command{
		Use:   "event --kind <pointer|keyboard|save> --file <relative path>",
		Short: "Feed one raw activity event through the monitor",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := loadApp(*vaultPath)
			if err != nil {
				return err
			}
			input := trackerdto.EventInput{Kind: kind, Path: file}
			if cmd.Flags().Changed("line") || cmd.Flags().Changed("cursor") {
				input.Line = line
				input.Column = cursor
				input.HasCursor = true
			}
			out, err := app.TrackerCLI.HandleEvent(context.Background(), input)
			if err != nil {
				return err
			}
			app.Heartbeats.Wait()
			if out.Emitted {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "heartbeat emitted")
				return nil
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "no heartbeat (%s)\n", out.Reason)
			return nil
		},
	}
	event.Flags().StringVar(&kind, "kind", "keyboard", "event kind: pointer|keyboard|save")
	event.Flags().StringVar(&file, "file", "", "vault-relative file path (empty when no view is active)")
	event.Flags().IntVar(&line, "line", 0, "cursor line")
	event.Flags().IntVar(&cursor, "cursor", 0, "cursor column")
	return event
}

func newLogCmd(vaultPath *string) *cobra.Command {
	var tail int
	log := &cobra.Command{
		Use:   "log",
		Short: "Show recent dispatch outcomes",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := loadApp(*vaultPath)
			if err != nil {
				return err
			}
			outcomes, err := app.HeartbeatCLI.Tail(context.Background(), tail)
			if err != nil {
				return err
			}
			if len(outcomes) == 0 {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "no heartbeats dispatched yet")
				return nil
			}
			for _, outcome := range outcomes {
				printOutcome(cmd, outcome)
			}
			return nil
		},
	}
	log.Flags().IntVar(&tail, "tail", 20, "outcomes to show")
	return log
}

func printOutcome(cmd *cobra.Command, outcome heartbeatdto.OutcomeOutput) {
	marker := "OK"
	if !outcome.OK {
		marker = "FAIL"
	}
	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "[%s] %s project=%s status=%d", marker, outcome.At.Format(time.RFC3339), outcome.Project, outcome.StatusCode)
	if outcome.Err != "" {
		_, _ = fmt.Fprintf(cmd.OutOrStdout(), " error=%q", outcome.Err)
	}
	_, _ = fmt.Fprintln(cmd.OutOrStdout())
}

func redact(key string) string {
	if key == "" {
		return "(not set)"
	}
	if len(key) <= 4 {
		return "****"
	}
	return "****" + key[len(key)-4:]
}

func orDefault(value, fallback string) string {
	if value == "" {
		return fallback
	}
	return value
}
