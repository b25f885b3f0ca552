package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"pomo/internal/bootstrap"
	progressiondto "pomo/internal/modules/progression/dto"
	timerdto "pomo/internal/modules/timer/dto"
	"pomo/internal/platform/config"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		_, _ = fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var dataPath string

	root := &cobra.Command{
		Use:           "pomo",
		Short:         "Focus timer with levels, streaks and achievements",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&dataPath, "data", "", "data directory (default ~/.pomo)")

	root.AddCommand(newTUICmd(&dataPath))
	root.AddCommand(newStartCmd(&dataPath))
	root.AddCommand(newStatusCmd(&dataPath))
	root.AddCommand(newCancelCmd(&dataPath))
	root.AddCommand(newStatsCmd(&dataPath))
	root.AddCommand(newProfileCmd(&dataPath))
	root.AddCommand(newAchievementsCmd(&dataPath))
	root.AddCommand(newChallengesCmd(&dataPath))
	root.AddCommand(newSettingsCmd(&dataPath))
	root.AddCommand(newPowerupCmd(&dataPath))
	root.AddCommand(newReportCmd(&dataPath))
	root.AddCommand(newExportCmd(&dataPath))
	root.AddCommand(newImportCmd(&dataPath))
	root.AddCommand(newResetCmd(&dataPath))
	root.AddCommand(newPluginCmd(&dataPath))
	return root
}

func loadApp(dataPath string) (*bootstrap.App, error) {
	cfg, err := config.New(dataPath)
	if err != nil {
		return nil, err
	}
	return bootstrap.New(cfg)
}

func newTUICmd(dataPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "tui",
		Short: "Run the pomo terminal UI",
		RunE: func(_ *cobra.Command, _ []string) error {
			app, err := loadApp(*dataPath)
			if err != nil {
				return err
			}
			return bootstrap.RunTUI(app)
		},
	}
}

func newStartCmd(dataPath *string) *cobra.Command {
	var detach bool

	cmd := &cobra.Command{
		Use:   "start [focus|short_break|long_break|custom]",
		Short: "Start a session and count it down in the terminal",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := loadApp(*dataPath)
			if err != nil {
				return err
			}
			mode := ""
			if len(args) == 1 {
				mode = args[0]
			}
			ctx := cmd.Context()
			out, err := app.TimerCLI.Start(ctx, timerdto.StartInput{Mode: mode})
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "started %s (%dm)\n",
				out.Mode, out.DurationSeconds/60)
			if detach {
				return nil
			}
			return runCountdown(cmd, app, out)
		},
	}
	cmd.Flags().BoolVar(&detach, "detach", false, "start the session and return immediately")
	return cmd
}

// runCountdown drives a started session to its end in the foreground.
// Interrupts cancel the session so no half-run is left behind.
func runCountdown(cmd *cobra.Command, app *bootstrap.App, out timerdto.StartOutput) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	remaining := out.DurationSeconds
	ticker := time.NewTicker(time.Second)
	defer ticker.Stop()

	for remaining > 0 {
		_, _ = fmt.Fprintf(cmd.OutOrStdout(), "\r%02d:%02d ", remaining/60, remaining%60)
		select {
		case <-ctx.Done():
			_, _ = fmt.Fprintln(cmd.OutOrStdout())
			if _, err := app.TimerCLI.Cancel(context.Background()); err != nil {
				return err
			}
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), "session cancelled")
			return nil
		case <-ticker.C:
			remaining--
		}
	}
	_, _ = fmt.Fprintln(cmd.OutOrStdout())

	result, err := app.TimerCLI.Complete(context.Background())
	if err != nil {
		return err
	}
	printCompletion(cmd, result)
	return nil
}

func printCompletion(cmd *cobra.Command, result timerdto.CompleteOutput) {
	w := cmd.OutOrStdout()
	_, _ = fmt.Fprintf(w, "session complete: +%d XP (level %d, streak %d)\n",
		result.XPEarned, result.Level, result.StreakAfter)
	for _, up := range result.LevelUps {
		_, _ = fmt.Fprintf(w, "  level up! %d — %s (+%d coins, +%d gems)\n",
			up.Level, up.Title, up.Coins, up.Gems)
	}
	for _, unlock := range result.Unlocked {
		_, _ = fmt.Fprintf(w, "  achievement: %s [%s] +%d pts\n",
			unlock.Name, unlock.Rarity, unlock.Points)
	}
	for _, challenge := range result.ChallengesDone {
		_, _ = fmt.Fprintf(w, "  challenge: %s +%d XP\n",
			challenge.Name, challenge.XPReward+challenge.Bonus)
	}
	if result.NextBreak != "" {
		_, _ = fmt.Fprintf(w, "  up next: %s\n", strings.ReplaceAll(result.NextBreak, "_", " "))
	}
}

func newStatusCmd(dataPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show the active session, if any",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := loadApp(*dataPath)
			if err != nil {
				return err
			}
			active, err := app.TimerCLI.ActiveSession(cmd.Context())
			if err != nil {
				return err
			}
			if active == nil {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "no active session")
				return nil
			}
			elapsed := int(time.Since(active.StartedAt).Seconds())
			remaining := active.TotalSeconds - elapsed
			if remaining < 0 {
				remaining = 0
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s running: %02d:%02d remaining\n",
				active.Mode, remaining/60, remaining%60)
			return nil
		},
	}
}

func newCancelCmd(dataPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "cancel",
		Short: "Cancel the active session",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := loadApp(*dataPath)
			if err != nil {
				return err
			}
			session, err := app.TimerCLI.Cancel(cmd.Context())
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "cancelled %s session %s\n", session.Mode, session.ID)
			return nil
		},
	}
}

func newStatsCmd(dataPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show focus statistics",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := loadApp(*dataPath)
			if err != nil {
				return err
			}
			stats, err := app.TimerCLI.Stats(cmd.Context())
			if err != nil {
				return err
			}
			w := cmd.OutOrStdout()
			_, _ = fmt.Fprintf(w, "today:    %d sessions, %d focus minutes\n",
				stats.Today.Sessions, stats.Today.FocusMinutes)
			for _, day := range stats.Last7Days {
				_, _ = fmt.Fprintf(w, "  %s  %3dm  %d sessions\n",
					day.Day, day.FocusMinutes, day.Sessions)
			}
			_, _ = fmt.Fprintf(w, "all time: %d sessions, %d focus minutes\n",
				stats.AllTime.Sessions, stats.AllTime.FocusMinutes)
			return nil
		},
	}
}

func newProfileCmd(dataPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "profile",
		Short: "Show player level, streak and inventory",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := loadApp(*dataPath)
			if err != nil {
				return err
			}
			player, err := app.ProgressionCLI.Get(cmd.Context())
			if err != nil {
				return err
			}
			w := cmd.OutOrStdout()
			p := player.Profile
			_, _ = fmt.Fprintf(w, "level %d — %s (%s)\n", p.Level, p.Title, p.Subtitle)
			_, _ = fmt.Fprintf(w, "xp:       %d / %d to next (total %d)\n", p.XP, p.XPToNext, p.TotalXP)
			_, _ = fmt.Fprintf(w, "streak:   %d days (best %d)\n", p.CurrentStreak, p.BestStreak)
			_, _ = fmt.Fprintf(w, "sessions: %d (%dh focus)\n", p.TotalSessions, p.TotalFocusSeconds/3600)
			_, _ = fmt.Fprintf(w, "points:   %d across %d achievements\n", p.AchievementPoints, len(p.AchievementIDs))
			inv := player.Inventory
			_, _ = fmt.Fprintf(w, "wallet:   %d coins, %d gems\n", inv.Coins, inv.Gems)
			for kind, powerup := range inv.Powerups {
				if powerup.Count > 0 {
					_, _ = fmt.Fprintf(w, "powerup:  %s ×%d\n", kind, powerup.Count)
				}
			}
			for _, effect := range inv.ActiveEffects {
				_, _ = fmt.Fprintf(w, "active:   %s\n", effect)
			}
			return nil
		},
	}
}

func newAchievementsCmd(dataPath *string) *cobra.Command {
	var all bool

	cmd := &cobra.Command{
		Use:   "achievements",
		Short: "List achievements",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := loadApp(*dataPath)
			if err != nil {
				return err
			}
			achievements, err := app.AchievementCLI.List(cmd.Context())
			if err != nil {
				return err
			}
			w := cmd.OutOrStdout()
			for _, a := range achievements {
				if !all && !a.Unlocked {
					continue
				}
				marker := " "
				if a.Unlocked {
					marker = "*"
				}
				_, _ = fmt.Fprintf(w, "%s %-24s %-9s %3d pts  %s\n",
					marker, a.Name, a.Rarity, a.Points, a.Description)
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&all, "all", false, "include locked achievements")
	return cmd
}

func newChallengesCmd(dataPath *string) *cobra.Command {
	challenges := &cobra.Command{
		Use:   "challenges",
		Short: "Show today's challenges",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := loadApp(*dataPath)
			if err != nil {
				return err
			}
			daily, err := app.ChallengeCLI.Daily(cmd.Context())
			if err != nil {
				return err
			}
			w := cmd.OutOrStdout()
			for _, c := range daily {
				marker := " "
				if c.Completed {
					marker = "*"
				}
				_, _ = fmt.Fprintf(w, "%s %-20s %d/%d %-10s +%d XP  %s\n",
					marker, c.Title, c.Progress, c.Goal, c.Unit, c.XPReward, c.Description)
			}
			return nil
		},
	}

	history := &cobra.Command{
		Use:   "history",
		Short: "Show completed challenges",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := loadApp(*dataPath)
			if err != nil {
				return err
			}
			entries, err := app.ChallengeCLI.History(cmd.Context())
			if err != nil {
				return err
			}
			for _, entry := range entries {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s  %-20s +%d XP\n",
					entry.CompletedAt.Format("2006-01-02"), entry.Title, entry.XPEarned)
			}
			return nil
		},
	}

	challenges.AddCommand(history)
	return challenges
}

func newSettingsCmd(dataPath *string) *cobra.Command {
	var goal, custom int
	var autoBreak, sound, vibration string

	cmd := &cobra.Command{
		Use:   "settings",
		Short: "Show or change settings",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := loadApp(*dataPath)
			if err != nil {
				return err
			}
			player, err := app.ProgressionCLI.Get(cmd.Context())
			if err != nil {
				return err
			}
			settings := player.Settings
			changed := false
			if cmd.Flags().Changed("goal") {
				settings.DailyGoal = goal
				changed = true
			}
			if cmd.Flags().Changed("custom") {
				settings.CustomMinutes = custom
				changed = true
			}
			for flag, target := range map[string]*bool{
				"autobreak": &settings.AutoBreak,
				"sound":     &settings.SoundEnabled,
				"vibration": &settings.VibrationEnabled,
			} {
				if cmd.Flags().Changed(flag) {
					value, _ := cmd.Flags().GetString(flag)
					*target = value == "on"
					changed = true
				}
			}
			if changed {
				settings, err = app.ProgressionCLI.UpdateSettings(cmd.Context(), settings)
				if err != nil {
					return err
				}
			}
			printSettings(cmd, settings)
			return nil
		},
	}
	cmd.Flags().IntVar(&goal, "goal", 0, "daily session goal")
	cmd.Flags().IntVar(&custom, "custom", 0, "custom session length in minutes")
	cmd.Flags().StringVar(&autoBreak, "autobreak", "", "auto-start breaks: on|off")
	cmd.Flags().StringVar(&sound, "sound", "", "sound: on|off")
	cmd.Flags().StringVar(&vibration, "vibration", "", "vibration: on|off")
	return cmd
}

func printSettings(cmd *cobra.Command, settings progressiondto.Settings) {
	w := cmd.OutOrStdout()
	_, _ = fmt.Fprintf(w, "daily goal:     %d sessions\n", settings.DailyGoal)
	_, _ = fmt.Fprintf(w, "custom length:  %dm\n", settings.CustomMinutes)
	_, _ = fmt.Fprintf(w, "auto break:     %v\n", settings.AutoBreak)
	_, _ = fmt.Fprintf(w, "sound:          %v\n", settings.SoundEnabled)
	_, _ = fmt.Fprintf(w, "vibration:      %v\n", settings.VibrationEnabled)
}

func newPowerupCmd(dataPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "powerup <xp_boost|double_points|shield>",
		Short: "Activate a powerup from the inventory",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := loadApp(*dataPath)
			if err != nil {
				return err
			}
			if err := app.ProgressionCLI.ActivatePowerup(cmd.Context(), args[0]); err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "activated %s\n", args[0])
			return nil
		},
	}
}

func newReportCmd(dataPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "report [YYYY-MM-DD]",
		Short: "Write a markdown day report",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := loadApp(*dataPath)
			if err != nil {
				return err
			}
			date := ""
			if len(args) == 1 {
				date = args[0]
			}
			report, err := app.BackupCLI.Report(cmd.Context(), date)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "wrote %s (%d sessions, %dm, +%d XP)\n",
				report.Path, report.Sessions, report.Minutes, report.XPEarned)
			return nil
		},
	}
}

func newExportCmd(dataPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "export <path>",
		Short: "Export all player data to a JSON snapshot",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := loadApp(*dataPath)
			if err != nil {
				return err
			}
			if err := app.BackupCLI.ExportToFile(cmd.Context(), args[0]); err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "exported to %s\n", args[0])
			return nil
		},
	}
}

func newImportCmd(dataPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "import <path>",
		Short: "Replace all player data from a JSON snapshot",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := loadApp(*dataPath)
			if err != nil {
				return err
			}
			if err := app.BackupCLI.ImportFromFile(cmd.Context(), args[0]); err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "imported from %s\n", args[0])
			return nil
		},
	}
}

func newResetCmd(dataPath *string) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "reset",
		Short: "Wipe all progress and start over",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if !yes {
				return fmt.Errorf("refusing to reset without --yes")
			}
			app, err := loadApp(*dataPath)
			if err != nil {
				return err
			}
			if err := app.ProgressionCLI.Reset(cmd.Context()); err != nil {
				return err
			}
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), "all progress reset")
			return nil
		},
	}
	cmd.Flags().BoolVar(&yes, "yes", false, "confirm the reset")
	return cmd
}

func newPluginCmd(dataPath *string) *cobra.Command {
	plugin := &cobra.Command{Use: "plugin", Short: "Manage notifier plugins"}

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List installed notifier plugins",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := loadApp(*dataPath)
			if err != nil {
				return err
			}
			plugins, err := app.NotifyCLI.List(cmd.Context())
			if err != nil {
				return err
			}
			if len(plugins) == 0 {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "no plugins installed")
				return nil
			}
			for _, p := range plugins {
				events := "all events"
				if len(p.Events) > 0 {
					events = strings.Join(p.Events, ", ")
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%-16s %-8s %s\n", p.Name, p.Version, events)
			}
			return nil
		},
	}

	testCmd := &cobra.Command{
		Use:   "test <name>",
		Short: "Check that a notifier plugin starts and responds",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := loadApp(*dataPath)
			if err != nil {
				return err
			}
			if err := app.NotifyCLI.Test(cmd.Context(), args[0]); err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "plugin %s ok\n", args[0])
			return nil
		},
	}

	plugin.AddCommand(listCmd, testCmd)
	return plugin
}
