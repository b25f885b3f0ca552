package bootstrap

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/hashicorp/go-hclog"

	achievementinadapter "pomo/internal/modules/achievement/adapter/in"
	achievementoutadapter "pomo/internal/modules/achievement/adapter/out"
	achievementusecase "pomo/internal/modules/achievement/usecase"
	backupinadapter "pomo/internal/modules/backup/adapter/in"
	backupoutadapter "pomo/internal/modules/backup/adapter/out"
	backupusecase "pomo/internal/modules/backup/usecase"
	challengeinadapter "pomo/internal/modules/challenge/adapter/in"
	challengeoutadapter "pomo/internal/modules/challenge/adapter/out"
	challengeusecase "pomo/internal/modules/challenge/usecase"
	notifyinadapter "pomo/internal/modules/notify/adapter/in"
	notifyoutadapter "pomo/internal/modules/notify/adapter/out"
	notifyservice "pomo/internal/modules/notify/service"
	notifyusecase "pomo/internal/modules/notify/usecase"
	progressioninadapter "pomo/internal/modules/progression/adapter/in"
	progressionoutadapter "pomo/internal/modules/progression/adapter/out"
	progressionservice "pomo/internal/modules/progression/service"
	progressionusecase "pomo/internal/modules/progression/usecase"
	timerinadapter "pomo/internal/modules/timer/adapter/in"
	timeroutadapter "pomo/internal/modules/timer/adapter/out"
	timerservice "pomo/internal/modules/timer/service"
	timerusecase "pomo/internal/modules/timer/usecase"
	"pomo/internal/platform/clock"
	"pomo/internal/platform/config"
	"pomo/internal/platform/id"
	"pomo/internal/platform/random"
	uiapp "pomo/internal/ui/app"
)

type App struct {
	ProgressionCLI progressioninadapter.CLIHandler
	TimerCLI       timerinadapter.CLIHandler
	AchievementCLI achievementinadapter.CLIHandler
	ChallengeCLI   challengeinadapter.CLIHandler
	NotifyCLI      notifyinadapter.CLIHandler
	BackupCLI      backupinadapter.CLIHandler
}

func New(cfg config.Config) (*App, error) {
	if err := os.MkdirAll(cfg.DataPath, 0o755); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}

	clk := clock.SystemClock{}
	ids := id.RandomHex{}

	progressionUC := progressionusecase.NewInteractor(progressionservice.NewProgressionService(
		clk,
		random.Math{},
		progressionoutadapter.NewFileProfileStore(cfg.DataPath),
		progressionoutadapter.NewFileInventoryStore(cfg.DataPath),
		progressionoutadapter.NewYAMLSettingsStore(cfg.SettingsPath),
	))

	sessionLog, err := timeroutadapter.NewSQLiteSessionLog(cfg.DBPath)
	if err != nil {
		return nil, fmt.Errorf("open session log: %w", err)
	}

	challengeUC := challengeusecase.NewInteractor(
		progressionUC,
		challengeoutadapter.NewFileStateStore(cfg.DataPath),
		challengeoutadapter.NewLogSessionFeed(sessionLog),
		clk,
	)

	achievementUC := achievementusecase.NewInteractor(
		progressionUC,
		achievementoutadapter.NewLogSessionFeed(sessionLog),
		achievementoutadapter.NewChallengeCounter(challengeUC),
		clk,
	)

	notifyUC := notifyusecase.NewInteractor(notifyservice.NewNotifyService(
		notifyoutadapter.NewFileManifestStore(cfg.DataPath),
		notifyoutadapter.NewGRPCHost(),
		hclog.New(&hclog.LoggerOptions{Name: "pomo.notify", Level: hclog.Warn}),
	))

	timerUC := timerusecase.NewInteractor(
		timerservice.NewTimerService(sessionLog, timeroutadapter.NewFileActiveStore(cfg.DataPath), clk, ids),
		progressionUC,
		achievementUC,
		challengeUC,
		notifyUC,
	)

	backupUC := backupusecase.NewInteractor(
		progressionUC,
		timerUC,
		challengeUC,
		backupoutadapter.NewFileReportWriter(cfg.DataPath),
		clk,
	)

	return &App{
		ProgressionCLI: progressioninadapter.NewCLIHandler(progressionUC),
		TimerCLI:       timerinadapter.NewCLIHandler(timerUC),
		AchievementCLI: achievementinadapter.NewCLIHandler(achievementUC),
		ChallengeCLI:   challengeinadapter.NewCLIHandler(challengeUC),
		NotifyCLI:      notifyinadapter.NewCLIHandler(notifyUC),
		BackupCLI:      backupinadapter.NewCLIHandler(backupUC),
	}, nil
}

func RunTUI(app *App) error {
	model := uiapp.NewModel(
		app.TimerCLI,
		app.ProgressionCLI,
		app.AchievementCLI,
		app.ChallengeCLI,
		app.NotifyCLI,
		app.BackupCLI,
	)
	program := tea.NewProgram(model, tea.WithAltScreen())
	_, err := program.Run()
	return err
}
