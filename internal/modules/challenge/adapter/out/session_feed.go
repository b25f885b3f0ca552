package out

import (
	"context"
	"time"

	"pomo/internal/modules/challenge/domain"
	challengeout "pomo/internal/modules/challenge/port/out"
	timerout "pomo/internal/modules/timer/port/out"
	"pomo/internal/platform/dates"
)

// LogSessionFeed reads today's completed focus sessions out of the
// timer's session log.
type LogSessionFeed struct {
	log timerout.SessionLog
}

func NewLogSessionFeed(log timerout.SessionLog) challengeout.SessionFeed {
	return &LogSessionFeed{log: log}
}

func (f *LogSessionFeed) CompletedToday(ctx context.Context, now time.Time) ([]domain.SessionInfo, error) {
	sessions, err := f.log.CompletedOnDay(ctx, dates.Key(now))
	if err != nil {
		return nil, err
	}
	var infos []domain.SessionInfo
	for _, s := range sessions {
		if s.Mode.IsBreak() {
			continue
		}
		infos = append(infos, domain.SessionInfo{
			StartHour:       s.StartedAt.Hour(),
			DurationSeconds: s.DurationSeconds,
		})
	}
	return infos, nil
}
