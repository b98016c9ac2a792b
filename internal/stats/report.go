package stats

import (
	"context"
	"io"

	"github.com/verte-zerg/blindtype/internal/model"
	"github.com/verte-zerg/blindtype/internal/store"
)

// Report contains precomputed data for history rendering.
type Report struct {
	Sessions         []model.SessionAggregate
	WindowSessionIDs []int64
	LetterAggsAll    []model.LetterAggregate
	LetterAggsWindow []model.LetterAggregate
}

// BuildReport loads and prepares data for history rendering.
func BuildReport(ctx context.Context, st *store.Store, cfg model.HistoryConfig) (Report, error) {
	sessions, err := st.ListSessions(ctx, cfg)
	if err != nil {
		return Report{}, err
	}

	windowIDs := lastSessionIDs(sessions, cfg.CurveWindow)
	aggsAll, err := st.ListLetterAggregates(ctx, sessionIDs(sessions))
	if err != nil {
		return Report{}, err
	}
	aggsWindow, err := st.ListLetterAggregates(ctx, windowIDs)
	if err != nil {
		return Report{}, err
	}

	return Report{
		Sessions:         sessions,
		WindowSessionIDs: windowIDs,
		LetterAggsAll:    aggsAll,
		LetterAggsWindow: aggsWindow,
	}, nil
}

// Render writes the full history report.
func (r Report) Render(w io.Writer, window, width int) error {
	if err := RenderSummary(w, r.Sessions); err != nil {
		return err
	}
	if err := RenderCurves(w, r.Sessions, window, width); err != nil {
		return err
	}
	return RenderLetterTable(w, r.LetterAggsWindow)
}

func sessionIDs(sessions []model.SessionAggregate) []int64 {
	ids := make([]int64, len(sessions))
	for i, s := range sessions {
		ids[i] = s.SessionID
	}
	return ids
}

func lastSessionIDs(sessions []model.SessionAggregate, window int) []int64 {
	if window <= 0 || len(sessions) <= window {
		return sessionIDs(sessions)
	}
	return sessionIDs(sessions[len(sessions)-window:])
}
