package ui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/five82/tally/internal/dashboard"
	"github.com/five82/tally/internal/inventory"
	"github.com/five82/tally/internal/state"
)

// Messages

type tickMsg time.Time

type refreshedMsg struct {
	snapshot state.Snapshot
	err      error
}

type mutatedMsg struct {
	op       state.Op
	snapshot state.Snapshot
	err      error
}

// Commands

func tickCmd(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func refreshCmd(ctx context.Context, store *state.Store, svc inventory.Service) tea.Cmd {
	return func() tea.Msg {
		err := store.Refresh(ctx, svc)
		return refreshedMsg{snapshot: store.Snapshot(), err: err}
	}
}

func mutateCmd(ctx context.Context, store *state.Store, op state.Op, call func(context.Context) error) tea.Cmd {
	return func() tea.Msg {
		err := call(ctx)
		return mutatedMsg{op: op, snapshot: store.Snapshot(), err: err}
	}
}

// runEffect maps one reducer effect onto a command. Notifications are shown
// immediately; requests run on Bubble Tea's command goroutines.
func (m *Model) runEffect(eff dashboard.Effect) tea.Cmd {
	store, svc := m.store, m.svc
	switch eff := eff.(type) {
	case dashboard.Refresh:
		return refreshCmd(m.ctx, store, svc)

	case dashboard.CreateProduct:
		return mutateCmd(m.ctx, store, state.OpCreate, func(ctx context.Context) error {
			return store.Create(ctx, svc, eff.Input)
		})

	case dashboard.UpdateProduct:
		return mutateCmd(m.ctx, store, state.OpUpdate, func(ctx context.Context) error {
			return store.Update(ctx, svc, eff.ID, eff.Input)
		})

	case dashboard.DeleteProduct:
		return mutateCmd(m.ctx, store, state.OpDelete, func(ctx context.Context) error {
			return store.Remove(ctx, svc, eff.ID)
		})

	case dashboard.Notify:
		if eff.Notice.Level == dashboard.LevelError {
			m.log.Info("notice", zap.String("text", eff.Notice.Text))
		}
		return m.pushToast(eff.Notice)
	}
	return nil
}
