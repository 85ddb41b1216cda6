package ui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/nagacharan-tangirala/disolv/cmn/nlog"
	"github.com/nagacharan-tangirala/disolv/config"
)

// Run starts the terminal companion and forwards simulation ticks into
// it until the program exits — either the user quit (q/Esc/ctrl+c,
// which calls cancel so the simulation goroutine stops too) or ticks
// closes/ctx is cancelled from the simulation side. Panics inside the
// bubbletea event loop are recovered and logged rather than left to
// crash the terminal into a raw-mode state.
func Run(ctx context.Context, scenario string, ticks <-chan config.Tick, cancel context.CancelFunc) (err error) {
	defer func() {
		if r := recover(); r != nil {
			nlog.Errorln("ui: panic recovered:", r)
		}
	}()

	p := tea.NewProgram(New(scenario, cancel), tea.WithMouseCellMotion())

	forwarderDone := make(chan struct{})
	go func() {
		defer close(forwarderDone)
		for {
			select {
			case <-ctx.Done():
				p.Send(QuitMsg{Err: ctx.Err()})
				return
			case t, ok := <-ticks:
				if !ok {
					p.Send(QuitMsg{})
					return
				}
				p.Send(TickMsg{Now: t.Now, Duration: t.Duration})
			}
		}
	}()

	_, err = p.Run()
	<-forwarderDone
	return err
}
