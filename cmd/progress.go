// SPDX-License-Identifier: GPL-2.0-or-later
// Copyright (c) 2025 Kaz Walker, Thermoquad

package cmd

import (
	"context"
	"fmt"
	"log"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"

	"github.com/kb9vty/cloneforge/pkg/driver"
)

var (
	progressTitleStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("12")).
		Background(lipgloss.Color("235")).
		Padding(0, 1)

	progressMsgStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color("241"))

	progressDoneStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color("10")).
		Bold(true)
)

type progressTickMsg struct {
	done, total int
	msg         string
}

type progressDoneMsg struct{ err error }

// progressModel drives a single bubbletea program for the lifetime of one
// download or upload, fed by tickCh from the driver's ProgressFunc and
// resultCh once the operation returns.
type progressModel struct {
	title    string
	bar      progress.Model
	done     int
	total    int
	msg      string
	err      error
	finished bool
	tickCh   <-chan progressTickMsg
	resultCh <-chan error
}

func newProgressModel(title string, tickCh <-chan progressTickMsg, resultCh <-chan error) progressModel {
	return progressModel{
		title:    title,
		bar:      progress.New(progress.WithDefaultGradient()),
		tickCh:   tickCh,
		resultCh: resultCh,
	}
}

func (m progressModel) Init() tea.Cmd {
	return tea.Batch(waitForTick(m.tickCh), waitForResult(m.resultCh))
}

func waitForTick(ch <-chan progressTickMsg) tea.Cmd {
	return func() tea.Msg {
		t, ok := <-ch
		if !ok {
			return nil
		}
		return t
	}
}

func waitForResult(ch <-chan error) tea.Cmd {
	return func() tea.Msg {
		err := <-ch
		return progressDoneMsg{err: err}
	}
}

func (m progressModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
	case progressTickMsg:
		m.done, m.total, m.msg = msg.done, msg.total, msg.msg
		return m, waitForTick(m.tickCh)
	case progressDoneMsg:
		m.err = msg.err
		m.finished = true
		return m, tea.Quit
	}
	return m, nil
}

func (m progressModel) View() string {
	pct := 0.0
	if m.total > 0 {
		pct = float64(m.done) / float64(m.total)
	}
	if m.finished {
		if m.err != nil {
			return fmt.Sprintf("%s\n%s\n", progressTitleStyle.Render(m.title), lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true).Render(m.err.Error()))
		}
		return fmt.Sprintf("%s\n%s\n", progressTitleStyle.Render(m.title), progressDoneStyle.Render("done"))
	}
	return fmt.Sprintf("%s\n%s\n%s %d/%d\n", progressTitleStyle.Render(m.title), m.bar.ViewAs(pct), progressMsgStyle.Render(m.msg), m.done, m.total)
}

// runWithProgress runs op, rendering a bubbletea progress bar when stdout
// is an attached terminal and falling back to plain log lines otherwise
// (piped output, CI, serve-events-only sessions).
func runWithProgress(title string, op func(ctx context.Context, progress driver.ProgressFunc) error) error {
	ctx := context.Background()

	if !term.IsTerminal(int(os.Stdout.Fd())) {
		return op(ctx, func(done, total int, msg string) {
			log.Printf("%s: %d/%d %s", title, done, total, msg)
		})
	}

	tickCh := make(chan progressTickMsg, 16)
	resultCh := make(chan error, 1)

	go func() {
		err := op(ctx, func(done, total int, msg string) {
			select {
			case tickCh <- progressTickMsg{done: done, total: total, msg: msg}:
			default:
			}
		})
		close(tickCh)
		resultCh <- err
	}()

	p := tea.NewProgram(newProgressModel(title, tickCh, resultCh))
	finalModel, err := p.Run()
	if err != nil {
		return fmt.Errorf("cmd: progress display: %w", err)
	}
	if fm, ok := finalModel.(progressModel); ok && fm.err != nil {
		return fm.err
	}
	return nil
}
