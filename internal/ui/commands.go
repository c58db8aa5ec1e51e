package ui

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/five82/shopkeep/internal/catalog"
	"github.com/five82/shopkeep/internal/controller"
)

type loadedMsg struct {
	err error
}

type saveKind int

const (
	saveCreate saveKind = iota
	saveUpdate
)

type savedMsg struct {
	kind    saveKind
	product catalog.Product
	err     error
}

func (m savedMsg) success() string {
	if m.kind == saveCreate {
		return fmt.Sprintf("Created product #%d", m.product.ID)
	}
	return fmt.Sprintf("Updated product #%d", m.product.ID)
}

func (m savedMsg) failureTitle() string {
	if catalog.IsValidationError(m.err) {
		return "Invalid input"
	}
	if m.kind == saveCreate {
		return "Create failed"
	}
	return "Update failed"
}

type exportedMsg struct {
	path string
	rows int
	err  error
}

func (m Model) loadCmd() tea.Cmd {
	ctx, ctrl := m.ctx, m.ctrl
	return func() tea.Msg {
		return loadedMsg{err: ctrl.Load(ctx)}
	}
}

func (m Model) createCmd(form controller.CreateForm) tea.Cmd {
	ctx, ctrl := m.ctx, m.ctrl
	return func() tea.Msg {
		p, err := ctrl.SubmitCreate(ctx, form)
		return savedMsg{kind: saveCreate, product: p, err: err}
	}
}

func (m Model) updateCmd(form controller.UpdateForm) tea.Cmd {
	ctx, ctrl := m.ctx, m.ctrl
	return func() tea.Msg {
		p, err := ctrl.SubmitUpdate(ctx, form)
		return savedMsg{kind: saveUpdate, product: p, err: err}
	}
}

func (m Model) exportCmd() tea.Cmd {
	ctrl := m.ctrl
	return func() tea.Msg {
		path, rows, err := ctrl.ExportCurrentPage()
		return exportedMsg{path: path, rows: rows, err: err}
	}
}
