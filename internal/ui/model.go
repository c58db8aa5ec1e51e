package ui

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/paginator"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/sirupsen/logrus"

	"github.com/five82/shopkeep/internal/catalog"
	"github.com/five82/shopkeep/internal/controller"
	"github.com/five82/shopkeep/internal/logging"
	"github.com/five82/shopkeep/internal/prefs"
	"github.com/five82/shopkeep/internal/state"
)

// Screen layout. Rows are fixed so mouse events can be mapped back to table
// rows and page items without measuring the rendered frame.
const (
	tableTop     = 2                      // header + command bar
	tableBodyTop = tableTop + 2           // top border + column header
	tableHeight  = state.PageSize + 3     // borders + column header + rows
	pagerLine    = tableTop + tableHeight // pagination control
	statusLine   = pagerLine + 1
	footerLine   = statusLine + 1

	minWidth  = 60
	minHeight = footerLine + 1
)

type mode int

const (
	modeBrowse mode = iota
	modeSearch
)

// Options configures the UI.
type Options struct {
	Context    context.Context
	Controller *controller.Controller
	Logger     logrus.FieldLogger
	ThemeName  string
	Mouse      bool
	PrefsPath  string
}

// Model is the root Bubble Tea model.
type Model struct {
	ctx       context.Context
	ctrl      *controller.Controller
	log       logrus.FieldLogger
	prefsPath string
	mouse     bool

	keys      keyMap
	help      help.Model
	spinner   spinner.Model
	paginator paginator.Model
	search    textinput.Model

	theme  Theme
	width  int
	height int
	ready  bool
	mode   mode

	snapshot   state.Snapshot
	projection state.Projection
	cursor     int
	sortOption string

	loading    bool
	submitting bool
	form       *productForm
	alert      *alert
	tooltip    tooltip
	showHelp   bool
	status     string
}

// New creates the model. The first load starts from Init.
func New(opts Options) Model {
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}
	log := opts.Logger
	if log == nil {
		log = logging.Discard()
	}
	ctrl := opts.Controller
	if ctrl == nil {
		ctrl = controller.New(controller.Options{})
	}

	search := textinput.New()
	search.Prompt = "/ "
	search.Placeholder = "search titles"
	search.CharLimit = 120
	search.Width = searchWidth - 4

	sp := spinner.New()
	sp.Spinner = spinner.Dot

	pg := paginator.New()
	pg.Type = paginator.Arabic
	pg.PerPage = state.PageSize

	m := Model{
		ctx:       ctx,
		ctrl:      ctrl,
		log:       log.WithField("component", "ui"),
		prefsPath: opts.PrefsPath,
		mouse:     opts.Mouse,
		keys:      DefaultKeyMap(),
		help:      help.New(),
		spinner:   sp,
		paginator: pg,
		search:    search,
		theme:     GetTheme(opts.ThemeName),
		loading:   true,
	}
	m.applyTheme()
	m.refresh()
	return m
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.loadCmd())
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.ready = true
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		return m.handleMouse(msg)

	case spinner.TickMsg:
		if !m.busy() {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case loadedMsg:
		m.loading = false
		m.refresh()
		if msg.err != nil {
			m.showError("Load failed", msg.err)
		} else {
			m.status = fmt.Sprintf("Loaded %d products", len(m.snapshot.Collection))
		}
		return m, nil

	case savedMsg:
		return m.handleSaved(msg)

	case exportedMsg:
		if msg.err != nil {
			m.showError("Export failed", msg.err)
			return m, nil
		}
		m.status = fmt.Sprintf("Exported %d rows to %s", msg.rows, msg.path)
		return m, nil
	}
	return m, nil
}

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}
	if m.width < minWidth || m.height < minHeight {
		return fmt.Sprintf("Terminal too small (need %dx%d)", minWidth, minHeight)
	}
	switch {
	case m.alert != nil:
		return m.renderAlert()
	case m.showHelp:
		return m.renderHelp()
	case m.form != nil:
		return m.renderForm()
	}
	return m.renderMain()
}

func (m Model) busy() bool {
	return m.loading || m.submitting
}

// refresh pulls a fresh snapshot from the store and re-derives everything the
// frame depends on.
func (m *Model) refresh() {
	m.snapshot = m.ctrl.Store().Snapshot()
	m.projection = m.snapshot.Projection()
	m.paginator.TotalPages = m.projection.TotalPages
	m.paginator.Page = m.projection.Page - 1
	m.cursor = min(max(m.cursor, 0), max(len(m.projection.Rows)-1, 0))
	m.sortOption = m.snapshot.Sort.String()
	// A load resets the keyword; the box must not keep showing stale text.
	if !strings.EqualFold(m.search.Value(), m.snapshot.Keyword) {
		m.search.SetValue(m.snapshot.Keyword)
	}
	if m.tooltip.visible && m.tooltip.row >= len(m.projection.Rows) {
		m.tooltip.hide()
	}
}

func (m *Model) applyTheme() {
	styles := m.theme.Styles()
	m.spinner.Style = styles.AccentText
	m.search.PromptStyle = styles.AccentText
	m.search.TextStyle = styles.Text
	m.search.PlaceholderStyle = styles.FaintText
	m.help.Styles.ShortKey = styles.Key
	m.help.Styles.ShortDesc = styles.MutedText
	m.help.Styles.FullKey = styles.Key
	m.help.Styles.FullDesc = styles.MutedText
	m.help.Styles.ShortSeparator = styles.FaintText
	m.help.Styles.FullSeparator = styles.FaintText
}

func (m *Model) showError(title string, err error) {
	m.alert = newAlert(title, err)
	m.status = ""
	m.log.WithError(err).Warn(strings.ToLower(title))
}

func (m *Model) selectedRow() (catalog.Product, bool) {
	if m.cursor < 0 || m.cursor >= len(m.projection.Rows) {
		return catalog.Product{}, false
	}
	return m.projection.Rows[m.cursor], true
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return m, tea.Quit
	}
	// Any key dismisses the alert and nothing else.
	if m.alert != nil {
		m.alert = nil
		return m, nil
	}
	if m.showHelp {
		m.showHelp = false
		return m, nil
	}
	if m.form != nil {
		return m.handleFormKey(msg)
	}
	m.tooltip.hide()
	if m.mode == modeSearch {
		return m.handleSearchKey(msg)
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Help):
		m.showHelp = true
	case key.Matches(msg, m.keys.CycleTheme):
		m.cycleTheme()
	case key.Matches(msg, m.keys.Reload):
		if m.loading {
			return m, nil
		}
		m.loading = true
		return m, tea.Batch(m.spinner.Tick, m.loadCmd())
	case key.Matches(msg, m.keys.Search):
		m.mode = modeSearch
		return m, m.search.Focus()
	case key.Matches(msg, m.keys.SortNext):
		m.applySort(state.NextSortOption(m.sortOption, 1))
	case key.Matches(msg, m.keys.SortPrev):
		m.applySort(state.NextSortOption(m.sortOption, -1))
	case key.Matches(msg, m.keys.PrevPage):
		m.setPage(m.projection.Page - 1)
	case key.Matches(msg, m.keys.NextPage):
		m.setPage(m.projection.Page + 1)
	case key.Matches(msg, m.keys.Up):
		m.cursor = max(m.cursor-1, 0)
	case key.Matches(msg, m.keys.Down):
		m.cursor = min(m.cursor+1, max(len(m.projection.Rows)-1, 0))
	case key.Matches(msg, m.keys.Open):
		if p, ok := m.selectedRow(); ok {
			return m, m.openEdit(p.ID)
		}
	case key.Matches(msg, m.keys.Create):
		m.form = newCreateForm(m.theme)
		return m, m.form.focusCmd()
	case key.Matches(msg, m.keys.Export):
		return m, m.exportCmd()
	case key.Matches(msg, m.keys.Tooltip):
		if p, ok := m.selectedRow(); ok {
			m.tooltip.show(m.cursor, p, 4, tableBodyTop+m.cursor)
		}
	default:
		if n, ok := pageDigit(msg); ok {
			m.setPage(n)
		}
	}
	return m, nil
}

func (m Model) handleSearchKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEnter, tea.KeyEsc:
		m.mode = modeBrowse
		m.search.Blur()
		return m, nil
	}
	before := m.search.Value()
	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	if m.search.Value() != before {
		m.ctrl.ApplySearch(m.search.Value())
		m.cursor = 0
		m.refresh()
	}
	return m, cmd
}

func (m *Model) applySort(option string) {
	if err := m.ctrl.ApplySort(option); err != nil {
		m.showError("Sort failed", err)
		return
	}
	m.cursor = 0
	m.refresh()
}

func (m *Model) setPage(n int) {
	if m.ctrl.SelectPage(n) != m.projection.Page {
		m.cursor = 0
	}
	m.refresh()
}

func (m *Model) openEdit(id int) tea.Cmd {
	p, ok := m.ctrl.Select(id)
	if !ok {
		return nil
	}
	m.tooltip.hide()
	m.form = newEditForm(m.theme, p)
	m.refresh()
	return m.form.focusCmd()
}

func (m *Model) cycleTheme() {
	m.theme = GetTheme(NextTheme(m.theme.Name))
	m.applyTheme()
	if m.form != nil {
		m.form.restyle(m.theme)
	}
	if err := prefs.Save(m.prefsPath, prefs.Prefs{Theme: m.theme.Name, Mouse: m.mouse}); err != nil {
		m.log.WithError(err).Warn("save prefs")
	}
	m.status = "Theme: " + m.theme.Name
}

func (m Model) handleSaved(msg savedMsg) (tea.Model, tea.Cmd) {
	m.submitting = false
	var reloadErr *controller.ReloadError
	switch {
	case msg.err == nil:
		m.form = nil
		m.refresh()
		m.status = msg.success()
	case errors.As(msg.err, &reloadErr):
		// The server accepted the change; only the refresh failed.
		m.form = nil
		m.refresh()
		m.showError("Reload failed", reloadErr.Err)
	default:
		if m.form != nil {
			m.form.err = msg.err
		}
		m.showError(msg.failureTitle(), msg.err)
	}
	return m, nil
}

func pageDigit(msg tea.KeyMsg) (int, bool) {
	if msg.Type != tea.KeyRunes || len(msg.Runes) != 1 {
		return 0, false
	}
	r := msg.Runes[0]
	if r < '1' || r > '9' {
		return 0, false
	}
	return int(r - '0'), true
}

// Run starts the Bubble Tea program and blocks until it exits.
func Run(opts Options) error {
	if opts.Context == nil {
		opts.Context = context.Background()
	}
	progOpts := []tea.ProgramOption{tea.WithAltScreen(), tea.WithContext(opts.Context)}
	if opts.Mouse {
		progOpts = append(progOpts, tea.WithMouseAllMotion())
	}
	_, err := tea.NewProgram(New(opts), progOpts...).Run()
	if errors.Is(err, tea.ErrProgramKilled) && opts.Context.Err() != nil {
		return nil
	}
	return err
}

// lastLoadLabel formats the time of the last successful load.
func lastLoadLabel(t time.Time) string {
	if t.IsZero() {
		return "never"
	}
	return t.Format("15:04:05")
}
