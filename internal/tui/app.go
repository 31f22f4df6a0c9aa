package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/rs/xid"
	"github.com/rs/zerolog"

	"github.com/zkhourdaji/hackernews/internal/browser"
	"github.com/zkhourdaji/hackernews/internal/config"
	"github.com/zkhourdaji/hackernews/internal/hn"
	"github.com/zkhourdaji/hackernews/internal/history"
	"github.com/zkhourdaji/hackernews/internal/state"
	"github.com/zkhourdaji/hackernews/internal/store"
)

type focusPane int

const (
	focusList focusPane = iota
	focusPreview
)

type mode int

const (
	modeNormal mode = iota
	modeSearch
	modeFilter
	modeHelp
)

type App struct {
	cfg     *config.Config
	client  hn.Searcher
	history *history.Store
	log     zerolog.Logger
	newID   func() string
	openURL func(string) error

	st     state.State
	cursor int
	focus  focusPane
	mode   mode

	width  int
	height int

	// Sub-components
	searchInput textinput.Model
	filterInput textinput.Model
	spinner     spinner.Model
	terms       termsBar

	recent        []string
	previewScroll int
	err           error
}

// RunOpts holds all parameters for launching the TUI.
type RunOpts struct {
	Cfg     *config.Config
	Client  hn.Searcher
	History *history.Store // optional
	Log     zerolog.Logger
	Query   string // initial term, defaults to cfg.DefaultQuery
}

func NewApp(opts RunOpts) *App {
	si := textinput.New()
	si.Placeholder = "Search Hacker News..."
	si.Prompt = searchPromptStyle.Render("/ ")
	si.CharLimit = 200

	fi := textinput.New()
	fi.Placeholder = "Filter titles..."
	fi.Prompt = searchPromptStyle.Render("filter: ")
	fi.CharLimit = 100

	sp := spinner.New()
	sp.Spinner = spinner.MiniDot
	sp.Style = spinnerStyle

	query := opts.Query
	if query == "" {
		query = opts.Cfg.DefaultQuery
	}

	return &App{
		cfg:         opts.Cfg,
		client:      opts.Client,
		history:     opts.History,
		log:         opts.Log.With().Str("component", "tui").Logger(),
		newID:       func() string { return xid.New().String() },
		openURL:     browser.Open,
		st:          state.New(query),
		searchInput: si,
		filterInput: fi,
		spinner:     sp,
	}
}

// Init runs the first search, like a page fetching on mount.
func (a *App) Init() tea.Cmd {
	return tea.Batch(
		a.dispatch(state.SearchSubmitted{RequestID: a.newID()}),
		a.loadHistoryCmd(),
	)
}

// dispatch feeds an action through the reducer and turns any resulting
// effect into a fetch command.
func (a *App) dispatch(act state.Action) tea.Cmd {
	next, eff, err := state.Reduce(a.st, act)
	if err != nil {
		a.log.Error().Err(err).Type("action", act).Msg("State transition rejected")
		a.err = err
		return nil
	}
	a.st = next
	a.clampCursor()
	if eff == nil {
		return nil
	}
	a.log.Debug().
		Str("request_id", eff.RequestID).
		Str("term", eff.Term).
		Int("page", eff.Page).
		Msg("Starting fetch")
	return tea.Batch(a.fetchCmd(*eff), a.spinner.Tick)
}

// fetchCmd captures everything it needs so it can run off the update loop.
func (a *App) fetchCmd(e state.Effect) tea.Cmd {
	client := a.client
	timeout := a.cfg.TimeoutDuration()
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		res, err := client.Search(hn.WithRequestID(ctx, e.RequestID), e.Term, e.Page)
		if err != nil {
			return fetchFailedMsg{effect: e, err: err}
		}
		return fetchDoneMsg{effect: e, result: res}
	}
}

func (a *App) recordCmd(term string) tea.Cmd {
	if a.history == nil || strings.TrimSpace(term) == "" {
		return nil
	}
	db := a.history
	return func() tea.Msg {
		if err := db.Record(term); err != nil {
			return errMsg{err: err}
		}
		entries, err := db.Recent(5)
		if err != nil {
			return errMsg{err: err}
		}
		return historyLoadedMsg{entries: entries}
	}
}

func (a *App) loadHistoryCmd() tea.Cmd {
	if a.history == nil {
		return nil
	}
	db := a.history
	return func() tea.Msg {
		entries, err := db.Recent(5)
		if err != nil {
			return errMsg{err: err}
		}
		return historyLoadedMsg{entries: entries}
	}
}

func (a *App) openCmd(url string) tea.Cmd {
	open := a.openURL
	return func() tea.Msg {
		if err := open(url); err != nil {
			return errMsg{err: err}
		}
		return nil
	}
}

func (a *App) visible() []store.ResultItem {
	return a.st.Visible()
}

func (a *App) selected() *store.ResultItem {
	items := a.visible()
	if len(items) == 0 || a.cursor >= len(items) {
		return nil
	}
	return &items[a.cursor]
}

func (a *App) clampCursor() {
	n := len(a.visible())
	if a.cursor >= n {
		a.cursor = max(0, n-1)
	}
}

// submit makes term the active search.
func (a *App) submit(term string) tea.Cmd {
	cmds := []tea.Cmd{
		a.dispatch(state.SearchChanged{Term: term}),
		a.dispatch(state.SearchSubmitted{RequestID: a.newID()}),
		a.recordCmd(term),
	}
	a.cursor = 0
	a.previewScroll = 0
	a.terms.active = a.st.ActiveTerm
	a.terms.sync(a.st.Cache.Terms())
	return tea.Batch(cmds...)
}

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		return a, nil

	case tea.KeyMsg:
		// Clear sticky error on any keypress
		a.err = nil
		return a.handleKey(msg)

	case fetchDoneMsg:
		cmd := a.dispatch(state.FetchSucceeded{
			RequestID: msg.effect.RequestID,
			Term:      msg.effect.Term,
			Page:      msg.result.Page,
			Items:     msg.result.Items,
		})
		a.terms.sync(a.st.Cache.Terms())
		a.terms.active = a.st.ActiveTerm
		return a, cmd

	case fetchFailedMsg:
		a.log.Warn().Err(msg.err).
			Str("request_id", msg.effect.RequestID).
			Msg("Fetch failed, keeping cached results")
		return a, a.dispatch(state.FetchFailed{
			RequestID: msg.effect.RequestID,
			Term:      msg.effect.Term,
			Page:      msg.effect.Page,
			Err:       msg.err,
		})

	case historyLoadedMsg:
		a.recent = a.recent[:0]
		for _, e := range msg.entries {
			a.recent = append(a.recent, e.Term)
		}
		return a, nil

	case errMsg:
		a.log.Warn().Err(msg.err).Msg("Background command failed")
		a.err = msg.err
		return a, nil

	case spinner.TickMsg:
		if a.st.Loading() {
			var cmd tea.Cmd
			a.spinner, cmd = a.spinner.Update(msg)
			return a, cmd
		}
		return a, nil
	}

	return a, nil
}

func (a *App) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// Global keys
	switch msg.String() {
	case "ctrl+c":
		return a, tea.Quit
	}

	// Mode-specific handling
	switch a.mode {
	case modeSearch:
		return a.handleSearchKey(msg)
	case modeFilter:
		return a.handleFilterKey(msg)
	case modeHelp:
		if msg.String() == "?" || msg.String() == "esc" || msg.String() == "q" {
			a.mode = modeNormal
		}
		return a, nil
	}

	// Normal mode
	switch msg.String() {
	case "q":
		return a, tea.Quit
	case "j", "down":
		if a.focus == focusList && a.cursor < len(a.visible())-1 {
			a.cursor++
			a.previewScroll = 0
		} else if a.focus == focusPreview {
			a.previewScroll++
		}
		return a, nil
	case "k", "up":
		if a.focus == focusList && a.cursor > 0 {
			a.cursor--
			a.previewScroll = 0
		} else if a.focus == focusPreview && a.previewScroll > 0 {
			a.previewScroll--
		}
		return a, nil
	case "g", "home":
		a.cursor = 0
		a.previewScroll = 0
		return a, nil
	case "G", "end":
		a.cursor = max(0, len(a.visible())-1)
		a.previewScroll = 0
		return a, nil
	case "tab":
		if a.focus == focusList {
			a.focus = focusPreview
		} else {
			a.focus = focusList
		}
		return a, nil
	case "o", "enter":
		if it := a.selected(); it != nil {
			return a, a.openCmd(it.Link())
		}
		return a, nil
	case "c":
		if it := a.selected(); it != nil {
			return a, a.openCmd(it.DiscussionURL())
		}
		return a, nil
	case "d", "x":
		if it := a.selected(); it != nil {
			return a, a.dispatch(state.Dismissed{ID: it.ID})
		}
		return a, nil
	case "m":
		if a.st.Loading() {
			return a, nil
		}
		return a, a.dispatch(state.LoadMore{RequestID: a.newID()})
	case "/":
		a.mode = modeSearch
		a.searchInput.SetValue(a.st.SearchTerm)
		a.searchInput.CursorEnd()
		return a, a.searchInput.Focus()
	case "f":
		a.mode = modeFilter
		a.filterInput.SetValue(a.st.Filter)
		a.filterInput.CursorEnd()
		return a, a.filterInput.Focus()
	case "?":
		a.mode = modeHelp
		return a, nil
	case "1", "2", "3", "4", "5", "6", "7", "8", "9":
		if term, ok := a.terms.at(int(msg.String()[0] - '0')); ok {
			return a, a.submit(term)
		}
		return a, nil
	}

	return a, nil
}

func (a *App) handleSearchKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		a.mode = modeNormal
		a.searchInput.Blur()
		return a, a.dispatch(state.SearchChanged{Term: a.st.ActiveTerm})
	case "enter":
		a.mode = modeNormal
		a.searchInput.Blur()
		term := strings.TrimSpace(a.searchInput.Value())
		if term == "" {
			return a, a.dispatch(state.SearchChanged{Term: a.st.ActiveTerm})
		}
		return a, a.submit(term)
	}

	var cmd tea.Cmd
	a.searchInput, cmd = a.searchInput.Update(msg)
	return a, tea.Batch(cmd, a.dispatch(state.SearchChanged{Term: a.searchInput.Value()}))
}

func (a *App) handleFilterKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		a.mode = modeNormal
		a.filterInput.Blur()
		a.filterInput.SetValue("")
		return a, a.dispatch(state.FilterChanged{Filter: ""})
	case "enter":
		a.mode = modeNormal
		a.filterInput.Blur()
		return a, nil
	}

	var cmd tea.Cmd
	a.filterInput, cmd = a.filterInput.Update(msg)
	a.cursor = 0
	return a, tea.Batch(cmd, a.dispatch(state.FilterChanged{Filter: a.filterInput.Value()}))
}

func (a *App) View() string {
	if a.width == 0 {
		return lipgloss.NewStyle().Foreground(colorPrimary).Render("  hackernews")
	}

	if a.mode == modeHelp {
		return a.renderHelp()
	}

	// Layout calculations
	headerHeight := 1
	barHeight := 1
	statusHeight := 1
	contentHeight := a.height - headerHeight - barHeight - statusHeight - 2 // borders

	listWidth := int(float64(a.width) * 0.45)
	previewWidth := a.width - listWidth

	if contentHeight < 3 {
		contentHeight = 3
	}

	// Header
	headerLeft := headerStyle.Render("hackernews")
	meta := "no search"
	if a.st.ActiveTerm != "" {
		meta = fmt.Sprintf("%q", a.st.ActiveTerm)
	}
	headerRight := headerMetaStyle.Render(meta + " ")
	headerGap := a.width - lipgloss.Width(headerLeft) - lipgloss.Width(headerRight)
	if headerGap < 0 {
		headerGap = 0
	}
	header := headerLeft + fmt.Sprintf("%*s", headerGap, "") + headerRight

	// Terms bar, replaced by the input being edited
	bar := a.terms.render(a.width)
	switch a.mode {
	case modeSearch:
		bar = a.searchInput.View()
	case modeFilter:
		bar = a.filterInput.View()
	}

	// List pane
	items := a.visible()
	emptyMsg := "No stories"
	if a.st.Loading() && len(a.st.Items()) == 0 {
		emptyMsg = "Loading..."
	} else if a.st.Filter != "" {
		emptyMsg = "No titles match the filter"
	}
	innerListW := listWidth - 4 // border + padding
	listContent := renderList(items, a.cursor, contentHeight, innerListW, emptyMsg)

	listStyle := listPaneStyle
	if a.focus == focusList {
		listStyle = listPaneActiveStyle
	}
	listPane := listStyle.Width(listWidth - 2).Height(contentHeight).Render(listContent)

	// Preview pane
	innerPreviewW := previewWidth - 4
	previewContent := renderPreview(a.selected(), innerPreviewW, contentHeight, a.previewScroll)

	previewStyle := previewPaneStyle
	if a.focus == focusPreview {
		previewStyle = previewPaneActiveStyle
	}
	previewPane := previewStyle.Width(previewWidth - 2).Height(contentHeight).Render(previewContent)

	content := lipgloss.JoinHorizontal(lipgloss.Top, listPane, previewPane)

	status := renderStatusBar(statusInfo{
		shown:   len(items),
		total:   len(a.st.Items()),
		page:    a.st.Page(),
		filter:  a.st.Filter,
		recent:  a.recent,
		mode:    a.mode,
		loading: a.st.Loading(),
		cached:  a.st.Cache.Len(),
	}, a.width)

	if a.st.Loading() {
		status = a.spinner.View() + " " + status
	}

	// Error display: UI errors first, then the last fetch failure
	if a.err != nil {
		status = errorStyle.Render(a.err.Error())
	} else if a.st.Err != nil {
		status = errorStyle.Render("Something went wrong: " + a.st.Err.Error())
	}

	return lipgloss.JoinVertical(lipgloss.Left, header, bar, content, status)
}

func (a *App) renderHelp() string {
	title := lipgloss.NewStyle().Foreground(colorPrimary).Bold(true).Render("hackernews")
	dim := helpDimStyle

	help := title + dim.Render(" - Keyboard Shortcuts") + "\n\n" +
		dim.Render("Navigation") + "\n" +
		"  j/k, ↑/↓     Move through stories\n" +
		"  g/G           First / last story\n" +
		"  tab           Switch focus between list and preview\n" +
		"  1-9           Show a previous search\n\n" +
		dim.Render("Actions") + "\n" +
		"  /             Search Hacker News\n" +
		"  m             Load the next page\n" +
		"  d, x          Dismiss story\n" +
		"  f             Filter titles\n" +
		"  o, enter      Open story in browser\n" +
		"  c             Open discussion in browser\n\n" +
		dim.Render("General") + "\n" +
		"  ?             Toggle this help\n" +
		"  q, ctrl+c    Quit"

	card := helpCardStyle.Render(help)

	return lipgloss.Place(a.width, a.height, lipgloss.Center, lipgloss.Center, card)
}

// Run starts the TUI application.
func Run(opts RunOpts) error {
	app := NewApp(opts)
	p := tea.NewProgram(app, tea.WithAltScreen())
	_, err := p.Run()
	return err
}
