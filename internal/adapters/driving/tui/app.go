package tui

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/sercha-media/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/sercha-media/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/sercha-media/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/sercha-media/internal/adapters/driving/tui/views/detail"
	"github.com/custodia-labs/sercha-media/internal/adapters/driving/tui/views/search"
	"github.com/custodia-labs/sercha-media/internal/core/domain"
	"github.com/custodia-labs/sercha-media/internal/logger"
)

// App is the main TUI application following the Elm architecture.
// It implements tea.Model for use with Bubbletea.
type App struct {
	// ports provides access to core services via driving ports.
	ports *Ports

	// ctx is the context for cancellation.
	ctx context.Context

	// styles holds the TUI styles.
	styles *styles.Styles

	// keymap holds the keybindings shared by every view.
	keymap *keymap.KeyMap

	// searchView is the form and results view.
	searchView *search.View

	// detailView shows one cached item and its related items.
	detailView *detail.View

	// currentView tracks which view is active.
	currentView messages.ViewType

	// previousView is where help returns to.
	previousView messages.ViewType

	// err holds the last error that occurred.
	err error

	// width and height are terminal dimensions.
	width  int
	height int

	// ready indicates if the app has initialised.
	ready bool
}

// Ensure App implements tea.Model.
var _ tea.Model = (*App)(nil)

// NewApp creates a new TUI application with the given ports.
func NewApp(ports *Ports) (*App, error) {
	if err := ports.Validate(); err != nil {
		return nil, fmt.Errorf("creating app: %w", err)
	}

	s := styles.DefaultStyles()
	km := keymap.DefaultKeyMap()
	genres, actors := ports.formOptions()

	return &App{
		ports:  ports,
		ctx:    context.Background(),
		styles: s,
		keymap: km,
		searchView: search.NewView(s, km, search.Services{
			Search:   ports.Search,
			Rating:   ports.Rating,
			Feedback: ports.Feedback,
		}, genres, actors),
		detailView:  detail.NewView(s, km, ports.Detail),
		currentView: messages.ViewSearch,
	}, nil
}

// WithContext sets the context for the app and its views.
func (a *App) WithContext(ctx context.Context) *App {
	a.ctx = ctx
	a.searchView.WithContext(ctx)
	a.detailView.WithContext(ctx)
	return a
}

// Init implements tea.Model.
// It runs initial commands when the program starts.
func (a *App) Init() tea.Cmd {
	return tea.Batch(
		tea.EnterAltScreen,
		tea.SetWindowTitle("sercha-media"),
		a.searchView.Init(),
	)
}

// Update implements tea.Model.
// It handles messages and updates the model state.
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.SetDimensions(msg.Width, msg.Height)
		return a, nil

	case tea.KeyMsg:
		return a.handleKeyMsg(msg)

	case messages.SearchCompleted, messages.AverageLoaded,
		messages.RatingSubmitted, messages.FeedbackSubmitted:
		// Results belong to the search view whichever view is showing.
		a.searchView, cmd = a.searchView.Update(msg)
		a.err = a.searchView.Err()
		return a, cmd

	case messages.DetailRequested:
		id, err := domain.ParseLocation(msg.Location)
		if err != nil {
			logger.Warn("Ignoring navigation to %q: %v", msg.Location, err)
			a.err = err
			return a, nil
		}
		a.currentView = messages.ViewDetail
		return a, a.detailView.Load(id)

	case messages.DetailLoaded:
		a.detailView, cmd = a.detailView.Update(msg)
		return a, cmd

	case messages.ViewChanged:
		if msg.View == messages.ViewHelp && a.currentView != messages.ViewHelp {
			a.previousView = a.currentView
		}
		a.currentView = msg.View
		return a, nil

	case messages.ErrorOccurred:
		a.err = msg.Err
		switch a.currentView {
		case messages.ViewSearch:
			a.searchView, cmd = a.searchView.Update(msg)
		case messages.ViewDetail:
			a.detailView, cmd = a.detailView.Update(msg)
		case messages.ViewHelp:
			// Help does not show errors
		}
		return a, cmd

	case messages.Quit:
		return a, tea.Quit
	}

	// Forward other messages to active view
	switch a.currentView {
	case messages.ViewSearch:
		a.searchView, cmd = a.searchView.Update(msg)
	case messages.ViewDetail:
		a.detailView, cmd = a.detailView.Update(msg)
	case messages.ViewHelp:
	}
	return a, cmd
}

// handleKeyMsg routes keys. Global shortcuts other than ctrl+c only apply
// while the active view is not capturing printable keys.
func (a *App) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	k := msg.String()

	if k == "ctrl+c" {
		return a, tea.Quit
	}

	captured := a.currentView == messages.ViewSearch && a.searchView.CapturesKeys()
	if !captured {
		switch {
		case keymap.Matches(k, a.keymap.Quit):
			return a, tea.Quit
		case keymap.Matches(k, a.keymap.Help) && a.currentView != messages.ViewHelp:
			a.previousView = a.currentView
			a.currentView = messages.ViewHelp
			return a, nil
		}
	}

	switch a.currentView {
	case messages.ViewSearch:
		a.searchView, cmd = a.searchView.Update(msg)
		a.err = a.searchView.Err()
	case messages.ViewDetail:
		a.detailView, cmd = a.detailView.Update(msg)
	case messages.ViewHelp:
		if keymap.Matches(k, a.keymap.Back) || keymap.Matches(k, a.keymap.Help) {
			a.currentView = a.previousView
		}
	}
	return a, cmd
}

// View implements tea.Model.
func (a *App) View() string {
	if !a.ready {
		return "Initialising..."
	}

	switch a.currentView {
	case messages.ViewSearch:
		return a.searchView.View()
	case messages.ViewDetail:
		return a.detailView.View()
	case messages.ViewHelp:
		return a.viewHelp()
	}
	return ""
}

// viewHelp renders the help view.
func (a *App) viewHelp() string {
	return a.styles.Title.Render("Help") + `

Form:
  tab/shift+tab  Move between fields
  space          Toggle option or checkbox
  ←/→            Move within a list of options
  ctrl+a         Show boost options
  enter          Search

Results:
  j/k, ↑/↓       Navigate results
  1-5            Rate the selected item (asks to confirm)
  l / d          Mark as liked / disliked
  r              Refresh results using your marks
  enter          Open details
  n, /           New search

Details:
  j/k, ↑/↓       Navigate related items
  enter          Open related item
  esc            Back to results

  q, ctrl+c      Quit

` + a.styles.Muted.Render("[esc] back")
}

// Run starts the TUI application.
func (a *App) Run() error {
	p := tea.NewProgram(a, tea.WithAltScreen(), tea.WithContext(a.ctx))
	_, err := p.Run()
	return err
}

// CurrentView returns the current view type.
func (a *App) CurrentView() messages.ViewType {
	return a.currentView
}

// SearchView returns the search view.
func (a *App) SearchView() *search.View {
	return a.searchView
}

// DetailView returns the detail view.
func (a *App) DetailView() *detail.View {
	return a.detailView
}

// Err returns the last error that occurred.
func (a *App) Err() error {
	return a.err
}

// Ready returns whether the app has been initialised.
func (a *App) Ready() bool {
	return a.ready
}

// SetDimensions sets the terminal dimensions.
func (a *App) SetDimensions(width, height int) {
	a.width = width
	a.height = height
	a.ready = true
	a.searchView.SetDimensions(width, height)
	a.detailView.SetDimensions(width, height)
}
