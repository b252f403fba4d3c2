// Package detail provides the item detail view for the TUI.
// It renders one cached item and the rest of the cached set as related
// items; it never calls the search backend.
package detail

import (
	"context"
	"errors"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/dustin/go-humanize"

	"github.com/custodia-labs/sercha-media/internal/adapters/driving/tui/components/stars"
	"github.com/custodia-labs/sercha-media/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/sercha-media/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/sercha-media/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/sercha-media/internal/core/domain"
	"github.com/custodia-labs/sercha-media/internal/core/ports/driving"
)

// ErrNoDetailService indicates that no detail service was provided.
var ErrNoDetailService = errors.New("detail service is required")

// View is the item detail view.
type View struct {
	styles  *styles.Styles
	keymap  *keymap.KeyMap
	service driving.DetailService
	ctx     context.Context

	docID    domain.DocID
	detail   *domain.Detail
	selected int
	loading  bool
	width    int
	height   int
	ready    bool
	err      error
}

// NewView creates a new detail view.
func NewView(s *styles.Styles, km *keymap.KeyMap, service driving.DetailService) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	if km == nil {
		km = keymap.DefaultKeyMap()
	}
	return &View{
		styles:  s,
		keymap:  km,
		service: service,
		ctx:     context.Background(),
		width:   80,
		height:  24,
	}
}

// WithContext sets the context for the view.
func (v *View) WithContext(ctx context.Context) *View {
	v.ctx = ctx
	return v
}

// Init initialises the view.
func (v *View) Init() tea.Cmd {
	return nil
}

// Load starts loading the detail of id. Results for any earlier id are
// discarded when they arrive.
func (v *View) Load(id domain.DocID) tea.Cmd {
	v.docID = id
	v.detail = nil
	v.selected = 0
	v.err = nil
	v.loading = true

	svc := v.service
	ctx := v.ctx
	return func() tea.Msg {
		if svc == nil {
			return messages.DetailLoaded{DocID: id, Err: ErrNoDetailService}
		}
		d, err := svc.Detail(ctx, id)
		return messages.DetailLoaded{DocID: id, Detail: d, Err: err}
	}
}

// Update handles messages for the detail view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
		return v, nil

	case messages.DetailLoaded:
		if msg.DocID != v.docID {
			return v, nil
		}
		v.loading = false
		if msg.Err != nil {
			v.err = msg.Err
			return v, nil
		}
		d := msg.Detail
		v.detail = &d
		return v, nil

	case tea.KeyMsg:
		return v.handleKeyMsg(msg)

	case messages.ErrorOccurred:
		v.err = msg.Err
		return v, nil
	}
	return v, nil
}

func (v *View) handleKeyMsg(msg tea.KeyMsg) (*View, tea.Cmd) {
	k := msg.String()
	switch {
	case keymap.Matches(k, v.keymap.Back):
		return v, func() tea.Msg {
			return messages.ViewChanged{View: messages.ViewSearch}
		}
	case keymap.Matches(k, v.keymap.Up):
		if v.selected > 0 {
			v.selected--
		}
	case keymap.Matches(k, v.keymap.Down):
		if v.detail != nil && v.selected < len(v.detail.Related)-1 {
			v.selected++
		}
	case keymap.Matches(k, v.keymap.Select):
		if item, ok := v.SelectedRelated(); ok {
			location := domain.DetailLocation(item.DocID)
			return v, func() tea.Msg {
				return messages.DetailRequested{Location: location}
			}
		}
	}
	return v, nil
}

// View renders the detail view.
func (v *View) View() string {
	if !v.ready {
		return "Initialising..."
	}
	var b strings.Builder
	switch {
	case v.loading:
		b.WriteString(v.styles.Muted.Render("Loading..."))
	case errors.Is(v.err, domain.ErrNotFound):
		b.WriteString(v.styles.Title.Render("Nothing to show"))
		b.WriteString("\n\n")
		b.WriteString(v.styles.Muted.Render(
			fmt.Sprintf("%s is not in the current results. Run a search first.", v.docID)))
	case v.err != nil:
		b.WriteString(v.styles.Error.Render("Error: " + v.err.Error()))
	case v.detail != nil:
		v.renderPrimary(&b, v.detail.Primary)
		b.WriteString("\n")
		v.renderRelated(&b, v.detail.Related)
	}
	b.WriteString("\n\n")
	b.WriteString(v.styles.Help.Render("↑/↓ navigate • enter open • esc back"))
	return b.String()
}

func (v *View) renderPrimary(b *strings.Builder, item domain.ResultItem) {
	b.WriteString(v.styles.Title.Render(item.Title))
	b.WriteString("  ")
	b.WriteString(stars.Render(v.styles, item.AvgStars))
	b.WriteString(v.styles.Muted.Render(fmt.Sprintf(" %.1f", item.AvgStars)))
	b.WriteString("\n")

	meta := strings.TrimSpace(strings.Join([]string{item.Runtime, item.Certificate}, " "))
	if meta != "" {
		b.WriteString(v.styles.Muted.Render(meta))
		b.WriteString("\n")
	}
	v.field(b, "Genre", strings.Join(item.Genres, ", "))
	v.field(b, "Actors", strings.Join(item.Actors, ", "))
	if item.Votes > 0 {
		v.field(b, "IMDB", fmt.Sprintf("%.1f from %s votes", item.Rating, humanize.Comma(int64(item.Votes))))
	}
	v.field(b, "Poster", item.Poster)
	if item.Overview != "" {
		b.WriteString("\n")
		b.WriteString(v.styles.Normal.Width(v.contentWidth()).Render(item.Overview))
		b.WriteString("\n")
	}
}

func (v *View) renderRelated(b *strings.Builder, related []domain.ResultItem) {
	if len(related) == 0 {
		b.WriteString(v.styles.Muted.Render("No related items"))
		return
	}
	b.WriteString(v.styles.Subtitle.Render(fmt.Sprintf("Related (%d)", len(related))))
	b.WriteString("\n")
	for i, item := range related {
		indicator := "  "
		if i == v.selected {
			indicator = "> "
		}
		line := fmt.Sprintf("%s%s", indicator, item.Title)
		if i == v.selected {
			line = v.styles.Selected.Render(line)
		} else {
			line = v.styles.Normal.Render(line)
		}
		b.WriteString(line)
		b.WriteString("\n")

		parts := make([]string, 0, 3)
		if lead := item.LeadActor(); lead != "" {
			parts = append(parts, lead)
		}
		parts = append(parts, humanize.Comma(int64(item.Votes))+" votes")
		if item.Poster != "" {
			parts = append(parts, item.Poster)
		}
		b.WriteString(v.styles.Muted.Render("    " + strings.Join(parts, " · ")))
		b.WriteString("\n")
	}
}

func (v *View) field(b *strings.Builder, label, value string) {
	if value == "" {
		return
	}
	b.WriteString(v.styles.Subtitle.Render(label + ": "))
	b.WriteString(v.styles.Normal.Render(value))
	b.WriteString("\n")
}

func (v *View) contentWidth() int {
	if v.width < 24 {
		return 20
	}
	return v.width - 4
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.ready = true
}

// DocID returns the identifier being shown.
func (v *View) DocID() domain.DocID {
	return v.docID
}

// Detail returns the loaded detail, or nil.
func (v *View) Detail() *domain.Detail {
	return v.detail
}

// SelectedRelated returns the highlighted related item.
func (v *View) SelectedRelated() (domain.ResultItem, bool) {
	if v.detail == nil || v.selected < 0 || v.selected >= len(v.detail.Related) {
		return domain.ResultItem{}, false
	}
	return v.detail.Related[v.selected], true
}

// Loading reports whether a load is in progress.
func (v *View) Loading() bool {
	return v.loading
}

// Err returns the current error, if any.
func (v *View) Err() error {
	return v.err
}

// Ready returns whether the view is ready to render.
func (v *View) Ready() bool {
	return v.ready
}
