package domain

// Field names used by the search form and the backend catalogue.
const (
	FieldTitle    = "Series_Title"
	FieldOverview = "Overview"
	FieldGenre    = "Genre"
	FieldActors   = "Actors"
	FieldRating   = "IMDB_Rating"
	FieldVotes    = "No_of_Votes"
)

// ControlKind identifies how a form control holds its value.
type ControlKind string

// Available control kinds.
const (
	// ControlText is a free-text input.
	ControlText ControlKind = "text"

	// ControlMultiSelect is a list of options, any number of which may be selected.
	ControlMultiSelect ControlKind = "select-multiple"

	// ControlCheckbox is a boolean toggle.
	ControlCheckbox ControlKind = "checkbox"

	// ControlRadio is a group of options of which exactly one is chosen.
	ControlRadio ControlKind = "radio"

	// ControlNumber is a numeric input.
	ControlNumber ControlKind = "number"
)

// Option is one choice in a multi-select or radio control.
type Option struct {
	Value    string
	Label    string
	Selected bool
}

// Control is the state of one form control at the time of a snapshot.
type Control struct {
	// Name is the field name the control contributes to.
	Name string

	// Kind determines how the value is read.
	Kind ControlKind

	// ValueBearing marks controls whose value goes into Query.Fields.
	ValueBearing bool

	// Facet names the facet filter (Genre, Actors) an operator radio or
	// value select belongs to. Empty for ordinary controls.
	Facet string

	// Boost marks members of the boost control group.
	Boost bool

	// Value holds text and number input.
	Value string

	// Checked holds checkbox state.
	Checked bool

	// Options holds select and radio choices.
	Options []Option
}

// SelectedValues returns the values of the selected options in display order.
// An option without a value contributes its label.
func (c Control) SelectedValues() []string {
	values := make([]string, 0, len(c.Options))
	for _, opt := range c.Options {
		if !opt.Selected {
			continue
		}
		if opt.Value != "" {
			values = append(values, opt.Value)
		} else {
			values = append(values, opt.Label)
		}
	}
	return values
}

// FormState is an immutable snapshot of every control on the search form.
type FormState struct {
	Controls []Control
}

// Find returns the first control matching pred.
func (f FormState) Find(pred func(Control) bool) (Control, bool) {
	for _, c := range f.Controls {
		if pred(c) {
			return c, true
		}
	}
	return Control{}, false
}

// DefaultGenres is the genre list offered by the form when none is configured.
var DefaultGenres = []string{
	"Action", "Adventure", "Animation", "Biography", "Comedy", "Crime",
	"Documentary", "Drama", "Family", "Fantasy", "History", "Horror",
	"Music", "Mystery", "Romance", "Sci-Fi", "Sport", "Thriller", "War", "Western",
}

// DefaultForm returns the form definition of the search page with nothing entered.
// Genre and actor options come from the caller so they can be configured.
func DefaultForm(genres, actors []string) FormState {
	return FormState{Controls: []Control{
		{Name: FieldTitle, Kind: ControlText, ValueBearing: true},
		{Name: FieldOverview, Kind: ControlText, ValueBearing: true},
		{Name: FieldGenre, Kind: ControlRadio, Facet: FieldGenre, Options: operatorOptions()},
		{Name: FieldGenre, Kind: ControlMultiSelect, Facet: FieldGenre, Options: valueOptions(genres)},
		{Name: FieldActors, Kind: ControlRadio, Facet: FieldActors, Options: operatorOptions()},
		{Name: FieldActors, Kind: ControlMultiSelect, Facet: FieldActors, Options: valueOptions(actors)},
		{Name: FieldRating, Kind: ControlCheckbox, Boost: true, Checked: true},
		{Name: FieldVotes, Kind: ControlCheckbox, Boost: true},
	}}
}

func operatorOptions() []Option {
	return []Option{
		{Value: string(OperatorOr), Label: "any", Selected: true},
		{Value: string(OperatorAnd), Label: "all"},
	}
}

func valueOptions(values []string) []Option {
	opts := make([]Option, 0, len(values))
	for _, v := range values {
		opts = append(opts, Option{Value: v, Label: v})
	}
	return opts
}
