package services

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/custodia-labs/sercha-media/internal/core/domain"
)

// facets lists the facet filters every query carries, in build order.
var facets = []string{domain.FieldGenre, domain.FieldActors}

// BuildQuery reads a form snapshot and produces a Query.
// It has no side effects. Every value-bearing control contributes one field;
// both facet filters are always present; missing facet controls fail with
// domain.ErrMalformedFormState so a partial filter is never submitted.
func BuildQuery(form domain.FormState) (domain.Query, error) {
	q := domain.Query{
		Fields: make(map[string]domain.FieldValue),
		Boost:  make(map[string]float64),
	}

	for _, c := range form.Controls {
		if !c.ValueBearing {
			continue
		}
		v, err := fieldValue(c)
		if err != nil {
			return domain.Query{}, err
		}
		q.Fields[c.Name] = v
	}

	for _, facet := range facets {
		filter, err := facetFilter(form, facet)
		if err != nil {
			return domain.Query{}, err
		}
		if facet == domain.FieldGenre {
			q.GenreFilter = filter
		} else {
			q.ActorFilter = filter
		}
	}

	for _, c := range form.Controls {
		if !c.Boost {
			continue
		}
		weight, err := boostWeight(c)
		if err != nil {
			return domain.Query{}, err
		}
		q.Boost[c.Name] = weight
	}

	return q, nil
}

// fieldValue extracts the value of a value-bearing control by kind.
func fieldValue(c domain.Control) (domain.FieldValue, error) {
	switch c.Kind {
	case domain.ControlText:
		return domain.TextValue(c.Value), nil
	case domain.ControlMultiSelect:
		return domain.ListValue(c.SelectedValues()...), nil
	case domain.ControlCheckbox:
		return domain.BoolValue(c.Checked), nil
	case domain.ControlNumber:
		return domain.TextValue(strings.TrimSpace(c.Value)), nil
	case domain.ControlRadio:
		selected := c.SelectedValues()
		if len(selected) == 0 {
			return domain.TextValue(""), nil
		}
		return domain.TextValue(selected[0]), nil
	default:
		return domain.FieldValue{}, fmt.Errorf("%w: control %q has unknown kind %q",
			domain.ErrMalformedFormState, c.Name, c.Kind)
	}
}

// facetFilter reads the operator radio and value select of one facet.
func facetFilter(form domain.FormState, facet string) (domain.FacetFilter, error) {
	opControl, ok := form.Find(func(c domain.Control) bool {
		return c.Facet == facet && c.Kind == domain.ControlRadio
	})
	if !ok {
		return domain.FacetFilter{}, fmt.Errorf("%w: missing %s operator control",
			domain.ErrMalformedFormState, facet)
	}

	selected := opControl.SelectedValues()
	if len(selected) != 1 {
		return domain.FacetFilter{}, fmt.Errorf("%w: %s operator has %d choices selected",
			domain.ErrMalformedFormState, facet, len(selected))
	}
	op := domain.FacetOperator(strings.ToUpper(selected[0]))
	if !op.IsValid() {
		return domain.FacetFilter{}, fmt.Errorf("%w: %s operator %q is not AND or OR",
			domain.ErrMalformedFormState, facet, selected[0])
	}

	valueControl, ok := form.Find(func(c domain.Control) bool {
		return c.Facet == facet && c.Kind == domain.ControlMultiSelect
	})
	if !ok {
		return domain.FacetFilter{}, fmt.Errorf("%w: missing %s select control",
			domain.ErrMalformedFormState, facet)
	}

	return domain.FacetFilter{Operator: op, Values: valueControl.SelectedValues()}, nil
}

// boostWeight reads the weight of one boost control.
func boostWeight(c domain.Control) (float64, error) {
	switch c.Kind {
	case domain.ControlCheckbox:
		if c.Checked {
			return 1, nil
		}
		return 0, nil
	case domain.ControlNumber, domain.ControlText:
		raw := strings.TrimSpace(c.Value)
		if raw == "" {
			return 0, nil
		}
		w, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return 0, fmt.Errorf("%w: boost %q is not a number: %q",
				domain.ErrMalformedFormState, c.Name, c.Value)
		}
		return w, nil
	default:
		return 0, fmt.Errorf("%w: boost %q has unsupported kind %q",
			domain.ErrMalformedFormState, c.Name, c.Kind)
	}
}
