// Package picker holds the open/closed workflow for choosing one conversion
// constant out of a filtered list. It does no rendering; the ui package drives it.
package picker

import (
	"go.uber.org/zap"

	"github.com/ramanasai/fator/internal/constants"
)

type State int

const (
	Closed State = iota
	Open
)

func (s State) String() string {
	if s == Open {
		return "open"
	}
	return "closed"
}

// DismissReason tells which gesture closed the picker without a selection.
type DismissReason int

const (
	DismissClose DismissReason = iota // explicit close control
	DismissBack                       // back action
	DismissBackdrop                   // tap/click outside the modal
)

func (r DismissReason) String() string {
	switch r {
	case DismissBack:
		return "back"
	case DismissBackdrop:
		return "backdrop"
	default:
		return "close"
	}
}

// OnChange receives the chosen record's value as text.
type OnChange func(value string)

type Option func(*Picker)

// WithLogger attaches a logger for state transitions.
func WithLogger(l *zap.Logger) Option {
	return func(p *Picker) {
		if l != nil {
			p.log = l
		}
	}
}

// Picker is owned by a single UI component and is not safe for concurrent use.
type Picker struct {
	constantType string
	records      []constants.Record
	onChange     OnChange
	log          *zap.Logger

	state    State
	filter   constants.Filter
	visible  []constants.Record
	selected *constants.Record
}

func New(constantType string, records []constants.Record, onChange OnChange, opts ...Option) *Picker {
	p := &Picker{
		constantType: constantType,
		onChange:     onChange,
		log:          zap.NewNop(),
	}
	for _, o := range opts {
		o(p)
	}
	p.SetRecords(records)
	return p
}

func (p *Picker) ConstantType() string { return p.constantType }
func (p *Picker) State() State         { return p.state }
func (p *Picker) IsOpen() bool         { return p.state == Open }

// Records returns every candidate, unfiltered.
func (p *Picker) Records() []constants.Record { return p.records }

// SetRecords replaces the candidates supplied by the parent and recomputes the view.
func (p *Picker) SetRecords(records []constants.Record) {
	p.records = append([]constants.Record(nil), records...)
	p.recompute()
}

// Open moves Closed -> Open with a fresh, empty filter. Opening an open picker is a no-op.
func (p *Picker) Open() {
	if p.state == Open {
		return
	}
	p.state = Open
	p.filter = constants.Filter{}
	p.recompute()
	p.log.Debug("picker opened",
		zap.String("type", p.constantType),
		zap.Int("candidates", len(p.records)))
}

// Filter returns the current filter state.
func (p *Picker) Filter() constants.Filter { return p.filter }

// SetCriterion updates one attribute of the filter. It returns false when closed.
func (p *Picker) SetCriterion(a constants.Attribute, c constants.Criterion) bool {
	if p.state != Open {
		return false
	}
	p.filter = p.filter.With(a, c)
	p.recompute()
	p.log.Debug("filter changed",
		zap.String("attribute", a.Key()),
		zap.String("criterion", c.String()),
		zap.Int("visible", len(p.visible)))
	return true
}

// ResetFilter clears every criterion while staying open.
func (p *Picker) ResetFilter() bool {
	if p.state != Open {
		return false
	}
	p.filter = constants.Filter{}
	p.recompute()
	return true
}

// Visible is the filtered view of the candidates.
func (p *Picker) Visible() []constants.Record { return p.visible }

// Empty reports whether the filtered view has nothing to offer.
func (p *Picker) Empty() bool { return len(p.visible) == 0 }

// Cancel closes without invoking the callback.
func (p *Picker) Cancel(reason DismissReason) bool {
	if p.state != Open {
		return false
	}
	p.close()
	p.log.Debug("picker dismissed", zap.String("reason", reason.String()))
	return true
}

// Confirm selects the visible record with the given id, invokes the callback once
// and closes. It returns false if the picker is closed or id is not visible.
func (p *Picker) Confirm(id int64) bool {
	if p.state != Open {
		return false
	}
	for i := range p.visible {
		if p.visible[i].ID != id {
			continue
		}
		rec := p.visible[i]
		p.selected = &rec
		p.close()
		value := rec.ValueText()
		p.log.Info("constant selected",
			zap.String("type", p.constantType),
			zap.Int64("id", rec.ID),
			zap.String("value", value))
		if p.onChange != nil {
			p.onChange(value)
		}
		return true
	}
	return false
}

// Selected returns the last confirmed record, if any.
func (p *Picker) Selected() (constants.Record, bool) {
	if p.selected == nil {
		return constants.Record{}, false
	}
	return *p.selected, true
}

func (p *Picker) close() {
	p.state = Closed
	p.filter = constants.Filter{}
	p.recompute()
}

func (p *Picker) recompute() {
	p.visible = p.filter.Apply(p.records)
}
