// Package wizard declares the multi-step data collection flows as data:
// each wizard is a linear list of steps, each step an input kind, a field
// key, a prompt and an optional keyboard. The dispatcher walks the graph;
// nothing here touches storage.
package wizard

import (
	"fmt"

	"nutribot_backend/internal/i18n"
	"nutribot_backend/internal/transport"
)

// InputKind tells the step validator what the user's reply must be.
type InputKind int

const (
	KindText InputKind = iota
	KindNumber
	KindPositiveNumber
	KindDate
	KindChoice
	KindAttachment
	KindContent // attachment or pasted text
	KindYesNo
)

// Option is one choice-keyboard entry. LabelKey is localized at render
// time; Label is used verbatim when LabelKey is empty. Value is the
// canonical string stored in the conversation state.
type Option struct {
	LabelKey string
	Label    string
	Value    string
}

func (o Option) label(lang string) string {
	if o.LabelKey != "" {
		return i18n.T(lang, o.LabelKey)
	}
	return o.Label
}

// Step is one node of a wizard graph. Next names the following step; the
// empty string marks the terminal step.
type Step struct {
	Name      string
	Kind      InputKind
	FieldKey  string
	PromptKey string
	ErrorKey  string // overrides the kind's default rejection message
	Options   []Option
	PerRow    int  // keyboard columns, 0 means 2
	TypedOK   bool // choice steps that also accept a typed positive number
	Skippable bool // "-" or the skip button leaves the field absent
	Next      string
}

// Keyboard renders the step's options as localized button rows, plus a
// skip row when the step is skippable.
func (s Step) Keyboard(lang string) [][]transport.Button {
	if len(s.Options) == 0 && !s.Skippable {
		return nil
	}
	perRow := s.PerRow
	if perRow <= 0 {
		perRow = 2
	}

	var rows [][]transport.Button
	var row []transport.Button
	for _, opt := range s.Options {
		row = append(row, transport.Button{Label: opt.label(lang), Token: opt.Value})
		if len(row) == perRow {
			rows = append(rows, row)
			row = nil
		}
	}
	if len(row) > 0 {
		rows = append(rows, row)
	}
	if s.Skippable {
		rows = append(rows, []transport.Button{{Label: i18n.T(lang, "skip"), Token: skipToken}})
	}
	return rows
}

// Prompt renders the step's localized prompt with its keyboard.
func (s Step) Prompt(lang string) transport.Response {
	return transport.WithKeyboard(i18n.T(lang, s.PromptKey), s.Keyboard(lang))
}

// Wizard is a named linear flow. Steps[0] is the entry step.
type Wizard struct {
	Name  string
	Steps []Step

	byName map[string]Step
}

// First returns the entry step.
func (w Wizard) First() Step { return w.Steps[0] }

// Step looks a step up by name.
func (w Wizard) Step(name string) (Step, bool) {
	s, ok := w.byName[name]
	return s, ok
}

// Registry holds every wizard definition, validated at construction.
type Registry struct {
	wizards map[string]Wizard
}

// NewRegistry builds the full wizard set. It panics on a malformed graph;
// definitions are compile-time data, not runtime input.
func NewRegistry() *Registry {
	r := &Registry{wizards: make(map[string]Wizard)}
	for _, w := range definitions() {
		if err := r.add(w); err != nil {
			panic(fmt.Sprintf("wizard %s: %v", w.Name, err))
		}
	}
	return r
}

// Get looks a wizard up by name.
func (r *Registry) Get(name string) (Wizard, bool) {
	w, ok := r.wizards[name]
	return w, ok
}

// Names returns every registered wizard name.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.wizards))
	for name := range r.wizards {
		names = append(names, name)
	}
	return names
}

func (r *Registry) add(w Wizard) error {
	if len(w.Steps) == 0 {
		return fmt.Errorf("no steps")
	}
	if _, dup := r.wizards[w.Name]; dup {
		return fmt.Errorf("duplicate wizard")
	}

	w.byName = make(map[string]Step, len(w.Steps))
	for _, s := range w.Steps {
		if s.Name == "" {
			return fmt.Errorf("unnamed step")
		}
		if _, dup := w.byName[s.Name]; dup {
			return fmt.Errorf("duplicate step %s", s.Name)
		}
		w.byName[s.Name] = s
	}

	// The graph must be a single chain from Steps[0] to a terminal step.
	seen := make(map[string]bool, len(w.Steps))
	cur := w.Steps[0]
	for {
		if seen[cur.Name] {
			return fmt.Errorf("cycle at step %s", cur.Name)
		}
		seen[cur.Name] = true
		if cur.Next == "" {
			break
		}
		next, ok := w.byName[cur.Next]
		if !ok {
			return fmt.Errorf("step %s points at unknown step %s", cur.Name, cur.Next)
		}
		cur = next
	}
	if len(seen) != len(w.Steps) {
		return fmt.Errorf("unreachable steps")
	}

	r.wizards[w.Name] = w
	return nil
}
