// Package form holds the page state as immutable revisions. Every user action is a
// pure transition from one State to the next; nothing here touches the network.
package form

import (
	"net/url"
	"strconv"
	"strings"

	"course-promo/models"
)

// Query keys used to carry the state between requests
const (
	KeyName    = "name"
	KeyContact = "contact"
	KeyCourse  = "course"
	// KeyRevision is always present in encoded state, so an empty selection is not
	// confused with a first visit
	KeyRevision = "rev"
)

// State is one revision of the page
type State struct {
	Revision       int
	StudentName    string
	StudentContact string
	Selection      []string
	Error          string
	Submitting     bool
	ShowSuccess    bool
}

// ActionKind enumerates the transitions Reduce understands
type ActionKind int

const (
	ActionSetName ActionKind = iota
	ActionSetContact
	ActionToggle
	ActionDismissError
	ActionBeginSubmit
	ActionSubmitSucceeded
	ActionSubmitFailed
	ActionBeginDownload
	ActionDownloadFailed
	ActionDismissSuccess
)

// Action is a transition request; Value carries the name, contact, course id or error message
type Action struct {
	Kind  ActionKind
	Value string
}

// Initial returns the first revision: empty contact fields and every offering selected
func Initial(catalog models.Catalog) State {
	return State{Selection: catalog.IDs()}
}

// Toggle removes id from selection when present, otherwise appends it.
// The input slice is never modified.
func Toggle(selection []string, id string) []string {
	out := make([]string, 0, len(selection)+1)
	found := false
	for _, s := range selection {
		if s == id {
			found = true
			continue
		}
		out = append(out, s)
	}
	if !found {
		out = append(out, id)
	}
	return out
}

// Selected reports whether id is part of the selection
func (s State) Selected(id string) bool {
	for _, sel := range s.Selection {
		if sel == id {
			return true
		}
	}
	return false
}

// Reduce applies a to s and returns the next revision
func Reduce(s State, a Action) State {
	next := s.clone()
	next.Revision = s.Revision + 1

	switch a.Kind {
	case ActionSetName:
		next.StudentName = a.Value
	case ActionSetContact:
		next.StudentContact = a.Value
	case ActionToggle:
		next.Selection = Toggle(s.Selection, a.Value)
	case ActionDismissError:
		next.Error = ""
	case ActionBeginSubmit:
		next.Error = ""
		next.Submitting = true
	case ActionSubmitSucceeded:
		next.StudentName = ""
		next.StudentContact = ""
		next.Selection = []string{}
		next.Error = ""
		next.Submitting = false
		next.ShowSuccess = true
	case ActionSubmitFailed:
		next.Error = a.Value
		next.Submitting = false
	case ActionBeginDownload:
		next.Error = ""
	case ActionDownloadFailed:
		next.Error = a.Value
	case ActionDismissSuccess:
		next.ShowSuccess = false
	}
	return next
}

// ReduceAll folds a sequence of actions over s
func ReduceAll(s State, actions ...Action) State {
	for _, a := range actions {
		s = Reduce(s, a)
	}
	return s
}

func (s State) clone() State {
	c := s
	c.Selection = make([]string, len(s.Selection))
	copy(c.Selection, s.Selection)
	return c
}

// Values encodes the contact fields and selection, keeping selection order
func (s State) Values() url.Values {
	v := url.Values{}
	v.Set(KeyRevision, strconv.Itoa(s.Revision))
	if s.StudentName != "" {
		v.Set(KeyName, s.StudentName)
	}
	if s.StudentContact != "" {
		v.Set(KeyContact, s.StudentContact)
	}
	for _, id := range s.Selection {
		v.Add(KeyCourse, id)
	}
	return v
}

// HasState reports whether v carries an encoded state
func HasState(v url.Values) bool {
	return v.Has(KeyRevision)
}

// FromValues decodes a state produced by Values. Unknown or repeated course ids are
// dropped so the selection keeps toggle semantics. Values without an encoded state
// yield the initial revision.
func FromValues(v url.Values, catalog models.Catalog) State {
	if !HasState(v) {
		return Initial(catalog)
	}
	rev, _ := strconv.Atoi(v.Get(KeyRevision))
	if rev < 0 {
		rev = 0
	}
	s := State{
		Revision:       rev,
		StudentName:    v.Get(KeyName),
		StudentContact: v.Get(KeyContact),
		Selection:      []string{},
	}
	seen := make(map[string]bool)
	for _, id := range v[KeyCourse] {
		id = strings.TrimSpace(id)
		if id == "" || seen[id] || !catalog.Has(id) {
			continue
		}
		seen[id] = true
		s.Selection = append(s.Selection, id)
	}
	return s
}
