package compare

import (
	"errors"
	"fmt"
)

// MaxSelection is the largest number of instruments compared at once.
const MaxSelection = 8

// Palette holds the series colours, one per selection slot.
var Palette = []string{"#f44336", "#2196f3", "#4caf50", "#ff9800", "#9c27b0", "#607d8b", "#e91e63", "#00bcd4"}

// DefaultCodes is the selection used when nothing has been saved.
var DefaultCodes = []string{"sh000001", "sz399001"}

var (
	ErrSetFull   = errors.New("comparison set is full")
	ErrDuplicate = errors.New("instrument already selected")
)

// Member is one selected instrument with its assigned colour.
type Member struct {
	Code  string `json:"code"`
	Color string `json:"color"`
}

// Set is an ordered selection of instruments to compare. The zero value is
// an empty set.
type Set struct {
	members []Member
}

// NewSet builds a set from codes in order.
func NewSet(codes ...string) (*Set, error) {
	s := &Set{}
	for _, c := range codes {
		if err := s.Add(c); err != nil {
			return nil, err
		}
	}
	return s, nil
}

// Add appends code and gives it the first palette colour not in use.
func (s *Set) Add(code string) error {
	if s.Contains(code) {
		return fmt.Errorf("%w: %s", ErrDuplicate, code)
	}
	if len(s.members) >= MaxSelection {
		return fmt.Errorf("%w: at most %d instruments", ErrSetFull, MaxSelection)
	}
	s.members = append(s.members, Member{Code: code, Color: s.freeColor()})
	return nil
}

// Remove drops code and reports whether it was selected.
func (s *Set) Remove(code string) bool {
	for i, m := range s.members {
		if m.Code == code {
			s.members = append(s.members[:i], s.members[i+1:]...)
			return true
		}
	}
	return false
}

// Contains reports whether code is selected.
func (s *Set) Contains(code string) bool {
	for _, m := range s.members {
		if m.Code == code {
			return true
		}
	}
	return false
}

// Len returns the number of selected codes.
func (s *Set) Len() int { return len(s.members) }

// Members returns a copy of the selection in order.
func (s *Set) Members() []Member {
	out := make([]Member, len(s.members))
	copy(out, s.members)
	return out
}

// Codes returns the selected codes in order.
func (s *Set) Codes() []string {
	out := make([]string, len(s.members))
	for i, m := range s.members {
		out[i] = m.Code
	}
	return out
}

func (s *Set) freeColor() string {
	used := make(map[string]bool, len(s.members))
	for _, m := range s.members {
		used[m.Color] = true
	}
	for _, c := range Palette {
		if !used[c] {
			return c
		}
	}
	return Palette[len(s.members)%len(Palette)]
}
