package model

import (
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"
)

var ErrInvalidSlideNumber = errors.New("model: invalid slide number")

// Record is the script and title stored for one slide.
type Record struct {
	Script string `json:"script"`
	Title  string `json:"title"`
}

func (r Record) IsEmpty() bool {
	return strings.TrimSpace(r.Script) == "" && strings.TrimSpace(r.Title) == ""
}

// Raw is the persisted shape of a store: decimal slide number to record.
type Raw map[string]Record

// Store maps slide numbers to records. A number is present only while its
// record has a non-blank script or title.
type Store struct {
	slides map[int]Record
}

func NewStore() *Store {
	return &Store{slides: make(map[int]Record)}
}

func (s *Store) Get(n int) Record {
	if s == nil || s.slides == nil {
		return Record{}
	}
	return s.slides[n]
}

func (s *Store) Has(n int) bool {
	if s == nil || s.slides == nil {
		return false
	}
	_, ok := s.slides[n]
	return ok
}

func (s *Store) SetScript(n int, text string) {
	rec := s.Get(n)
	rec.Script = strings.TrimSpace(text)
	s.put(n, rec)
}

func (s *Store) SetTitle(n int, text string) {
	rec := s.Get(n)
	rec.Title = strings.TrimSpace(text)
	s.put(n, rec)
}

func (s *Store) put(n int, rec Record) {
	if s.slides == nil {
		s.slides = make(map[int]Record)
	}
	if rec.IsEmpty() {
		delete(s.slides, n)
		return
	}
	s.slides[n] = rec
}

func (s *Store) Len() int {
	if s == nil {
		return 0
	}
	return len(s.slides)
}

// Numbers returns the stored slide numbers in ascending order.
func (s *Store) Numbers() []int {
	if s == nil {
		return nil
	}
	out := make([]int, 0, len(s.slides))
	for n := range s.slides {
		out = append(out, n)
	}
	sort.Ints(out)
	return out
}

func (s *Store) Clone() *Store {
	out := NewStore()
	if s == nil {
		return out
	}
	for n, rec := range s.slides {
		out.slides[n] = rec
	}
	return out
}

func (s *Store) Equal(other *Store) bool {
	if s.Len() != other.Len() {
		return false
	}
	for _, n := range s.Numbers() {
		got, ok := other.slides[n]
		if !ok || got != s.slides[n] {
			return false
		}
	}
	return true
}

// Serialize returns the store in the persisted record layout.
func (s *Store) Serialize() Raw {
	out := make(Raw, s.Len())
	if s == nil {
		return out
	}
	for n, rec := range s.slides {
		out[strconv.Itoa(n)] = rec
	}
	return out
}

// Load builds a store from a record-layout mapping. Records with a blank
// script and title are dropped.
func Load(raw Raw) (*Store, error) {
	out := NewStore()
	for key, rec := range raw {
		n, err := ParseSlideNumber(key)
		if err != nil {
			return nil, err
		}
		if rec.IsEmpty() {
			continue
		}
		out.slides[n] = rec
	}
	return out, nil
}

// ParseSlideNumber accepts only the canonical decimal form, so "01", "+1" and
// " 1" never alias slide 1.
func ParseSlideNumber(key string) (int, error) {
	n, err := strconv.Atoi(key)
	if err != nil || n < 1 || strconv.Itoa(n) != key {
		return 0, fmt.Errorf("%w: %q", ErrInvalidSlideNumber, key)
	}
	return n, nil
}
