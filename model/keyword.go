package model

import (
	"strings"

	"github.com/pkg/errors"
)

// keywordTable maps enum values to their chart spelling and Go name in both
// directions.
type keywordTable[T comparable] struct {
	typeName string
	entries  []keywordEntry[T]
}

type keywordEntry[T comparable] struct {
	value   T
	keyword string
	name    string
}

func newKeywordTable[T comparable](typeName string, entries ...keywordEntry[T]) *keywordTable[T] {
	return &keywordTable[T]{typeName: typeName, entries: entries}
}

func (t *keywordTable[T]) lookup(v T) (keywordEntry[T], bool) {
	for _, e := range t.entries {
		if e.value == v {
			return e, true
		}
	}
	return keywordEntry[T]{}, false
}

func (t *keywordTable[T]) keyword(v T) string {
	if e, ok := t.lookup(v); ok {
		return e.keyword
	}
	return ""
}

func (t *keywordTable[T]) name(v T, fallback string) string {
	if e, ok := t.lookup(v); ok {
		return e.name
	}
	return fallback
}

// parse matches s against the spellings, case-insensitively. When strict is
// false the Go names are accepted as well.
func (t *keywordTable[T]) parse(s string, strict bool) (T, error) {
	for _, e := range t.entries {
		if strings.EqualFold(e.keyword, s) {
			return e.value, nil
		}
	}
	if !strict {
		for _, e := range t.entries {
			if strings.EqualFold(e.name, s) {
				return e.value, nil
			}
		}
	}
	var zero T
	return zero, errors.Errorf("no %s matches %q", t.typeName, s)
}

func (t *keywordTable[T]) keywords() []string {
	res := make([]string, 0, len(t.entries))
	for _, e := range t.entries {
		res = append(res, e.keyword)
	}
	return res
}
