// Package model gives typed access to the loosely shaped JSON documents the
// repair tool works on.
//
// Decoded values are the usual encoding/json variants: map[string]any for
// objects, []any for arrays, json.Number for numbers (documents are decoded
// with UseNumber), string, bool and nil.
package model

import (
	"encoding/json"
	"errors"
	"strings"
)

const (
	// EventsKey is the top-level key holding the event list.
	EventsKey = "events"
	NameKey   = "name"
	DateKey   = "date"
)

// ErrEventsNotList is returned when a document has an events key whose
// value is not a JSON array.
var ErrEventsNotList = errors.New("events is not a list")

// Event is a single record from the events list.
type Event map[string]any

// AsEvent reports whether v is an object and returns it as an Event.
func AsEvent(v any) (Event, bool) {
	obj, ok := v.(map[string]any)
	if !ok {
		return nil, false
	}
	return Event(obj), true
}

// HasName reports whether the event carries a usable name. A missing or
// null name is unusable, as is a string that is empty after trimming.
// Values of any other type count as present.
func (e Event) HasName() bool {
	v, ok := e[NameKey]
	if !ok || v == nil {
		return false
	}
	if s, ok := v.(string); ok {
		return strings.TrimSpace(s) != ""
	}
	return true
}

// Name returns the name value rendered as text.
func (e Event) Name() string {
	return Text(e[NameKey])
}

// Date returns the raw date value and whether it was a string. A missing
// or null date yields ("", false).
func (e Event) Date() (value any, isString bool) {
	v, ok := e[DateKey]
	if !ok || v == nil {
		return nil, false
	}
	_, isString = v.(string)
	return v, isString
}

// WithName returns a shallow copy of the event with name set.
func (e Event) WithName(name string) Event {
	out := make(Event, len(e)+1)
	for k, v := range e {
		out[k] = v
	}
	out[NameKey] = name
	return out
}

// Document is a decoded JSON document.
type Document struct {
	Root any
}

// Events returns the events list. ok is false when the document is not an
// object or has no events key.
func (d Document) Events() (events []any, ok bool, err error) {
	obj, isObj := d.Root.(map[string]any)
	if !isObj {
		return nil, false, nil
	}
	raw, found := obj[EventsKey]
	if !found {
		return nil, false, nil
	}
	list, isList := raw.([]any)
	if !isList {
		return nil, false, ErrEventsNotList
	}
	return list, true, nil
}

// WithEvents returns a copy of the document with the events list replaced.
// Other top-level keys are shared with the original. Documents that are not
// objects are returned unchanged.
func (d Document) WithEvents(events []any) Document {
	obj, ok := d.Root.(map[string]any)
	if !ok {
		return d
	}
	out := make(map[string]any, len(obj))
	for k, v := range obj {
		out[k] = v
	}
	out[EventsKey] = events
	return Document{Root: out}
}

// Text renders a JSON value for use in messages and names. Strings are
// returned as-is; other values use their compact JSON encoding.
func Text(v any) string {
	if s, ok := v.(string); ok {
		return s
	}
	data, err := json.Marshal(v)
	if err != nil {
		return ""
	}
	return string(data)
}
