// Package repair fills in default names for events that lack one.
package repair

import (
	"log"

	"event-name-fixer/internal/model"
)

const (
	defaultNamePrefix = "Event on "
	unknownDate       = "Unknown Date"
)

// Report counts what happened to each event during a repair.
type Report struct {
	Kept    int
	Named   int
	Skipped int
}

// Total is the number of events seen.
func (r Report) Total() int {
	return r.Kept + r.Named + r.Skipped
}

// DefaultName builds the name given to an event without one.
func DefaultName(e model.Event) string {
	value, isString := e.Date()
	switch {
	case value == nil:
		return defaultNamePrefix + unknownDate
	case isString:
		return defaultNamePrefix + FormatDate(value.(string)).Text
	default:
		return defaultNamePrefix + model.Text(value)
	}
}

// Events returns a copy of doc in which every event without a usable name
// has been given a default one. Entries that are not objects are dropped.
// A document without an events list is returned unchanged. doc itself is
// never modified.
func Events(doc model.Document, logger *log.Logger) (model.Document, Report, error) {
	var report Report

	events, ok, err := doc.Events()
	if err != nil {
		return doc, report, err
	}
	if !ok {
		return doc, report, nil
	}

	fixed := make([]any, 0, len(events))
	for i, raw := range events {
		event, ok := model.AsEvent(raw)
		if !ok {
			logger.Printf("Warning: Event %d is not a valid object, skipping", i)
			report.Skipped++
			continue
		}

		if event.HasName() {
			logger.Printf("Event %d: Name already present '%s'", i, event.Name())
			report.Kept++
			fixed = append(fixed, raw)
			continue
		}

		name := DefaultName(event)
		logger.Printf("Event %d: Adding default name '%s'", i, name)
		report.Named++
		fixed = append(fixed, map[string]any(event.WithName(name)))
	}

	return doc.WithEvents(fixed), report, nil
}
