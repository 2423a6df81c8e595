// Package diff compares a desired hierarchical store against an observed one
// and classifies the differences. It is pure: both inputs are already-parsed
// snapshots and no I/O or normalization happens here.
package diff

import (
	"github.com/alexisbeaulieu97/regsync/internal/store"
)

// Compute walks the desired store in its own order and records every section
// and entry the observed store is missing or holds a different value for.
// A nil observed store means the target location does not exist at all:
// every desired section is new and every desired entry must be written.
//
// Section-level and entry-level detection are independent passes over the
// same section, so an empty section that is new to the observed store still
// surfaces in NewSections while contributing no entries.
func Compute(desired, observed *store.Store) *Report {
	report := &Report{
		ChangedEntries:    make(map[string][]Entry),
		SupersededEntries: make(map[string][]Entry),
	}

	for _, path := range desired.Paths() {
		observedSec, sectionExists := observed.Section(path)
		if !sectionExists {
			report.NewSections = append(report.NewSections, path)
		}

		desiredSec, _ := desired.Section(path)
		for _, name := range desiredSec.Names() {
			desiredValue, _ := desiredSec.Value(name)

			observedValue, entryExists := observedSec.Value(name)
			switch {
			case !sectionExists || !entryExists:
				report.ChangedEntries[path] = append(report.ChangedEntries[path], Entry{Name: name, Value: desiredValue})
			case observedValue != desiredValue:
				report.SupersededEntries[path] = append(report.SupersededEntries[path], Entry{Name: name, Value: observedValue})
				report.ChangedEntries[path] = append(report.ChangedEntries[path], Entry{Name: name, Value: desiredValue})
			}
		}
	}

	return report
}
