package diff

// Entry is a named value recorded in a Report, in the order the desired
// store listed it.
type Entry struct {
	Name  string
	Value string
}

// Report classifies the differences between a desired store and an observed
// one. It is built once by Compute and never mutated afterwards.
type Report struct {
	// NewSections lists section paths present in the desired store but
	// absent entirely from the observed store, in desired order.
	NewSections []string

	// ChangedEntries maps section path to the entries that must be written:
	// entries missing from the observed store plus entries whose observed
	// value differs. Values are the desired values.
	ChangedEntries map[string][]Entry

	// SupersededEntries maps section path to the prior observed values of
	// entries listed in ChangedEntries because their value differed. Entries
	// that were simply missing contribute nothing here.
	SupersededEntries map[string][]Entry
}

// Empty reports whether no action is required. This is the only signal the
// reconciler consults.
func (r *Report) Empty() bool {
	if r == nil {
		return true
	}
	return len(r.NewSections) == 0 && len(r.ChangedEntries) == 0 && len(r.SupersededEntries) == 0
}

// SectionCount returns the number of sections carrying changed entries.
func (r *Report) SectionCount() int {
	if r == nil {
		return 0
	}
	return len(r.ChangedEntries)
}

// EntryCount returns the total number of changed entries across sections.
func (r *Report) EntryCount() int {
	if r == nil {
		return 0
	}
	total := 0
	for _, entries := range r.ChangedEntries {
		total += len(entries)
	}
	return total
}
