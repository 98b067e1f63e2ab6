package lexicon

// Descriptor is the immutable definition of one registered lexicon,
// built once at startup from configuration and never mutated.
type Descriptor struct {
	// Name is the display label used in formatted output and logs.
	Name string

	// Table is the backing record table. Unique across descriptors.
	Table string

	// SearchColumn is matched by 查词 and holds the value substituted
	// during template fill.
	SearchColumn string

	// Keywords trigger random retrieval on substring match. They may
	// overlap across descriptors; registration order decides.
	Keywords []string

	// Placeholder is the literal token recognized during template
	// scanning. Unique across descriptors.
	Placeholder string

	// Folder names the data directory the importer reads for this
	// lexicon; Extensions filters its files (e.g. ".csv", ".json").
	Folder     string
	Extensions []string

	// RetryBudget is the total number of random-fetch attempts before
	// falling back to FailureMessage.
	RetryBudget    int
	FailureMessage string

	// Handler is the formatting capability pair for this lexicon,
	// bound once at registry build.
	Handler Handler
}
