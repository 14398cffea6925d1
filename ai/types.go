package ai

// Operation identifies one of the fixed agent operations. The set is closed:
// a classifier may only ever select one of these values.
type Operation string

const (
	// OpExtract extracts company records from text without storing them.
	OpExtract Operation = "extract_company_data"
	// OpStore extracts company records from text and stores them.
	OpStore Operation = "store_company_data"
	// OpSearch searches stored companies by name or founder.
	OpSearch Operation = "search_companies"
	// OpDetails retrieves the stored details of one company by name.
	OpDetails Operation = "get_company_details"
	// OpStats reports statistics over the stored data set.
	OpStats Operation = "get_database_statistics"
	// OpList lists stored companies.
	OpList Operation = "list_companies"
)

// Operations lists every operation a classifier may select.
var Operations = []Operation{
	OpExtract,
	OpStore,
	OpSearch,
	OpDetails,
	OpStats,
	OpList,
}

// Valid reports whether the operation is one of the known values.
func (o Operation) Valid() bool {
	for _, known := range Operations {
		if o == known {
			return true
		}
	}
	return false
}

// Command is a classified instruction: the selected operation plus its typed
// payload. Only the fields relevant to the operation are populated.
type Command struct {
	Op Operation

	// Text is the source text for OpExtract and OpStore.
	Text string

	// Term is the search term for OpSearch.
	Term string

	// Name is the company name for OpDetails.
	Name string

	// Limit bounds the result count for OpList. Zero means the caller's
	// default.
	Limit int
}
