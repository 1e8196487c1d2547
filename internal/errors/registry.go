package errors

// ErrorTemplate defines a registered error type.
type ErrorTemplate struct {
	Category   Category
	Message    string
	Detail     string
	Suggestion string
	DocURL     string
}

const docBase = "https://vango.dev/docs/fileroutes/errors/"

// registry maps error codes to their templates.
var registry = map[string]ErrorTemplate{
	// ============================================
	// Route Errors (R001-R099)
	// ============================================

	"R001": {
		Category:   CategoryRoutes,
		Message:    "Duplicate route",
		Detail:     "Two route files resolve to the same route.",
		Suggestion: "Keep one file per route; \"a/b.go\" and \"a.b.go\" are the same route",
		DocURL:     docBase + "R001",
	},
	"R002": {
		Category:   CategoryRoutes,
		Message:    "Segment after catch-all",
		Detail:     "A catch-all segment ($) matches the rest of the URL and must be the last segment.",
		Suggestion: "Move the file next to the catch-all instead of below it",
		DocURL:     docBase + "R002",
	},
	"R003": {
		Category:   CategoryRoutes,
		Message:    "Unrecognized route segment",
		Detail:     "A file or directory name does not follow the routing conventions.",
		Suggestion: "Use plain names, $param, index, _layout or $; names starting with _ are reserved",
		DocURL:     docBase + "R003",
	},
	"R004": {
		Category:   CategoryRoutes,
		Message:    "Misplaced index or layout segment",
		Detail:     "index and _layout must be the last segment of a route file path.",
		Suggestion: "Rename the directory or move the file up one level",
		DocURL:     docBase + "R004",
	},
	"R005": {
		Category:   CategoryRoutes,
		Message:    "Conflicting parameter names",
		Detail:     "Two dynamic segments with different names sit at the same level.",
		Suggestion: "Use one parameter name per directory level",
		DocURL:     docBase + "R005",
	},
	"R006": {
		Category:   CategoryRoutes,
		Message:    "Unsupported route file",
		Detail:     "The file does not have a recognized route file extension.",
		Suggestion: "Add the extension to \"extensions\" in fileroutes.json",
		DocURL:     docBase + "R006",
	},

	// ============================================
	// Config Errors (C001-C099)
	// ============================================

	"C001": {
		Category:   CategoryConfig,
		Message:    "Config file not found",
		Suggestion: "Create fileroutes.json or pass --config",
		DocURL:     docBase + "C001",
	},
	"C002": {
		Category:   CategoryConfig,
		Message:    "Invalid config file",
		Suggestion: "Check that fileroutes.json is valid JSON",
		DocURL:     docBase + "C002",
	},
	"C003": {
		Category: CategoryConfig,
		Message:  "Invalid configuration value",
		DocURL:   docBase + "C003",
	},

	// ============================================
	// Listing Errors (L001-L099)
	// ============================================

	"L001": {
		Category:   CategoryListing,
		Message:    "Could not list route files",
		Suggestion: "Check that the routes directory or bucket exists and is readable",
		DocURL:     docBase + "L001",
	},

	// ============================================
	// Serve Errors (S001-S099)
	// ============================================

	"S001": {
		Category: CategoryServe,
		Message:  "Server failed",
		DocURL:   docBase + "S001",
	},
}

// Lookup returns the template registered for code.
func Lookup(code string) (ErrorTemplate, bool) {
	t, ok := registry[code]
	return t, ok
}
