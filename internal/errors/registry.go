package errors

import "sort"

// ErrorTemplate defines a registered error type.
type ErrorTemplate struct {
	Category Category
	Message  string
	Detail   string
	DocURL   string
}

// registry maps error codes to their templates.
var registry = map[string]ErrorTemplate{
	// ============================================
	// Config Errors (E120-E149)
	// ============================================

	"E120": {
		Category: CategoryCLI,
		Message:  "Invalid configuration file",
		Detail:   "The configuration file could not be read or parsed.",
		DocURL:   "https://outlet.dev/docs/errors/E120",
	},
	"E122": {
		Category: CategoryCLI,
		Message:  "Invalid configuration value",
		Detail:   "A configuration value is out of range or could not be interpreted.",
		DocURL:   "https://outlet.dev/docs/errors/E122",
	},
	"E141": {
		Category: CategoryCLI,
		Message:  "Configuration file not found",
		Detail:   "Neither outlet.yaml nor outlet.json exists in the given directory.",
		DocURL:   "https://outlet.dev/docs/errors/E141",
	},

	// ============================================
	// Transition Errors (E201-E229)
	// ============================================

	"E201": {
		Category: CategoryConfig,
		Message:  "Navigation router required",
		Detail:   "The transition system subscribes to the router's pre-commit event and resolves outlet paths through it. It cannot run without one.",
		DocURL:   "https://outlet.dev/docs/errors/E201",
	},
	"E202": {
		Category: CategoryConfig,
		Message:  "Duplicate outlet registration",
		Detail:   "Two mounted outlets resolved to the same path. This usually means a layout is mounted twice or two route segments collapse to one URL.",
		DocURL:   "https://outlet.dev/docs/errors/E202",
	},
	"E203": {
		Category: CategoryConfig,
		Message:  "Outlet path could not be resolved",
		Detail:   "The router could not turn the outlet's route ID into a concrete path.",
		DocURL:   "https://outlet.dev/docs/errors/E203",
	},
	"E204": {
		Category: CategoryConfig,
		Message:  "Outlet already mounted",
		Detail:   "An outlet resolves its path exactly once. Create a new outlet instead of mounting one twice.",
		DocURL:   "https://outlet.dev/docs/errors/E204",
	},
	"E205": {
		Category: CategoryConfig,
		Message:  "Invalid transition configuration",
		Detail:   "Transition timing or easing is out of range.",
		DocURL:   "https://outlet.dev/docs/errors/E205",
	},
	"E206": {
		Category: CategoryRuntime,
		Message:  "Invalid path",
		Detail:   "The path could not be canonicalized.",
		DocURL:   "https://outlet.dev/docs/errors/E206",
	},
}

// GetAllCodes returns all registered error codes in sorted order.
func GetAllCodes() []string {
	codes := make([]string, 0, len(registry))
	for code := range registry {
		codes = append(codes, code)
	}
	sort.Strings(codes)
	return codes
}

// GetTemplate returns the template for an error code.
func GetTemplate(code string) (ErrorTemplate, bool) {
	t, ok := registry[code]
	return t, ok
}
