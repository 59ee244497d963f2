package errors

import "slices"

// ErrorTemplate defines a registered error type.
type ErrorTemplate struct {
	Category Category
	Message  string
	Detail   string
}

const docBase = "https://outlet.vango.dev/docs/errors/"

func docURL(code string) string {
	return docBase + code
}

// registry maps error codes to their templates.
var registry = map[string]ErrorTemplate{
	// ============================================
	// Parse Errors (E100-E119)
	// ============================================

	"E100": {
		Category: CategoryParse,
		Message:  "Invalid navigation string",
		Detail:   "The navigation string could not be parsed into a URL tree.",
	},
	"E101": {
		Category: CategoryParse,
		Message:  "Unterminated outlet group",
		Detail:   "An outlet group opened with '(' has no matching ')'.",
	},
	"E102": {
		Category: CategoryParse,
		Message:  "Matrix parameters without a path segment",
		Detail:   "Matrix parameters (';key=value') must follow a non-empty path segment.",
	},
	"E103": {
		Category: CategoryParse,
		Message:  "Invalid percent escape",
		Detail:   "A '%' must be followed by two hexadecimal digits.",
	},
	"E104": {
		Category: CategoryParse,
		Message:  "Forbidden character",
		Detail:   "Navigation strings may not contain whitespace, control characters or quotes. Percent-encode them instead.",
	},
	"E105": {
		Category: CategoryParse,
		Message:  "Unexpected character",
		Detail:   "The parser found a character that is not valid at this position of the URL grammar.",
	},
	"E106": {
		Category: CategoryParse,
		Message:  "Duplicate outlet",
		Detail:   "An outlet name may appear only once per group.",
	},
	"E107": {
		Category: CategoryParse,
		Message:  "Relative link escapes the root",
		Detail:   "The link uses more '..' segments than the URL it is resolved against has.",
	},

	// ============================================
	// Recognition Errors (E120-E129)
	// ============================================

	"E120": {
		Category: CategoryRecognition,
		Message:  "No route matches URL",
		Detail:   "No sequence of route configurations consumes every segment of every outlet.",
	},
	"E121": {
		Category: CategoryRecognition,
		Message:  "No route for outlet",
		Detail:   "A secondary outlet in the URL has no matching configuration. Outlets written after a run bind beside the route that consumes its last segment, or at the level they are grouped.",
	},

	// ============================================
	// Navigation Errors (E130-E139)
	// ============================================

	"E130": {
		Category: CategoryNavigation,
		Message:  "Navigation rejected by guard",
		Detail:   "A canActivate guard refused a route. The live tree and location were left unchanged.",
	},
	"E131": {
		Category: CategoryNavigation,
		Message:  "Unknown guard",
		Detail:   "A route names a canActivate guard that was never registered with the router.",
	},
	"E132": {
		Category: CategoryNavigation,
		Message:  "Navigation superseded",
		Detail:   "A newer navigation started before this one could commit.",
	},
	"E133": {
		Category: CategoryNavigation,
		Message:  "Navigation canceled",
		Detail:   "Middleware ended the navigation without running it.",
	},
	"E134": {
		Category: CategoryNavigation,
		Message:  "No history entry",
		Detail:   "There is no entry to go back or forward to.",
	},
	"E135": {
		Category: CategoryNavigation,
		Message:  "Navigation panicked",
		Detail:   "A guard, activator or middleware panicked while the navigation ran.",
	},

	// ============================================
	// Route Config Errors (E140-E149)
	// ============================================

	"E140": {
		Category: CategoryRouteConfig,
		Message:  "Malformed route config",
		Detail:   "Route configs are a JSON array of {path, component, outlet, index, canActivate, children} objects.",
	},
	"E141": {
		Category: CategoryRouteConfig,
		Message:  "Invalid route config",
		Detail:   "The route config contains routes that can never match or bind parameters ambiguously.",
	},
	"E142": {
		Category: CategoryRouteConfig,
		Message:  "Route config not found",
		Detail:   "The route config file does not exist.",
	},
	"E143": {
		Category: CategoryRouteConfig,
		Message:  "Invalid route source",
		Detail:   "Route sources are a file path or an s3://bucket/key URI.",
	},
	"E144": {
		Category: CategoryRouteConfig,
		Message:  "Route config fetch failed",
		Detail:   "The route config could not be read from its source.",
	},

	// ============================================
	// Project Config Errors (E150-E159)
	// ============================================

	"E150": {
		Category: CategoryConfig,
		Message:  "Invalid configuration",
		Detail:   "outlet.json contains invalid values.",
	},
	"E151": {
		Category: CategoryConfig,
		Message:  "Malformed configuration",
		Detail:   "outlet.json is not valid JSON.",
	},
	"E152": {
		Category: CategoryConfig,
		Message:  "Invalid environment",
		Detail:   "An OUTLET_* environment variable could not be parsed.",
	},
	"E153": {
		Category: CategoryConfig,
		Message:  "Configuration not found",
		Detail:   "No outlet.json was found in the directory or any parent directory.",
	},

	// ============================================
	// CLI Errors (E160-E169)
	// ============================================

	"E160": {
		Category: CategoryCLI,
		Message:  "Command failed",
		Detail:   "The command failed with an unexpected error.",
	},
	"E161": {
		Category: CategoryCLI,
		Message:  "Server failed",
		Detail:   "The inspector server could not start or stopped unexpectedly.",
	},
}

// GetAllCodes returns all registered error codes, sorted.
func GetAllCodes() []string {
	codes := make([]string, 0, len(registry))
	for code := range registry {
		codes = append(codes, code)
	}
	slices.Sort(codes)
	return codes
}

// GetTemplate returns the template for an error code.
func GetTemplate(code string) (ErrorTemplate, bool) {
	t, ok := registry[code]
	return t, ok
}

// Register adds a new error template to the registry.
func Register(code string, template ErrorTemplate) {
	registry[code] = template
}
