package router

import (
	"fmt"
	"maps"
	"strings"
)

// =============================================================================
// Route Configuration Validation
// =============================================================================

// ValidationError represents a route configuration error.
type ValidationError struct {
	// Type is the error category
	Type ValidationErrorType

	// Message is the human-readable error message
	Message string

	// Path is the slash-joined chain of route paths leading to the route
	Path string

	// Details contains additional error-specific information
	Details string
}

func (e ValidationError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("%s: %s (%s)", e.Type, e.Message, e.Details)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

// ValidationErrorType categorizes validation errors.
type ValidationErrorType string

const (
	// ErrorNilRoute indicates a nil entry in a route list.
	ErrorNilRoute ValidationErrorType = "NIL_ROUTE"

	// ErrorDuplicateRoute indicates a route shadowed by an earlier leaf
	// sibling with the same pattern in the same outlet.
	// Example: {path: 'team/:id'} and {path: 'team/:id'}
	ErrorDuplicateRoute ValidationErrorType = "DUPLICATE_ROUTE"

	// ErrorUnreachableRoute indicates a sibling declared after a wildcard in
	// the same outlet.
	ErrorUnreachableRoute ValidationErrorType = "UNREACHABLE_ROUTE"

	// ErrorIndexWithPath indicates an index route that also declares a path.
	ErrorIndexWithPath ValidationErrorType = "INDEX_WITH_PATH"

	// ErrorEmptyParamName indicates a ":" path part without a name.
	ErrorEmptyParamName ValidationErrorType = "EMPTY_PARAM_NAME"

	// ErrorDuplicateParam indicates the same parameter bound twice along
	// one branch. Example: {path: 'a/:id', children: [{path: 'b/:id'}]}
	ErrorDuplicateParam ValidationErrorType = "DUPLICATE_PARAM"

	// ErrorWildcardChildren indicates a wildcard route with children, which
	// can never match since the wildcard leaves nothing to consume.
	ErrorWildcardChildren ValidationErrorType = "WILDCARD_CHILDREN"
)

// MultiValidationError wraps multiple validation errors.
type MultiValidationError struct {
	Errors []ValidationError
}

func (e *MultiValidationError) Error() string {
	if len(e.Errors) == 0 {
		return "no validation errors"
	}
	if len(e.Errors) == 1 {
		return e.Errors[0].Error()
	}
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("%d route validation errors:\n", len(e.Errors)))
	for i, err := range e.Errors {
		sb.WriteString(fmt.Sprintf("  %d. %s\n", i+1, err.Error()))
	}
	return sb.String()
}

// Validate checks a route configuration for routes that can never match or
// bind parameters ambiguously. It returns nil, or a *MultiValidationError
// holding every problem found.
func Validate(config []*Route) error {
	v := &validator{}
	v.validateRoutes(config, nil, map[string]string{})
	if len(v.errors) > 0 {
		return &MultiValidationError{Errors: v.errors}
	}
	return nil
}

type validator struct {
	errors []ValidationError
}

func (v *validator) add(typ ValidationErrorType, path []string, msg, details string) {
	v.errors = append(v.errors, ValidationError{
		Type:    typ,
		Message: msg,
		Path:    strings.Join(path, "/"),
		Details: details,
	})
}

// validateRoutes checks one sibling list. params maps every parameter bound
// above this level to the route path that binds it.
func (v *validator) validateRoutes(routes []*Route, parent []string, params map[string]string) {
	seen := make(map[string]bool)
	wildcard := make(map[string]string)

	for i, route := range routes {
		if route == nil {
			v.add(ErrorNilRoute, parent, fmt.Sprintf("Route %d is nil", i), "")
			continue
		}
		path := append(parent[:len(parent):len(parent)], route.String())
		outlet := route.OutletName()

		if w, ok := wildcard[outlet]; ok {
			v.add(ErrorUnreachableRoute, path,
				fmt.Sprintf("Route %q can never match", route.String()),
				fmt.Sprintf("declared after wildcard %q in outlet %q", w, outlet))
		}
		if route.IsWildcard() {
			wildcard[outlet] = route.Path
		}

		// A leaf shadows later routes with the same pattern. One with
		// children does not, since a failed child match backtracks.
		key := outlet + "\x00" + routeKey(route)
		if seen[key] {
			v.add(ErrorDuplicateRoute, path,
				fmt.Sprintf("Duplicate route %q in outlet %q", route.String(), outlet), "")
		}
		if len(route.Children) == 0 {
			seen[key] = true
		}

		if route.Index && route.Path != "" {
			v.add(ErrorIndexWithPath, path,
				fmt.Sprintf("Index route declares path %q", route.Path), "")
		}
		if route.IsWildcard() && len(route.Children) > 0 {
			v.add(ErrorWildcardChildren, path,
				"Wildcard route has children", fmt.Sprintf("%d children", len(route.Children)))
		}
		bound := params
		cloned := false
		for _, part := range splitPath(route.Path) {
			name, ok := strings.CutPrefix(part, ":")
			if !ok {
				continue
			}
			if name == "" {
				v.add(ErrorEmptyParamName, path,
					fmt.Sprintf("Route %q has a parameter without a name", route.Path), "")
				continue
			}
			if prev, dup := bound[name]; dup {
				v.add(ErrorDuplicateParam, path,
					fmt.Sprintf("Parameter '%s' is bound twice", name),
					fmt.Sprintf("by %q and %q", prev, route.Path))
				continue
			}
			if !cloned {
				bound = maps.Clone(params)
				cloned = true
			}
			bound[name] = route.Path
		}

		v.validateRoutes(route.Children, path, bound)
	}
}

// routeKey identifies what a route matches. Parameter names do not matter:
// "team/:id" and "team/:name" match the same URLs.
func routeKey(r *Route) string {
	if r.Index {
		return "\x00index"
	}
	parts := splitPath(r.Path)
	for i, p := range parts {
		if strings.HasPrefix(p, ":") {
			parts[i] = ":"
		}
	}
	return strings.Join(parts, "/")
}

// FormatValidationError formats a validation error for display:
//
//	ERROR: Duplicate route "team/:id" in outlet "primary"
//	  at team/:id
func FormatValidationError(err ValidationError) string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("ERROR: %s\n", err.Message))
	if err.Path != "" {
		sb.WriteString(fmt.Sprintf("  at %s\n", err.Path))
	}
	if err.Details != "" {
		sb.WriteString(fmt.Sprintf("  Details: %s\n", err.Details))
	}

	return sb.String()
}
