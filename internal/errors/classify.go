package errors

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/vango-dev/outlet/pkg/middleware"
	"github.com/vango-dev/outlet/pkg/routeconfig"
	"github.com/vango-dev/outlet/pkg/router"
	"github.com/vango-dev/outlet/pkg/routepath"
	"github.com/vango-dev/outlet/pkg/urltree"
)

var parseCodes = []struct {
	err  error
	code string
}{
	{urltree.ErrUnterminatedGroup, "E101"},
	{urltree.ErrEmptySegmentParams, "E102"},
	{urltree.ErrInvalidEscape, "E103"},
	{urltree.ErrForbiddenChar, "E104"},
	{urltree.ErrUnexpectedChar, "E105"},
	{urltree.ErrDuplicateOutlet, "E106"},
}

var sentinelCodes = []struct {
	err  error
	code string
}{
	{routepath.ErrPathEscapesRoot, "E107"},
	{routepath.ErrInvalidPercentEscape, "E103"},
	{routepath.ErrForbiddenChar, "E104"},
	{router.ErrUnknownGuard, "E131"},
	{router.ErrGuardRejected, "E130"},
	{router.ErrNavigationSuperseded, "E132"},
	{router.ErrNavigationCanceled, "E133"},
	{router.ErrNoHistory, "E134"},
	{middleware.ErrPanic, "E135"},
	{routeconfig.ErrMalformed, "E140"},
	{routeconfig.ErrInvalidSource, "E143"},
	{os.ErrNotExist, "E142"},
}

// Classify maps an error from the outlet packages onto a registered code.
// Errors that already carry an OutletError are returned as is; anything
// unrecognized becomes E160.
func Classify(err error) *OutletError {
	if err == nil {
		return nil
	}

	var oe *OutletError
	if errors.As(err, &oe) {
		return oe
	}

	var pe *urltree.ParseError
	if errors.As(err, &pe) {
		code := "E100"
		for _, c := range parseCodes {
			if errors.Is(pe.Err, c.err) {
				code = c.code
				break
			}
		}
		out := New(code).WithURL(pe.Input, pe.Offset).Wrap(err)
		if code == "E104" || code == "E103" {
			out.WithSuggestion("Percent-encode the character, e.g. %20 for a space.")
		}
		return out
	}

	var nm *router.NoMatchError
	if errors.As(err, &nm) {
		if nm.Outlet != router.PrimaryOutlet {
			return New("E121").WithURL(nm.URL, -1).Wrap(err).
				WithSuggestion(fmt.Sprintf("Declare a route with outlet %q beside the route the URL places it after, or move the group.", nm.Outlet)).
				WithExample("/team/22/(user/victor//right:simple)")
		}
		out := New("E120").WithURL(nm.URL, segmentOffset(nm.URL, nm.Segment)).Wrap(err)
		if nm.Segment == "" {
			out.WithSuggestion("Add an index or empty-path route for the position where the URL ends.")
		}
		return out
	}

	var ve *router.MultiValidationError
	if errors.As(err, &ve) {
		lines := make([]string, 0, len(ve.Errors))
		for _, e := range ve.Errors {
			line := e.Message
			if e.Path != "" {
				line += " at " + e.Path
			}
			lines = append(lines, line)
		}
		return New("E141").WithDetail(strings.Join(lines, "; ")).Wrap(err)
	}

	for _, c := range sentinelCodes {
		if errors.Is(err, c.err) {
			return New(c.code).Wrap(err)
		}
	}
	return New("E160").Wrap(err)
}

// segmentOffset returns the offset of the first occurrence of segment in
// url, or -1.
func segmentOffset(url, segment string) int {
	if segment == "" {
		return -1
	}
	return strings.Index(url, segment)
}
