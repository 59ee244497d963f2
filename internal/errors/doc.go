// Package errors provides structured, actionable error messages for the
// outlet CLI and inspector.
//
// Each error has a unique code that maps to a short message, a detailed
// explanation and a documentation URL:
//
//	E100-E119  parse        malformed navigation strings and links
//	E120-E129  recognition  URLs no route configuration matches
//	E130-E139  navigation   guards, superseded and canceled navigations
//	E140-E149  routes       route config loading and validation
//	E150-E159  config       outlet.json and the environment
//	E160-E169  cli          command and server failures
//
// Classify maps errors returned by the outlet packages onto these codes:
//
//	_, err := r.NavigateByURL(ctx, "/team/(22")
//	fmt.Print(errors.Classify(err).Format())
//	// Output:
//	// ERROR E101: Unterminated outlet group
//	//
//	//   /team/(22
//	//         ^
//	//
//	//   An outlet group opened with '(' has no matching ')'.
//	//
//	//   Cause: parse "/team/(22": unterminated outlet group at offset 6
//	//
//	//   Learn more: https://outlet.vango.dev/docs/errors/E101
package errors
