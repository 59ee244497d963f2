// Package urltree parses navigation strings into an immutable tree of
// segments and serializes such trees back into canonical strings.
//
// A navigation string is made of slash-separated segments, each optionally
// carrying matrix parameters, plus parenthesized groups that address named
// outlets:
//
//	/team/22;tab=info/(user/victor//aux:chat)?debug=1#top
//
// parses into a root group whose primary child holds the run
// [team, 22;tab=info], which in turn has two children: the primary outlet
// with [user, victor] and the "aux" outlet with [chat]. Query parameters
// and the fragment belong to the tree as a whole.
//
// # Grammar
//
//	tree         := '/'? segmentGroup ('?' queryParams)? ('#' fragment)?
//	segmentGroup := segments ('(' outletGroup ('//' outletGroup)* ')')?
//	segments     := segment ('/' segment)*
//	segment      := pathChar+ (';' paramName '=' paramValue)*
//	outletGroup  := (outletName ':')? segmentGroup
//
// A run followed by "/(" nests its groups below the run; a run followed
// directly by "(" places them beside it, as siblings of the primary outlet.
//
// # Round trip
//
// Serialize is a right inverse of Parse: for any tree produced by Parse,
// Parse(Serialize(t)) is structurally equal to t. Child outlets are always
// written primary first, then in the order they were inserted.
//
// # Usage
//
//	tree, err := urltree.Parse("/a(left:b//right:c)")
//	if err != nil {
//	    var perr *urltree.ParseError
//	    errors.As(err, &perr) // perr.Offset points at the failing byte
//	}
//	fmt.Println(tree.Root().Outlets()) // [primary left right]
//	fmt.Println(urltree.Serialize(tree)) // /a(left:b//right:c)
package urltree
