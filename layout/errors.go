package layout

import "errors"

// Sentinel errors returned by the serializer, parser, and layout passes.
var (
	ErrCycle            = errors.New("layout: network contains a cycle")
	ErrDanglingName     = errors.New("layout: reference to an undeclared node name")
	ErrNameCollision    = errors.New("layout: duplicate node name")
	ErrUnknownNodeType  = errors.New("layout: unknown node type")
	ErrUnknownProperty  = errors.New("layout: unknown property name")
	ErrMalformedLine    = errors.New("layout: malformed line")
	ErrMissingOutput    = errors.New("layout: no output declaration")
	ErrUnknownReturnRef = errors.New("layout: output refers to an undeclared node name")
)
