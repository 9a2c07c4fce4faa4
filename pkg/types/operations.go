package types

// Span is a (start, end) byte range into a single buffer snapshot.
// Start and End are only meaningful against the buffer version they
// were captured from; any mutation invalidates them.
type Span struct {
	Start int
	End   int
}

// Len returns the number of bytes covered by the span.
func (s Span) Len() int { return s.End - s.Start }

// Empty reports whether the span covers no text.
func (s Span) Empty() bool { return s.Start >= s.End }

type OperationType int

const (
	ExtractLetOp OperationType = iota
	ExtractMethodOp
	AddParameterOp
)

// PlacementMode selects where a new let binding is anchored.
type PlacementMode string

const (
	// PlacementTop places bindings after the first anchor line in the buffer.
	PlacementTop PlacementMode = "top"
	// PlacementClosest places bindings after the nearest anchor line
	// preceding the extraction point.
	PlacementClosest PlacementMode = "closest"
)

// Opposite returns the other placement mode.
func (m PlacementMode) Opposite() PlacementMode {
	if m == PlacementTop {
		return PlacementClosest
	}
	return PlacementTop
}

// Valid reports whether m is one of the known placement modes.
func (m PlacementMode) Valid() bool {
	return m == PlacementTop || m == PlacementClosest
}

// ExtractLetRequest represents extracting an assignment into a let binding
type ExtractLetRequest struct {
	// Span is the selected region to extract. When HasRegion is false it
	// is ignored and the line containing Point is used instead.
	Span      Span
	HasRegion bool
	// Point is the cursor offset the command was invoked from; it seeds
	// the backward anchor search in closest placement.
	Point int
	// Invert flips the configured placement mode for this invocation.
	Invert bool
}

// ExtractMethodRequest represents extracting a region into a new method
type ExtractMethodRequest struct {
	StartLine     int
	EndLine       int
	NewMethodName string
	// Arguments is the raw argument list for the new method, e.g. "a, b".
	// Empty means a no-argument method.
	Arguments string
}

// AddParameterRequest represents adding a parameter to the enclosing method
type AddParameterRequest struct {
	// Line is any line inside the method to modify.
	Line      int
	Parameter string
}

// Result describes the outcome of a single refactoring operation.
type Result struct {
	Description  string
	VariableName string
	// Inserted is the span of newly inserted text, valid against the
	// post-edit buffer.
	Inserted Span
	// NoOp is true when the operation decided there was nothing to do
	// (empty selection, duplicate parameter).
	NoOp bool
}
