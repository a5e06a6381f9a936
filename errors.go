package buffalo

import (
	"fmt"
	"strings"
)

// SnippetPadding is the amount of context rendered around a location in
// parse error messages.
const SnippetPadding = 10

// UnexpectedTokenError reports a token that was recognised by the
// tokenizer but has no ACTION entry in the current parser state. The
// parse aborts at the first such error.
type UnexpectedTokenError struct {
	Location Location
	Expected []string
}

func (e *UnexpectedTokenError) Error() string {
	msg := "unexpected token"
	if len(e.Expected) > 0 {
		msg = fmt.Sprintf("%v; expected one of: %v", msg, strings.Join(e.Expected, ", "))
	}
	return msg + "\n" + e.Location.Annotate(SnippetPadding)
}

// UnrecognisedInputError reports input for which the tokenizer could
// not produce a token.
type UnrecognisedInputError struct {
	Location Location
}

func (e *UnrecognisedInputError) Error() string {
	return fmt.Sprintf("unrecognised input at offset %v\n%v", e.Location.Begin, e.Location.Annotate(SnippetPadding))
}
