package grammar

import (
	"fmt"
	"strings"
)

// DefinitionError reports a grammar that is malformed before any table
// construction takes place: bad patterns, empty productions, symbols
// without rules.
type DefinitionError struct {
	Reason string
	Cause  error
}

func (e *DefinitionError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("grammar definition error: %v: %v", e.Reason, e.Cause)
	}
	return fmt.Sprintf("grammar definition error: %v", e.Reason)
}

func (e *DefinitionError) Unwrap() error {
	return e.Cause
}

// ShiftReduceConflictError reports a shift/reduce conflict that the
// precedence and associativity policy could not resolve. The build is
// aborted; the error names the reducing rule, the lookahead, the shift
// target state and the closure of the conflicting state.
type ShiftReduceConflictError struct {
	State       int
	RuleNum     int
	Rule        string
	Lookahead   string
	ShiftTarget int
	Closure     []string
}

func (e *ShiftReduceConflictError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "grammar contains an irreconcilable shift/reduce conflict in state %v.\n", e.State)
	fmt.Fprintf(&b, "With lookahead %v the parser could shift into state %v or reduce the rule:\n", e.Lookahead, e.ShiftTarget)
	fmt.Fprintf(&b, "\t%v\n", e.Rule)
	fmt.Fprintf(&b, "The conflicting state closes over:\n")
	for _, item := range e.Closure {
		fmt.Fprintf(&b, "\t%v\n", item)
	}
	return b.String()
}

// ReduceReduceConflictError reports two rules that are complete in the
// same state with a shared lookahead. Reduce/reduce conflicts are
// always fatal.
type ReduceReduceConflictError struct {
	State     int
	RuleNumA  int
	RuleNumB  int
	RuleA     string
	RuleB     string
	Lookahead string
	Closure   []string
}

func (e *ReduceReduceConflictError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "grammar contains an irreconcilable reduce/reduce conflict in state %v.\n", e.State)
	fmt.Fprintf(&b, "The conflict arose between the following two rules:\n")
	fmt.Fprintf(&b, "\t%v\n", e.RuleA)
	fmt.Fprintf(&b, "\t%v\n", e.RuleB)
	fmt.Fprintf(&b, "With lookahead %v\n", e.Lookahead)
	fmt.Fprintf(&b, "The conflicting state closes over:\n")
	for _, item := range e.Closure {
		fmt.Fprintf(&b, "\t%v\n", item)
	}
	return b.String()
}
