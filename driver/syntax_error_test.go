package driver

import (
	"strings"
	"testing"

	"github.com/NateSeymour/buffalo"
)

func TestParseErrorRendering(t *testing.T) {
	p := newCalculator(t, true)

	_, err := p.Parse("32 + + 4")
	if err == nil {
		t.Fatal("expected a parse error")
	}

	msg := err.Error()
	if !strings.Contains(msg, "^") {
		t.Fatalf("message must carry a caret pointer:\n%v", msg)
	}
	if !strings.Contains(msg, "32 + + 4") {
		t.Fatalf("message must carry the source snippet:\n%v", msg)
	}
}

func TestUnexpectedTokenExpectedSummary(t *testing.T) {
	p := newCalculator(t, true)

	_, err := p.Parse("(")
	if err == nil {
		t.Fatal("expected a parse error")
	}
	unexpected, ok := err.(*buffalo.UnexpectedTokenError)
	if !ok {
		t.Fatalf("want *buffalo.UnexpectedTokenError, got %T: %v", err, err)
	}
	if len(unexpected.Expected) == 0 {
		t.Fatal("the error must summarise the expected terminals")
	}
	if !strings.Contains(err.Error(), "expected one of") {
		t.Fatalf("message must render the expected summary:\n%v", err.Error())
	}
}
