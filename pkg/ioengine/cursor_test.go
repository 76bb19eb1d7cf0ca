package ioengine

import (
	"strings"
	"testing"

	"github.com/mathcrusader/vargen/pkg/policy"
)

func TestReadTokenFlexibleSkipsLeadingWhitespace(t *testing.T) {
	c := NewCursor(strings.NewReader("   hello world"), policy.Flexible, policy.NumericPrecise)
	tok, err := c.ReadToken()
	if err != nil || tok != "hello" {
		t.Fatalf("ReadToken = %q, %v; want hello, nil", tok, err)
	}
}

func TestReadTokenPreciseRejectsLeadingWhitespace(t *testing.T) {
	c := NewCursor(strings.NewReader(" hello"), policy.Precise, policy.NumericPrecise)
	if _, err := c.ReadToken(); err == nil {
		t.Fatal("expected an IOError for unexpected leading whitespace under Precise")
	}
}

func TestReadWhitespacePreciseRejectsWrongKind(t *testing.T) {
	c := NewCursor(strings.NewReader("\t"), policy.Precise, policy.NumericPrecise)
	if err := c.ReadWhitespace(policy.Space); err == nil {
		t.Fatal("expected an IOError reading a tab while requiring a space")
	}
}

func TestReadWhitespaceFlexibleAcceptsAnyKind(t *testing.T) {
	c := NewCursor(strings.NewReader("\t"), policy.Flexible, policy.NumericPrecise)
	if err := c.ReadWhitespace(policy.Space); err != nil {
		t.Fatalf("ReadWhitespace: %v", err)
	}
}

func TestReadEOF(t *testing.T) {
	c := NewCursor(strings.NewReader("  "), policy.Flexible, policy.NumericPrecise)
	if err := c.ReadEOF(); err != nil {
		t.Fatalf("ReadEOF: %v", err)
	}
	c2 := NewCursor(strings.NewReader("x"), policy.Precise, policy.NumericPrecise)
	if err := c2.ReadEOF(); err == nil {
		t.Fatal("expected an error; stream is not exhausted")
	}
}

func TestReadIntPreciseRejectsLeadingZeroAndPlus(t *testing.T) {
	cases := []string{"007", "+5", "-0"}
	for _, s := range cases {
		c := NewCursor(strings.NewReader(s), policy.Flexible, policy.NumericPrecise)
		if _, err := c.ReadInt(); err == nil {
			t.Errorf("ReadInt(%q) should fail under Precise numeric strictness", s)
		}
	}
}

func TestReadIntAcceptsWellFormedValues(t *testing.T) {
	cases := map[string]int64{"0": 0, "-1": -1, "42": 42, "-123456789": -123456789}
	for s, want := range cases {
		c := NewCursor(strings.NewReader(s), policy.Flexible, policy.NumericPrecise)
		got, err := c.ReadInt()
		if err != nil || got != want {
			t.Errorf("ReadInt(%q) = %d, %v; want %d, nil", s, got, err, want)
		}
	}
}

func TestReadIntFlexibleAcceptsLeadingZero(t *testing.T) {
	c := NewCursor(strings.NewReader("007"), policy.Flexible, policy.NumericFlexible)
	got, err := c.ReadInt()
	if err != nil || got != 7 {
		t.Fatalf("ReadInt = %d, %v; want 7, nil", got, err)
	}
}

func TestPositionAfterNewline(t *testing.T) {
	c := NewCursor(strings.NewReader("ab\ncd"), policy.Flexible, policy.NumericPrecise)
	if _, err := c.ReadToken(); err != nil {
		t.Fatalf("ReadToken: %v", err)
	}
	if err := c.ReadWhitespace(policy.Newline); err != nil {
		t.Fatalf("ReadWhitespace: %v", err)
	}
	line, col := c.Position()
	if line != 2 || col != 1 {
		t.Fatalf("Position after newline = %d:%d, want 2:1", line, col)
	}
}
