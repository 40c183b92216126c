package models

import (
	"errors"
	"fmt"
)

// ============================================================================
// ERRORS
// ============================================================================

var (
	ErrParse          = errors.New("parse error")
	ErrTypeResolution = errors.New("type resolve fail")
	ErrRange          = errors.New("limitation out of range")
	ErrState          = errors.New("invalid builder state")
)

// ParseError reports a DDL line or LIMIT clause that could not be decomposed.
// Err is ErrParse or ErrTypeResolution.
type ParseError struct {
	Line    int    // 1-based line number, 0 when not line oriented
	Text    string // Offending input
	Message string
	Err     error
}

func (e *ParseError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("%v at line %d: %s (%q)", e.cause(), e.Line, e.Message, e.Text)
	}
	if e.Text != "" {
		return fmt.Sprintf("%v: %s (%q)", e.cause(), e.Message, e.Text)
	}
	return fmt.Sprintf("%v: %s", e.cause(), e.Message)
}

func (e *ParseError) Unwrap() error {
	return e.cause()
}

func (e *ParseError) cause() error {
	if e.Err == nil {
		return ErrParse
	}
	return e.Err
}

// RangeError reports a page request starting past the end of an already limited window.
type RangeError struct {
	ExistingOffset int
	ExistingCount  int
	PageOffset     int
}

func (e *RangeError) Error() string {
	return fmt.Sprintf("%v: page offset %d exceeds window [%d, +%d]",
		ErrRange, e.PageOffset, e.ExistingOffset, e.ExistingCount)
}

func (e *RangeError) Unwrap() error {
	return ErrRange
}
