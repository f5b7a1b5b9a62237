package pattern

import (
	"fmt"
	"strings"
)

// ErrorKind classifies a parse error.
// Every kind implements `error`, so it can be used as target of `errors.Is`:
//
//	if errors.Is(err, pattern.MalformedExpression) { ... }
type ErrorKind uint8

// Possible parse error kinds.
const (
	// NotASCIICharacter: a character is neither a literal, a metacharacter nor an escape target.
	NotASCIICharacter ErrorKind = iota + 1
	// MisusedAnchorCharacter: `^` or `$` outside of their positions at the edges of the pattern.
	MisusedAnchorCharacter
	// NotTerminatedProperly: a bracket expression, class or group is not closed.
	NotTerminatedProperly
	// UnknownGuardCharacter: unsupported construct after `[` inside a bracket expression.
	UnknownGuardCharacter
	// MalformedExpression: any other grammar violation.
	MalformedExpression
	// UnknownPredefinedSetName: the name inside `[: :]` is not a known class.
	UnknownPredefinedSetName
	// NotANumber: a repetition count cannot be read as a non-negative integer.
	NotANumber
	// IncorrectRepetitionLimits: a character range or repetition range with reversed bounds.
	IncorrectRepetitionLimits
)

func (k ErrorKind) Error() string {
	switch k {
	case NotASCIICharacter:
		return "not an ascii character"
	case MisusedAnchorCharacter:
		return "misused anchor character"
	case NotTerminatedProperly:
		return "not terminated properly"
	case UnknownGuardCharacter:
		return "unknown guard character"
	case MalformedExpression:
		return "malformed expression"
	case UnknownPredefinedSetName:
		return "unknown predefined set name"
	case NotANumber:
		return "not a number"
	case IncorrectRepetitionLimits:
		return "incorrect repetition limits"
	default:
		return k.String()
	}
}

// Error is the error returned by `Parse`.
// It contains the kind of the error, a detailed message and the byte position in the pattern.
type Error struct {
	Kind    ErrorKind
	Msg     string
	Pos     int
	Pattern string
}

// Error returns the message followed by the position.
// If the pattern contains new line characters, the line and column number is also added to the message.
func (e *Error) Error() string {
	msg := fmt.Sprintf("%s at position %d", e.Msg, e.Pos)

	if strings.Contains(e.Pattern, "\n") && e.Pos <= len(e.Pattern) {
		lineno := strings.Count(e.Pattern[:e.Pos], "\n") + 1
		colno := e.Pos - strings.LastIndex(e.Pattern[:e.Pos], "\n")

		msg = fmt.Sprintf("%s (line %d, column %d)", msg, lineno, colno)
	}

	return msg
}

// Unwrap returns the kind of the error.
func (e *Error) Unwrap() error {
	return e.Kind
}
