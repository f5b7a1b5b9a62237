package grep

import (
	"go.starlark.net/starlark"
	"go.starlark.net/starlarkstruct"

	"github.com/magnetde/starlark-grep/pattern"
)

// expressionValue converts the expression into a frozen Starlark struct:
//
//	struct(anchor = "start", patterns = [struct(kind = "literal", char = "a", repetition = ...), ...])
//
// Atoms are distinguished by their `kind` field: "wildcard", "literal", "set" or "alternative".
func expressionValue(e *pattern.Expression) starlark.Value {
	s := newStruct(starlark.StringDict{
		"anchor":   starlark.String(e.Anchor.String()),
		"patterns": patternsValue(e.Patterns),
	})

	s.Freeze()
	return s
}

// patternsValue converts a pattern sequence into a list of structs.
func patternsValue(seq []pattern.Pattern) *starlark.List {
	res := make([]starlark.Value, 0, len(seq))
	for _, p := range seq {
		fields := subPatternFields(p.Sub)
		fields["repetition"] = repetitionValue(p.Repetition)

		res = append(res, newStruct(fields))
	}

	return starlark.NewList(res)
}

// subPatternFields returns the struct fields of an atom.
func subPatternFields(sub pattern.SubPattern) starlark.StringDict {
	switch t := sub.(type) {
	case pattern.Wildcard:
		return starlark.StringDict{
			"kind": starlark.String("wildcard"),
		}
	case pattern.Literal:
		return starlark.StringDict{
			"kind": starlark.String("literal"),
			"char": starlark.String(string(t.C)),
		}
	case pattern.BracketedSet:
		items := make([]starlark.Value, 0, len(t.Items))
		for _, item := range t.Items {
			items = append(items, setItemValue(item))
		}

		return starlark.StringDict{
			"kind":    starlark.String("set"),
			"negated": starlark.Bool(t.Negated),
			"items":   starlark.NewList(items),
		}
	case pattern.Alternative:
		branches := make([]starlark.Value, 0, len(t.Branches))
		for _, branch := range t.Branches {
			branches = append(branches, patternsValue(branch))
		}

		return starlark.StringDict{
			"kind":     starlark.String("alternative"),
			"branches": starlark.NewList(branches),
		}
	default:
		return starlark.StringDict{
			"kind": starlark.String("unknown"),
		}
	}
}

// setItemValue converts a member of a bracket expression into a struct.
func setItemValue(item pattern.SetItem) starlark.Value {
	switch t := item.(type) {
	case pattern.PredefinedClass:
		return newStruct(starlark.StringDict{
			"kind": starlark.String("class"),
			"name": starlark.String(t.String()),
		})
	case pattern.CharRange:
		return newStruct(starlark.StringDict{
			"kind": starlark.String("range"),
			"lo":   starlark.String(string(t.Lo)),
			"hi":   starlark.String(string(t.Hi)),
		})
	case pattern.CustomChars:
		return newStruct(starlark.StringDict{
			"kind":  starlark.String("chars"),
			"chars": starlark.String(string(t)),
		})
	default:
		return starlark.None
	}
}

// repetitionValue converts a repetition into a struct with the fields `kind`, `min` and `max`.
// An unbounded maximum is None.
func repetitionValue(r pattern.Repetition) starlark.Value {
	lo, hi := r.Bounds()

	var upper starlark.Value = starlark.None
	if hi >= 0 {
		upper = starlark.MakeInt(hi)
	}

	return newStruct(starlark.StringDict{
		"kind": starlark.String(r.Kind.String()),
		"min":  starlark.MakeInt(lo),
		"max":  upper,
	})
}

func newStruct(fields starlark.StringDict) *starlarkstruct.Struct {
	return starlarkstruct.FromStringDict(starlarkstruct.Default, fields)
}
