// Package symb constructs the opaque symbols that stand for statically
// unknown integer quantities: array lengths, pointer offsets, plain values
// and the results of modeled functions. A symbol's identity is its path and
// origin location; signedness and integrality are metadata the bound
// algebra consults but that do not participate in identity.
package symb

import (
	"fmt"
	"strings"

	"github.com/tetramorph/overrun/loc"
)

type PathKind uint8

const (
	// Normal denotes the value of a variable or field.
	Normal PathKind = iota
	// Offset denotes the byte or element offset of a pointer into its
	// underlying buffer.
	Offset
	// Length denotes the allocated length of a buffer.
	Length
	// Modeled denotes the result of a modeled function call.
	Modeled
)

func (k PathKind) String() string {
	switch k {
	case Normal:
		return "normal"
	case Offset:
		return "offset"
	case Length:
		return "length"
	case Modeled:
		return "modeled"
	default:
		panic(fmt.Sprintf("unhandled path kind %d", k))
	}
}

// A Path describes what a symbol denotes. Base is the access path of the
// underlying program entity (for Modeled, the function name). IsVoid
// records that an Offset or Length path goes through a void-typed pointer,
// in which case the quantity is byte-granular rather than element-granular.
type Path struct {
	Kind   PathKind
	Base   string
	IsVoid bool
}

func NormalPath(base string) Path {
	return Path{Kind: Normal, Base: base}
}

func OffsetPath(base string, isVoid bool) Path {
	return Path{Kind: Offset, Base: base, IsVoid: isVoid}
}

func LengthPath(base string, isVoid bool) Path {
	return Path{Kind: Length, Base: base, IsVoid: isVoid}
}

func ModeledPath(fn string) Path {
	return Path{Kind: Modeled, Base: fn}
}

func (p Path) String() string {
	switch p.Kind {
	case Normal:
		return p.Base
	case Offset:
		return p.Base + ".offset"
	case Length:
		return p.Base + ".length"
	case Modeled:
		return p.Base + "()"
	default:
		panic(fmt.Sprintf("unhandled path kind %d", p.Kind))
	}
}

// Compare orders paths by kind, then base, then voidness.
func (p Path) Compare(o Path) int {
	if p.Kind != o.Kind {
		if p.Kind < o.Kind {
			return -1
		}
		return 1
	}
	if p.Base != o.Base {
		if p.Base < o.Base {
			return -1
		}
		return 1
	}
	switch {
	case p.IsVoid == o.IsVoid:
		return 0
	case o.IsVoid:
		return -1
	default:
		return 1
	}
}

// A Symbol is an unknown integer quantity. Two symbols are equal iff they
// have the same path and origin. Symbols are comparable values and can be
// used as map keys.
type Symbol struct {
	Path     Path
	Origin   loc.Loc
	Unsigned bool
	NonInt   bool
}

// New creates a symbol for path originating at l. Length symbols are
// unsigned: a buffer cannot have a negative length.
func New(l loc.Loc, path Path) Symbol {
	return Symbol{
		Path:     path,
		Origin:   l,
		Unsigned: path.Kind == Length,
	}
}

func (s Symbol) String() string {
	return s.Path.String()
}

// Compare orders symbols by path, then origin. The order is total and
// consistent with equality.
func (s Symbol) Compare(o Symbol) int {
	if c := s.Path.Compare(o.Path); c != 0 {
		return c
	}
	return s.Origin.Compare(o.Origin)
}

// MatchesStr reports whether pred accepts any textual component of the
// symbol's path. Used for recursive-symbol detection, e.g. matching a
// procedure name against a modeled-call symbol.
func (s Symbol) MatchesStr(pred func(string) bool) bool {
	if pred(s.Path.Base) {
		return true
	}
	for _, part := range strings.Split(s.Path.Base, ".") {
		if pred(part) {
			return true
		}
	}
	return false
}
