package summaries

import (
	"fmt"
	"math/big"

	"github.com/fxamacker/cbor/v2"

	"github.com/tetramorph/overrun/bounds"
	"github.com/tetramorph/overrun/loc"
	"github.com/tetramorph/overrun/symb"
)

// snapshotVersion guards against reading snapshots written by an
// incompatible build.
const snapshotVersion = 1

// The DTO tree mirrors the closed shape of the algebra; decoding rejects
// anything outside it.

type snapshotDTO struct {
	Version   int          `cbor:"v"`
	Summaries []summaryDTO `cbor:"summaries"`
}

type summaryDTO struct {
	Proc       string         `cbor:"proc"`
	LoopBounds []loopBoundDTO `cbor:"loop_bounds"`
}

type loopBoundDTO struct {
	File  string `cbor:"file"`
	Line  int    `cbor:"line"`
	Bound nnbDTO `cbor:"bound"`
}

type nnbDTO struct {
	Bound boundDTO  `cbor:"b"`
	Trace *traceDTO `cbor:"t,omitempty"`
}

const (
	dtoMInf     = "minf"
	dtoPInf     = "pinf"
	dtoConst    = "const"
	dtoSymbolic = "sym"
	dtoMinMax   = "minmax"
)

type boundDTO struct {
	Kind   string    `cbor:"k"`
	Const  string    `cbor:"c,omitempty"`
	Sign   int       `cbor:"sign,omitempty"`
	Sym    *symDTO   `cbor:"sym,omitempty"`
	Offset string    `cbor:"off,omitempty"`
	Max    bool      `cbor:"max,omitempty"`
	Lhs    *boundDTO `cbor:"lhs,omitempty"`
	Rhs    *boundDTO `cbor:"rhs,omitempty"`
}

type symDTO struct {
	PathKind uint8  `cbor:"pk"`
	Base     string `cbor:"base"`
	IsVoid   bool   `cbor:"void,omitempty"`
	File     string `cbor:"file"`
	Line     int    `cbor:"line"`
	Unsigned bool   `cbor:"unsigned,omitempty"`
	NonInt   bool   `cbor:"nonint,omitempty"`
}

type traceDTO struct {
	Kind  uint8     `cbor:"k"`
	Name  string    `cbor:"name,omitempty"`
	File  string    `cbor:"file"`
	Line  int       `cbor:"line"`
	Inner *traceDTO `cbor:"inner,omitempty"`
}

// EncodeSnapshot serializes the whole store.
func (st *Store) EncodeSnapshot() ([]byte, error) {
	st.mu.RLock()
	defer st.mu.RUnlock()

	snap := snapshotDTO{Version: snapshotVersion}
	for _, proc := range st.procsLocked() {
		s := st.m[proc]
		sd := summaryDTO{Proc: s.Proc}
		for _, lb := range s.LoopBounds {
			sd.LoopBounds = append(sd.LoopBounds, loopBoundDTO{
				File: lb.Loop.File,
				Line: lb.Loop.Line,
				Bound: nnbDTO{
					Bound: boundToDTO(lb.Bound.Bound()),
					Trace: traceToDTO(lb.Bound.Trace()),
				},
			})
		}
		snap.Summaries = append(snap.Summaries, sd)
	}
	return cbor.Marshal(snap)
}

// DecodeSnapshot rebuilds a store from a serialized snapshot. Unknown
// bound shapes and version mismatches are errors, never silent defaults.
func DecodeSnapshot(data []byte) (*Store, error) {
	var snap snapshotDTO
	if err := cbor.Unmarshal(data, &snap); err != nil {
		return nil, fmt.Errorf("decoding summary snapshot: %w", err)
	}
	if snap.Version != snapshotVersion {
		return nil, fmt.Errorf("summary snapshot version %d, want %d", snap.Version, snapshotVersion)
	}
	st := NewStore()
	for _, sd := range snap.Summaries {
		s := Summary{Proc: sd.Proc}
		for _, lbd := range sd.LoopBounds {
			b, err := boundFromDTO(&lbd.Bound.Bound)
			if err != nil {
				return nil, fmt.Errorf("summary for %s: %w", sd.Proc, err)
			}
			t, err := traceFromDTO(lbd.Bound.Trace)
			if err != nil {
				return nil, fmt.Errorf("summary for %s: %w", sd.Proc, err)
			}
			s.LoopBounds = append(s.LoopBounds, LoopBound{
				Loop:  loc.L(lbd.File, lbd.Line),
				Bound: bounds.NonNegOf(t, b),
			})
		}
		st.m[s.Proc] = s
	}
	return st, nil
}

func boundToDTO(b bounds.Bound) boundDTO {
	switch {
	case b.IsMInf():
		return boundDTO{Kind: dtoMInf}
	case b.IsPInf():
		return boundDTO{Kind: dtoPInf}
	}
	if c, ok := b.AsConst(); ok {
		return boundDTO{Kind: dtoConst, Const: c.Big().String()}
	}
	if sign, s, off, ok := b.AsSymbolic(); ok {
		return boundDTO{
			Kind:   dtoSymbolic,
			Sign:   sign,
			Sym:    symToDTO(s),
			Offset: off.Big().String(),
		}
	}
	k, lhs, rhs, ok := b.AsMinMax()
	if !ok {
		panic(fmt.Sprintf("unhandled bound shape %s", b))
	}
	l, r := boundToDTO(lhs), boundToDTO(rhs)
	return boundDTO{Kind: dtoMinMax, Max: k == bounds.Max, Lhs: &l, Rhs: &r}
}

func boundFromDTO(d *boundDTO) (bounds.Bound, error) {
	switch d.Kind {
	case dtoMInf:
		return bounds.MInf(), nil
	case dtoPInf:
		return bounds.PInf(), nil
	case dtoConst:
		n, ok := new(big.Int).SetString(d.Const, 10)
		if !ok {
			return bounds.Bound{}, fmt.Errorf("malformed constant %q", d.Const)
		}
		return bounds.OfBig(n), nil
	case dtoSymbolic:
		if d.Sym == nil || (d.Sign != 1 && d.Sign != -1) {
			return bounds.Bound{}, fmt.Errorf("malformed symbolic bound")
		}
		off, ok := new(big.Int).SetString(d.Offset, 10)
		if !ok {
			return bounds.Bound{}, fmt.Errorf("malformed offset %q", d.Offset)
		}
		s, err := symFromDTO(d.Sym)
		if err != nil {
			return bounds.Bound{}, err
		}
		b := bounds.OfSymbol(s)
		if d.Sign < 0 {
			b = b.Neg()
		}
		return bounds.PlusU(false, b, bounds.OfBig(off)), nil
	case dtoMinMax:
		if d.Lhs == nil || d.Rhs == nil {
			return bounds.Bound{}, fmt.Errorf("malformed min/max bound")
		}
		lhs, err := boundFromDTO(d.Lhs)
		if err != nil {
			return bounds.Bound{}, err
		}
		rhs, err := boundFromDTO(d.Rhs)
		if err != nil {
			return bounds.Bound{}, err
		}
		if d.Max {
			return bounds.MaxOf(lhs, rhs), nil
		}
		return bounds.MinOf(lhs, rhs), nil
	default:
		return bounds.Bound{}, fmt.Errorf("unknown bound kind %q", d.Kind)
	}
}

func symToDTO(s symb.Symbol) *symDTO {
	return &symDTO{
		PathKind: uint8(s.Path.Kind),
		Base:     s.Path.Base,
		IsVoid:   s.Path.IsVoid,
		File:     s.Origin.File,
		Line:     s.Origin.Line,
		Unsigned: s.Unsigned,
		NonInt:   s.NonInt,
	}
}

func symFromDTO(d *symDTO) (symb.Symbol, error) {
	if d.PathKind > uint8(symb.Modeled) {
		return symb.Symbol{}, fmt.Errorf("unknown path kind %d", d.PathKind)
	}
	return symb.Symbol{
		Path: symb.Path{
			Kind:   symb.PathKind(d.PathKind),
			Base:   d.Base,
			IsVoid: d.IsVoid,
		},
		Origin:   loc.L(d.File, d.Line),
		Unsigned: d.Unsigned,
		NonInt:   d.NonInt,
	}, nil
}

func traceToDTO(t *bounds.Trace) *traceDTO {
	if t == nil {
		return nil
	}
	return &traceDTO{
		Kind:  uint8(t.Kind()),
		Name:  t.Name(),
		File:  t.At().File,
		Line:  t.At().Line,
		Inner: traceToDTO(t.Inner()),
	}
}

func traceFromDTO(d *traceDTO) (*bounds.Trace, error) {
	if d == nil {
		return nil, nil
	}
	inner, err := traceFromDTO(d.Inner)
	if err != nil {
		return nil, err
	}
	at := loc.L(d.File, d.Line)
	switch bounds.TraceKind(d.Kind) {
	case bounds.TraceLoop:
		return bounds.OfLoop(at), nil
	case bounds.TraceModeledCall:
		return bounds.OfModeledCall(d.Name, at), nil
	case bounds.TraceInterCall:
		return bounds.InterCall(d.Name, at, inner), nil
	default:
		return nil, fmt.Errorf("unknown trace kind %d", d.Kind)
	}
}
