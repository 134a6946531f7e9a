// Package patch implements the patch engine: it resolves the compound
// PatchInstruction variants (Move, Duplicate) into primitives, orders
// those primitives deterministically, applies them to a canonical tree,
// and re-serializes the result to the input's original encoding.
package patch

import (
	"sort"

	"phenolint/internal/linterr"
	"phenolint/internal/report"
	"phenolint/internal/tree"
)

// primitive is a resolved Add or Remove instruction, tagged with its
// original index for stable tie-breaking.
type primitive struct {
	op    report.PatchInstruction // report.Add or report.Remove
	depth int
	seq   int
}

// Resolve expands every instruction across all findings' patches into the
// primitive Add/Remove set: Move{from,to} becomes Add{to, value@from}
// then Remove{from}; Duplicate{from,to} becomes Add{to, value@from}
// alone. Source values for Move/Duplicate are read from the pre-edit
// tree.
func Resolve(root tree.Value, patches []report.Patch) ([]report.PatchInstruction, error) {
	var out []report.PatchInstruction
	for _, p := range patches {
		for _, instr := range p {
			switch v := instr.(type) {
			case report.Add:
				out = append(out, v)
			case report.Remove:
				out = append(out, v)
			case report.Move:
				val, ok := tree.ValueAt(root, v.From)
				if !ok {
					return nil, linterr.Wrap(linterr.PatchingError, "move: source not found", nil)
				}
				out = append(out, report.Add{At: v.To, Value: val})
				out = append(out, report.Remove{At: v.From})
			case report.Duplicate:
				val, ok := tree.ValueAt(root, v.From)
				if !ok {
					return nil, linterr.Wrap(linterr.PatchingError, "duplicate: source not found", nil)
				}
				out = append(out, report.Add{At: v.To, Value: val})
			}
		}
	}
	return out, nil
}

// Order sorts resolved primitives into a total order: all Adds before
// all Removes; within each class, ascending path depth; ties broken by
// original (insertion) order.
func Order(instructions []report.PatchInstruction) []report.PatchInstruction {
	primitives := make([]primitive, len(instructions))
	for i, instr := range instructions {
		primitives[i] = primitive{op: instr, depth: depthOf(instr), seq: i}
	}
	sort.SliceStable(primitives, func(i, j int) bool {
		ci, cj := classOf(primitives[i].op), classOf(primitives[j].op)
		if ci != cj {
			return ci < cj
		}
		if primitives[i].depth != primitives[j].depth {
			return primitives[i].depth < primitives[j].depth
		}
		return primitives[i].seq < primitives[j].seq
	})
	out := make([]report.PatchInstruction, len(primitives))
	for i, p := range primitives {
		out[i] = p.op
	}
	return out
}

func classOf(instr report.PatchInstruction) int {
	switch instr.(type) {
	case report.Add:
		return 0
	case report.Remove:
		return 1
	default:
		return 2
	}
}

func depthOf(instr report.PatchInstruction) int {
	switch v := instr.(type) {
	case report.Add:
		return len(v.At.Segments())
	case report.Remove:
		return len(v.At.Segments())
	default:
		return 0
	}
}

// Apply applies ordered primitives to root natively over tree.Value
// (internal/tree.AddAt/RemoveAt), rather than going through the
// agentflare-ai/jsonpatch library, because that library's generic
// map[string]any representation cannot preserve Map's insertion-order
// invariant. Any application error aborts the whole pass; no partial
// result is returned.
func Apply(root tree.Value, instructions []report.PatchInstruction) (tree.Value, error) {
	cur := root
	for _, instr := range instructions {
		var err error
		switch v := instr.(type) {
		case report.Add:
			cur, err = tree.AddAt(cur, v.At, v.Value)
		case report.Remove:
			cur, err = tree.RemoveAt(cur, v.At)
		}
		if err != nil {
			return tree.Value{}, linterr.Wrap(linterr.PatchingError, "applying patch", err)
		}
	}
	return cur, nil
}

// ApplyAll runs the full engine over every finding's patches: resolve,
// order, apply.
func ApplyAll(root tree.Value, findings []report.LintFinding) (tree.Value, error) {
	var patches []report.Patch
	for _, f := range findings {
		patches = append(patches, f.Patches...)
	}
	resolved, err := Resolve(root, patches)
	if err != nil {
		return tree.Value{}, err
	}
	ordered := Order(resolved)
	return Apply(root, ordered)
}
