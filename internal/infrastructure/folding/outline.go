// Package folding rebuilds folded editor regions after a full-buffer
// replacement. It indexes both texts into structural outlines of class
// and function blocks, matches nodes by a stable identity key, and
// translates fold spans into the new coordinates. Folding is cosmetic
// state: anything that cannot be matched is dropped, never guessed.
package folding

import (
	"bytes"
	"fmt"
	"regexp"
)

// Node is one structural block (class or def) with byte spans.
type Node struct {
	Kind string
	Name string
	// Key identifies the node across reformat: the parent-chain of
	// kind:name pairs plus the ordinal among same-kind siblings, robust
	// to pure text shifts.
	Key string
	// HeaderStart is the byte offset of the header line.
	HeaderStart int
	// BodyStart is the byte offset just past the header line's newline.
	BodyStart int
	// End is the byte offset past the last content line of the block.
	End int
}

// Span returns the node's full range including the header.
func (n Node) Span() (start, end int) {
	return n.HeaderStart, n.End
}

var reHeader = regexp.MustCompile(`^([ \t]*)(?:async[ \t]+)?(class|def)[ \t]+([A-Za-z_][A-Za-z0-9_]*)`)

type openBlock struct {
	indent int
	node   int // index into the result slice
	counts map[string]int
}

// Outline builds the structural index of Python source. It is a
// line-oriented scan keyed on indentation, not a full parser; an empty
// result means the index could not be built and callers must skip
// reconciliation.
func Outline(src []byte) []Node {
	var nodes []Node
	root := &openBlock{indent: -1, node: -1, counts: map[string]int{}}
	stack := []*openBlock{root}
	lastContentEnd := 0

	offset := 0
	for _, line := range bytes.SplitAfter(src, []byte("\n")) {
		lineStart := offset
		offset += len(line)
		trimmed := bytes.TrimSpace(line)
		if len(trimmed) == 0 || trimmed[0] == '#' {
			continue
		}
		lineEnd := lineStart + len(bytes.TrimRight(line, "\r\n"))

		m := reHeader.FindSubmatch(line)
		if m != nil {
			indent := len(m[1])
			for len(stack) > 1 && stack[len(stack)-1].indent >= indent {
				top := stack[len(stack)-1]
				nodes[top.node].End = lastContentEnd
				stack = stack[:len(stack)-1]
			}
			parent := stack[len(stack)-1]
			kind, name := string(m[2]), string(m[3])
			ordinal := parent.counts[kind]
			parent.counts[kind]++

			parentKey := ""
			if parent.node >= 0 {
				parentKey = nodes[parent.node].Key + "/"
			}
			nodes = append(nodes, Node{
				Kind:        kind,
				Name:        name,
				Key:         fmt.Sprintf("%s%s:%s#%d", parentKey, kind, name, ordinal),
				HeaderStart: lineStart,
				BodyStart:   offset,
			})
			stack = append(stack, &openBlock{
				indent: indent,
				node:   len(nodes) - 1,
				counts: map[string]int{},
			})
		} else {
			indent := len(line) - len(bytes.TrimLeft(line, " \t"))
			for len(stack) > 1 && stack[len(stack)-1].indent >= indent {
				top := stack[len(stack)-1]
				nodes[top.node].End = lastContentEnd
				stack = stack[:len(stack)-1]
			}
		}
		lastContentEnd = lineEnd
	}

	for len(stack) > 1 {
		top := stack[len(stack)-1]
		nodes[top.node].End = lastContentEnd
		stack = stack[:len(stack)-1]
	}
	return nodes
}
