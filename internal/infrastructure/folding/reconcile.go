package folding

import (
	"bytes"

	"github.com/doeshing/blackline/internal/domain"
	"github.com/doeshing/blackline/internal/ports"
)

// Reconciler translates folded ranges across a full-text replacement.
type Reconciler struct{}

// NewReconciler builds a fold reconciler.
func NewReconciler() *Reconciler {
	return &Reconciler{}
}

// Reconcile maps each fold through the old outline into the new one.
// Ranges whose enclosing node was deleted or restructured are dropped.
// When either outline is empty (content did not index), no folds are
// restored at all.
func (r *Reconciler) Reconcile(oldSrc, newSrc []byte, folds []domain.FoldRange) []domain.FoldRange {
	if len(folds) == 0 {
		return nil
	}
	oldNodes := Outline(oldSrc)
	newNodes := Outline(newSrc)
	if len(oldNodes) == 0 || len(newNodes) == 0 {
		return nil
	}

	newByKey := make(map[string]Node, len(newNodes))
	for _, n := range newNodes {
		newByKey[n.Key] = n
	}

	var out []domain.FoldRange
	for _, fold := range folds {
		oldNode, ok := enclosing(oldNodes, fold)
		if !ok {
			continue
		}
		newNode, ok := newByKey[oldNode.Key]
		if !ok {
			continue
		}
		if translated, ok := translate(fold, oldNode, newNode, oldSrc, newSrc); ok {
			out = append(out, translated)
		}
	}
	return out
}

// enclosing picks the innermost node whose span contains the fold.
func enclosing(nodes []Node, fold domain.FoldRange) (Node, bool) {
	best := -1
	for i, n := range nodes {
		if n.HeaderStart <= fold.Start && fold.End <= n.End {
			if best < 0 || n.End-n.HeaderStart < nodes[best].End-nodes[best].HeaderStart {
				best = i
			}
		}
	}
	if best < 0 {
		return Node{}, false
	}
	return nodes[best], true
}

// translate computes the analogous range in new coordinates. Two cases
// are safe: a fold covering the node's body maps to the new body span,
// and a fold inside a byte-identical block shifts by the block's offset
// delta. Everything else is dropped.
func translate(fold domain.FoldRange, oldNode, newNode Node, oldSrc, newSrc []byte) (domain.FoldRange, bool) {
	if fold.Start == oldNode.BodyStart && fold.End == oldNode.End {
		return domain.FoldRange{Start: newNode.BodyStart, End: newNode.End}, true
	}
	if blocksEqual(oldNode, newNode, oldSrc, newSrc) {
		delta := newNode.HeaderStart - oldNode.HeaderStart
		return domain.FoldRange{Start: fold.Start + delta, End: fold.End + delta}, true
	}
	return domain.FoldRange{}, false
}

func blocksEqual(oldNode, newNode Node, oldSrc, newSrc []byte) bool {
	if oldNode.End > len(oldSrc) || newNode.End > len(newSrc) {
		return false
	}
	return bytes.Equal(oldSrc[oldNode.HeaderStart:oldNode.End], newSrc[newNode.HeaderStart:newNode.End])
}

var _ ports.FoldReconciler = (*Reconciler)(nil)
