package folding

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/doeshing/blackline/internal/domain"
)

func TestReconcileShiftsIdenticalBlock(t *testing.T) {
	oldSrc := []byte("def first():\n" +
		"    x=1\n" +
		"\n" +
		"\n" +
		"def second():\n" +
		"    y = 1\n" +
		"    z = 2\n")
	// Reformatting only touches first(); second() moves down by two bytes.
	newSrc := []byte("def first():\n" +
		"    x = 1\n" +
		"\n" +
		"\n" +
		"def second():\n" +
		"    y = 1\n" +
		"    z = 2\n")

	r := NewReconciler()

	t.Run("body fold maps to new body span", func(t *testing.T) {
		got := r.Reconcile(oldSrc, newSrc, []domain.FoldRange{{Start: 37, End: 56}})
		want := []domain.FoldRange{{Start: 39, End: 58}}
		if diff := cmp.Diff(want, got); diff != "" {
			t.Errorf("mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("interior fold shifts by the block delta", func(t *testing.T) {
		got := r.Reconcile(oldSrc, newSrc, []domain.FoldRange{{Start: 37, End: 46}})
		want := []domain.FoldRange{{Start: 39, End: 48}}
		if diff := cmp.Diff(want, got); diff != "" {
			t.Errorf("mismatch (-want +got):\n%s", diff)
		}
	})
}

func TestReconcileRewrittenBlockKeepsBodyFoldOnly(t *testing.T) {
	oldSrc := []byte("def first():\n" +
		"    x = 1\n" +
		"\n" +
		"\n" +
		"def second():\n" +
		"    z=2\n")
	newSrc := []byte("def first():\n" +
		"    x = 1\n" +
		"\n" +
		"\n" +
		"def second():\n" +
		"    z = 2\n")

	r := NewReconciler()

	// The whole-body fold follows the block's new body span.
	got := r.Reconcile(oldSrc, newSrc, []domain.FoldRange{{Start: 39, End: 46}})
	want := []domain.FoldRange{{Start: 39, End: 48}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("mismatch (-want +got):\n%s", diff)
	}

	// A partial fold inside a rewritten block cannot be placed reliably.
	if got := r.Reconcile(oldSrc, newSrc, []domain.FoldRange{{Start: 39, End: 43}}); got != nil {
		t.Errorf("partial fold survived a rewrite: %v", got)
	}
}

func TestReconcileDropsDeletedNodes(t *testing.T) {
	oldSrc := []byte("def keep():\n" +
		"    pass\n" +
		"\n" +
		"def gone():\n" +
		"    pass\n")
	newSrc := []byte("def keep():\n" +
		"    pass\n")

	// Fold on gone()'s body.
	nodes := Outline(oldSrc)
	var fold domain.FoldRange
	for _, n := range nodes {
		if n.Name == "gone" {
			fold = domain.FoldRange{Start: n.BodyStart, End: n.End}
		}
	}

	r := NewReconciler()
	if got := r.Reconcile(oldSrc, newSrc, []domain.FoldRange{fold}); got != nil {
		t.Errorf("fold on a deleted node survived: %v", got)
	}
}

func TestReconcileUnindexableContent(t *testing.T) {
	r := NewReconciler()

	tests := []struct {
		name   string
		oldSrc string
		newSrc string
		folds  []domain.FoldRange
	}{
		{
			name:   "no folds",
			oldSrc: "def f():\n    pass\n",
			newSrc: "def f():\n    pass\n",
		},
		{
			name:   "old source has no structure",
			oldSrc: "x = 1\n",
			newSrc: "def f():\n    pass\n",
			folds:  []domain.FoldRange{{Start: 0, End: 5}},
		},
		{
			name:   "new source has no structure",
			oldSrc: "def f():\n    pass\n",
			newSrc: "x = 1\n",
			folds:  []domain.FoldRange{{Start: 9, End: 17}},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := r.Reconcile([]byte(tt.oldSrc), []byte(tt.newSrc), tt.folds); got != nil {
				t.Errorf("got %v, want nil", got)
			}
		})
	}
}
