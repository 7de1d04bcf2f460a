package regressor

import (
	"context"
	"fmt"

	"github.com/okian/parcast/internal/domain/features"
)

// Node is one entry of a flattened regression tree. Internal nodes send
// x[Feature] <= Threshold to Left, everything else to Right.
type Node struct {
	Feature   int     `json:"feature"`
	Threshold float64 `json:"threshold"`
	Left      int     `json:"left"`
	Right     int     `json:"right"`
	IsLeaf    bool    `json:"is_leaf"`
	Value     float64 `json:"value"`
}

// Tree is a flattened regression tree rooted at Nodes[0].
type Tree struct {
	Nodes []Node `json:"nodes"`
}

// TreeEnsemble is a boosted sum of regression trees on top of a base score.
type TreeEnsemble struct {
	baseScore float64
	features  []string
	trees     []Tree
	width     int
}

// NewTreeEnsemble validates the trees against the feature width and builds the model.
func NewTreeEnsemble(baseScore float64, featureNames []string, trees []Tree) (*TreeEnsemble, error) {
	if len(trees) == 0 {
		return nil, fmt.Errorf("%w: ensemble has no trees", ErrInvalidModel)
	}
	m := &TreeEnsemble{baseScore: baseScore, trees: trees, width: -1}
	if len(featureNames) > 0 {
		m.features = append([]string(nil), featureNames...)
		m.width = len(featureNames)
	}
	for ti, t := range trees {
		if err := t.validate(m.width); err != nil {
			return nil, fmt.Errorf("%w: tree %d: %v", ErrInvalidModel, ti, err)
		}
	}
	return m, nil
}

func (m *TreeEnsemble) Kind() string { return KindTreeEnsemble }

func (m *TreeEnsemble) Features() []string { return m.features }

// Predict sums the leaf reached in every tree.
func (m *TreeEnsemble) Predict(ctx context.Context, row features.Row) (float64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	if err := checkShape(m.features, row); err != nil {
		return 0, err
	}
	x := row.Values()
	y := m.baseScore
	for ti, t := range m.trees {
		v, err := t.leaf(x)
		if err != nil {
			return 0, fmt.Errorf("tree %d: %w", ti, err)
		}
		y += v
	}
	return y, nil
}

func (t Tree) validate(width int) error {
	if len(t.Nodes) == 0 {
		return fmt.Errorf("no nodes")
	}
	for i, n := range t.Nodes {
		if n.IsLeaf {
			continue
		}
		if n.Left <= i || n.Left >= len(t.Nodes) || n.Right <= i || n.Right >= len(t.Nodes) {
			return fmt.Errorf("node %d has child out of range", i)
		}
		if n.Feature < 0 || (width >= 0 && n.Feature >= width) {
			return fmt.Errorf("node %d splits on feature %d", i, n.Feature)
		}
	}
	return nil
}

// leaf walks the tree for x. Children always follow their parent, so the walk terminates.
func (t Tree) leaf(x []float64) (float64, error) {
	idx := 0
	for {
		n := t.Nodes[idx]
		if n.IsLeaf {
			return n.Value, nil
		}
		if n.Feature >= len(x) {
			return 0, fmt.Errorf("%w: feature index %d out of range for %d values", ErrShapeMismatch, n.Feature, len(x))
		}
		if x[n.Feature] <= n.Threshold {
			idx = n.Left
		} else {
			idx = n.Right
		}
		if idx <= 0 || idx >= len(t.Nodes) {
			return 0, ErrInvalidTree
		}
	}
}
