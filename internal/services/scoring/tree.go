package scoring

import "fmt"

// Node is one node of a binary decision tree. A node with Left < 0 is a leaf.
type Node struct {
	Feature   int       `json:"feature"`
	Threshold float64   `json:"threshold"`
	Left      int       `json:"left"`
	Right     int       `json:"right"`
	Value     []float64 `json:"value,omitempty"`
	Leaf      float64   `json:"leaf,omitempty"`
}

func (n Node) isLeaf() bool { return n.Left < 0 }

// Tree is a flat node array rooted at index 0.
type Tree struct {
	Nodes []Node `json:"nodes"`
}

// validate checks node links. Children must come after their parent, which
// rules out cycles.
func (t Tree) validate(width int) error {
	if len(t.Nodes) == 0 {
		return fmt.Errorf("empty tree")
	}
	for i, n := range t.Nodes {
		if n.isLeaf() {
			continue
		}
		if n.Feature < 0 || n.Feature >= width {
			return fmt.Errorf("node %d: feature %d out of range [0,%d)", i, n.Feature, width)
		}
		for _, c := range []int{n.Left, n.Right} {
			if c <= i || c >= len(t.Nodes) {
				return fmt.Errorf("node %d: child %d out of range", i, c)
			}
		}
	}
	return nil
}

// walk returns the leaf reached by x. With strict set a value goes left when
// x < threshold, otherwise when x <= threshold.
func (t Tree) walk(x []float64, strict bool) Node {
	n := t.Nodes[0]
	for !n.isLeaf() {
		v := x[n.Feature]
		left := v <= n.Threshold
		if strict {
			left = v < n.Threshold
		}
		if left {
			n = t.Nodes[n.Left]
		} else {
			n = t.Nodes[n.Right]
		}
	}
	return n
}
