package domain

import (
	"path/filepath"
	"strings"
)

// TreeNode is a named entry in the hierarchical description of a
// materialized directory. A nil Children slice means a file leaf; a
// non-nil slice (possibly empty) means a directory.
type TreeNode struct {
	Name     string
	Children []*TreeNode
}

// IsDir reports whether the node represents a directory
func (n *TreeNode) IsDir() bool {
	return n.Children != nil
}

// Insert folds one relative file path into the tree rooted at n. The path
// is split on the local OS separator; "." segments are skipped. Directory
// segments reuse an existing child of the same name, so insertion order
// does not affect the resulting shape. The final segment always appends a
// new leaf: inserting the same path twice yields duplicate leaves.
func (n *TreeNode) Insert(relPath string) {
	segments := strings.Split(relPath, string(filepath.Separator))
	cur := n
	last := len(segments) - 1
	for i, seg := range segments {
		if seg == "" || seg == "." {
			continue
		}
		if i == last {
			cur.Children = append(cur.Children, &TreeNode{Name: seg})
			return
		}
		var dir *TreeNode
		for _, child := range cur.Children {
			if child.IsDir() && child.Name == seg {
				dir = child
				break
			}
		}
		if dir == nil {
			dir = &TreeNode{Name: seg, Children: []*TreeNode{}}
			cur.Children = append(cur.Children, dir)
		}
		cur = dir
	}
}

// BuildTree folds a set of relative file paths into a tree in one
// sequential pass. The root carries the destination's display name; the
// paths may arrive in any order.
func BuildTree(rootName string, relPaths []string) *TreeNode {
	root := &TreeNode{Name: rootName, Children: []*TreeNode{}}
	for _, p := range relPaths {
		root.Insert(p)
	}
	return root
}
