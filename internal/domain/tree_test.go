package domain

import (
	"path/filepath"
	"testing"
)

// local converts a slash path to the OS separator convention Insert expects
func local(p string) string {
	return filepath.FromSlash(p)
}

// findChild returns the first child with the given name, or nil
func findChild(n *TreeNode, name string) *TreeNode {
	for _, c := range n.Children {
		if c.Name == name {
			return c
		}
	}
	return nil
}

func TestBuildTree_OrderIndependence(t *testing.T) {
	paths := []string{"a/b.txt", "a/c.txt", "d.txt"}
	orders := [][]int{
		{0, 1, 2},
		{2, 1, 0},
		{1, 2, 0},
		{2, 0, 1},
	}

	for _, order := range orders {
		ordered := make([]string, 0, len(paths))
		for _, i := range order {
			ordered = append(ordered, local(paths[i]))
		}

		root := BuildTree("dest", ordered)

		if len(root.Children) != 2 {
			t.Fatalf("order %v: root has %d children, want 2", order, len(root.Children))
		}

		a := findChild(root, "a")
		if a == nil || !a.IsDir() {
			t.Fatalf("order %v: missing directory node a", order)
		}
		if len(a.Children) != 2 {
			t.Fatalf("order %v: a has %d children, want 2", order, len(a.Children))
		}
		if findChild(a, "b.txt") == nil || findChild(a, "c.txt") == nil {
			t.Errorf("order %v: a should contain b.txt and c.txt", order)
		}

		d := findChild(root, "d.txt")
		if d == nil {
			t.Fatalf("order %v: missing leaf d.txt", order)
		}
		if d.IsDir() {
			t.Errorf("order %v: d.txt should be a leaf", order)
		}
	}
}

func TestTreeNode_Insert(t *testing.T) {
	tests := []struct {
		name      string
		paths     []string
		wantNames []string // names of the root's direct children
	}{
		{
			name:      "single file",
			paths:     []string{"readme.md"},
			wantNames: []string{"readme.md"},
		},
		{
			name:      "nested path creates intermediate dirs",
			paths:     []string{"src/app/main.go"},
			wantNames: []string{"src"},
		},
		{
			name:      "current-directory segments are skipped",
			paths:     []string{"./a/b.txt"},
			wantNames: []string{"a"},
		},
		{
			name:      "repeated directory segments are reused",
			paths:     []string{"pkg/x.go", "pkg/y.go", "pkg/sub/z.go"},
			wantNames: []string{"pkg"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			root := &TreeNode{Name: "root", Children: []*TreeNode{}}
			for _, p := range tt.paths {
				root.Insert(local(p))
			}

			if len(root.Children) != len(tt.wantNames) {
				t.Fatalf("root has %d children, want %d", len(root.Children), len(tt.wantNames))
			}
			for i, name := range tt.wantNames {
				if root.Children[i].Name != name {
					t.Errorf("child %d = %q, want %q", i, root.Children[i].Name, name)
				}
			}
		})
	}
}

func TestTreeNode_Insert_DeepReuse(t *testing.T) {
	root := &TreeNode{Name: "root", Children: []*TreeNode{}}
	root.Insert(local("pkg/x.go"))
	root.Insert(local("pkg/sub/z.go"))
	root.Insert(local("pkg/y.go"))

	pkg := findChild(root, "pkg")
	if pkg == nil {
		t.Fatal("missing pkg directory")
	}
	if len(pkg.Children) != 3 {
		t.Fatalf("pkg has %d children, want 3", len(pkg.Children))
	}

	sub := findChild(pkg, "sub")
	if sub == nil || !sub.IsDir() {
		t.Fatal("missing sub directory under pkg")
	}
	if len(sub.Children) != 1 || sub.Children[0].Name != "z.go" {
		t.Errorf("sub children = %v, want [z.go]", sub.Children)
	}
}

func TestTreeNode_Insert_DuplicateLeaves(t *testing.T) {
	// Repeated identical paths produce duplicate leaf entries; leaves are
	// never deduplicated.
	root := &TreeNode{Name: "root", Children: []*TreeNode{}}
	root.Insert(local("a/b.txt"))
	root.Insert(local("a/b.txt"))

	a := findChild(root, "a")
	if a == nil {
		t.Fatal("missing directory a")
	}
	if len(a.Children) != 2 {
		t.Fatalf("a has %d children, want 2 duplicate leaves", len(a.Children))
	}
	for i, c := range a.Children {
		if c.Name != "b.txt" || c.IsDir() {
			t.Errorf("child %d = %q (dir=%v), want leaf b.txt", i, c.Name, c.IsDir())
		}
	}
}

func TestTreeNode_Insert_FileAndDirSameName(t *testing.T) {
	// A leaf named like a later directory segment must not be reused as a
	// directory.
	root := &TreeNode{Name: "root", Children: []*TreeNode{}}
	root.Insert(local("build"))
	root.Insert(local("build/out.txt"))

	if len(root.Children) != 2 {
		t.Fatalf("root has %d children, want leaf build and dir build", len(root.Children))
	}

	var leaf, dir *TreeNode
	for _, c := range root.Children {
		if c.IsDir() {
			dir = c
		} else {
			leaf = c
		}
	}
	if leaf == nil || leaf.Name != "build" {
		t.Error("missing leaf build")
	}
	if dir == nil || dir.Name != "build" || len(dir.Children) != 1 {
		t.Error("missing directory build with one child")
	}
}
