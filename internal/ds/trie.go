package ds

type Node[T any] struct {
	value    T
	setted   bool
	children map[string]*Node[T]
}

func createNode[T any]() *Node[T] {
	return &Node[T]{
		children: make(map[string]*Node[T]),
	}
}

// Trie maps paths of keys to values.
type Trie[T any] struct {
	root *Node[T]
}

func NewTrie[T any]() *Trie[T] {
	trie := Trie[T]{
		root: createNode[T](),
	}
	return &trie
}

func (t *Trie[T]) Register(path []string, value T) {
	node := t.root
	for _, name := range path {
		if node.children[name] == nil {
			node.children[name] = createNode[T]()
		}
		node = node.children[name]
	}
	node.value = value
	node.setted = true
}

func (t *Trie[T]) Get(path []string) (T, bool) {
	node := t.root
	for _, name := range path {
		n, ok := node.children[name]
		if !ok {
			var z T
			return z, false
		}
		node = n
	}
	return node.value, node.setted
}

// Longest gives the value registered for the longest prefix of path and the
// length of that prefix. The length is 0 when no prefix is registered.
func (t *Trie[T]) Longest(path []string) (T, int) {
	var (
		node = t.root
		res  T
		size int
	)
	for i, name := range path {
		n, ok := node.children[name]
		if !ok {
			break
		}
		node = n
		if node.setted {
			res, size = node.value, i+1
		}
	}
	return res, size
}

// Walk calls fn for each value registered under prefix.
func (t *Trie[T]) Walk(prefix []string, fn func(path []string, v T)) {
	node := t.root
	for _, name := range prefix {
		n, ok := node.children[name]
		if !ok {
			return
		}
		node = n
	}
	var walk func(n *Node[T], path []string)

	walk = func(n *Node[T], path []string) {
		if n.setted {
			fn(path, n.value)
		}
		for name, child := range n.children {
			walk(child, append(path[:len(path):len(path)], name))
		}
	}
	walk(node, prefix)
}
