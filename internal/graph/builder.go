package graph

// Builder accumulates records discovered by the extractor. It replaces the
// shared mutable lists of a single scanning pass with an explicit value that
// is threaded from extraction to sequencing.
type Builder struct {
	nodes   map[string]*Node
	paths   []string
	byName  map[string]*Record
	names   []string
	modules []string
	scripts []string
}

// NewBuilder creates an empty builder.
func NewBuilder() *Builder {
	return &Builder{
		nodes:  make(map[string]*Node),
		byName: make(map[string]*Record),
	}
}

// Add registers a record. Records with an empty name are ignored.
//
// A name declared again later keeps its first discovery position but the
// name index now points at the latest declaration.
func (b *Builder) Add(r *Record) {
	if r == nil || r.Name == "" {
		return
	}

	node, ok := b.nodes[r.Path]
	if !ok {
		node = &Node{Path: r.Path, File: r.File}
		b.nodes[r.Path] = node
		b.paths = append(b.paths, r.Path)
	}

	replaced := false
	for i, existing := range node.Records {
		if existing.Name == r.Name {
			node.Records[i] = r
			replaced = true
			break
		}
	}
	if !replaced {
		node.Records = append(node.Records, r)
	}

	if _, seen := b.byName[r.Name]; !seen {
		b.names = append(b.names, r.Name)
	}
	b.byName[r.Name] = r

	switch r.Kind {
	case KindCore, KindModule:
		b.modules = appendUnique(b.modules, r.Name)
	case KindScript:
		b.scripts = appendUnique(b.scripts, r.Name)
	}
}

// Len returns the number of distinct names registered so far.
func (b *Builder) Len() int {
	return len(b.names)
}

// Build freezes the accumulated records into a Graph. The builder must not be
// used afterwards.
func (b *Builder) Build() *Graph {
	nodes := make([]*Node, len(b.paths))
	for i, p := range b.paths {
		nodes[i] = b.nodes[p]
	}

	moduleSet := make(map[string]bool, len(b.modules))
	for _, m := range b.modules {
		moduleSet[m] = true
	}

	return &Graph{
		nodes:     nodes,
		byPath:    b.nodes,
		byName:    b.byName,
		names:     b.names,
		modules:   b.modules,
		moduleSet: moduleSet,
		scripts:   b.scripts,
	}
}

// Graph is the module graph of one run.
type Graph struct {
	nodes     []*Node
	byPath    map[string]*Node
	byName    map[string]*Record
	names     []string
	modules   []string
	moduleSet map[string]bool
	scripts   []string
}

// Nodes returns the file nodes in discovery order.
func (g *Graph) Nodes() []*Node {
	out := make([]*Node, len(g.nodes))
	copy(out, g.nodes)
	return out
}

// Node returns the node for a file path.
func (g *Graph) Node(path string) (*Node, bool) {
	n, ok := g.byPath[path]
	return n, ok
}

// Records returns the current record for every name, in discovery order.
func (g *Graph) Records() []*Record {
	out := make([]*Record, 0, len(g.names))
	for _, name := range g.names {
		out = append(out, g.byName[name])
	}
	return out
}

// Lookup returns the current record for name.
func (g *Graph) Lookup(name string) (*Record, bool) {
	r, ok := g.byName[name]
	return r, ok
}

// ModuleNames returns every core and module name, deduplicated, in discovery order.
func (g *Graph) ModuleNames() []string {
	return append([]string(nil), g.modules...)
}

// ScriptNames returns every script name, deduplicated, in discovery order.
func (g *Graph) ScriptNames() []string {
	return append([]string(nil), g.scripts...)
}

// IsModule reports whether name was declared as a module or as the core.
func (g *Graph) IsModule(name string) bool {
	return g.moduleSet[name]
}

func appendUnique(list []string, s string) []string {
	for _, existing := range list {
		if existing == s {
			return list
		}
	}
	return append(list, s)
}
