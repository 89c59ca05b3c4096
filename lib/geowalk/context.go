package geowalk

import "fmt"

// Context pairs the node currently being walked with its ancestry.
// A Context is only valid for the traversal of its own subtree and must not be retained after its exit activities ran.
type Context struct {
	node   any
	kind   Kind
	depth  int
	parent *Context

	exitActivities []func()
}

// NewContext returns the root context for node.
func NewContext(node any) *Context {
	return &Context{node: node, kind: KindOf(node)}
}

// SpawnForChild creates the context of a direct child of the current node.
func (c *Context) SpawnForChild(node any) *Context {
	return &Context{
		node:   node,
		kind:   KindOf(node),
		depth:  c.depth + 1,
		parent: c,
	}
}

func (c *Context) Node() any {
	return c.node
}

func (c *Context) Kind() Kind {
	return c.kind
}

// Depth is 0 for the root.
func (c *Context) Depth() int {
	return c.depth
}

// Parent returns nil for the root.
func (c *Context) Parent() *Context {
	return c.parent
}

// SetExitActivity registers fn to be called once every descendant of the current node has been visited.
// Activities run in registration order.
func (c *Context) SetExitActivity(fn func()) {
	c.exitActivities = append(c.exitActivities, fn)
}

// HasParentCorrespondingTo returns true if there is a parent and its node is tagged with kind.
func (c *Context) HasParentCorrespondingTo(kind Kind) bool {
	return c.parent != nil && c.parent.kind == kind
}

func (c *Context) callExitActivities() {
	activities := c.exitActivities
	c.exitActivities = nil
	for _, activity := range activities {
		activity()
	}
}

// Repurpose returns the node of ctx viewed as T. Callers are expected to have checked [Context.Kind] beforehand.
func Repurpose[T any](ctx *Context) (T, error) {
	castedNode, ok := ctx.node.(T)
	if !ok {
		var zero T
		return zero, fmt.Errorf("expected type %T, got %T (kind: %s)", zero, ctx.node, ctx.kind)
	}

	return castedNode, nil
}
