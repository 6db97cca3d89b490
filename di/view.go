package di

// view is the Resolver handed to producers. It hides the registration side
// of the container.
type view struct {
	c *Container
}

func (v *view) Resolve(id Identity) (any, bool, error) { return v.c.Resolve(id) }

func (v *view) Contains(id Identity) bool { return v.c.Contains(id) }
