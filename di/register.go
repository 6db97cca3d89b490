package di

// Registration functions. Go methods cannot take type parameters, so each
// shape is a package function over *Container. T, or B for the type shape,
// is the identity consumers resolve.

// AddTransient registers D, allocated fresh on every resolution of B. If D
// implements Initializer its Init runs before the value is returned.
func AddTransient[B, D any](c *Container) error {
	p, err := constructProducer[B, D]()
	return c.register(IdentityOf[B](), Transient, ShapeType, p, err)
}

// AddSingleton registers D, allocated on the first resolution of B and
// shared afterwards. If D implements Initializer its Init runs once.
func AddSingleton[B, D any](c *Container) error {
	p, err := constructProducer[B, D]()
	return c.register(IdentityOf[B](), Singleton, ShapeType, p, err)
}

// AddTransientInstance registers a prototype. Every resolution returns a
// shallow copy of instance; implement Cloner[T] to control the copy.
func AddTransientInstance[T any](c *Container, instance T) error {
	p, err := instanceProducer(instance, Transient)
	return c.register(IdentityOf[T](), Transient, ShapeInstance, p, err)
}

// AddSingletonInstance registers an already built instance returned as is.
func AddSingletonInstance[T any](c *Container, instance T) error {
	p, err := instanceProducer(instance, Singleton)
	return c.register(IdentityOf[T](), Singleton, ShapeInstance, p, err)
}

// AddTransientFunc registers a factory called on every resolution.
func AddTransientFunc[T any](c *Container, fn func() (T, error)) error {
	p, err := funcProducer(fn)
	return c.register(IdentityOf[T](), Transient, ShapeFunc, p, err)
}

// AddSingletonFunc registers a factory called once, on first resolution.
func AddSingletonFunc[T any](c *Container, fn func() (T, error)) error {
	p, err := funcProducer(fn)
	return c.register(IdentityOf[T](), Singleton, ShapeFunc, p, err)
}

// AddTransientProvider registers a factory that resolves its own
// dependencies from r on every resolution.
func AddTransientProvider[T any](c *Container, fn func(r Resolver) (T, error)) error {
	p, err := providerProducer(fn)
	return c.register(IdentityOf[T](), Transient, ShapeProvider, p, err)
}

// AddSingletonProvider registers a factory that resolves its own
// dependencies from r, called once on first resolution.
//
//	di.AddSingletonProvider(c, func(r di.Resolver) (*Service, error) {
//	    repo, err := di.GetRequiredService[Repository](r)
//	    if err != nil {
//	        return nil, err
//	    }
//	    return NewService(repo), nil
//	})
func AddSingletonProvider[T any](c *Container, fn func(r Resolver) (T, error)) error {
	p, err := providerProducer(fn)
	return c.register(IdentityOf[T](), Singleton, ShapeProvider, p, err)
}
