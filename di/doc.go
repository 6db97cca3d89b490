// Package di is a small dependency injection registry for composition roots.
//
// Services are registered under the identity of a Go type, usually an
// interface, with one of two lifetimes: Transient builds a new instance on
// every resolution, Singleton builds one on first resolution and shares it
// for the life of the container. Each lifetime accepts four registration
// shapes:
//
//	di.AddSingleton[Store, *SQLStore](c)                 // default-constructed, see Initializer
//	di.AddSingletonInstance[Clock](c, systemClock{})     // pre-built instance
//	di.AddTransientFunc(c, func() (*Request, error) {...}) // zero-argument factory
//	di.AddSingletonProvider(c, func(r di.Resolver) (*Service, error) {...})
//
// Providers receive the container as a read-only Resolver and resolve their
// own dependencies from it, so the object graph is built lazily on first use.
//
// # Resolution
//
//	svc, found, err := di.GetService[*Service](c) // found is false if unregistered
//	svc, err := di.GetRequiredService[*Service](c) // NOT_REGISTERED if unregistered
//	svc := di.MustGetService[*Service](c)
//
// Concurrent first resolutions of a singleton run its producer exactly once.
// A failed producer is not cached. Registration may happen at any time.
//
// # Duplicates
//
// A second registration of the same identity fails by default. Use
// WithDuplicatePolicy(DuplicateReplace) for last-writer-wins or
// DuplicateKeep for first-writer-wins. A singleton that is realized, or
// whose first build is in flight, is never replaced; the attempt fails with
// ALREADY_RESOLVED.
//
// Identities are reflect.Type values, so two distinct types never share a
// registration. The IDENTITY_COLLISION check on lookup is an assertion on the
// registry's own bookkeeping.
//
// # Closing
//
// Close releases the io.Closer singletons the container built, newest first.
// Values passed to AddSingletonInstance stay owned by the caller.
//
// # Cycles
//
// A singleton producer that resolves its own identity, directly or through
// other singletons, blocks forever; a transient one recurses until the stack
// overflows. The container does not detect cycles.
package di
