/*
Package observability turns the driver's lifecycle hooks into monitoring
primitives: Prometheus collectors for turns, action dispatches and staleness
drops, and structured debug logging of every event.

Hook sets compose via domain.LifecycleHooks.Merge, so metrics and logging can
be attached together.
*/
package observability
