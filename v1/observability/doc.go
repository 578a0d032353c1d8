// Package observability defines the observer seam shared by all components:
// a component reports each operation's outcome through an Observer, and
// concrete observers (metrics, tracing, logging) subscribe without the
// component knowing which backends exist.
package observability
