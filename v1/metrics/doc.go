// Package metrics provides a prometheus-backed implementation of the
// observability.Observer interface. Attach it to components (such as the
// schema registry client) to expose operation counts, durations and payload
// sizes without the component depending on prometheus directly.
package metrics
