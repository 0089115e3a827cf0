// Package dom provides the document abstraction the resolver and animation
// engine operate on: elements with classes, inline styles, and geometry
// relative to a custom scrollable container.
//
// The interfaces keep the scoring and activation logic independent of any
// rendering environment. The package also ships a full in-memory
// implementation (Page, Node) used by the demo binary and by tests.
package dom
