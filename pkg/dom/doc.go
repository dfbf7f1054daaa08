// Package dom is the server-side document model the enhancers operate on. It
// wraps golang.org/x/net/html trees with the small slice of browser behaviour
// the widgets need: attribute and class helpers, a focus pointer, an event
// bus with bubbling and scoped subscriptions, and a ready hook that plays the
// role of DOMContentLoaded.
package dom
