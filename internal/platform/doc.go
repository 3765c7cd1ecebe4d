package platform

// Package platform contains OS/platform integration: filesystem helpers,
// image persistence, and OS open/reveal.
