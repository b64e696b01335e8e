// Package parallel provides a bounded worker pool whose results come
// back ordered by submission index, for work that is independent per
// unit but whose output order matters.
package parallel
