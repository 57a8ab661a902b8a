// Package mocks provides function-field test doubles for the store and
// auth interfaces. Each mock delegates to its Fn field when set and falls
// back to a benign default otherwise, so tests only wire the calls they
// care about.
package mocks
