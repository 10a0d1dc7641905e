package domain

// Module is a materialized package handle.
// A LoadRegistry hands out exactly one *Module per key; every resolution of
// that key, from any context, shares the pointer.
type Module struct {
	Identity Identity
	Path     string
	Value    any
}
