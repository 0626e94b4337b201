package main

import "github.com/aretw0/introspection"

// component is a loaded piece of state that can describe itself.
type component interface {
	introspection.Introspectable
	introspection.Component
}
