// Package form turns a parsed schema into a renderer-neutral form descriptor
// and defines the contract of the engine that collects submitted values.
//
// Builder is pure: it reads a schema, prior values, and a language and
// produces a Descriptor. Session is an in-memory Engine suitable for CLIs
// and tests; renderers under pkg/renderers collect values for a Descriptor
// and hand them to Session.Submit.
package form
