// Package part defines the cabinet part descriptor that every drilling
// computation starts from: part type, panel size, origin corner and face.
// It also owns the two pure helpers every consumer relies on, the
// origin-corner mapping and the derived part identifier.
package part
