// Package dom provides a small mutable XML tree for sprite assembly.
// Elements keep their literal prefixes and namespace declarations so the
// tree can be serialized back without renaming, and moving an element
// between trees carries the namespace bindings its subtree depends on.
package dom
