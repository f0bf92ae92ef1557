// Package fieldpath implements the declarative field-path query language and
// its interpreter: the core, shared subsystem behind both grading and
// translation.
//
// A Path is a parsed expression describing where in a document tree to
// look, e.g.:
//
//	packages[referenceType=${kind}].externalRefs[&].referenceLocator
//
// Parse builds an immutable Path once; GetObjects, GetPaths, RunFunc and
// InsertAtPath walk it against a document any number of times, resolving named Variables, filtering sequence
// elements by inline queries, and invoking a caller-provided visitor at
// every matched leaf. The same walk that collects matches in read mode can
// also create missing intermediate containers and insert a value at a
// computed location in write mode.
//
// This package is the Go-native interpreter for that language, modeled on the hand-rolled recursive-descent scanner in
// oastools' internal/jsonpath package and on the walk semantics of
// BorekZnovustvoritel/SBOM-Grader's sbomgrader/core/field_resolve.py.
package fieldpath
