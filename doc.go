// Package finnaxml is a lightweight XML document model. It parses XML into
// an in-memory tree of plain nodes, answers simplified namespace-aware path
// queries against that tree, supports in-place mutation through filter and
// modify callbacks, and re-serializes to XML without losing namespaces,
// attributes, or text.
//
// Qualified names are written in one of two notations: the bracketed form
// "{namespace}local", valid everywhere, and the spaced form
// "namespace local", valid only as a single path segment or attribute name.
// Internally every name is normalized to the bracketed form. Prefixes exist
// only in the document-wide table used for rendering; they play no part in
// matching.
//
// Path expressions are deliberately small: slash-delimited child steps,
// nothing else. This is not an XPath engine.
package finnaxml
