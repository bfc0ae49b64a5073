// Package row decodes raw backend result rows into typed values using the
// registered table metadata. Cells convert through the declared logical
// type of each selected column; a representation the type cannot hold
// fails loudly instead of coercing.
package row
