// Package array provides typed columns on top of the validity and offset
// layouts: fixed-width primitives and UTF-8 strings, each with a nullable
// variant.
package array
