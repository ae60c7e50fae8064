// Package rules holds the four checks run over one project's entries for a
// single day. Every function is pure: inputs are never modified and the same
// input always produces the same output.
package rules
