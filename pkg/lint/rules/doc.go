// Package rules contains the built-in lint rules. Each rule registers
// itself with the default registry from an init function; importing this
// package (usually blank) makes the built-in rule set available.
package rules
