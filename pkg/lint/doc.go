// Package lint implements the template lint engine: rule registry,
// layered configuration resolution, the visitor dispatcher that runs rules
// over a parsed template, inline disable directives, and the classifier
// that turns raw rule output into severity-annotated findings.
//
// The package defines the types used across the system. Built-in rule
// implementations live in pkg/lint/rules and register themselves with the
// default registry at init time.
package lint
