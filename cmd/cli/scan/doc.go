// Package scan assembles the cobra command that audits a project tree and
// prints the resulting report as YAML.
package scan
