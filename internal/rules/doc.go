// Package rules loads the remediation rule table and binds issue notices to
// suggestions.
//
// The table holds two immutable ordered tiers: exact rules matched by literal
// equality against the rendered notice text, then pattern rules matched by
// whole-string-anchored regular expressions. Exact rules always win over
// patterns so specific findings are never shadowed by broader expressions.
package rules
