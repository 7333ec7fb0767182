// Package dotenv parses and serializes the KEY=VALUE format of .env files.
//
// Parse is lenient: blank lines, comments and bare keys without "=" are
// skipped rather than rejected, because push reads hand-edited files. An
// unquoted value is cut at its first "#"; a value wrapped in matching single
// or double quotes loses exactly one layer of them.
//
// Serialize applies no quoting, so values containing "#" or quotes do not
// survive a round trip unchanged.
package dotenv
