// Package language provides language code parsing, normalization, and mapping.
//
// Codes are stored in the POSIX form the host application uses ("en_US",
// "fr"). Parse accepts the common spellings (BCP 47 hyphens, locale codesets
// such as ".UTF-8", modifiers such as "@euro") and canonicalizes them through
// golang.org/x/text/language. The ISO 639-1/639-2 table and display-name
// helpers are shared by the CLI and the engine's log output.
package language
