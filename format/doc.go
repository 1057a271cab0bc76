// Package format names the document formats and maps them to and from
// command line names and file extensions.
package format
