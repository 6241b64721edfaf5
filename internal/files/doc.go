// Package files handles filesystem concerns around a processing run:
// discovering source workbooks (single file or directory scan, with
// Office lock files skipped) and deriving the per-source output
// artifact paths.
package files
