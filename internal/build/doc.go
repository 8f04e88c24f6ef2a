// Package build writes the complete static site.
//
// A Generator runs an ordered list of stages. Every stage receives the shared
// BuildState; a stage that returns a fatal StageError aborts the build, a
// warning is recorded in the Report and the build continues. All inputs (locale
// bundles and works) are loaded before the first page is written, and the
// output directory is rebuilt from scratch on every run.
package build
