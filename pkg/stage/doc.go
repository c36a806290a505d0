// Package stage materialises a manifest into an output directory.
//
// Directory entries and the parents of every file destination become
// create-directory operations, files become copy operations. The plan is
// executed as a synthfs pipeline against the OS filesystem. A dry run
// logs the plan and leaves the disk alone.
package stage
