// Package config loads filemap settings.
//
// Settings are layered with koanf, each layer overriding the previous one:
// the embedded defaults, the user config file, the project file in the
// working directory, FILEMAP_* environment variables and finally explicit
// overrides from the command line. Nested keys are separated by "." in
// files and by "__" in environment variable names, so
// FILEMAP_OUTPUT__SHOW_WIDTH sets output.show_width.
package config
