// Package paths resolves the locations filemap reads and writes outside of
// the scripts it interprets: the user configuration directory, the state
// directory holding the log file, and the project configuration file.
//
// # Environment Variables
//
//   - FILEMAP_CONFIG_DIR: Override the config directory (default: $XDG_CONFIG_HOME/filemap)
//   - FILEMAP_STATE_DIR: Override the state directory (default: $XDG_STATE_HOME/filemap)
//
// Both values may start with "~", which is expanded to the home directory.
package paths
