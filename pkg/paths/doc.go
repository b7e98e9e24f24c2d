// Package paths provides path handling shared by srcbundle commands.
//
// It covers three concerns:
//
//   - Home expansion for user-supplied paths ("~/bundle.txt")
//   - XDG locations of the user configuration and the log file
//   - Safe joining of bundle-relative paths under a destination root
//
// # Environment Variables
//
//   - SRCBUNDLE_CONFIG_DIR: Override the configuration directory
//     (default: $XDG_CONFIG_HOME/srcbundle)
//   - XDG_STATE_HOME: Base of the log file location
//     (default: ~/.local/state, log at srcbundle/srcbundle.log)
package paths
