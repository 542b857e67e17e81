// Package cli contains the pybootstrap command tree.
//
// The root command takes no arguments and runs the full bootstrap. The check
// subcommand runs only the interpreter version check, and config inspects or
// initializes the optional configuration file. Commands are executed through
// fang, and a failed bootstrap is returned as an *ExitError so that the
// process exits with the code chosen by bootstrap.ExitCode.
package cli
