// Package main is the entry point for the pybootstrap CLI.
//
// pybootstrap checks the Python interpreter version, provisions the project
// environment with uv, installs the project in editable mode and creates the
// project's logs directory. See internal/bootstrap for the sequence and
// internal/cli for the command tree.
package main

import "pybootstrap/internal/cli"

func main() {
	cli.Execute()
}
