// Package provision runs the external package/environment manager that
// materializes a project's dependencies and installs the project itself.
//
// The Provisioner interface exposes the two operations the bootstrap needs,
// Sync and InstallEditable. UV implements them by shelling out to a tool such
// as uv through a Runner, so tests can swap the Runner (or the whole
// Provisioner) for a fake and never spawn a subprocess.
//
// Tool output is not captured: the child process inherits the terminal, so
// diagnostics reach the user exactly as the tool printed them. A non-zero exit
// is reported as *ExitError carrying the tool's exit code unchanged.
package provision
