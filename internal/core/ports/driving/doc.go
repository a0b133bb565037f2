// Package driving provides interfaces consumed by external actors
// (primary/inbound ports): the CLI, the TUI, the MCP server and the
// drop-directory watcher all drive the engine through these.
package driving
