// Package mcpserver provides the server-configuration model and its
// transport validation rules.
//
// A ServerConfig describes how one MCP server would be launched or reached.
// It appears either inline in the bundle manifest under mcpServers, or in a
// referenced server document whose whole body is a single mcpServers map —
// never both.
//
// # Transport Rules
//
// Validation is purely static; nothing here ever launches a process or
// opens a connection. Each transport fixes which fields must and must not
// be present:
//
//	transport | requires | forbids
//	----------+----------+-----------------
//	stdio     | command  | url, headers
//	http      | url      | command, args
//	sse       | url      | command, args (always warns: deprecated)
//
// Any other transport value is an UnknownTransport error and skips the
// field checks. Environment placeholders in command, args, url, env, and
// headers are expanded before the rules run, so a url consisting only of an
// undefined ${HOST} is judged as empty.
package mcpserver
