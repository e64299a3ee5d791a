// Package script applies edit scripts to rune sequences.
//
// A script is an ordered list of operations (push, insert_text, remove,
// and so on) addressed by rune position. Scripts arrive in one of two
// shapes:
//
//   - Declarative op lists in JSON, YAML, or TOML, decoded by Load and
//     executed by Apply.
//   - Lua programs, executed by a sandboxed Runtime that exposes the
//     sequence as a "seq" module.
//
// Unlike the sequence type itself, which treats a bad position as a
// programming error and panics, this package validates every operand
// first: scripts are user data, so a bad script reports an *OpError or
// *ParseError and never panics.
//
// Declarative form:
//
//	{"ops": [
//	  {"op": "push_text", "text": "hello"},
//	  {"op": "insert", "at": 0, "ch": "¡"},
//	  {"op": "remove", "at": 5}
//	]}
//
// Lua form:
//
//	seq.push_text("hello")
//	seq.insert(0, "¡")
//	seq.remove(5)
package script
