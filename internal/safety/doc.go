// Package safety provides the path guard that every framework file access
// goes through, protecting the checker from reading outside the framework
// tree or acting on attacker-shaped names.
//
// fwcheck runs in CI pipelines and on developer machines against trees that
// may contain files authored by anyone with commit access. File names found
// during discovery (agent and command definitions, documentation pages) flow
// into paths the checker opens. The safety package centralizes the threat
// model and the single chokepoint that keeps those reads bounded.
//
// # Threat Model
//
// T1 - Path Traversal: a discovered or configured relative path could escape
// the framework root via ".." sequences. Any path containing the two-byte
// substring ".." is rejected, including names such as "a..b.md".
//
// T2 - Non-normalized Paths: doubled separators ("//") and current-directory
// segments ("/./") make two different strings name the same file and defeat
// prefix reasoning. They are rejected rather than cleaned.
//
// T3 - Injection: paths containing a NUL byte or one of the shell
// metacharacters ';', '|', '`' or '$' are rejected. The checker never spawns
// a shell, but report lines and CI logs are frequently pasted into one.
//
// # Design Principles
//
// Fail secure: a rejected path is never normalized into an accepted one. The
// whole run stops with a SecurityError and no partial report is produced.
//
// One chokepoint: Builder.Build is the only function that turns a relative
// path into an accessible one. The framework package calls it on every Stat,
// ReadFile and ReadDir, so the guarantee holds no matter how many checks the
// catalog grows.
//
// Finite rule set: the rules are exactly the entries of Rules. Unicode
// look-alike separators and symlinks that point outside the tree are not
// covered by this package.
package safety
