package domain

import "strings"

// Invocation describes one launch of an external tool.
type Invocation struct {
	// Command is the tool binary, resolved through PATH.
	Command string
	// Args are the arguments in final order.
	Args []string
	// Dir is the working directory, empty for the current one.
	Dir string
	// Env holds extra environment variables layered over the allow-listed base.
	Env map[string]string
}

// String renders the invocation as a shell-like line for logs and errors.
func (i Invocation) String() string {
	return strings.Join(append([]string{i.Command}, i.Args...), " ")
}
