package usage

import (
	"fmt"
	"strings"
)

// InvalidFlag is returned when a flag is not valid in the current context.
func InvalidFlag(flag string) *Error {
	return &Error{
		Kind:    ErrInvalidFlag,
		Message: fmt.Sprintf("unicon: invalid flag '%s'", flag),
	}
}

// MissingArgument is returned when a required argument is not provided.
func MissingArgument(arg string) *Error {
	return &Error{
		Kind:    ErrMissingArgument,
		Message: fmt.Sprintf("unicon: missing required argument '%s'", arg),
	}
}

// UnknownCommand is returned when a command cannot be resolved, optionally
// naming similar commands.
func UnknownCommand(command string, suggestions ...string) *Error {
	msg := fmt.Sprintf("unicon: '%s' is not a unicon command. See 'unicon --help'.", command)
	if len(suggestions) > 0 {
		msg += fmt.Sprintf("\n\nDid you mean one of these?\n  %s", strings.Join(suggestions, "\n  "))
	}
	return &Error{
		Kind:    ErrUnknownCommand,
		Message: msg,
	}
}

// GitNotInstalled is returned when git cannot be found on PATH.
func GitNotInstalled() *Error {
	return &Error{
		Kind:    ErrGitNotInstalled,
		Message: "unicon: git is not installed or not on PATH",
	}
}

// MissingToken is returned when no GitHub token is available.
func MissingToken() *Error {
	return &Error{
		Kind:    ErrMissingToken,
		Message: "unicon: no GitHub token found; set GITHUB_TOKEN",
	}
}

// MissingUsername is returned when no GitHub username is configured.
func MissingUsername() *Error {
	return &Error{
		Kind:    ErrMissingUsername,
		Message: "unicon: no GitHub username configured; run 'unicon config set github_username <name>' or set GITHUB_USERNAME",
	}
}

// InvalidConfigKey is returned for unknown configuration keys.
func InvalidConfigKey(key string) *Error {
	return &Error{
		Kind:    ErrInvalidConfigKey,
		Message: fmt.Sprintf("unicon: unknown config key '%s'", key),
	}
}
