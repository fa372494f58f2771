// Package exitcode defines the process exit codes.
package exitcode

const (
	// Success covers an added task, a closed form and informational commands.
	Success = 0

	// UserError indicates bad arguments or an unknown command.
	UserError = 1

	// AuthError indicates a missing client secret or a failed authorization.
	AuthError = 2

	// BackendError indicates a Tasks API or network failure.
	BackendError = 3

	// InternalError indicates a recovered panic or a terminal failure.
	InternalError = 4
)
