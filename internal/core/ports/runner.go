package ports

import (
	"context"
	"io"
)

// Runner invokes the external build command for a unit. The bundler and
// compiler internals behind the command are not modeled here.
//
//go:generate go run go.uber.org/mock/mockgen -source=runner.go -destination=mocks/mock_runner.go -package=mocks
type Runner interface {
	// Run executes argv in dir with extra environment entries appended to the
	// inherited environment, streaming output to the given writers.
	// It returns an error if the command exits non-zero.
	Run(ctx context.Context, dir string, argv []string, env []string, stdout, stderr io.Writer) error
}
