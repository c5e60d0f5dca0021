package common

import (
	"context"
	"io"

	"resumescore/internal/errors"
)

// Runner bundles the file and output helpers commands share
type Runner struct {
	files  *FileProcessor
	output *OutputHandler
	logger *errors.Logger
}

// NewRunner creates a runner printing results to stdout
func NewRunner(logger *errors.Logger, stdout io.Writer) *Runner {
	return &Runner{
		files:  NewFileProcessor(logger),
		output: NewOutputHandler(logger, stdout),
		logger: logger,
	}
}

// InputFile is a command argument file read into memory
type InputFile struct {
	Name string
	Data []byte
}

// FileOperationFunc turns the command's input files into a printable result
type FileOperationFunc[Output any] func(context.Context, []InputFile) (Output, error)

// OperationFunc produces a printable result without file input
type OperationFunc[Output any] func(context.Context) (Output, error)

// RunFileCommand reads every argument file, runs op on them and writes the
// formatted result
func RunFileCommand[Output any](
	ctx context.Context,
	runner *Runner,
	cmdConfig CommandConfig,
	args []string,
	op FileOperationFunc[Output],
) error {
	files, err := runner.files.ValidateAndReadFiles(args...)
	if err != nil {
		return err
	}

	if runner.logger != nil {
		for _, f := range files {
			runner.logger.Debug("Read input file", "file", f.Name, "bytes", len(f.Data))
		}
	}

	result, err := op(ctx, files)
	if err != nil {
		return err
	}

	return runner.output.HandleOutput(result, cmdConfig)
}

// RunCommand runs op and writes the formatted result
func RunCommand[Output any](
	ctx context.Context,
	runner *Runner,
	cmdConfig CommandConfig,
	op OperationFunc[Output],
) error {
	result, err := op(ctx)
	if err != nil {
		return err
	}

	return runner.output.HandleOutput(result, cmdConfig)
}
