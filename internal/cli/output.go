package cli

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// FileSystem abstracts the file operations used when writing output files.
type FileSystem interface {
	Stat(name string) (os.FileInfo, error)
	Create(name string) (io.WriteCloser, error)
}

// DefaultFileSystem implements FileSystem with the os package.
type DefaultFileSystem struct{}

func (DefaultFileSystem) Stat(name string) (os.FileInfo, error) {
	return os.Stat(name)
}

func (DefaultFileSystem) Create(name string) (io.WriteCloser, error) {
	return os.Create(filepath.Clean(name))
}

var defaultFileSystem FileSystem = DefaultFileSystem{}

// writeOutput runs write against stdout when path is "-" and against a newly
// created file otherwise. The parent directory must already exist.
func writeOutput(stdout io.Writer, path string, write func(io.Writer) error) error {
	return writeOutputWithFS(stdout, path, write, defaultFileSystem)
}

func writeOutputWithFS(stdout io.Writer, path string, write func(io.Writer) error, fs FileSystem) error {
	if path == "" || path == "-" {
		return write(stdout)
	}

	outDir := filepath.Dir(path)
	if fi, err := fs.Stat(outDir); err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("output directory %s does not exist, create it first", outDir)
		}
		return err
	} else if !fi.IsDir() {
		return fmt.Errorf("output path %s is not a directory", outDir)
	}

	f, err := fs.Create(path)
	if err != nil {
		return fmt.Errorf("create output: %w", err)
	}
	if err := write(f); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}

// readInput returns the bytes of path, or all of stdin when path is "-".
// The returned name is empty for stdin.
func readInput(stdin io.Reader, path string) ([]byte, string, error) {
	if path == "" || path == "-" {
		data, err := io.ReadAll(stdin)
		if err != nil {
			return nil, "", fmt.Errorf("read stdin: %w", err)
		}
		return data, "", nil
	}

	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return nil, "", fmt.Errorf("read input: %w", err)
	}
	return data, path, nil
}
