package misc

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// ReadFile opens fileName and hands a buffered reader to read. Open and close
// failures are wrapped in ErrIO; errors returned by read are passed through.
func ReadFile(fileName string, read func(r io.Reader) error) error {
	if fileName == "" {
		return fmt.Errorf("%w: no filename supplied", ErrIO)
	}
	// open file for reading
	file, err := os.Open(fileName)
	if err != nil {
		return fmt.Errorf("%w: unable to open %s - %s", ErrIO, fileName, err)
	}
	defer file.Close()

	return read(bufio.NewReader(file))
}

// WriteFileAtomic streams write into a temporary file next to fileName and
// renames it into place only once write, flush and close all succeed. On any
// failure the temporary file is removed and fileName is left untouched.
func WriteFileAtomic(fileName string, write func(w io.Writer) error) (err error) {
	if fileName == "" {
		return fmt.Errorf("%w: no filename supplied", ErrIO)
	}
	// create the temporary file in the destination directory so rename stays on one filesystem
	file, err := os.CreateTemp(filepath.Dir(fileName), "."+filepath.Base(fileName)+".*.tmp")
	if err != nil {
		return fmt.Errorf("%w: unable to create file %s - %s", ErrIO, fileName, err)
	}
	tmpName := file.Name()
	defer func() {
		if err != nil {
			file.Close()
			os.Remove(tmpName)
		}
	}()

	w := bufio.NewWriter(file)
	if err = write(w); err != nil {
		return err
	}
	if err = w.Flush(); err != nil {
		return fmt.Errorf("%w: unable to write file %s - %s", ErrIO, fileName, err)
	}
	// CreateTemp makes the file owner-only
	if err = file.Chmod(0o644); err != nil {
		return fmt.Errorf("%w: unable to set permissions on %s - %s", ErrIO, fileName, err)
	}
	if err = file.Close(); err != nil {
		return fmt.Errorf("%w: unable to close file %s - %s", ErrIO, fileName, err)
	}
	if err = os.Rename(tmpName, fileName); err != nil {
		return fmt.Errorf("%w: unable to rename %s to %s - %s", ErrIO, tmpName, fileName, err)
	}
	return nil
}

// MakeDir creates path (and parents) unless it already exists.
func MakeDir(path string) error {
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		if err = os.MkdirAll(path, os.ModePerm); err != nil {
			return fmt.Errorf("%w: unable to create folder %s - %s", ErrIO, path, err)
		}
	}
	return nil
}
