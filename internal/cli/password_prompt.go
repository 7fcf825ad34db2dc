package cli

import (
	"bufio"
	"errors"
	"io"
	"os"
	"strings"
)

// promptReader reads one line per secret. When the input is a terminal,
// echo is switched off for the duration of each read.
type promptReader struct {
	file   *os.File
	reader *bufio.Reader
}

func newPromptReader(in io.Reader) *promptReader {
	if in == nil {
		in = os.Stdin
	}
	file, _ := in.(*os.File)
	return &promptReader{file: file, reader: bufio.NewReader(in)}
}

func (prompt *promptReader) readSecret() (string, error) {
	if prompt.file != nil {
		if restore, err := disableEcho(prompt.file); err == nil {
			defer restore()
		}
	}

	line, err := prompt.reader.ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", err
	}
	if errors.Is(err, io.EOF) && line == "" {
		return "", io.ErrUnexpectedEOF
	}
	return strings.TrimRight(line, "\r\n"), nil
}
