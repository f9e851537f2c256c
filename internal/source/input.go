package source

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// ErrBinary is returned for input that does not look like text.
var ErrBinary = errors.New("input looks like binary data")

// Input is a decoded text stream ready to be cut into chunks.
type Input struct {
	Name   string
	Path   string
	reader io.Reader
	closer io.Closer
}

// Read implements io.Reader over the decoded (UTF-8) text.
func (in *Input) Read(p []byte) (int, error) {
	return in.reader.Read(p)
}

// Close releases the underlying file, if any.
func (in *Input) Close() error {
	if in.closer == nil {
		return nil
	}
	err := in.closer.Close()
	in.closer = nil
	return err
}

// OpenFile opens path for paging. An empty path or "-" reads standard input.
func OpenFile(path string) (*Input, error) {
	if path == "" || path == "-" {
		return NewInput("(stdin)", os.Stdin)
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	in, err := NewInput(path, f)
	if err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	in.Path = path
	in.closer = f
	return in, nil
}

// NewInput sniffs r and wraps it with a UTF-8 decoder when it carries a
// UTF-8 or UTF-16 byte order mark.
func NewInput(name string, r io.Reader) (*Input, error) {
	br := bufio.NewReaderSize(r, textDetectionSampleSize)
	sample, err := br.Peek(textDetectionSampleSize)
	if err != nil && !errors.Is(err, io.EOF) && !errors.Is(err, bufio.ErrBufferFull) {
		return nil, err
	}
	if looksBinary(sample) {
		return nil, ErrBinary
	}

	in := &Input{Name: name, reader: br}
	switch detectUnicodeEncoding(sample) {
	case encodingUTF8BOM:
		in.reader = transform.NewReader(br, unicode.UTF8BOM.NewDecoder())
	case encodingUTF16LE:
		in.reader = transform.NewReader(br, unicode.UTF16(unicode.LittleEndian, unicode.ExpectBOM).NewDecoder())
	case encodingUTF16BE:
		in.reader = transform.NewReader(br, unicode.UTF16(unicode.BigEndian, unicode.ExpectBOM).NewDecoder())
	}
	return in, nil
}
