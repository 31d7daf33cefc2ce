package accuracy

import (
	"bufio"
	"io"

	"github.com/pkg/errors"
)

// EndOfStream is shown in place of the missing line
// when a stream is shorter than the other.
const EndOfStream = "<end of stream>"

// Result is the outcome of a comparison.
// For unequal streams, Line is the (1 based) number of the
// first differing line, and RefLine and NewLine its content.
type Result struct {
	Equal   bool
	Line    int
	RefLine string
	NewLine string
}

// lineReader splits a stream on "\n", "\r\n" and "\r".
type lineReader struct {
	r *bufio.Reader
}

func newLineReader(r io.Reader) lineReader { return lineReader{r: bufio.NewReader(r)} }

// readLine returns false at the end of the stream.
func (lr lineReader) readLine() (string, bool, error) {
	var line []byte
	for {
		c, err := lr.r.ReadByte()
		if err == io.EOF {
			return string(line), len(line) != 0, nil
		}
		if err != nil {
			return "", false, err
		}
		switch c {
		case '\n':
			return string(line), true, nil
		case '\r':
			next, err := lr.r.ReadByte()
			if err == nil && next != '\n' {
				err = lr.r.UnreadByte()
			}
			if err != nil && err != io.EOF {
				return "", false, err
			}
			return string(line), true, nil
		default:
			line = append(line, c)
		}
	}
}

// Compare reads `ref` and `gen` line by line. They are equal if
// every line matches exactly and both streams end together.
// The returned error reports a read failure.
func Compare(ref, gen io.Reader) (Result, error) {
	refLines, genLines := newLineReader(ref), newLineReader(gen)
	for line := 1; ; line++ {
		refLine, refOK, err := refLines.readLine()
		if err != nil {
			return Result{}, errors.Wrap(err, "reading reference")
		}
		genLine, genOK, err := genLines.readLine()
		if err != nil {
			return Result{}, errors.Wrap(err, "reading generated svg")
		}
		switch {
		case !refOK && !genOK:
			return Result{Equal: true}, nil
		case !refOK:
			refLine = EndOfStream
		case !genOK:
			genLine = EndOfStream
		case refLine == genLine:
			continue
		}
		return Result{Line: line, RefLine: refLine, NewLine: genLine}, nil
	}
}

// EqualIgnoringCR compares the bytes of the two streams,
// skipping the carriage returns of `gen` which are not in `ref`.
func EqualIgnoringCR(ref, gen io.Reader) (bool, error) {
	refBytes, genBytes := bufio.NewReader(ref), bufio.NewReader(gen)
	for {
		r, refErr := refBytes.ReadByte()
		g, genErr := genBytes.ReadByte()
		for genErr == nil && g == '\r' && (refErr != nil || r != '\r') {
			g, genErr = genBytes.ReadByte()
		}
		if refErr != nil && refErr != io.EOF {
			return false, errors.Wrap(refErr, "reading reference")
		}
		if genErr != nil && genErr != io.EOF {
			return false, errors.Wrap(genErr, "reading generated svg")
		}
		refEnd, genEnd := refErr == io.EOF, genErr == io.EOF
		if refEnd || genEnd {
			return refEnd && genEnd, nil
		}
		if r != g {
			return false, nil
		}
	}
}
