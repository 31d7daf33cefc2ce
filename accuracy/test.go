package accuracy

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime/debug"

	"github.com/hashicorp/go-retryablehttp"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"

	"github.com/benoitkugler/svgbridge/svggen"
)

// Painter draws on a graphics.
type Painter interface {
	Paint(g *svggen.Graphics) error
}

// PainterFunc is a function used as Painter.
type PainterFunc func(g *svggen.Graphics) error

func (f PainterFunc) Paint(g *svggen.Graphics) error { return f(g) }

// Named may be implemented by painters to be reported
// with a readable name.
type Named interface {
	Name() string
}

func painterName(p Painter) string {
	if n, ok := p.(Named); ok {
		return n.Name()
	}
	return fmt.Sprintf("%T", p)
}

// Default canvas size
const (
	DefaultCanvasWidth  = 300
	DefaultCanvasHeight = 400
)

// Test renders Painter to SVG and compares the markup
// with the content of Reference.
type Test struct {
	// Name is used in the report; it defaults to the painter name.
	Name    string
	Painter Painter
	// Reference is a local path, or a file or http(s) URL.
	Reference string
	// SaveSVG, if not empty, is where the generated markup is written
	// when the test fails. Its directory must exist.
	SaveSVG string

	Context svggen.Context
	// Configure, if not nil, is called after painting,
	// before streaming.
	Configure func(g *svggen.Graphics)
	// CanvasWidth and CanvasHeight default to
	// DefaultCanvasWidth and DefaultCanvasHeight.
	CanvasWidth, CanvasHeight float64

	// HTTPClient fetches remote references. If nil,
	// NewHTTPClient is used.
	HTTPClient *retryablehttp.Client
	// Log defaults to a disabled logger.
	Log *zerolog.Logger
}

func (t *Test) name() string {
	if t.Name != "" {
		return t.Name
	}
	return painterName(t.Painter)
}

func (t *Test) logger() *zerolog.Logger {
	if t.Log != nil {
		return t.Log
	}
	nop := zerolog.Nop()
	return &nop
}

// Run executes the test. Failures of the test itself are described
// by the returned report; the error is reserved for internal failures
// (such as saving the generated markup).
func (t *Test) Run(ctx context.Context) (*Report, error) {
	name, log := t.name(), t.logger()

	generated, report := t.generate(name)
	if report != nil {
		log.Debug().Str("test", name).Str("code", string(report.ErrorCode)).Msg("painter failed")
		return report, nil
	}

	client := t.HTTPClient
	if client == nil {
		client = NewHTTPClient()
	}
	ref, err := openReference(ctx, client, t.Reference)
	if err != nil {
		report = failed(name, ErrCannotOpenReference,
			Entry{EntryReference, t.Reference},
			Entry{EntryMessage, err.Error()},
		)
		return report, t.save(generated, log)
	}
	defer ref.Close()

	res, err := Compare(ref, bytes.NewReader(generated))
	if err != nil {
		report = failed(name, ErrWhileComparing,
			Entry{EntryReference, t.Reference},
			Entry{EntryMessage, err.Error()},
		)
		return report, t.save(generated, log)
	}
	if !res.Equal {
		report = failed(name, ErrGeneratedSVGInaccurate,
			Entry{EntryLineNumber, fmt.Sprint(res.Line)},
			Entry{EntryReferenceLine, res.RefLine},
			Entry{EntryNewLine, res.NewLine},
		)
		log.Debug().Str("test", name).Int("line", res.Line).Msg("generated svg differs from reference")
		return report, t.save(generated, log)
	}
	return passed(name), nil
}

// Generate returns the markup produced by the painter,
// as compared by Run.
func (t *Test) Generate() ([]byte, error) {
	out, report := t.generate(t.name())
	if report != nil {
		msg, _ := report.Entry(EntryMessage)
		return nil, errors.Errorf("painter %s failed: %s", painterName(t.Painter), msg)
	}
	return out, nil
}

type stackTracer interface {
	StackTrace() errors.StackTrace
}

// generate paints and streams the svg, returning a failed report
// if the painter fails or panics.
func (t *Test) generate(name string) (out []byte, report *Report) {
	defer func() {
		if r := recover(); r != nil {
			report = failed(name, ErrCannotGenerateSVG,
				Entry{EntryPainter, painterName(t.Painter)},
				Entry{EntryErrorType, fmt.Sprintf("%T", r)},
				Entry{EntryMessage, fmt.Sprint(r)},
				Entry{EntryStackTrace, string(debug.Stack())},
			)
		}
	}()

	g := svggen.NewGraphics(t.Context)
	w, h := t.CanvasWidth, t.CanvasHeight
	if w <= 0 || h <= 0 {
		w, h = DefaultCanvasWidth, DefaultCanvasHeight
	}
	g.SetCanvasSize(w, h)

	err := t.Painter.Paint(g)
	if err == nil && t.Configure != nil {
		t.Configure(g)
	}
	var buf bytes.Buffer
	if err == nil {
		err = g.Stream(&buf)
	}
	if err != nil {
		trace := "<no stack trace>"
		if st, ok := err.(stackTracer); ok {
			trace = fmt.Sprintf("%+v", st.StackTrace())
		}
		return nil, failed(name, ErrCannotGenerateSVG,
			Entry{EntryPainter, painterName(t.Painter)},
			Entry{EntryErrorType, fmt.Sprintf("%T", errors.Cause(err))},
			Entry{EntryMessage, err.Error()},
			Entry{EntryStackTrace, trace},
		)
	}
	return buf.Bytes(), nil
}

// save writes the generated svg to SaveSVG, if its directory exists.
func (t *Test) save(generated []byte, log *zerolog.Logger) error {
	if t.SaveSVG == "" {
		return nil
	}
	dir := filepath.Dir(t.SaveSVG)
	if info, err := os.Stat(dir); err != nil || !info.IsDir() {
		log.Warn().Str("dir", dir).Msg("can't save generated svg: directory not found")
		return nil
	}
	if err := os.WriteFile(t.SaveSVG, generated, 0o644); err != nil {
		return errors.Wrap(err, "saving generated svg")
	}
	log.Info().Str("file", t.SaveSVG).Msg("generated svg saved")
	return nil
}
