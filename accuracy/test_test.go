package accuracy

import (
	"bytes"
	"context"
	"fmt"
	"image/color"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/benoitkugler/svgbridge/svggen"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m,
		goleak.IgnoreTopFunction("net/http.(*persistConn).readLoop"),
		goleak.IgnoreTopFunction("net/http.(*persistConn).writeLoop"),
	)
}

type redRect struct{}

func (redRect) Name() string { return "red rect" }

func (redRect) Paint(g *svggen.Graphics) error {
	g.SetColor(color.RGBA{R: 0xff, A: 0xff})
	g.FillRect(10, 10, 100, 50)
	return nil
}

// render returns the markup produced for `p` with the default settings.
func render(t *testing.T, p Painter) []byte {
	t.Helper()
	g := svggen.NewGraphics(svggen.DefaultContext())
	g.SetCanvasSize(DefaultCanvasWidth, DefaultCanvasHeight)
	require.NoError(t, p.Paint(g))
	var buf bytes.Buffer
	require.NoError(t, g.Stream(&buf))
	return buf.Bytes()
}

func writeFile(t *testing.T, path string, content []byte) string {
	t.Helper()
	require.NoError(t, os.WriteFile(path, content, 0o644))
	return path
}

func TestRunPassed(t *testing.T) {
	dir := t.TempDir()
	ref := writeFile(t, filepath.Join(dir, "ref.svg"), render(t, redRect{}))
	saved := filepath.Join(dir, "out.svg")

	test := Test{Painter: redRect{}, Reference: ref, SaveSVG: saved}
	report, err := test.Run(context.Background())
	require.NoError(t, err)
	assert.True(t, report.Passed, report.String())
	assert.Equal(t, "red rect", report.Name)
	assert.Equal(t, "red rect: passed", report.String())

	// passed tests don't save
	assert.NoFileExists(t, saved)

	// file URL
	test.Reference = "file://" + filepath.ToSlash(ref)
	report, err = test.Run(context.Background())
	require.NoError(t, err)
	assert.True(t, report.Passed, report.String())
}

func TestRunInaccurate(t *testing.T) {
	dir := t.TempDir()
	ref := bytes.Replace(render(t, redRect{}), []byte(`width="100"`), []byte(`width="101"`), 1)
	refPath := writeFile(t, filepath.Join(dir, "ref.svg"), ref)
	saved := filepath.Join(dir, "out.svg")

	test := Test{Name: "inaccurate", Painter: redRect{}, Reference: refPath, SaveSVG: saved}
	report, err := test.Run(context.Background())
	require.NoError(t, err)
	assert.False(t, report.Passed)
	assert.Equal(t, ErrGeneratedSVGInaccurate, report.ErrorCode)

	line, _ := report.Entry(EntryLineNumber)
	assert.Equal(t, "3", line)
	refLine, _ := report.Entry(EntryReferenceLine)
	newLine, _ := report.Entry(EntryNewLine)
	assert.Contains(t, refLine, `width="101"`)
	assert.Contains(t, newLine, `width="100"`)

	// the generated markup is saved
	content, err := os.ReadFile(saved)
	require.NoError(t, err)
	assert.Equal(t, render(t, redRect{}), content)
}

func TestRunShorterReference(t *testing.T) {
	dir := t.TempDir()
	full := render(t, redRect{})
	ref := writeFile(t, filepath.Join(dir, "ref.svg"), full[:bytes.LastIndex(full, []byte("</svg>"))])

	report, err := (&Test{Painter: redRect{}, Reference: ref}).Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, ErrGeneratedSVGInaccurate, report.ErrorCode)
	refLine, _ := report.Entry(EntryReferenceLine)
	assert.Equal(t, EndOfStream, refLine)
	newLine, _ := report.Entry(EntryNewLine)
	assert.Equal(t, "</svg>", newLine)
}

func TestRunCannotOpenReference(t *testing.T) {
	dir := t.TempDir()
	saved := filepath.Join(dir, "out.svg")
	missing := filepath.Join(dir, "missing.svg")

	test := Test{Painter: redRect{}, Reference: missing, SaveSVG: saved}
	report, err := test.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, ErrCannotOpenReference, report.ErrorCode)
	url, _ := report.Entry(EntryReference)
	assert.Equal(t, missing, url)
	assert.FileExists(t, saved)

	// no saving when the directory is missing
	test.SaveSVG = filepath.Join(dir, "nodir", "out.svg")
	report, err = test.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, ErrCannotOpenReference, report.ErrorCode)
	assert.NoFileExists(t, test.SaveSVG)
}

func TestRunPainterFailure(t *testing.T) {
	boom := PainterFunc(func(g *svggen.Graphics) error { return errors.New("boom") })
	report, err := (&Test{Name: "error", Painter: boom, Reference: "unused"}).Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, ErrCannotGenerateSVG, report.ErrorCode)
	msg, _ := report.Entry(EntryMessage)
	assert.Equal(t, "boom", msg)
	trace, _ := report.Entry(EntryStackTrace)
	assert.Contains(t, trace, "TestRunPainterFailure")
	painter, _ := report.Entry(EntryPainter)
	assert.Equal(t, "accuracy.PainterFunc", painter)

	panicking := PainterFunc(func(g *svggen.Graphics) error { panic("painter bug") })
	report, err = (&Test{Name: "panic", Painter: panicking}).Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, ErrCannotGenerateSVG, report.ErrorCode)
	msg, _ = report.Entry(EntryMessage)
	assert.Equal(t, "painter bug", msg)
	typ, _ := report.Entry(EntryErrorType)
	assert.Equal(t, "string", typ)
	trace, _ = report.Entry(EntryStackTrace)
	assert.Contains(t, trace, "TestRunPainterFailure")
	assert.Contains(t, report.String(), "panic: failed (accuracy.error.cannot.generate.svg)")
}

func TestRunConfigure(t *testing.T) {
	dir := t.TempDir()
	g := svggen.NewGraphics(svggen.Context{Comment: "configured"})
	g.SetCanvasSize(20, 10)
	require.NoError(t, redRect{}.Paint(g))
	var buf bytes.Buffer
	require.NoError(t, g.Stream(&buf))
	ref := writeFile(t, filepath.Join(dir, "ref.svg"), buf.Bytes())

	test := Test{
		Painter:     redRect{},
		Reference:   ref,
		Context:     svggen.Context{Comment: "configured"},
		CanvasWidth: 300, CanvasHeight: 400,
		Configure: func(g *svggen.Graphics) { g.SetCanvasSize(20, 10) },
	}
	report, err := test.Run(context.Background())
	require.NoError(t, err)
	assert.True(t, report.Passed, report.String())
}

func TestRunHTTPReference(t *testing.T) {
	content := render(t, redRect{})
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/ref.svg" {
			http.NotFound(w, r)
			return
		}
		w.Write(content)
	}))
	defer server.Close()

	client := NewHTTPClient()
	client.RetryMax = 0
	defer client.HTTPClient.CloseIdleConnections()

	test := Test{Painter: redRect{}, Reference: server.URL + "/ref.svg", HTTPClient: client}
	report, err := test.Run(context.Background())
	require.NoError(t, err)
	assert.True(t, report.Passed, report.String())

	test.Reference = server.URL + "/other.svg"
	report, err = test.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, ErrCannotOpenReference, report.ErrorCode)
	msg, _ := report.Entry(EntryMessage)
	assert.Contains(t, msg, "404")
}

func TestRunTruncatedReference(t *testing.T) {
	content := render(t, redRect{})
	// the connection is closed before the announced length is sent
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, buf, err := w.(http.Hijacker).Hijack()
		if err != nil {
			return
		}
		defer conn.Close()
		fmt.Fprintf(buf, "HTTP/1.1 200 OK\r\nContent-Type: image/svg+xml\r\nContent-Length: %d\r\n\r\n", 10*len(content))
		buf.Write(content[:20])
		buf.Flush()
	}))
	defer server.Close()

	client := NewHTTPClient()
	client.RetryMax = 0
	defer client.HTTPClient.CloseIdleConnections()

	saved := filepath.Join(t.TempDir(), "out.svg")
	test := Test{Painter: redRect{}, Reference: server.URL + "/ref.svg", SaveSVG: saved, HTTPClient: client}
	report, err := test.Run(context.Background())
	require.NoError(t, err)
	assert.False(t, report.Passed)
	assert.Equal(t, ErrWhileComparing, report.ErrorCode)

	ref, _ := report.Entry(EntryReference)
	assert.Equal(t, test.Reference, ref)
	msg, _ := report.Entry(EntryMessage)
	assert.Contains(t, msg, "reading reference")
	assert.Contains(t, msg, "unexpected EOF")

	saveContent, err := os.ReadFile(saved)
	require.NoError(t, err)
	assert.Equal(t, content, saveContent)
}

func TestSuite(t *testing.T) {
	dir := t.TempDir()
	ref := writeFile(t, filepath.Join(dir, "ref.svg"), render(t, redRect{}))

	var tests []*Test
	for i := 0; i < 8; i++ {
		tests = append(tests, &Test{Painter: redRect{}, Reference: ref})
	}
	tests[3] = &Test{Name: "missing", Painter: redRect{}, Reference: filepath.Join(dir, "missing.svg")}

	suite := Suite{Tests: tests, Workers: 3}
	reports, err := suite.Run(context.Background())
	require.NoError(t, err)
	require.Len(t, reports, 8)
	assert.Equal(t, "missing", reports[3].Name)
	assert.False(t, reports[3].Passed)

	summary := Summarize(reports)
	assert.Equal(t, Summary{Total: 8, Passed: 7, Failed: 1}, summary)
	assert.Equal(t, "8 tests: 7 passed, 1 failed", summary.String())
}

func TestGenerate(t *testing.T) {
	out, err := (&Test{Painter: redRect{}}).Generate()
	require.NoError(t, err)
	assert.Equal(t, render(t, redRect{}), out)

	boom := PainterFunc(func(g *svggen.Graphics) error { return errors.New("boom") })
	_, err = (&Test{Painter: boom}).Generate()
	assert.ErrorContains(t, err, "boom")
}
