package build

import (
	"bytes"
	"context"
	stdErrors "errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/photofolio/internal/config"
)

func TestStageVerifyLinks_BrokenLinksAreWarnings(t *testing.T) {
	out := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(out, "index.html"),
		[]byte(`<a href="about.html">ok</a><a href="works/gone.html">gone</a>`), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(out, "about.html"), []byte(`<p>about</p>`), 0o600))

	cfg := config.Default()
	cfg.Paths.Output = out
	bs := newBuildState(NewGenerator(cfg), newReport())
	bs.Written = []string{"index.html", "about.html"}

	err := stageVerifyLinks(context.Background(), bs)
	require.Error(t, err)
	var se *StageError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, StageErrorWarning, se.Kind)

	assert.Equal(t, 2, bs.Report.LinksChecked)
	require.Len(t, bs.Report.BrokenLinks, 1)
	assert.Equal(t, "works/gone.html", bs.Report.BrokenLinks[0].URL)
}

func TestCopyDir_CountsAndPreservesMode(t *testing.T) {
	src := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(src, "images", "a"), 0o750))
	require.NoError(t, os.WriteFile(filepath.Join(src, "favicon.svg"), []byte("<svg/>"), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(src, "images", "a", "x.jpg"), []byte("jpg"), 0o640))

	dst := filepath.Join(t.TempDir(), "out")
	n, err := CopyDir(src, dst)
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	info, err := os.Stat(filepath.Join(dst, "images", "a", "x.jpg"))
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o640), info.Mode().Perm())
}

type failingCloser struct {
	bytes.Buffer
	closeErr error
}

func (f *failingCloser) Close() error { return f.closeErr }

func TestCopyAndClose_ReturnsCloseError(t *testing.T) {
	dst := &failingCloser{closeErr: stdErrors.New("no space left on device")}
	err := copyAndClose(dst, bytes.NewReader([]byte("body{}")))
	require.EqualError(t, err, "no space left on device")
	assert.Equal(t, "body{}", dst.String())

	require.NoError(t, copyAndClose(&failingCloser{}, bytes.NewReader(nil)))
}
