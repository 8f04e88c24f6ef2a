package build

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"git.home.luguber.info/inful/photofolio/internal/foundation/errors"
	"git.home.luguber.info/inful/photofolio/internal/logfields"
	"git.home.luguber.info/inful/photofolio/internal/render"
)

// stagePrepareOutput deletes and recreates the output directory.
func stagePrepareOutput(_ context.Context, bs *BuildState) error {
	out := bs.Generator.cfg.Paths.Output
	// RemoveAll already treats a missing directory as success.
	if err := os.RemoveAll(out); err != nil {
		return newFatalStageError(StagePrepareOutput, errors.WrapError(err, errors.CategoryFileSystem, "failed to clean output directory").
			WithContext("path", out).
			Fatal().
			Build())
	}
	if err := os.MkdirAll(out, 0o755); err != nil {
		return newFatalStageError(StagePrepareOutput, errors.WrapError(err, errors.CategoryFileSystem, "failed to create output directory").
			WithContext("path", out).
			Fatal().
			Build())
	}
	return nil
}

// stageCopyStatic copies the public directory verbatim into the output root.
// A missing public directory is tolerated.
func stageCopyStatic(_ context.Context, bs *BuildState) error {
	src := bs.Generator.cfg.Paths.Public
	if _, err := os.Stat(src); os.IsNotExist(err) {
		slog.Debug("No public directory; skipping static assets", logfields.Path(src))
		return nil
	}
	n, err := CopyDir(src, bs.Generator.cfg.Paths.Output)
	if err != nil {
		return newFatalStageError(StageCopyStatic, errors.WrapError(err, errors.CategoryFileSystem, "failed to copy static assets").
			WithContext("path", src).
			Fatal().
			Build())
	}
	bs.Report.StaticFiles = n
	slog.Debug("Copied static assets", logfields.Path(src), logfields.Count(n))
	return nil
}

// stageCopyStylesheet copies the stylesheet to assets/main.css.
func stageCopyStylesheet(_ context.Context, bs *BuildState) error {
	src := bs.Generator.cfg.Paths.Stylesheet
	dst := filepath.Join(bs.Generator.cfg.Paths.Output, filepath.FromSlash(render.StylesheetPath))
	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return newFatalStageError(StageCopyStylesheet, errors.WrapError(err, errors.CategoryFileSystem, "failed to create assets directory").
			WithContext("path", filepath.Dir(dst)).
			Fatal().
			Build())
	}
	if err := copyFile(src, dst); err != nil {
		return newFatalStageError(StageCopyStylesheet, errors.WrapError(err, errors.CategoryFileSystem, "failed to copy stylesheet").
			WithContext("path", src).
			Fatal().
			Build())
	}
	return nil
}

// CopyDir recursively copies src into dst, preserving file modes, and returns
// the number of files copied.
func CopyDir(src, dst string) (int, error) {
	srcInfo, err := os.Stat(src)
	if err != nil {
		return 0, err
	}
	if err := os.MkdirAll(dst, srcInfo.Mode().Perm()|0o700); err != nil {
		return 0, err
	}
	entries, err := os.ReadDir(src)
	if err != nil {
		return 0, err
	}

	copied := 0
	for _, entry := range entries {
		srcPath := filepath.Join(src, entry.Name())
		dstPath := filepath.Join(dst, entry.Name())

		if entry.IsDir() {
			n, err := CopyDir(srcPath, dstPath)
			copied += n
			if err != nil {
				return copied, err
			}
			continue
		}
		if err := copyFile(srcPath, dstPath); err != nil {
			return copied, err
		}
		copied++
	}
	return copied, nil
}

// copyFile copies a single file from src to dst.
func copyFile(src, dst string) error {
	srcFile, err := os.Open(filepath.Clean(src))
	if err != nil {
		return err
	}
	defer func() {
		_ = srcFile.Close()
	}()

	dstFile, err := os.Create(filepath.Clean(dst))
	if err != nil {
		return err
	}
	if err := copyAndClose(dstFile, srcFile); err != nil {
		return err
	}

	// Preserve file permissions
	srcInfo, err := os.Stat(src)
	if err != nil {
		return err
	}
	return os.Chmod(dst, srcInfo.Mode())
}

// copyAndClose copies src into dst and closes dst. Errors that only surface
// on close, such as a full disk, are returned.
func copyAndClose(dst io.WriteCloser, src io.Reader) error {
	if _, err := io.Copy(dst, src); err != nil {
		_ = dst.Close()
		return err
	}
	return dst.Close()
}
