package commands

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/alecthomas/kong"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/photofolio/internal/foundation/errors"
	sitetest "git.home.luguber.info/inful/photofolio/internal/testing"
)

type exitCalled int

// run parses args and runs the selected command the way main does.
func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var cli CLI
	var out bytes.Buffer
	parser, err := NewParser(&cli,
		kong.Writers(&out, &out),
		kong.Exit(func(code int) { panic(exitCalled(code)) }),
	)
	require.NoError(t, err)

	kctx, err := parser.Parse(args)
	if err != nil {
		return out.String(), err
	}
	err = kctx.Run(&Global{Out: &out}, &cli)
	return out.String(), err
}

// newProject writes a site with one work and returns the config path.
func newProject(t *testing.T, yaml string) string {
	t.Helper()
	f := sitetest.NewSiteFixture(t, sitetest.NewConfigBuilder().Build())
	f.WriteFile("public/favicon.svg", "<svg/>")
	f.AddWork(sitetest.WorkSpec{Slug: "foo", Year: 2021, Descriptions: map[string]string{"zh": "西湖"}})
	f.WriteFile("photofolio.yaml", yaml)
	return f.Path("photofolio.yaml")
}

func TestBuild_DefaultCommand(t *testing.T) {
	cfgPath := newProject(t, "site:\n  author: Test\n")
	root := filepath.Dir(cfgPath)

	out, err := run(t, "-c", cfgPath)
	require.NoError(t, err)
	assert.Contains(t, out, "outcome=success")

	sitetest.NewFileAssertions(t, filepath.Join(root, "dist")).
		AssertFileExists("index.html").
		AssertFileExists("en/works/foo.html").
		AssertFileExists("assets/main.css").
		AssertFileContains("works/foo.html", "西湖")
}

func TestBuild_FlagOverrides(t *testing.T) {
	cfgPath := newProject(t, "paths:\n  output: site-out\n")
	root := filepath.Dir(cfgPath)
	out := filepath.Join(root, "custom")
	reports := filepath.Join(root, "reports")

	_, err := run(t, "-c", cfgPath, "build",
		"--output", out,
		"--base-url", "https://photos.example.com",
		"--report-dir", reports,
		"--no-verify-links")
	require.NoError(t, err)

	sitetest.NewFileAssertions(t, out).
		AssertFileExists("sitemap.xml").
		AssertFileContains("index.html", `rel="canonical" href="https://photos.example.com/index.html"`)
	assert.NoDirExists(t, filepath.Join(root, "site-out"))
	assert.FileExists(t, filepath.Join(reports, "build-report.json"))
}

func TestBuild_InvalidBaseURLOverride(t *testing.T) {
	cfgPath := newProject(t, "")
	_, err := run(t, "-c", cfgPath, "build", "--base-url", "not a url")
	require.Error(t, err)
	assert.True(t, errors.HasCategory(err, errors.CategoryValidation))
}

func TestBuild_FailureIsClassified(t *testing.T) {
	cfgPath := newProject(t, "")
	require.NoError(t, os.Remove(filepath.Join(filepath.Dir(cfgPath), "src/locales/en.json")))

	out, err := run(t, "-c", cfgPath)
	require.Error(t, err)
	assert.True(t, errors.HasCategory(err, errors.CategoryLocale))
	assert.Contains(t, out, "outcome=failed")
	assert.Equal(t, 9, errors.NewCLIErrorAdapter(false, nil).ExitCodeFor(err))
}

func TestBuild_RejectsOutputOverlappingSources(t *testing.T) {
	for _, tc := range []struct {
		name string
		yaml string
		args []string
	}{
		{"config project root", "paths:\n  output: ./\n", nil},
		{"config content parent", "paths:\n  output: src\n", nil},
		{"flag project root", "", []string{"build", "--output", "."}},
		{"flag inside public", "", []string{"build", "--output", "public/site"}},
	} {
		t.Run(tc.name, func(t *testing.T) {
			cfgPath := newProject(t, tc.yaml)
			root := filepath.Dir(cfgPath)
			t.Chdir(root)

			_, err := run(t, append([]string{"-c", cfgPath}, tc.args...)...)
			require.Error(t, err)
			assert.True(t, errors.HasCategory(err, errors.CategoryValidation))

			assert.FileExists(t, cfgPath)
			assert.FileExists(t, filepath.Join(root, "src/content/works/foo/meta.json"))
			assert.FileExists(t, filepath.Join(root, "src/locales/en.json"))
			assert.FileExists(t, filepath.Join(root, "public/favicon.svg"))
		})
	}
}

func TestBuild_MalformedConfig(t *testing.T) {
	cfgPath := newProject(t, "locales: [unterminated\n")
	_, err := run(t, "-c", cfgPath)
	require.Error(t, err)
	assert.True(t, errors.HasCategory(err, errors.CategoryConfig))
}

func TestInit(t *testing.T) {
	cfgPath := filepath.Join(t.TempDir(), "photofolio.yaml")

	out, err := run(t, "-c", cfgPath, "init")
	require.NoError(t, err)
	assert.Contains(t, out, cfgPath)
	assert.FileExists(t, cfgPath)

	_, err = run(t, "-c", cfgPath, "init")
	require.Error(t, err)

	_, err = run(t, "-c", cfgPath, "init", "--force")
	require.NoError(t, err)
}

func TestVersionFlag(t *testing.T) {
	var code exitCalled = -1
	func() {
		defer func() {
			if r := recover(); r != nil {
				code = r.(exitCalled) //nolint:forcetypeassert // only exitCalled is panicked
			}
		}()
		out, _ := run(t, "--version")
		t.Fatalf("expected exit, got output %q", out)
	}()
	assert.Equal(t, exitCalled(0), code)
}

func TestLoadConfig_ResolvesRelativeToConfigDir(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "photofolio.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("paths:\n  output: out\n"), 0o600))

	cfg, err := loadConfig(cfgPath)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "out"), cfg.Paths.Output)
	assert.Equal(t, filepath.Join(dir, "src/content/works"), cfg.Paths.Content)
}
