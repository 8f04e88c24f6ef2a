package i18n

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/photofolio/internal/foundation/errors"
	sitetest "git.home.luguber.info/inful/photofolio/internal/testing"
)

func writeBundle(t *testing.T, dir, locale string, messages map[string]any) {
	t.Helper()
	raw, err := json.Marshal(messages)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(filepath.Join(dir, locale+".json"), raw, 0o644))
}

func TestLoad_AllLocales(t *testing.T) {
	dir := t.TempDir()
	writeBundle(t, dir, "zh", sitetest.Messages("zh"))
	writeBundle(t, dir, "en", sitetest.Messages("en"))

	cat, err := Load(dir, []string{"zh", "en"})
	require.NoError(t, err)
	assert.Equal(t, []string{"en", "zh"}, cat.Locales())

	zh, err := cat.Bundle("zh")
	require.NoError(t, err)
	msg, err := zh.Lookup("navigation.gallery")
	require.NoError(t, err)
	assert.Equal(t, "作品", msg)

	en, err := cat.Bundle("en")
	require.NoError(t, err)
	msg, err = en.Lookup("contact.form.submit")
	require.NoError(t, err)
	assert.Equal(t, "Send", msg)

	_, err = cat.Bundle("fr")
	require.Error(t, err)
}

func TestLoad_MissingBundleIsFatal(t *testing.T) {
	dir := t.TempDir()
	writeBundle(t, dir, "zh", sitetest.Messages("zh"))

	_, err := Load(dir, []string{"zh", "en"})
	require.Error(t, err)
	assert.True(t, errors.HasCategory(err, errors.CategoryLocale))
	ce, ok := errors.AsClassified(err)
	require.True(t, ok)
	locale, _ := ce.Context().GetString("locale")
	assert.Equal(t, "en", locale)
}

func TestLoad_MalformedBundleIsFatal(t *testing.T) {
	dir := t.TempDir()
	writeBundle(t, dir, "zh", sitetest.Messages("zh"))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "en.json"), []byte(`{"navigation":`), 0o644))

	_, err := Load(dir, []string{"zh", "en"})
	require.Error(t, err)
	assert.True(t, errors.HasCategory(err, errors.CategoryLocale))
}

func TestLoad_MissingRequiredKeyIsFatal(t *testing.T) {
	dir := t.TempDir()
	messages := sitetest.Messages("en")
	delete(messages["detail"].(map[string]any), "back")
	messages["footer"] = map[string]any{"copy": 2024}
	writeBundle(t, dir, "en", messages)

	_, err := Load(dir, []string{"en"})
	require.Error(t, err)
	ce, ok := errors.AsClassified(err)
	require.True(t, ok)
	keys, _ := ce.Context().GetString("keys")
	assert.Contains(t, keys, "detail.back")
	assert.Contains(t, keys, "footer.copy", "non-string leaf counts as missing")
}

func TestBundleLookup_Missing(t *testing.T) {
	b, err := Parse("en", []byte(`{"a":{"b":"c","n":1}}`))
	require.NoError(t, err)

	v, err := b.Lookup("a.b")
	require.NoError(t, err)
	assert.Equal(t, "c", v)

	_, err = b.Lookup("a.n")
	require.ErrorIs(t, err, ErrMissingMessage)
	_, err = b.Lookup("a")
	require.ErrorIs(t, err, ErrMissingMessage)
	assert.Equal(t, []string{"x.y"}, b.Missing([]string{"a.b", "x.y"}))
}

func TestReader_StickyError(t *testing.T) {
	b, err := Parse("en", []byte(`{"brand":{"title":"Light Notes"}}`))
	require.NoError(t, err)

	r := b.Reader()
	assert.Equal(t, "Light Notes", r.T("brand.title"))
	assert.NoError(t, r.Err())

	assert.Empty(t, r.T("gallery.title"))
	assert.Empty(t, r.T("gallery.subtitle"))
	require.ErrorIs(t, r.Err(), ErrMissingMessage)
	assert.Contains(t, r.Err().Error(), "gallery.title", "first failure is kept")
}
