package jats

import (
	"bytes"
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

func captureLog(t *testing.T, raw string) string {
	t.Helper()
	var buf bytes.Buffer
	log := zerolog.New(&buf)
	ValidateDTD([]byte(raw), log)
	return buf.String()
}

func TestValidateDTD_SupportedURLIsSilent(t *testing.T) {
	raw := `<?xml version="1.0"?>
<!DOCTYPE article-set SYSTEM "https://dtd.nlm.nih.gov/ncbi/pmc/articleset/nlm-articleset-2.0.dtd">
<article/>`
	out := captureLog(t, raw)
	if out != "" {
		t.Errorf("expected no warning for a supported DTD, got: %s", out)
	}
}

func TestValidateDTD_MissingDoctypeWarns(t *testing.T) {
	out := captureLog(t, `<article/>`)
	if !strings.Contains(out, "no DOCTYPE declared") {
		t.Errorf("expected a missing-DOCTYPE warning, got: %s", out)
	}
}

func TestValidateDTD_UnsupportedURLWarns(t *testing.T) {
	raw := `<!DOCTYPE article-set SYSTEM "https://example.com/some.dtd">
<article/>`
	out := captureLog(t, raw)
	if !strings.Contains(out, "unsupported DTD URL") {
		t.Errorf("expected an unsupported-DTD warning, got: %s", out)
	}
	if !strings.Contains(out, "https://example.com/some.dtd") {
		t.Errorf("expected the DTD URL in the warning, got: %s", out)
	}
}

func TestValidateDTD_DoctypeWithoutQuotedURLWarns(t *testing.T) {
	out := captureLog(t, `<!DOCTYPE article-set><article/>`)
	if !strings.Contains(out, "no DTD URL found") {
		t.Errorf("expected a no-DTD-URL warning, got: %s", out)
	}
}

func TestExtractDoctype_Unterminated(t *testing.T) {
	got := extractDoctype([]byte(`<!DOCTYPE article-set PUBLIC "x"`))
	want := `<!DOCTYPE article-set PUBLIC "x"`
	if string(got) != want {
		t.Errorf("extractDoctype() = %q, want %q", got, want)
	}
}

func TestExtractDTDURL_NoQuotes(t *testing.T) {
	if got := extractDTDURL([]byte(`<!DOCTYPE article-set>`)); got != "" {
		t.Errorf("extractDTDURL() = %q, want empty", got)
	}
}
