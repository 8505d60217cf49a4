package export

import (
	"context"
	"errors"
	"os/exec"
	"strings"
	"testing"
	"time"
)

func TestRenderDocumentHTML(t *testing.T) {
	doc := Document{
		Title:     "Master <Services> Agreement",
		Kind:      "Contract",
		Body:      `<p>See <a href="https://example.com/terms">Contract</a></p>`,
		UpdatedAt: time.Date(2026, 5, 4, 0, 0, 0, 0, time.UTC),
	}
	out, err := RenderDocumentHTML(NewTemplateData(doc))
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	for _, want := range []string{
		`<title>Master &lt;Services&gt; Agreement</title>`,
		`<a href="https://example.com/terms">Contract</a>`,
		`class="kind-contract"`,
		`updated May 4, 2026`,
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("render missing %q:\n%s", want, out)
		}
	}
}

func TestRenderDocumentHTML_NoDate(t *testing.T) {
	out, err := RenderDocumentHTML(NewTemplateData(Document{Title: "T", Kind: "term"}))
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if strings.Contains(out, "updated") {
		t.Fatalf("expected no date line:\n%s", out)
	}
}

func TestSanitizeFilename(t *testing.T) {
	cases := []struct{ in, want string }{
		{"Master Services Agreement", "Master-Services-Agreement"},
		{"a/b\\c:d", "abcd"},
		{"", "document"},
		{"???", "document"},
		{strings.Repeat("x", 80), strings.Repeat("x", 50)},
	}
	for _, tc := range cases {
		if got := sanitizeFilename(tc.in); got != tc.want {
			t.Fatalf("sanitizeFilename(%q)=%q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestPercentEncodeForDataURL(t *testing.T) {
	if got, want := percentEncodeForDataURL("<p>a b</p>é"), "%3Cp%3Ea%20b%3C%2Fp%3E%C3%A9"; got != want {
		t.Fatalf("encode=%q, want %q", got, want)
	}
}

func TestPDF_MissingChrome(t *testing.T) {
	orig := lookPath
	lookPath = func(string) (string, error) { return "", exec.ErrNotFound }
	t.Cleanup(func() { lookPath = orig })

	_, err := PDF(context.Background(), "<p>x</p>", "T")
	if !errors.Is(err, ErrPDFDependencyMissing) {
		t.Fatalf("err=%v, want ErrPDFDependencyMissing", err)
	}
}

func TestExport_HTML(t *testing.T) {
	res, err := Export(context.Background(), Document{Title: "My Terms", Kind: "term", Body: "<p>x</p>"}, FormatHTML)
	if err != nil {
		t.Fatalf("export: %v", err)
	}
	if res.Filename != "My-Terms.html" || !strings.HasPrefix(res.MimeType, "text/html") {
		t.Fatalf("result=%s %s", res.Filename, res.MimeType)
	}
	if !strings.Contains(string(res.Data), "<p>x</p>") {
		t.Fatalf("body missing from export")
	}
}

func TestExport_UnknownFormat(t *testing.T) {
	_, err := Export(context.Background(), Document{Title: "x"}, "docx")
	if !errors.Is(err, ErrUnknownFormat) {
		t.Fatalf("err=%v, want ErrUnknownFormat", err)
	}
}
