package render

import (
	"strings"
	"testing"

	"quizflow/internal/domain"
)

func TestRenderAlwaysIncludesHeroBlock(t *testing.T) {
	r := New()
	doc := domain.NewDefaultDocument()
	doc.PrimaryButtonURL = "https://example.com/next"

	html, err := r.Render(doc)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	for _, want := range []string{
		`data-section="title"`,
		`data-section="description"`,
		`data-button="primary"`,
		domain.DefaultTitle,
		domain.DefaultButtonText,
		`href="https://example.com/next"`,
	} {
		if !strings.Contains(html, want) {
			t.Fatalf("expected %q in output:\n%s", want, html)
		}
	}
}

func TestRenderGatesOptionalSectionsOnEnabled(t *testing.T) {
	r := New()

	// Enabled with blank text must still render; disabled with text must not.
	doc := domain.NewDefaultDocument()
	doc.Header.Enabled = true
	doc.Header.Text = ""
	doc.SubHeader.Enabled = false
	doc.SubHeader.Text = "hidden"
	doc.Footer.Enabled = false
	doc.Footer.Text = "hidden footer"

	html, err := r.Render(doc)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if !strings.Contains(html, `data-section="header"`) {
		t.Fatalf("enabled header with empty text must still render")
	}
	if strings.Contains(html, `data-section="subheader"`) {
		t.Fatalf("disabled subheader must not render")
	}
	if strings.Contains(html, `data-section="footer"`) {
		t.Fatalf("disabled footer must not render")
	}
	if strings.Contains(html, "hidden footer") {
		t.Fatalf("disabled footer text leaked into output")
	}
}

func TestRenderMainImageNeedsEnabledAndURL(t *testing.T) {
	r := New()
	doc := domain.NewDefaultDocument()
	doc.MainImage.Enabled = true
	doc.MainImage.URL = ""

	html, _ := r.Render(doc)
	if strings.Contains(html, `data-section="main-image"`) {
		t.Fatalf("main image without URL must not render")
	}

	doc.MainImage.URL = "data:image/png;base64,AAAA"
	doc.MainImage.AltText = "hero"
	html, _ = r.Render(doc)
	if !strings.Contains(html, `src="data:image/png;base64,AAAA"`) {
		t.Fatalf("expected data URI to survive rendering:\n%s", html)
	}
	if !strings.Contains(html, `alt="hero"`) {
		t.Fatalf("expected alt text in output")
	}

	doc.MainImage.URL = "javascript:alert(1)"
	html, _ = r.Render(doc)
	if strings.Contains(html, "javascript:alert") {
		t.Fatalf("unsafe scheme must not reach the output")
	}
}

func TestRenderBlocksInOrderWithKindStyling(t *testing.T) {
	r := New()
	doc := domain.NewDefaultDocument()
	doc.TextBlocks = []domain.TextBlock{
		{ID: "b1", Kind: domain.BlockHeading, Content: "Hi", FontSize: domain.FontSizeLG, Alignment: domain.AlignCenter},
		{ID: "b2", Kind: domain.BlockQuote, Content: "Nice", FontSize: domain.FontSizeMD, Alignment: domain.AlignLeft},
	}
	doc.Footer.Enabled = false
	doc.BackgroundColor = "#123456"
	doc.TextColor = "#abcdef"

	html, err := r.Render(doc)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if strings.Count(html, "data-block=") != 2 {
		t.Fatalf("expected exactly two content blocks:\n%s", html)
	}
	heading := strings.Index(html, `data-block="heading"`)
	quote := strings.Index(html, `data-block="quote"`)
	if heading == -1 || quote == -1 || heading > quote {
		t.Fatalf("blocks out of order: heading=%d quote=%d", heading, quote)
	}
	if !strings.Contains(html, "block-quote") || !strings.Contains(html, "align-left") {
		t.Fatalf("expected kind and alignment classes in output")
	}
	if strings.Contains(html, `data-section="footer"`) {
		t.Fatalf("footer disabled but rendered")
	}
	if !strings.Contains(html, "background-color:#123456") || !strings.Contains(html, "color:#abcdef") {
		t.Fatalf("expected page colors in style: %s", html)
	}
}

func TestRenderSecondaryButtonsInOrder(t *testing.T) {
	r := New()
	doc := domain.NewDefaultDocument()
	doc.SecondaryButtons = []domain.SecondaryButton{
		{ID: "s1", Text: "Docs", URL: "https://example.com/docs", Style: domain.ButtonOutline},
		{ID: "s2", Text: "Blog", URL: "https://example.com/blog", Style: domain.ButtonSecondary},
	}

	html, err := r.Render(doc)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	first := strings.Index(html, `data-button-id="s1"`)
	second := strings.Index(html, `data-button-id="s2"`)
	primary := strings.Index(html, `data-button="primary"`)
	if primary == -1 || first == -1 || second == -1 {
		t.Fatalf("missing buttons:\n%s", html)
	}
	if !(primary < first && first < second) {
		t.Fatalf("buttons out of order: primary=%d s1=%d s2=%d", primary, first, second)
	}
	if !strings.Contains(html, "btn-outline") {
		t.Fatalf("expected outline styling class")
	}
}

func TestRenderEscapesContent(t *testing.T) {
	r := New()
	doc := domain.NewDefaultDocument()
	doc.Title = `<script>alert("x")</script>`
	doc.BackgroundColor = `red;} body{display:none`

	html, err := r.Render(doc)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if strings.Contains(html, "<script>alert") {
		t.Fatalf("title not escaped")
	}
	// Invalid color strings fall back to the default.
	if !strings.Contains(html, "background-color:"+domain.DefaultBackgroundColor) {
		t.Fatalf("expected default background color fallback:\n%s", html)
	}
}

func TestRenderNotFoundIsDistinct(t *testing.T) {
	r := New()
	html, err := r.RenderNotFound("")
	if err != nil {
		t.Fatalf("render not found: %v", err)
	}
	if !strings.Contains(html, `data-section="not-found"`) || !strings.Contains(html, `href="/"`) {
		t.Fatalf("unexpected not-found page:\n%s", html)
	}

	// A minimal valid document must not look like the not-found state.
	doc := domain.NewDefaultDocument()
	page, _ := r.Render(doc)
	if strings.Contains(page, `data-section="not-found"`) {
		t.Fatalf("valid minimal document rendered as not-found")
	}
}
