// Package render turns a completion document into the HTML page shown after
// a quiz. The editor preview and the public page both go through Render, so
// the two can never diverge.
package render

import (
	"fmt"
	"html/template"
	"regexp"
	"strings"

	"quizflow/internal/domain"
)

var hexColorRe = regexp.MustCompile(`^#(?:[0-9a-fA-F]{3}|[0-9a-fA-F]{6}|[0-9a-fA-F]{8})$`)

// pageView is the precomputed model handed to the template. Styling values
// are validated before being lifted into CSS contexts.
type pageView struct {
	Doc       domain.CompletionDocument
	PageStyle template.CSS
	// MainImageURL is pre-validated so data: image URIs survive the
	// template's URL filtering. Unsafe schemes render as if unset.
	MainImageURL template.URL
	HomeURL      string
}

type Renderer struct {
	tmpl     *template.Template
	notFound *template.Template
}

func New() *Renderer {
	funcs := template.FuncMap{
		"fontClass":  fontClass,
		"alignClass": alignClass,
		"btnClass":   btnClass,
		"blockTag":   blockTag,
	}
	return &Renderer{
		tmpl:     template.Must(template.New("completion").Funcs(funcs).Parse(completionTmpl)),
		notFound: template.Must(template.New("notfound").Parse(notFoundTmpl)),
	}
}

// Render produces the completion page HTML for the document. The mandatory
// title/description/primary-button block always renders; every optional
// section renders iff its Enabled flag is set, regardless of whether its
// text fields are blank.
func (r *Renderer) Render(doc domain.CompletionDocument) (string, error) {
	doc.Normalize()
	view := pageView{
		Doc:       doc,
		PageStyle: pageStyle(doc),
	}
	if SafeImageURL(doc.MainImage.URL) {
		view.MainImageURL = template.URL(doc.MainImage.URL)
	}
	var b strings.Builder
	if err := r.tmpl.Execute(&b, view); err != nil {
		return "", fmt.Errorf("render completion page: %w", err)
	}
	return b.String(), nil
}

// RenderNotFound produces the terminal not-found page, distinct from a valid
// document with every optional section disabled.
func (r *Renderer) RenderNotFound(homeURL string) (string, error) {
	if homeURL == "" {
		homeURL = "/"
	}
	var b strings.Builder
	if err := r.notFound.Execute(&b, pageView{HomeURL: homeURL}); err != nil {
		return "", fmt.Errorf("render not-found page: %w", err)
	}
	return b.String(), nil
}

// pageStyle builds the page-level CSS from validated color and image values.
// Invalid hex colors fall back to defaults; image URLs are restricted to
// http(s) and data:image so admin input cannot smuggle arbitrary CSS.
func pageStyle(doc domain.CompletionDocument) template.CSS {
	bg := doc.BackgroundColor
	if !hexColorRe.MatchString(bg) {
		bg = domain.DefaultBackgroundColor
	}
	fg := doc.TextColor
	if !hexColorRe.MatchString(fg) {
		fg = domain.DefaultTextColor
	}
	style := fmt.Sprintf("background-color:%s;color:%s;", bg, fg)
	if img := doc.BackgroundImage; SafeImageURL(img) {
		style += fmt.Sprintf("background-image:url('%s');background-size:cover;background-position:center;", strings.ReplaceAll(img, "'", "%27"))
	}
	return template.CSS(style)
}

// SafeImageURL reports whether the URL is acceptable as an embedded or
// remote image reference.
func SafeImageURL(raw string) bool {
	return strings.HasPrefix(raw, "http://") ||
		strings.HasPrefix(raw, "https://") ||
		strings.HasPrefix(raw, "data:image/")
}

func fontClass(size domain.FontSize) string {
	switch size {
	case domain.FontSizeSM, domain.FontSizeMD, domain.FontSizeLG, domain.FontSizeXL:
		return "fs-" + string(size)
	}
	return "fs-md"
}

func alignClass(a domain.Alignment) string {
	switch a {
	case domain.AlignLeft, domain.AlignCenter, domain.AlignRight:
		return "align-" + string(a)
	}
	return "align-center"
}

func btnClass(s domain.ButtonStyle) string {
	switch s {
	case domain.ButtonPrimary, domain.ButtonSecondary, domain.ButtonOutline:
		return "btn btn-" + string(s)
	}
	return "btn btn-secondary"
}

func blockTag(k domain.BlockKind) string {
	switch k {
	case domain.BlockHeading:
		return "heading"
	case domain.BlockQuote:
		return "quote"
	}
	return "paragraph"
}
