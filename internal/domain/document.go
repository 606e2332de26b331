package domain

import "strings"

// Default placeholder content for a freshly created completion page.
const (
	DefaultTitle       = "Thank you for completing our quiz!"
	DefaultDescription = "Your responses have been recorded. Click the button below to continue."
	DefaultButtonText  = "Continue"

	DefaultBackgroundColor = "#ffffff"
	DefaultTextColor       = "#000000"
)

// NewDefaultDocument returns a completion document with every optional
// section present but disabled, and placeholder hero content. This is the
// starting point whenever an admin begins configuring a quiz's completion
// behavior.
func NewDefaultDocument() CompletionDocument {
	return CompletionDocument{
		Title:             DefaultTitle,
		Description:       DefaultDescription,
		PrimaryButtonText: DefaultButtonText,
		PrimaryButtonURL:  "",
		BackgroundColor:   DefaultBackgroundColor,
		TextColor:         DefaultTextColor,
		Header:            HeaderSection{Enabled: false, FontSize: FontSizeLG},
		SubHeader:         HeaderSection{Enabled: false, FontSize: FontSizeMD},
		MainImage:         ImageSection{Enabled: false},
		TextBlocks:        []TextBlock{},
		SecondaryButtons:  []SecondaryButton{},
		Footer:            FooterSection{Enabled: false, Links: []FooterLink{}},
	}
}

// IsSubmittable reports whether the document may be persisted. The primary
// button URL is the only required field; everything else may be blank or
// disabled.
func (d CompletionDocument) IsSubmittable() bool {
	return strings.TrimSpace(d.PrimaryButtonURL) != ""
}

// TextBlockByID returns the index of the block with the given ID, or -1.
func (d CompletionDocument) TextBlockByID(id string) int {
	for i := range d.TextBlocks {
		if d.TextBlocks[i].ID == id {
			return i
		}
	}
	return -1
}

// ButtonByID returns the index of the secondary button with the given ID, or -1.
func (d CompletionDocument) ButtonByID(id string) int {
	for i := range d.SecondaryButtons {
		if d.SecondaryButtons[i].ID == id {
			return i
		}
	}
	return -1
}

// FooterLinkByID returns the index of the footer link with the given ID, or -1.
func (d CompletionDocument) FooterLinkByID(id string) int {
	for i := range d.Footer.Links {
		if d.Footer.Links[i].ID == id {
			return i
		}
	}
	return -1
}

// Normalize fills zero-valued styling fields with defaults so documents from
// older rows render consistently.
func (d *CompletionDocument) Normalize() {
	if d.Title == "" {
		d.Title = DefaultTitle
	}
	if d.Description == "" {
		d.Description = DefaultDescription
	}
	if d.PrimaryButtonText == "" {
		d.PrimaryButtonText = DefaultButtonText
	}
	if d.BackgroundColor == "" {
		d.BackgroundColor = DefaultBackgroundColor
	}
	if d.TextColor == "" {
		d.TextColor = DefaultTextColor
	}
	if d.Header.FontSize == "" {
		d.Header.FontSize = FontSizeLG
	}
	if d.SubHeader.FontSize == "" {
		d.SubHeader.FontSize = FontSizeMD
	}
	if d.TextBlocks == nil {
		d.TextBlocks = []TextBlock{}
	}
	if d.SecondaryButtons == nil {
		d.SecondaryButtons = []SecondaryButton{}
	}
	if d.Footer.Links == nil {
		d.Footer.Links = []FooterLink{}
	}
}
