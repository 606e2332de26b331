package app

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"quizflow/internal/domain"
	"quizflow/internal/urlgen"
)

// EditorStore abstracts how open editor sessions are held (in-memory per
// instance; editing is single-writer by design).
type EditorStore interface {
	Put(ed *Editor)
	Get(id string) (*Editor, bool)
	Delete(id string)
}

// RenderFunc turns the in-memory document into preview HTML. The editor uses
// the same routine as the public renderer so the two cannot diverge.
type RenderFunc func(domain.CompletionDocument) (string, error)

// EditorService owns the completion page editing use cases.
type EditorService struct {
	editors       EditorStore
	docs          DocumentRepository
	quizzes       QuizRepository
	render        RenderFunc
	baseURL       string
	maxImageBytes int64
}

func NewEditorService(editors EditorStore, docs DocumentRepository, quizzes QuizRepository, render RenderFunc, baseURL string, maxImageBytes int64) *EditorService {
	return &EditorService{
		editors:       editors,
		docs:          docs,
		quizzes:       quizzes,
		render:        render,
		baseURL:       baseURL,
		maxImageBytes: maxImageBytes,
	}
}

// Open starts an editor session for the quiz's completion document, seeding
// it with the stored document or the default placeholder content.
func (s *EditorService) Open(ctx context.Context, quizID, ownerID string) (*Editor, error) {
	quiz, err := s.quizzes.GetByID(ctx, quizID)
	if err != nil {
		return nil, err
	}
	if quiz.OwnerID != ownerID {
		return nil, domain.ErrNotOwner
	}

	doc, err := s.docs.Get(ctx, quizID)
	switch err {
	case nil:
		doc.Normalize()
	case domain.ErrDocumentNotFound:
		doc = domain.NewDefaultDocument()
	default:
		return nil, err
	}

	ed := newEditor(uuid.NewString(), quizID, ownerID, doc, s.render)
	s.editors.Put(ed)
	return ed, nil
}

// Editor returns the session after checking ownership.
func (s *EditorService) Editor(id, ownerID string) (*Editor, error) {
	ed, ok := s.editors.Get(id)
	if !ok {
		return nil, domain.ErrEditorNotFound
	}
	if ed.ownerID != ownerID {
		return nil, domain.ErrNotOwner
	}
	return ed, nil
}

// Save validates the session's document and persists it whole, keyed by the
// quiz ID. A missing redirect URL blocks the save entirely.
func (s *EditorService) Save(ctx context.Context, id, ownerID string) (domain.CompletionDocument, error) {
	ed, err := s.Editor(id, ownerID)
	if err != nil {
		return domain.CompletionDocument{}, err
	}
	doc := ed.Document()
	if !doc.IsSubmittable() {
		return domain.CompletionDocument{}, domain.ErrRedirectURLRequired
	}
	if err := s.docs.Save(ctx, ed.quizID, doc); err != nil {
		return domain.CompletionDocument{}, err
	}
	return doc, nil
}

// Close drops the editor session, discarding unsaved edits.
func (s *EditorService) Close(id, ownerID string) error {
	if _, err := s.Editor(id, ownerID); err != nil {
		return err
	}
	s.editors.Delete(id)
	return nil
}

// GenerateShareURL stores a freshly generated quiz URL into the document's
// primary button and returns it for display/copy.
func (s *EditorService) GenerateShareURL(id, ownerID string) (string, error) {
	ed, err := s.Editor(id, ownerID)
	if err != nil {
		return "", err
	}
	url := urlgen.QuizURL(s.baseURL, urlgen.NewToken(urlgen.DefaultTokenLength))
	ed.setPrimaryButtonURL(url)
	return url, nil
}

// SetBackgroundImage embeds the uploaded bytes as the page background.
func (s *EditorService) SetBackgroundImage(id, ownerID string, data []byte) error {
	ed, err := s.Editor(id, ownerID)
	if err != nil {
		return err
	}
	uri, err := encodeImageDataURI(data, s.maxImageBytes)
	if err != nil {
		return err
	}
	ed.setBackgroundImage(uri)
	return nil
}

// SetMainImage embeds the uploaded bytes as the main image URL.
func (s *EditorService) SetMainImage(id, ownerID string, data []byte) error {
	ed, err := s.Editor(id, ownerID)
	if err != nil {
		return err
	}
	uri, err := encodeImageDataURI(data, s.maxImageBytes)
	if err != nil {
		return err
	}
	ed.setMainImageURL(uri)
	return nil
}

// DocumentPatch updates scalar document fields; nil pointers are untouched.
type DocumentPatch struct {
	Title             *string          `json:"title"`
	Description       *string          `json:"description"`
	PrimaryButtonText *string          `json:"primaryButtonText"`
	PrimaryButtonURL  *string          `json:"primaryButtonUrl"`
	BackgroundColor   *string          `json:"backgroundColor"`
	TextColor         *string          `json:"textColor"`
	BackgroundImage   *string          `json:"backgroundImage"`
	HeaderEnabled     *bool            `json:"headerEnabled"`
	HeaderText        *string          `json:"headerText"`
	HeaderFontSize    *domain.FontSize `json:"headerFontSize"`
	SubHeaderEnabled  *bool            `json:"subHeaderEnabled"`
	SubHeaderText     *string          `json:"subHeaderText"`
	SubHeaderFontSize *domain.FontSize `json:"subHeaderFontSize"`
	MainImageEnabled  *bool            `json:"mainImageEnabled"`
	MainImageURL      *string          `json:"mainImageUrl"`
	MainImageAlt      *string          `json:"mainImageAlt"`
	FooterEnabled     *bool            `json:"footerEnabled"`
	FooterText        *string          `json:"footerText"`
}

// TextBlockPatch updates fields of one text block by ID.
type TextBlockPatch struct {
	Kind      *domain.BlockKind `json:"kind"`
	Content   *string           `json:"content"`
	FontSize  *domain.FontSize  `json:"fontSize"`
	Alignment *domain.Alignment `json:"alignment"`
}

// ButtonPatch updates fields of one secondary button by ID.
type ButtonPatch struct {
	Text  *string             `json:"text"`
	URL   *string             `json:"url"`
	Style *domain.ButtonStyle `json:"style"`
}

// FooterLinkPatch updates fields of one footer link by ID.
type FooterLinkPatch struct {
	Text *string `json:"text"`
	URL  *string `json:"url"`
}

// Editor holds one in-memory completion document being edited, guarded by a
// mutex, with preview subscribers notified after every mutation.
type Editor struct {
	id      string
	quizID  string
	ownerID string
	render  RenderFunc

	mu          sync.RWMutex
	doc         domain.CompletionDocument
	subscribers map[chan string]struct{}
	lastTouched time.Time
	now         func() time.Time
}

func newEditor(id, quizID, ownerID string, doc domain.CompletionDocument, render RenderFunc) *Editor {
	return newEditorWithClock(id, quizID, ownerID, doc, render, time.Now)
}

// newEditorWithClock allows deterministic idle timestamps in tests.
func newEditorWithClock(id, quizID, ownerID string, doc domain.CompletionDocument, render RenderFunc, now func() time.Time) *Editor {
	return &Editor{
		id:          id,
		quizID:      quizID,
		ownerID:     ownerID,
		render:      render,
		doc:         doc,
		subscribers: make(map[chan string]struct{}),
		lastTouched: now(),
		now:         now,
	}
}

// NewEditorForTest builds a detached editor session for tests; a nil clock
// falls back to time.Now.
func NewEditorForTest(id, quizID, ownerID string, doc domain.CompletionDocument, render RenderFunc, now func() time.Time) *Editor {
	if now == nil {
		now = time.Now
	}
	return newEditorWithClock(id, quizID, ownerID, doc, render, now)
}

func (e *Editor) ID() string     { return e.id }
func (e *Editor) QuizID() string { return e.quizID }

// Document returns a snapshot of the in-memory document.
func (e *Editor) Document() domain.CompletionDocument {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return snapshot(e.doc)
}

// IdleSince reports the last mutation time, used by the store's janitor.
func (e *Editor) IdleSince() time.Time {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.lastTouched
}

// Preview renders the current document with the shared render routine.
func (e *Editor) Preview() (string, error) {
	return e.render(e.Document())
}

// Apply patches scalar document fields.
func (e *Editor) Apply(p DocumentPatch) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if p.Title != nil {
		e.doc.Title = *p.Title
	}
	if p.Description != nil {
		e.doc.Description = *p.Description
	}
	if p.PrimaryButtonText != nil {
		e.doc.PrimaryButtonText = *p.PrimaryButtonText
	}
	if p.PrimaryButtonURL != nil {
		e.doc.PrimaryButtonURL = *p.PrimaryButtonURL
	}
	if p.BackgroundColor != nil {
		e.doc.BackgroundColor = *p.BackgroundColor
	}
	if p.TextColor != nil {
		e.doc.TextColor = *p.TextColor
	}
	if p.BackgroundImage != nil {
		e.doc.BackgroundImage = *p.BackgroundImage
	}
	if p.HeaderEnabled != nil {
		e.doc.Header.Enabled = *p.HeaderEnabled
	}
	if p.HeaderText != nil {
		e.doc.Header.Text = *p.HeaderText
	}
	if p.HeaderFontSize != nil {
		e.doc.Header.FontSize = *p.HeaderFontSize
	}
	if p.SubHeaderEnabled != nil {
		e.doc.SubHeader.Enabled = *p.SubHeaderEnabled
	}
	if p.SubHeaderText != nil {
		e.doc.SubHeader.Text = *p.SubHeaderText
	}
	if p.SubHeaderFontSize != nil {
		e.doc.SubHeader.FontSize = *p.SubHeaderFontSize
	}
	if p.MainImageEnabled != nil {
		e.doc.MainImage.Enabled = *p.MainImageEnabled
	}
	if p.MainImageURL != nil {
		e.doc.MainImage.URL = *p.MainImageURL
	}
	if p.MainImageAlt != nil {
		e.doc.MainImage.AltText = *p.MainImageAlt
	}
	if p.FooterEnabled != nil {
		e.doc.Footer.Enabled = *p.FooterEnabled
	}
	if p.FooterText != nil {
		e.doc.Footer.Text = *p.FooterText
	}
	e.broadcastLocked()
}

// AddTextBlock appends a block with kind-specific placeholder content and
// returns it.
func (e *Editor) AddTextBlock(kind domain.BlockKind) domain.TextBlock {
	block := domain.TextBlock{
		ID:        uuid.NewString(),
		Kind:      kind,
		FontSize:  domain.FontSizeMD,
		Alignment: domain.AlignCenter,
	}
	switch kind {
	case domain.BlockHeading:
		block.Content = "New Heading"
		block.FontSize = domain.FontSizeLG
	case domain.BlockQuote:
		block.Content = "New Quote"
	default:
		block.Kind = domain.BlockParagraph
		block.Content = "New paragraph content"
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	e.doc.TextBlocks = append(e.doc.TextBlocks, block)
	e.broadcastLocked()
	return block
}

// UpdateTextBlock patches the block with the matching ID.
func (e *Editor) UpdateTextBlock(id string, p TextBlockPatch) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	i := e.doc.TextBlockByID(id)
	if i < 0 {
		return domain.ErrItemNotFound
	}
	b := &e.doc.TextBlocks[i]
	if p.Kind != nil {
		b.Kind = *p.Kind
	}
	if p.Content != nil {
		b.Content = *p.Content
	}
	if p.FontSize != nil {
		b.FontSize = *p.FontSize
	}
	if p.Alignment != nil {
		b.Alignment = *p.Alignment
	}
	e.broadcastLocked()
	return nil
}

// RemoveTextBlock deletes the block with the matching ID; removing an absent
// ID is a no-op.
func (e *Editor) RemoveTextBlock(id string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	i := e.doc.TextBlockByID(id)
	if i < 0 {
		return
	}
	e.doc.TextBlocks = append(e.doc.TextBlocks[:i], e.doc.TextBlocks[i+1:]...)
	e.broadcastLocked()
}

// AddButton appends a secondary button with placeholder content.
func (e *Editor) AddButton() domain.SecondaryButton {
	btn := domain.SecondaryButton{
		ID:    uuid.NewString(),
		Text:  "New Button",
		Style: domain.ButtonSecondary,
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	e.doc.SecondaryButtons = append(e.doc.SecondaryButtons, btn)
	e.broadcastLocked()
	return btn
}

// UpdateButton patches the secondary button with the matching ID.
func (e *Editor) UpdateButton(id string, p ButtonPatch) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	i := e.doc.ButtonByID(id)
	if i < 0 {
		return domain.ErrItemNotFound
	}
	b := &e.doc.SecondaryButtons[i]
	if p.Text != nil {
		b.Text = *p.Text
	}
	if p.URL != nil {
		b.URL = *p.URL
	}
	if p.Style != nil {
		b.Style = *p.Style
	}
	e.broadcastLocked()
	return nil
}

// RemoveButton deletes the secondary button with the matching ID.
func (e *Editor) RemoveButton(id string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	i := e.doc.ButtonByID(id)
	if i < 0 {
		return
	}
	e.doc.SecondaryButtons = append(e.doc.SecondaryButtons[:i], e.doc.SecondaryButtons[i+1:]...)
	e.broadcastLocked()
}

// AddFooterLink appends a footer link with placeholder content.
func (e *Editor) AddFooterLink() domain.FooterLink {
	link := domain.FooterLink{
		ID:   uuid.NewString(),
		Text: "New Link",
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	e.doc.Footer.Links = append(e.doc.Footer.Links, link)
	e.broadcastLocked()
	return link
}

// UpdateFooterLink patches the footer link with the matching ID.
func (e *Editor) UpdateFooterLink(id string, p FooterLinkPatch) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	i := e.doc.FooterLinkByID(id)
	if i < 0 {
		return domain.ErrItemNotFound
	}
	l := &e.doc.Footer.Links[i]
	if p.Text != nil {
		l.Text = *p.Text
	}
	if p.URL != nil {
		l.URL = *p.URL
	}
	e.broadcastLocked()
	return nil
}

// RemoveFooterLink deletes the footer link with the matching ID.
func (e *Editor) RemoveFooterLink(id string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	i := e.doc.FooterLinkByID(id)
	if i < 0 {
		return
	}
	e.doc.Footer.Links = append(e.doc.Footer.Links[:i], e.doc.Footer.Links[i+1:]...)
	e.broadcastLocked()
}

func (e *Editor) setPrimaryButtonURL(url string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.doc.PrimaryButtonURL = url
	e.broadcastLocked()
}

func (e *Editor) setBackgroundImage(uri string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.doc.BackgroundImage = uri
	e.broadcastLocked()
}

func (e *Editor) setMainImageURL(uri string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.doc.MainImage.URL = uri
	e.broadcastLocked()
}

// Subscribe returns a channel receiving preview HTML after every mutation,
// starting with the current state. The caller must invoke cancel to avoid
// leaks.
func (e *Editor) Subscribe() (<-chan string, func()) {
	ch := make(chan string, 4)

	e.mu.Lock()
	e.subscribers[ch] = struct{}{}
	initial := e.previewLocked()
	e.mu.Unlock()

	ch <- initial

	cancel := func() {
		e.mu.Lock()
		if _, ok := e.subscribers[ch]; ok {
			delete(e.subscribers, ch)
			close(ch)
		}
		e.mu.Unlock()
	}
	return ch, cancel
}

func (e *Editor) broadcastLocked() {
	e.lastTouched = e.now()
	if len(e.subscribers) == 0 {
		return
	}
	html := e.previewLocked()
	for ch := range e.subscribers {
		select {
		case ch <- html:
		default:
			// Drop the stale preview so a slow client never blocks edits.
			select {
			case <-ch:
			default:
			}
			ch <- html
		}
	}
}

func (e *Editor) previewLocked() string {
	html, err := e.render(snapshot(e.doc))
	if err != nil {
		return ""
	}
	return html
}

// snapshot deep-copies the document so callers never share backing arrays
// with the editor's mutable state.
func snapshot(doc domain.CompletionDocument) domain.CompletionDocument {
	out := doc
	out.TextBlocks = append([]domain.TextBlock(nil), doc.TextBlocks...)
	out.SecondaryButtons = append([]domain.SecondaryButton(nil), doc.SecondaryButtons...)
	out.Footer.Links = append([]domain.FooterLink(nil), doc.Footer.Links...)
	return out
}
