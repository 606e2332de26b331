package domain

import "time"

// FontSize is the rendering size for headers and text blocks.
type FontSize string

const (
	FontSizeSM FontSize = "sm"
	FontSizeMD FontSize = "md"
	FontSizeLG FontSize = "lg"
	FontSizeXL FontSize = "xl"
)

// BlockKind distinguishes how a text block renders.
type BlockKind string

const (
	BlockParagraph BlockKind = "paragraph"
	BlockHeading   BlockKind = "heading"
	BlockQuote     BlockKind = "quote"
)

// Alignment positions a text block horizontally.
type Alignment string

const (
	AlignLeft   Alignment = "left"
	AlignCenter Alignment = "center"
	AlignRight  Alignment = "right"
)

// ButtonStyle picks the visual treatment of a secondary button.
type ButtonStyle string

const (
	ButtonPrimary   ButtonStyle = "primary"
	ButtonSecondary ButtonStyle = "secondary"
	ButtonOutline   ButtonStyle = "outline"
)

// HeaderSection is the optional header or sub-header above the hero text.
// Disabling a section keeps its fields; Enabled is the only visibility gate.
type HeaderSection struct {
	Enabled  bool     `json:"enabled"`
	Text     string   `json:"text"`
	FontSize FontSize `json:"fontSize"`
}

// ImageSection is the optional main image below the sub-header.
type ImageSection struct {
	Enabled bool   `json:"enabled"`
	URL     string `json:"url"`
	AltText string `json:"altText"`
}

// TextBlock is one ordered content item on the completion page. IDs are
// stable list-item identity for updates/removals, unique within the list.
type TextBlock struct {
	ID        string    `json:"id"`
	Kind      BlockKind `json:"kind"`
	Content   string    `json:"content"`
	FontSize  FontSize  `json:"fontSize"`
	Alignment Alignment `json:"alignment"`
}

// SecondaryButton is an additional call-to-action rendered after the
// primary button. Style differences are purely presentational.
type SecondaryButton struct {
	ID    string      `json:"id"`
	Text  string      `json:"text"`
	URL   string      `json:"url"`
	Style ButtonStyle `json:"style"`
}

// FooterLink is one ordered link inside the footer.
type FooterLink struct {
	ID   string `json:"id"`
	Text string `json:"text"`
	URL  string `json:"url"`
}

// FooterSection is the optional footer with its ordered links.
type FooterSection struct {
	Enabled bool         `json:"enabled"`
	Text    string       `json:"text"`
	Links   []FooterLink `json:"links"`
}

// CompletionDocument describes a quiz's post-completion page: content,
// styling and call-to-actions. It is persisted whole, keyed by quiz ID, and
// list order is render order.
type CompletionDocument struct {
	Title             string            `json:"title"`
	Description       string            `json:"description"`
	PrimaryButtonText string            `json:"primaryButtonText"`
	PrimaryButtonURL  string            `json:"primaryButtonUrl"`
	BackgroundColor   string            `json:"backgroundColor"`
	TextColor         string            `json:"textColor"`
	BackgroundImage   string            `json:"backgroundImage,omitempty"`
	Header            HeaderSection     `json:"header"`
	SubHeader         HeaderSection     `json:"subHeader"`
	MainImage         ImageSection      `json:"mainImage"`
	TextBlocks        []TextBlock       `json:"textBlocks"`
	SecondaryButtons  []SecondaryButton `json:"secondaryButtons"`
	Footer            FooterSection     `json:"footer"`
}

// Question is one step of a quiz: a prompt with at least two options.
type Question struct {
	Prompt  string   `json:"prompt"`
	Options []string `json:"options"`
}

// Quiz owns an ordered question list and one completion document. ShareSlug
// is the opaque public token used in the quiz URL.
type Quiz struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description,omitempty"`
	OwnerID     string     `json:"ownerId"`
	Active      bool       `json:"active"`
	ShareSlug   string     `json:"shareSlug"`
	ShareURL    string     `json:"shareUrl"`
	Questions   []Question `json:"questions"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
}

// Response is one respondent's recorded answer list for a quiz. Answers are
// stored in question order; nothing in this service scores them.
type Response struct {
	ID          string    `json:"id"`
	QuizID      string    `json:"quizId"`
	RunID       string    `json:"runId"`
	Answers     []string  `json:"answers"`
	CompletedAt time.Time `json:"completedAt"`
}

// User is an admin account able to create and manage quizzes.
type User struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	Name         string    `json:"name"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"createdAt"`
}

// Session is an authenticated admin session.
type Session struct {
	Token     string    `json:"token"`
	UserID    string    `json:"userId"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	ExpiresAt time.Time `json:"expiresAt"`
}
