package domain

import "errors"

var (
	// ErrQuizNotFound indicates no quiz exists for the given ID or slug.
	ErrQuizNotFound = errors.New("quiz not found")
	// ErrQuizInactive indicates the quiz exists but is not accepting respondents.
	ErrQuizInactive = errors.New("quiz is not active")
	// ErrDocumentNotFound indicates no completion document is stored for the quiz.
	ErrDocumentNotFound = errors.New("completion document not found")
	// ErrRunNotFound indicates the quiz run has expired or never existed.
	ErrRunNotFound = errors.New("quiz run not found")
	// ErrEditorNotFound indicates the editor session has expired or never existed.
	ErrEditorNotFound = errors.New("editor session not found")
	// ErrItemNotFound indicates a list item ID matched nothing in its collection.
	ErrItemNotFound = errors.New("item not found")

	// ErrInvalidQuiz rejects quizzes without a title or with questions that
	// carry fewer than two options.
	ErrInvalidQuiz = errors.New("quiz needs a title and questions with at least two options")
	// ErrRedirectURLRequired blocks saving a document without a primary button URL.
	ErrRedirectURLRequired = errors.New("redirect URL required")
	// ErrSelectionRequired blocks advancing a run before an option is selected.
	ErrSelectionRequired = errors.New("an option must be selected before advancing")
	// ErrUnknownOption indicates the selected option is not one of the question's choices.
	ErrUnknownOption = errors.New("option is not part of the current question")
	// ErrRunCompleted indicates the run already reached its terminal state.
	ErrRunCompleted = errors.New("quiz run already completed")
	// ErrImageTooLarge rejects embedded images above the configured byte cap.
	ErrImageTooLarge = errors.New("image exceeds the embedded size limit")
	// ErrNotImage rejects uploads whose bytes are not an image.
	ErrNotImage = errors.New("uploaded data is not an image")

	// ErrInvalidCredentials covers failed sign-in attempts.
	ErrInvalidCredentials = errors.New("invalid email or password")
	// ErrEmailTaken indicates a sign-up against an existing email.
	ErrEmailTaken = errors.New("email already registered")
	// ErrUserNotFound indicates no account exists for the email or ID.
	ErrUserNotFound = errors.New("user not found")
	// ErrSessionExpired covers missing, malformed or expired session tokens.
	ErrSessionExpired = errors.New("session expired or invalid")
	// ErrNotOwner blocks admin operations on quizzes owned by someone else.
	ErrNotOwner = errors.New("quiz belongs to another user")
)
