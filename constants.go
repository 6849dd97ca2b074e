package main

// Game configuration constants
const (
	GenedleMaxAttempts = 5 // Maximum number of guesses per Genedle game

	SpellingMinLength  = 4  // Shortest symbol Spelling Gene will submit
	SpellingMinWords   = 10 // Minimum number of findable symbols per puzzle
	SpellingNumLetters = 7  // Letters in the puzzle (outer ring + center)
)

// Letter state constants, as returned by the oracle. Empty marks cells
// that have not been evaluated yet (typed row, unfilled rows).
const (
	LetterStateCorrect = "correct"
	LetterStatePresent = "present"
	LetterStateAbsent  = "absent"
	LetterStateEmpty   = "empty"
)

// Game mode constants
const (
	ModeHard   = "hard"
	ModeNormal = "normal"
)

// Game status constants
const (
	StatusInProgress = "in_progress"
	StatusWon        = "won"
	StatusLost       = "lost"
)

// Oracle rejection reason codes
const (
	ReasonNotEnoughLetters = "not_enough_letters"
	ReasonTooManyLetters   = "too_many_letters"
	ReasonInvalidLetter    = "invalid_letter"
	ReasonNotInCorpus      = "not_in_corpus"
	ReasonInternalError    = "internal_error"
)

// Oracle response envelope types
const (
	VerdictTypeValid   = "valid"
	VerdictTypeInvalid = "invalid"
)

// Session configuration constants
const (
	SessionCookieName = "session_id"
)

// Route constants
const (
	RouteHome          = "/"
	RouteGenedleKey    = "/genedle/key"
	RouteGenedleDelete = "/genedle/delete"
	RouteGenedleGuess  = "/genedle/guess"
	RouteGenedleNew    = "/genedle/new-game"
	RouteGenedleState  = "/genedle/state"

	RouteSpelling       = "/spelling-gene"
	RouteSpellingLetter = "/spelling-gene/letter"
	RouteSpellingDelete = "/spelling-gene/delete"
	RouteSpellingGuess  = "/spelling-gene/guess"
	RouteSpellingNew    = "/spelling-gene/new-game"
	RouteSpellingState  = "/spelling-gene/state"
)

// User-facing message constants
const (
	MsgWon  = "Geneius!"
	MsgLost = "Game over"

	MsgNotEnoughLetters  = "Not enough letters."
	MsgTooManyLetters    = "Too many letters."
	MsgInvalidLetter     = "Guess contains an invalid character."
	MsgNotInCorpus       = "Not a recognised gene symbol."
	MsgInternalError     = "The gene server had a problem. Try again."
	MsgUnknownRejection  = "The guess was rejected. Try again."
	MsgOracleUnreachable = "Couldn't reach the gene server. Try again."
	MsgGameOver          = "The game is over. Start a new one."
	MsgCheckInFlight     = "Still checking your last guess."
	MsgNoPuzzle          = "Couldn't fetch today's puzzle. Try a new game."
)

// Context key constants
const (
	requestIDKey contextKey = "request_id"
)
