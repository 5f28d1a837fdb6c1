package entity

const (
	StatusFinished = "finished"
	StatusOngoing  = "ongoing"

	PlayerX   = "X"
	PlayerO   = "O"
	PlayerTie = "-"

	EmptyCell = ""

	BoardSide  = 3
	BoardCells = BoardSide * BoardSide

	MinVanishLimit     = 2
	MaxVanishLimit     = 5
	DefaultVanishLimit = 3
)

// WinCombos lists the 8 winning lines over the flat board:
// three rows, three columns, then both diagonals.
var WinCombos = [][3]int{
	{0, 1, 2},
	{3, 4, 5},
	{6, 7, 8},
	{0, 3, 6},
	{1, 4, 7},
	{2, 5, 8},
	{0, 4, 8},
	{2, 4, 6},
}

// Move is a single placed mark. Immutable once recorded; Seq grows
// monotonically for the lifetime of a game, surviving evictions.
type Move struct {
	Row    int    `json:"row"`
	Col    int    `json:"col"`
	Player string `json:"player"`
	Seq    int    `json:"seq"`
}

// Game holds the whole state of one vanishing tic-tac-toe session.
// The board is flat, indexed row*BoardSide+col. History is ordered
// oldest first and never grows past 2*VanishLimit entries.
type Game struct {
	ID          string             `json:"id"`
	Board       [BoardCells]string `json:"board"`
	History     []Move             `json:"history"`
	VanishLimit int                `json:"vanish_limit"`
	Turn        string             `json:"player_turn"`
	Winner      string             `json:"winner"`
	Status      string             `json:"status"`
	NextSeq     int                `json:"next_seq"`
}

func NewGame(id string, vanishLimit int) *Game {
	return &Game{
		ID:          id,
		Board:       [BoardCells]string{},
		History:     []Move{},
		VanishLimit: vanishLimit,
		Turn:        PlayerX,
		Winner:      "",
		Status:      StatusOngoing,
	}
}

// ValidVanishLimit reports whether the limit is one the game accepts.
func ValidVanishLimit(limit int) bool {
	return limit >= MinVanishLimit && limit <= MaxVanishLimit
}

// Capacity - how many marks the board retains before eviction starts.
func (that *Game) Capacity() int {
	return that.VanishLimit * 2
}

// ApplyMove places the current player's mark at (row, col) and runs the
// full turn: record the move, evict the oldest mark once history would
// exceed capacity, then settle winner/tie/turn against the post-eviction
// board. Illegal moves (finished game, occupied cell, coordinates off
// the board) leave the state untouched and return false.
func (that *Game) ApplyMove(row, col int) bool {
	if that.Status == StatusFinished {
		return false
	}

	if row < 0 || row >= BoardSide || col < 0 || col >= BoardSide {
		return false
	}

	cell := row*BoardSide + col
	if that.Board[cell] != EmptyCell {
		return false
	}

	player := that.Turn

	that.Board[cell] = player
	that.History = append(that.History, Move{Row: row, Col: col, Player: player, Seq: that.NextSeq})
	that.NextSeq++

	// history grows by one per move, so at most one mark vanishes
	if len(that.History) > that.Capacity() {
		oldest := that.History[0]
		that.History = that.History[1:]
		that.Board[oldest.Row*BoardSide+oldest.Col] = EmptyCell
	}

	switch winner := DetermineGameResult(that.Board); winner {
	case PlayerX, PlayerO:
		that.Winner = winner
		that.Status = StatusFinished
	case PlayerTie:
		that.Winner = PlayerTie
		that.Status = StatusFinished
	default:
		that.Turn = toggleMark(player)
	}

	return true
}

// DetermineGameResult returns the winning mark, PlayerTie for a full
// board with no winner, or "" while the game is still open.
func DetermineGameResult(board [BoardCells]string) string {
	for _, combo := range WinCombos {
		a, b, c := board[combo[0]], board[combo[1]], board[combo[2]]
		if a != EmptyCell && a == b && b == c {
			return a
		}
	}

	if IsBoardFull(board) {
		return PlayerTie
	}

	return ""
}

// IsBoardFull reports whether no empty cell remains.
func IsBoardFull(board [BoardCells]string) bool {
	for _, cell := range board {
		if cell == EmptyCell {
			return false
		}
	}

	return true
}

// Cell returns the mark at (row, col), EmptyCell when off the board.
func (that *Game) Cell(row, col int) string {
	if row < 0 || row >= BoardSide || col < 0 || col >= BoardSide {
		return EmptyCell
	}

	return that.Board[row*BoardSide+col]
}

// CellAge returns how many moves ago the mark at (row, col) was placed,
// counting back from the most recent move (0 = just played). The second
// return is false for empty or off-board cells. Display only, the rules
// never consult it.
func (that *Game) CellAge(row, col int) (int, bool) {
	for i := len(that.History) - 1; i >= 0; i-- {
		move := that.History[i]
		if move.Row == row && move.Col == col {
			return len(that.History) - 1 - i, true
		}
	}

	return 0, false
}

// MoveVanishesIn returns how many more moves the history entry at index
// idx survives before eviction reaches it. Countdown for the UI only;
// the eviction trigger itself is len(History) > Capacity().
func (that *Game) MoveVanishesIn(idx int) int {
	age := len(that.History) - idx
	return that.Capacity() - age + 1
}

func (that *Game) IsFinished() bool {
	return that.Status == StatusFinished
}

func (that *Game) IsOngoing() bool {
	return that.Status == StatusOngoing
}

func toggleMark(currentMark string) string {
	if currentMark == PlayerX {
		return PlayerO
	}
	return PlayerX
}
