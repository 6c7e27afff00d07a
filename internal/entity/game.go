package entity

const (
	StatusFinished = "finished"
	StatusOngoing  = "ongoing"

	ResultPerson   = "person"
	ResultComputer = "computer"
	ResultTie      = "tie"
	ResultNone     = ""
)

// Game is one human-versus-computer match. The person always moves first.
type Game struct {
	ID     string `json:"id"`
	Board  *Board `json:"board"`
	Turn   Player `json:"turn"`
	Winner string `json:"winner"`
	Status string `json:"status"`
}

func NewGame(id string, size int) *Game {
	return &Game{
		ID:     id,
		Board:  NewBoard(size),
		Turn:   Person,
		Status: StatusOngoing,
	}
}

func (that *Game) IsFinished() bool {
	return that.Status == StatusFinished
}

func (that *Game) IsOngoing() bool {
	return that.Status == StatusOngoing
}
