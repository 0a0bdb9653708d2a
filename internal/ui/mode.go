package ui

// Mode is the current input mode. It decides how a key press is read.
type Mode int

const (
	ModeNormal Mode = iota
	ModeInsert
	ModeDelete
)

func (m Mode) String() string {
	switch m {
	case ModeNormal:
		return "NORMAL"
	case ModeInsert:
		return "INSERT"
	case ModeDelete:
		return "DELETE"
	default:
		return "UNKNOWN"
	}
}
