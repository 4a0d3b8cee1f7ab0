package ws

import "reverse-chess/internal/game"

type RoomManager interface {
	State(roomCode string) (game.State, error)
	// Attach calls fn with the current state while no operation on the room
	// can run.
	Attach(roomCode string, fn func(game.State)) error
	Place(roomCode string, p game.Pos) (game.State, error)
	Undo(roomCode string) (game.State, error)
	NewGame(roomCode string) (game.State, error)
	ResetSameBlock(roomCode string) (game.State, error)
}
