package http

import "reverse-chess/internal/view"

// CreateRoomRequest represents the payload for POST /rooms.
type CreateRoomRequest struct {
	ExcludeCenter bool `json:"excludeCenter"`
}

// PlaceRequest represents a placement on the current player's behalf.
type PlaceRequest struct {
	Row *int `json:"row" binding:"required"`
	Col *int `json:"col" binding:"required"`
}

// RoomResponse is returned by every room endpoint.
type RoomResponse struct {
	RoomCode string    `json:"roomCode"`
	View     view.View `json:"view"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}
