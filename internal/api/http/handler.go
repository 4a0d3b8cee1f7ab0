package http

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"reverse-chess/internal/game"
	"reverse-chess/internal/room"
	"reverse-chess/internal/view"
)

func respond(c *gin.Context, code string, st game.State) {
	c.JSON(http.StatusOK, RoomResponse{RoomCode: code, View: view.Build(st)})
}

func fail(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, room.ErrRoomNotFound):
		status = http.StatusNotFound
	case errors.Is(err, game.ErrInvalidPlacement):
		status = http.StatusBadRequest
	case errors.Is(err, game.ErrNothingToUndo):
		status = http.StatusConflict
	case errors.Is(err, room.ErrNoFreeCode):
		status = http.StatusServiceUnavailable
	}
	_ = c.Error(err)
	c.JSON(status, ErrorResponse{Error: err.Error()})
}

// @Summary Create new room
// @Description Create a room with a fresh game and a random blocked cell
// @Tags Room
// @Accept json
// @Produce json
// @Param request body CreateRoomRequest false "Room options"
// @Success 200 {object} RoomResponse
// @Failure 503 {object} ErrorResponse
// @Router /rooms [post]
func CreateRoomHandler(rm *room.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req CreateRoomRequest
		if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid payload"})
			return
		}
		r, err := rm.CreateRoom(room.CreateOptions{ExcludeCenter: req.ExcludeCenter})
		if err != nil {
			fail(c, err)
			return
		}
		respond(c, r.Code, r.State())
	}
}

// @Summary Get room state
// @Tags Room
// @Produce json
// @Param code path string true "Room Code"
// @Success 200 {object} RoomResponse
// @Router /rooms/{code} [get]
func GetRoomHandler(rm *room.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		code := c.Param("code")
		st, err := rm.State(code)
		if err != nil {
			fail(c, err)
			return
		}
		respond(c, code, st)
	}
}

// @Summary Place the current player's next piece
// @Description Rejected placements leave the game unchanged
// @Tags Game
// @Accept json
// @Produce json
// @Param code path string true "Room Code"
// @Param request body PlaceRequest true "Target cell"
// @Success 200 {object} RoomResponse
// @Failure 400 {object} ErrorResponse
// @Router /rooms/{code}/place [post]
func PlaceHandler(rm *room.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req PlaceRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: "row and col required"})
			return
		}
		code := c.Param("code")
		st, err := rm.Place(code, game.Pos{Row: *req.Row, Col: *req.Col})
		if err != nil {
			fail(c, err)
			return
		}
		respond(c, code, st)
	}
}

// @Summary Undo the last placement
// @Tags Game
// @Produce json
// @Param code path string true "Room Code"
// @Success 200 {object} RoomResponse
// @Failure 409 {object} ErrorResponse
// @Router /rooms/{code}/undo [post]
func UndoHandler(rm *room.Manager) gin.HandlerFunc {
	return opHandler(rm.Undo)
}

// @Summary Start a new game with a new blocked cell
// @Tags Game
// @Produce json
// @Param code path string true "Room Code"
// @Success 200 {object} RoomResponse
// @Router /rooms/{code}/new-game [post]
func NewGameHandler(rm *room.Manager) gin.HandlerFunc {
	return opHandler(rm.NewGame)
}

// @Summary Restart keeping the blocked cell
// @Tags Game
// @Produce json
// @Param code path string true "Room Code"
// @Success 200 {object} RoomResponse
// @Router /rooms/{code}/reset [post]
func ResetHandler(rm *room.Manager) gin.HandlerFunc {
	return opHandler(rm.ResetSameBlock)
}

func opHandler(op func(code string) (game.State, error)) gin.HandlerFunc {
	return func(c *gin.Context) {
		code := c.Param("code")
		st, err := op(code)
		if err != nil {
			fail(c, err)
			return
		}
		respond(c, code, st)
	}
}
