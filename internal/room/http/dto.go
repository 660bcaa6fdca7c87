package http

import (
	"github.com/nekogravitycat/room-booking-backend/internal/room"
)

// RoomTag is the compact room reference embedded in other responses.
type RoomTag struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

type RoomResponse struct {
	ID        int64    `json:"id"`
	Name      string   `json:"name"`
	Capacity  int      `json:"capacity"`
	Equipment []string `json:"equipment"`
}

func NewResponse(r *room.Room) RoomResponse {
	equipment := r.Equipment
	if equipment == nil {
		equipment = []string{}
	}
	return RoomResponse{
		ID:        r.ID,
		Name:      r.Name,
		Capacity:  r.Capacity,
		Equipment: equipment,
	}
}

// ListRoomsRequest defines query parameters for listing rooms.
type ListRoomsRequest struct {
	Equipment []string `form:"equipment"`
}
