package ws

import "tileclaim/internal/shared"

type RoomManager interface {
	CreateRoom(mapID, creatorName, connID string) (string, shared.Snapshot)
	JoinRoom(code, playerName, connID string) (shared.Snapshot, error)
	LeaveRoom(connID string)
	ClickTile(code, connID string, tileID int)
}
