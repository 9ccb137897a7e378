package devreload

import "encoding/gob"

// RegisterGobTypes registers all types that will be sent over the wire.
func RegisterGobTypes() {
	gob.Register(HelloPacket{})
	gob.Register(ReloadPacket{})
}

type PacketType int

const (
	PacketHello  PacketType = 1
	PacketReload PacketType = 2
)

type Packet struct {
	Type PacketType
	Data interface{}
}

// HelloPacket is sent once on connect with the sequence of the last reload.
type HelloPacket struct {
	Seq uint64
}

// ReloadPacket tells clients that files under the assets dir changed.
// Paths are slash-separated and relative to the assets dir.
type ReloadPacket struct {
	Seq   uint64
	Paths []string
}
