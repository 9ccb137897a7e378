package devreload

import (
	"context"
	"encoding/gob"
	"fmt"
	"time"

	"github.com/coder/websocket"
	"github.com/rs/zerolog/log"
)

// Delays between reconnect attempts; doubled after every failure.
const (
	retryMin = 200 * time.Millisecond
	retryMax = 5 * time.Second
)

// Listen connects to a reload server at url (ws:// or wss://) and calls fn
// for every reload packet. It returns nil once ctx is done.
func Listen(ctx context.Context, url string, fn func(ReloadPacket)) error {
	return listen(ctx, url, fn, func() {})
}

// ListenRetry is Listen that reconnects whenever the server goes away, so a
// restarted watch server picks its clients back up. It returns once ctx is done.
func ListenRetry(ctx context.Context, url string, fn func(ReloadPacket)) {
	delay := retryMin
	for {
		connected := false
		err := listen(ctx, url, fn, func() { connected = true })
		if ctx.Err() != nil {
			return
		}
		if connected {
			delay = retryMin
		}
		log.Warn().Err(err).Dur("retry_in", delay).Msg("reload: connection lost")

		select {
		case <-ctx.Done():
			return
		case <-time.After(delay):
		}
		delay = min(delay*2, retryMax)
	}
}

func listen(ctx context.Context, url string, fn func(ReloadPacket), onConnect func()) error {
	RegisterGobTypes()
	c, _, err := websocket.Dial(ctx, url, nil)
	if err != nil {
		return fmt.Errorf("dial %s: %w", url, err)
	}
	onConnect()
	conn := websocket.NetConn(ctx, c, websocket.MessageBinary)
	defer conn.Close()

	dec := gob.NewDecoder(conn)
	for {
		var packet Packet
		if err := dec.Decode(&packet); err != nil {
			if ctx.Err() != nil {
				return nil
			}
			return fmt.Errorf("reload connection: %w", err)
		}

		switch data := packet.Data.(type) {
		case HelloPacket:
			log.Debug().Uint64("seq", data.Seq).Msg("reload: connected")
		case ReloadPacket:
			fn(data)
		default:
			log.Warn().Int("type", int(packet.Type)).Msg("reload: unexpected packet")
		}
	}
}
