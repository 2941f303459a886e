package ws

import (
	"context"
	"time"

	"nhooyr.io/websocket"
	"nhooyr.io/websocket/wsjson"

	"github.com/signalnine/wonders/algorithms"
	"github.com/signalnine/wonders/engine"
)

// ---------- message envelope ----------

type Msg struct {
	T string                 `json:"t"`           // type
	M map[string]interface{} `json:"m,omitempty"` // payload
}

const (
	MsgPrompt = "prompt" // server: options for this round
	MsgChoose = "choose" // client: {"index": n}, 1-based
	MsgError  = "error"  // server: bad choice, answer the last prompt again
	MsgResult = "result" // server: final scores
)

// remote is the seat played over the socket. Once the connection fails the
// seat is played by fallback until the game ends.
type remote struct {
	ctx         context.Context
	conn        *websocket.Conn
	moveTimeout time.Duration
	fallback    *algorithms.Random
	err         error
}

func (r *remote) NextAction(player *engine.Player, visible *engine.VisibleGame) engine.Action {
	if r.err != nil {
		return r.fallback.NextAction(player, visible)
	}
	options := algorithms.Candidates(player, visible)
	if err := r.write(promptMsg(player, visible, options)); err != nil {
		r.err = err
		return r.fallback.NextAction(player, visible)
	}

	for {
		ctx, cancel := context.WithTimeout(r.ctx, r.moveTimeout)
		var m Msg
		err := wsjson.Read(ctx, r.conn, &m)
		cancel()
		if err != nil {
			r.err = err
			return r.fallback.NextAction(player, visible)
		}
		if m.T != MsgChoose {
			continue
		}
		n, ok := m.M["index"].(float64)
		if !ok || int(n) < 1 || int(n) > len(options) {
			if err := r.write(Msg{T: MsgError, M: map[string]interface{}{"code": "BAD_INDEX", "options": len(options)}}); err != nil {
				r.err = err
				return r.fallback.NextAction(player, visible)
			}
			continue
		}
		return options[int(n)-1]
	}
}

func (r *remote) write(m Msg) error {
	ctx, cancel := context.WithTimeout(r.ctx, r.moveTimeout)
	defer cancel()
	return wsjson.Write(ctx, r.conn, m)
}

func promptMsg(player *engine.Player, visible *engine.VisibleGame, options []engine.Action) Msg {
	hand := make([]string, 0, len(player.Hand()))
	for _, c := range player.Hand() {
		hand = append(hand, c.Name())
	}
	opts := make([]map[string]interface{}, 0, len(options))
	for i, a := range options {
		o := map[string]interface{}{
			"index": i + 1,
			"kind":  a.Kind.String(),
			"card":  a.Card.Name(),
			"text":  a.String(),
		}
		if a.Kind == engine.ActionBuild {
			o["pay"] = algorithms.DescribeBorrowing(a.Borrowing, visible)
			o["cost"] = a.Card.Cost()[engine.Coins] + player.BorrowCost(a.Borrowing)
		}
		opts = append(opts, o)
	}
	return Msg{T: MsgPrompt, M: map[string]interface{}{
		"turn":    visible.Turn,
		"age":     visible.Age().String(),
		"coins":   player.Coins(),
		"hand":    hand,
		"options": opts,
	}}
}
