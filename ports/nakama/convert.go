package nakama

import (
	"fmt"

	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/signalnine/wonders/algorithms"
	"github.com/signalnine/wonders/engine"
)

// encodePayload marshals a JSON-like map as a protojson Struct. Values must be
// structpb compatible: slices as []interface{}.
func encodePayload(m map[string]interface{}) ([]byte, error) {
	s, err := structpb.NewStruct(m)
	if err != nil {
		return nil, err
	}
	return (&protojson.MarshalOptions{EmitUnpopulated: true}).Marshal(s)
}

func decodePayload(data []byte) (*structpb.Struct, error) {
	s := &structpb.Struct{}
	if len(data) == 0 {
		return s, nil
	}
	if err := protojson.Unmarshal(data, s); err != nil {
		return nil, err
	}
	return s, nil
}

// choiceIndex reads the 1-based "index" field of a choose message
func choiceIndex(s *structpb.Struct) (int, error) {
	v, ok := s.GetFields()["index"]
	if !ok {
		return 0, fmt.Errorf("missing index")
	}
	n, ok := v.GetKind().(*structpb.Value_NumberValue)
	if !ok {
		return 0, fmt.Errorf("index is not a number")
	}
	return int(n.NumberValue), nil
}

func cardNames(cards []engine.Card) []interface{} {
	out := make([]interface{}, 0, len(cards))
	for _, c := range cards {
		out = append(out, c.Name())
	}
	return out
}

func boardsToPayload(players []engine.PublicPlayer) []interface{} {
	out := make([]interface{}, 0, len(players))
	for i, p := range players {
		out = append(out, map[string]interface{}{
			"seat":   i,
			"wonder": p.Wonder.Name(),
			"coins":  p.Coins,
			"built":  cardNames(p.Built),
		})
	}
	return out
}

func optionsToPayload(player *engine.Player, visible *engine.VisibleGame, options []engine.Action) map[string]interface{} {
	opts := make([]interface{}, 0, len(options))
	for i, a := range options {
		o := map[string]interface{}{
			"index": i + 1,
			"kind":  a.Kind.String(),
			"card":  a.Card.Name(),
			"text":  a.String(),
		}
		if a.Kind == engine.ActionBuild {
			o["pay"] = algorithms.DescribeBorrowing(a.Borrowing, visible)
			o["borrow_cost"] = player.BorrowCost(a.Borrowing)
		}
		opts = append(opts, o)
	}
	return map[string]interface{}{
		"turn":    visible.Turn,
		"age":     visible.Age().String(),
		"seat":    visible.PlayerIndex,
		"coins":   player.Coins(),
		"hand":    cardNames(player.Hand()),
		"options": opts,
	}
}

func scoresToPayload(scores []int) []interface{} {
	out := make([]interface{}, len(scores))
	for i, s := range scores {
		out[i] = s
	}
	return out
}
