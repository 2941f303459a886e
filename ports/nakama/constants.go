package nakama

const (
	// RpcQuickMatch is the Nakama RPC id clients call to find or create a lobby match.
	RpcQuickMatch = "quick_match"

	// MatchNameWonders is the authoritative match handler name registered with Nakama.
	MatchNameWonders = "wonders_match"
)

// Op codes for client messages and server events. Payloads are protojson
// encoded google.protobuf.Struct objects.
const (
	// Client -> Server
	OpStartGame int64 = 1
	OpChoose    int64 = 2 // {"index": n}, 1-based into the last options

	// Server -> Client events
	OpMatchState  int64 = 101
	OpGameStarted int64 = 103
	OpOptions     int64 = 104 // send privately
	OpRoundPlayed int64 = 105
	OpGameEnded   int64 = 107
	OpGameError   int64 = 108 // send privately
)

const (
	defaultCapacity    = 4
	defaultTurnSeconds = 60
	tickRate           = 1
)
