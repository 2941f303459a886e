package nakama

import (
	"context"
	"database/sql"
	"fmt"
	"math/rand"
	"strconv"
	"strings"
	"time"

	"github.com/heroiclabs/nakama-common/runtime"
	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/signalnine/wonders/algorithms"
	"github.com/signalnine/wonders/engine"
	"github.com/signalnine/wonders/simulation"
)

const botPrefix = "bot-"

// humanSeat plays the choice a client submitted this round. A seat whose client
// left, or did not answer in time, is played by fallback.
type humanSeat struct {
	next     *engine.Action
	left     bool
	fallback engine.Algorithm
}

func (h *humanSeat) ready() bool { return h.left || h.next != nil }

func (h *humanSeat) NextAction(player *engine.Player, visible *engine.VisibleGame) engine.Action {
	if h.next != nil {
		a := *h.next
		h.next = nil
		return a
	}
	return h.fallback.NextAction(player, visible)
}

// MatchState holds the authoritative runtime state for the Nakama match handler.
type MatchState struct {
	Seats        []string                    `json:"seats"`      // user ID per seat, empty string means seat is empty
	OwnerSeat    int                         `json:"owner_seat"` // seat index of the match owner
	Tick         int64                       `json:"tick"`
	Capacity     int                         `json:"capacity"`
	TurnSeconds  int64                       `json:"turn_seconds"`
	DeadlineTick int64                       `json:"deadline_tick"` // tick when unanswered seats are auto-played
	Bot          simulation.AlgorithmSpec    `json:"bot"`
	Presences    map[string]runtime.Presence `json:"-"` // user ID -> presence for targeted messaging
	Game         *engine.Game                `json:"-"` // nil while in the lobby
	Humans       map[int]*humanSeat          `json:"-"`
	Options      map[int][]engine.Action     `json:"-"` // last options sent per human seat
	rng          *rand.Rand
}

func (ms *MatchState) GetOpenSeatsCount() int {
	count := 0
	for _, seat := range ms.Seats {
		if seat == "" {
			count++
		}
	}
	return count
}

func (ms *MatchState) seatOf(userID string) int {
	for i, id := range ms.Seats {
		if id == userID {
			return i
		}
	}
	return -1
}

func (ms *MatchState) phase() string {
	if ms.Game != nil {
		return "playing"
	}
	return "lobby"
}

func isBotUserId(userID string) bool {
	return strings.HasPrefix(userID, botPrefix)
}

// findFirstHumanSeat returns the first seat index with a human occupant or -1 if none exist.
func findFirstHumanSeat(seats []string) int {
	for i, userID := range seats {
		if userID != "" && !isBotUserId(userID) {
			return i
		}
	}
	return -1
}

// NewMatch is the factory function registered with Nakama.
func NewMatch(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule) (runtime.Match, error) {
	return &matchHandler{}, nil
}

type matchHandler struct{}

// MatchInit is called when the match is created.
func (mh *matchHandler) MatchInit(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, params map[string]interface{}) (interface{}, int, string) {
	capacity := defaultCapacity
	switch v := params["players"].(type) {
	case int:
		capacity = v
	case float64:
		capacity = int(v)
	}
	if capacity < engine.MinPlayers || capacity > engine.MaxPlayers {
		logger.Warn("MatchInit: %d players requested, using %d", capacity, defaultCapacity)
		capacity = defaultCapacity
	}

	state := &MatchState{
		Seats:       make([]string, capacity),
		OwnerSeat:   -1,
		Capacity:    capacity,
		TurnSeconds: defaultTurnSeconds,
		Bot:         simulation.AlgorithmSpec{Type: simulation.TypeRandom},
		Presences:   make(map[string]runtime.Presence),
		rng:         rand.New(rand.NewSource(time.Now().UnixNano())),
	}

	// Read environment variables for bot configuration
	env, _ := ctx.Value(runtime.RUNTIME_CTX_ENV).(map[string]string)
	if val, ok := env["wonders_bot_type"]; ok && val != "" {
		state.Bot.Type = val
	}
	if val, ok := env["wonders_bot_iterations"]; ok {
		if i, err := strconv.Atoi(val); err == nil {
			state.Bot.Iterations = i
		}
	}
	if val, ok := env["wonders_turn_seconds"]; ok {
		if i, err := strconv.Atoi(val); err == nil && i > 0 {
			state.TurnSeconds = int64(i)
		}
	}

	label, err := labelFor(state)
	if err != nil {
		logger.Error("MatchInit: Failed to marshal label: %v", err)
		return nil, 0, ""
	}
	return state, tickRate, label
}

func (mh *matchHandler) MatchJoinAttempt(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, dispatcher runtime.MatchDispatcher, tick int64, state interface{}, presence runtime.Presence, metadata map[string]string) (interface{}, bool, string) {
	matchState, ok := state.(*MatchState)
	if !ok {
		return state, false, "state not found"
	}
	if matchState.Game != nil {
		return state, false, "Game in progress"
	}
	if matchState.GetOpenSeatsCount() <= 0 {
		return state, false, "Match full"
	}
	return state, true, ""
}

func (mh *matchHandler) MatchJoin(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, dispatcher runtime.MatchDispatcher, tick int64, state interface{}, presences []runtime.Presence) interface{} {
	matchState, ok := state.(*MatchState)
	if !ok {
		logger.Error("MatchJoin: state not found")
		return state
	}

	for _, p := range presences {
		matchState.Presences[p.GetUserId()] = p
		if matchState.seatOf(p.GetUserId()) >= 0 {
			continue
		}
		seat := matchState.seatOf("")
		if seat < 0 {
			logger.Warn("MatchJoin: User %s joined but no seat was available.", p.GetUserId())
			continue
		}
		matchState.Seats[seat] = p.GetUserId()
	}

	if matchState.OwnerSeat < 0 {
		matchState.OwnerSeat = findFirstHumanSeat(matchState.Seats)
		if matchState.OwnerSeat >= 0 {
			logger.Debug("MatchJoin: Owner set to seat %d.", matchState.OwnerSeat)
		}
	}

	mh.updateLabel(matchState, dispatcher, logger)
	mh.broadcastMatchState(matchState, dispatcher, logger)
	return matchState
}

// MatchLeave is called when one or more players leave the match.
func (mh *matchHandler) MatchLeave(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, dispatcher runtime.MatchDispatcher, tick int64, state interface{}, presences []runtime.Presence) interface{} {
	matchState, ok := state.(*MatchState)
	if !ok {
		logger.Error("MatchLeave: state not found")
		return state
	}

	for _, p := range presences {
		delete(matchState.Presences, p.GetUserId())
		seat := matchState.seatOf(p.GetUserId())
		if seat < 0 {
			continue
		}
		if matchState.Game != nil {
			// the board stays; the seat is auto-played from now on
			if h := matchState.Humans[seat]; h != nil {
				h.left = true
			}
			logger.Debug("MatchLeave: User %s left seat %d mid-game.", p.GetUserId(), seat)
			continue
		}
		matchState.Seats[seat] = ""
		logger.Debug("MatchLeave: User %s left, seat %d freed.", p.GetUserId(), seat)
	}

	if len(matchState.Presences) == 0 {
		logger.Info("MatchLeave: Terminating match with no humans.")
		return nil
	}

	if owner := matchState.OwnerSeat; owner < 0 || matchState.Presences[matchState.Seats[owner]] == nil {
		matchState.OwnerSeat = -1
		for i, id := range matchState.Seats {
			if matchState.Presences[id] != nil {
				matchState.OwnerSeat = i
				break
			}
		}
	}

	if matchState.Game != nil {
		mh.maybePlayRound(matchState, dispatcher, logger)
	}
	mh.updateLabel(matchState, dispatcher, logger)
	return matchState
}

func (mh *matchHandler) MatchLoop(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, dispatcher runtime.MatchDispatcher, tick int64, state interface{}, messages []runtime.MatchData) interface{} {
	matchState, ok := state.(*MatchState)
	if !ok {
		return state
	}

	matchState.Tick = tick

	for _, msg := range messages {
		switch msg.GetOpCode() {
		case OpStartGame:
			mh.handleStartGame(matchState, dispatcher, logger, msg)
		case OpChoose:
			mh.handleChoose(matchState, dispatcher, logger, msg)
		default:
			logger.Warn("MatchLoop: Unknown opcode received: %d", msg.GetOpCode())
		}
	}

	// Auto-play seats that missed the deadline
	if matchState.Game != nil && matchState.DeadlineTick > 0 && tick >= matchState.DeadlineTick {
		logger.Debug("MatchLoop: Turn deadline reached at tick %d.", tick)
		mh.playRound(matchState, dispatcher, logger)
	}

	return matchState
}

func (mh *matchHandler) handleStartGame(state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger, msg runtime.MatchData) {
	senderSeat := state.seatOf(msg.GetUserId())
	logger.Info("StartGame: Request received from %s (seat=%d, owner_seat=%d)", msg.GetUserId(), senderSeat, state.OwnerSeat)

	if state.Game != nil {
		mh.sendError(state, dispatcher, msg.GetUserId(), "game already running")
		return
	}
	if senderSeat < 0 || senderSeat != state.OwnerSeat {
		mh.sendError(state, dispatcher, msg.GetUserId(), "only the owner can start the game")
		return
	}

	algs := make([]engine.Algorithm, state.Capacity)
	state.Humans = make(map[int]*humanSeat)
	for i, id := range state.Seats {
		seed := state.rng.Int63()
		if id == "" || isBotUserId(id) {
			state.Seats[i] = fmt.Sprintf("%s%d", botPrefix, i)
			alg, err := simulation.NewAlgorithm(state.Bot, rand.New(rand.NewSource(seed)))
			if err != nil {
				logger.Error("StartGame: bot seat %d: %v", i, err)
				alg = algorithms.NewRandom(rand.New(rand.NewSource(seed)))
			}
			algs[i] = alg
			continue
		}
		h := &humanSeat{fallback: algorithms.NewRandom(rand.New(rand.NewSource(seed)))}
		state.Humans[i] = h
		algs[i] = h
	}

	g, err := engine.NewGame(algs, state.rng)
	if err != nil {
		logger.Error("StartGame: %v", err)
		mh.resetToLobby(state)
		mh.sendError(state, dispatcher, msg.GetUserId(), err.Error())
		return
	}
	g.SetLogger(logger)
	state.Game = g

	wonders := make([]interface{}, g.NumPlayers())
	for i := range wonders {
		wonders[i] = g.Player(i).Wonder().Name()
	}
	mh.broadcast(dispatcher, logger, OpGameStarted, map[string]interface{}{
		"seats":   seatsPayload(state.Seats),
		"wonders": wonders,
	}, nil)

	mh.updateLabel(state, dispatcher, logger)
	mh.openRound(state, dispatcher, logger)
}

func (mh *matchHandler) handleChoose(state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger, msg runtime.MatchData) {
	seat := state.seatOf(msg.GetUserId())
	h := state.Humans[seat]
	if state.Game == nil || h == nil {
		mh.sendError(state, dispatcher, msg.GetUserId(), "not seated in a running game")
		return
	}

	payload, err := decodePayload(msg.GetData())
	if err != nil {
		logger.Warn("Choose: Invalid payload from %s: %v", msg.GetUserId(), err)
		mh.sendError(state, dispatcher, msg.GetUserId(), "invalid payload")
		return
	}
	index, err := choiceIndex(payload)
	options := state.Options[seat]
	if err != nil || index < 1 || index > len(options) {
		mh.sendError(state, dispatcher, msg.GetUserId(), fmt.Sprintf("choose an option between 1 and %d", len(options)))
		return
	}

	action := options[index-1]
	h.next = &action
	mh.maybePlayRound(state, dispatcher, logger)
}

// maybePlayRound runs the round once every connected human has chosen
func (mh *matchHandler) maybePlayRound(state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger) {
	for _, h := range state.Humans {
		if !h.ready() {
			return
		}
	}
	mh.playRound(state, dispatcher, logger)
}

func (mh *matchHandler) playRound(state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger) {
	g := state.Game
	state.DeadlineTick = 0
	if err := g.DoTurn(); err != nil {
		logger.Error("Round: %v", err)
		mh.broadcast(dispatcher, logger, OpGameEnded, map[string]interface{}{"error": err.Error()}, nil)
		mh.resetToLobby(state)
		mh.updateLabel(state, dispatcher, logger)
		return
	}

	public := g.Visible(0).Players
	mh.broadcast(dispatcher, logger, OpRoundPlayed, map[string]interface{}{
		"turn":   g.Turn(),
		"boards": boardsToPayload(public),
	}, nil)

	if !g.Finished() {
		mh.openRound(state, dispatcher, logger)
		return
	}

	scores := g.Scores()
	winner := -1
	for i, s := range scores {
		if winner < 0 || s > scores[winner] {
			winner = i
		}
	}
	for i, s := range scores {
		if i != winner && s == scores[winner] {
			winner = -1
			break
		}
	}
	mh.broadcast(dispatcher, logger, OpGameEnded, map[string]interface{}{
		"scores": scoresToPayload(scores),
		"winner": winner,
		"seats":  seatsPayload(state.Seats),
	}, nil)
	logger.Info("Game ended, winner seat %d", winner)

	mh.resetToLobby(state)
	mh.updateLabel(state, dispatcher, logger)
	mh.broadcastMatchState(state, dispatcher, logger)
}

// openRound sends each connected human its options and starts the deadline
func (mh *matchHandler) openRound(state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger) {
	state.Game.StartRound()
	state.Options = make(map[int][]engine.Action)
	for seat, h := range state.Humans {
		if h.left {
			continue
		}
		presence := state.Presences[state.Seats[seat]]
		if presence == nil {
			h.left = true
			continue
		}
		player := state.Game.Player(seat)
		visible := state.Game.Visible(seat)
		options := algorithms.Candidates(player, visible)
		state.Options[seat] = options
		mh.broadcast(dispatcher, logger, OpOptions, optionsToPayload(player, visible, options), []runtime.Presence{presence})
	}
	state.DeadlineTick = state.Tick + state.TurnSeconds*tickRate

	// every human gone: play on so the match can finish
	mh.maybePlayRound(state, dispatcher, logger)
}

func (mh *matchHandler) resetToLobby(state *MatchState) {
	state.Game = nil
	state.Humans = nil
	state.Options = nil
	state.DeadlineTick = 0
	for i, id := range state.Seats {
		if isBotUserId(id) || (id != "" && state.Presences[id] == nil) {
			state.Seats[i] = ""
		}
	}
}

func seatsPayload(seats []string) []interface{} {
	out := make([]interface{}, len(seats))
	for i, s := range seats {
		out[i] = s
	}
	return out
}

func (mh *matchHandler) broadcastMatchState(state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger) {
	players := make([]interface{}, 0, len(state.Seats))
	for i, userID := range state.Seats {
		if userID == "" {
			continue
		}
		displayName := userID
		if p, exists := state.Presences[userID]; exists {
			displayName = p.GetUsername()
		}
		players = append(players, map[string]interface{}{
			"user_id":      userID,
			"seat":         i,
			"is_owner":     i == state.OwnerSeat,
			"display_name": displayName,
		})
	}
	mh.broadcast(dispatcher, logger, OpMatchState, map[string]interface{}{
		"seats":      seatsPayload(state.Seats),
		"owner_seat": state.OwnerSeat,
		"tick":       state.Tick,
		"phase":      state.phase(),
		"players":    players,
	}, nil)
}

func (mh *matchHandler) broadcast(dispatcher runtime.MatchDispatcher, logger runtime.Logger, opCode int64, payload map[string]interface{}, recipients []runtime.Presence) {
	bytes, err := encodePayload(payload)
	if err != nil {
		logger.Error("Failed to encode op %d: %v", opCode, err)
		return
	}
	if err := dispatcher.BroadcastMessage(opCode, bytes, recipients, nil, true); err != nil {
		logger.Warn("Broadcast op %d failed: %v", opCode, err)
	}
}

func (mh *matchHandler) sendError(state *MatchState, dispatcher runtime.MatchDispatcher, userID string, message string) {
	presence, ok := state.Presences[userID]
	if !ok {
		return
	}
	bytes, err := encodePayload(map[string]interface{}{"message": message})
	if err != nil {
		return
	}
	_ = dispatcher.BroadcastMessage(OpGameError, bytes, []runtime.Presence{presence}, nil, true)
}

func labelFor(state *MatchState) (string, error) {
	label, err := structpb.NewStruct(map[string]interface{}{
		"game":    "wonders",
		"phase":   state.phase(),
		"open":    state.GetOpenSeatsCount(),
		"players": state.Capacity,
	})
	if err != nil {
		return "", err
	}
	b, err := (&protojson.MarshalOptions{EmitUnpopulated: true}).Marshal(label)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func (mh *matchHandler) updateLabel(state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger) {
	label, err := labelFor(state)
	if err != nil {
		logger.Error("Failed to marshal label: %v", err)
		return
	}
	if err := dispatcher.MatchLabelUpdate(label); err != nil {
		logger.Error("Failed to update label: %v", err)
	}
}

func (mh *matchHandler) MatchTerminate(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, dispatcher runtime.MatchDispatcher, tick int64, state interface{}, graceSeconds int) interface{} {
	logger.Debug("MatchTerminate: Match terminated with %d grace seconds", graceSeconds)
	return state
}

func (mh *matchHandler) MatchSignal(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, dispatcher runtime.MatchDispatcher, tick int64, state interface{}, data string) (interface{}, string) {
	return state, ""
}
