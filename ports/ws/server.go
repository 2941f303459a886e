package ws

import (
	"encoding/json"
	"fmt"
	"math/rand"
	"net/http"
	"sync"
	"time"

	"nhooyr.io/websocket"

	"github.com/signalnine/wonders/algorithms"
	"github.com/signalnine/wonders/engine"
	"github.com/signalnine/wonders/simulation"
)

const DefaultMoveTimeout = 2 * time.Minute

// Server seats one remote player per connection at seat 0 against bots
type Server struct {
	tickets     *TicketIssuer
	bots        []simulation.AlgorithmSpec
	logger      engine.Logger
	MoveTimeout time.Duration

	seedMu sync.Mutex
	seeds  *rand.Rand
}

func NewServer(tickets *TicketIssuer, bots []simulation.AlgorithmSpec, seed int64, logger engine.Logger) *Server {
	return &Server{
		tickets:     tickets,
		bots:        bots,
		logger:      logger,
		MoveTimeout: DefaultMoveTimeout,
		seeds:       rand.New(rand.NewSource(seed)),
	}
}

func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/ticket", s.serveTicket)
	mux.HandleFunc("/play", s.servePlay)
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	return mux
}

func (s *Server) nextSeed() int64 {
	s.seedMu.Lock()
	defer s.seedMu.Unlock()
	return s.seeds.Int63()
}

func (s *Server) serveTicket(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet && r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	name := r.FormValue("name")
	if name == "" {
		name = "guest"
	}
	ticket, err := s.tickets.Issue(name)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]string{"ticket": ticket})
}

func (s *Server) servePlay(w http.ResponseWriter, r *http.Request) {
	name, err := s.tickets.Verify(r.URL.Query().Get("ticket"))
	if err != nil {
		http.Error(w, err.Error(), http.StatusUnauthorized)
		return
	}

	c, err := websocket.Accept(w, r, &websocket.AcceptOptions{InsecureSkipVerify: true})
	if err != nil {
		return
	}
	defer func() { _ = c.Close(websocket.StatusNormalClosure, "bye") }()

	seed := s.nextSeed()
	s.logger.Info("table for %s seed %d", name, seed)
	rng := rand.New(rand.NewSource(seed))

	seat := &remote{
		ctx:         r.Context(),
		conn:        c,
		moveTimeout: s.MoveTimeout,
		fallback:    algorithms.NewRandom(rand.New(rand.NewSource(rng.Int63()))),
	}
	algs := []engine.Algorithm{seat}
	for i, spec := range s.bots {
		alg, err := simulation.NewAlgorithm(spec, rand.New(rand.NewSource(rng.Int63())))
		if err != nil {
			s.logger.Info("bot %d: %v", i, err)
			_ = c.Close(websocket.StatusInternalError, "bad bot configuration")
			return
		}
		algs = append(algs, alg)
	}

	g, err := engine.NewGame(algs, rng)
	if err != nil {
		_ = c.Close(websocket.StatusInternalError, err.Error())
		return
	}
	g.SetLogger(s.logger)

	scores, err := g.Play()
	if err != nil {
		s.logger.Info("table for %s: %v", name, err)
		_ = c.Close(websocket.StatusInternalError, "game aborted")
		return
	}
	if seat.err != nil {
		s.logger.Info("table for %s finished without the player: %v", name, seat.err)
		return
	}

	wonders := make([]string, g.NumPlayers())
	for i := range wonders {
		wonders[i] = g.Player(i).Wonder().Name()
	}
	_ = seat.write(Msg{T: MsgResult, M: map[string]interface{}{
		"seat":    0,
		"scores":  scores,
		"wonders": wonders,
		"winner":  winnerText(scores),
	}})
}

// winnerText is "Player N wins!" for a unique top score
func winnerText(scores []int) string {
	best, shared := 0, false
	for i, s := range scores {
		if s > scores[best] {
			best, shared = i, false
		} else if i != best && s == scores[best] {
			shared = true
		}
	}
	if shared {
		return "Draw!"
	}
	return fmt.Sprintf("Player %d wins!", best+1)
}
