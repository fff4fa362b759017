package web

import (
	"context"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log"
	"net"
	"net/http"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"
	"github.com/google/uuid"

	"github.com/peterkuimelis/duckdog/internal/effect"
	"github.com/peterkuimelis/duckdog/internal/game"
	gamelog "github.com/peterkuimelis/duckdog/internal/log"
	ddnet "github.com/peterkuimelis/duckdog/internal/net"
)

//go:embed static
var staticFiles embed.FS

// CardInfo is the JSON representation of a card for the /api/cards endpoint.
type CardInfo struct {
	game.CardInfo
	ArtPath string `json:"artPath,omitempty"`
}

// Server is the duckdog web UI server.
type Server struct {
	artDir     string
	decksFile  string
	artMapping map[string]string // card name → art file path
	mux        *http.ServeMux
}

// NewServer creates a new web server. A missing art mapping is not an error.
func NewServer(artDir, decksFile, mappingFile string) (*Server, error) {
	artMapping := make(map[string]string)
	data, err := os.ReadFile(mappingFile)
	if err != nil {
		log.Printf("Warning: could not load art mapping: %v", err)
	} else {
		if err := json.Unmarshal(data, &artMapping); err != nil {
			log.Printf("Warning: could not parse art mapping: %v", err)
		}
	}

	s := &Server{
		artDir:     artDir,
		decksFile:  decksFile,
		artMapping: artMapping,
		mux:        http.NewServeMux(),
	}
	s.setupRoutes()
	return s, nil
}

func (s *Server) setupRoutes() {
	staticFS, _ := fs.Sub(staticFiles, "static")

	// Serve index.html at root
	s.mux.HandleFunc("GET /", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/" {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		f, err := staticFS.Open("index.html")
		if err != nil {
			http.Error(w, "not found", http.StatusNotFound)
			return
		}
		defer f.Close()
		io.Copy(w, f.(io.Reader))
	})

	s.mux.Handle("GET /static/", http.StripPrefix("/static/", http.FileServer(http.FS(staticFS))))
	s.mux.Handle("GET /art/", http.StripPrefix("/art/", http.FileServer(http.Dir(s.artDir))))

	s.mux.HandleFunc("GET /api/cards", s.handleCards)
	s.mux.HandleFunc("GET /api/decks", s.handleDecks)

	s.mux.HandleFunc("GET /ws", s.handleWebSocket)
}

// Handler returns the server's HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.mux
}

func (s *Server) handleCards(w http.ResponseWriter, r *http.Request) {
	var cards []CardInfo
	for _, info := range game.Catalog() {
		ci := CardInfo{CardInfo: info}
		// Art path: strip "card_art/" prefix since we serve from /art/
		if artPath, ok := s.artMapping[info.Name]; ok {
			ci.ArtPath = "/art/" + strings.TrimPrefix(artPath, "card_art/")
		} else if info.Image != "" {
			ci.ArtPath = "/art/" + info.Image
		}
		cards = append(cards, ci)
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(cards)
}

func (s *Server) handleDecks(w http.ResponseWriter, r *http.Request) {
	decks, err := loadDeckInfos(s.decksFile)
	if err != nil {
		log.Printf("load decks: %v", err)
		http.Error(w, "could not read decks file", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(decks)
}

// openMessage is the first message a browser sends on /ws.
type openMessage struct {
	Type         string  `json:"type"` // "connect" or "play_ai"
	Addr         string  `json:"addr"` // for "connect"
	DeckNumber   int     `json:"deck_number"`
	OpponentDeck int     `json:"opponent_deck"` // for "play_ai"
	Speed        float64 `json:"speed"`         // for "play_ai"; 0 resolves instantly
}

// startMessage tells the browser which match it joined.
type startMessage struct {
	Type      string `json:"type"`
	MatchID   string `json:"match_id"`
	Player    int    `json:"player"`
	YourDeck  string `json:"your_deck"`
	TheirDeck string `json:"their_deck"`
}

func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	wsConn, err := websocket.Accept(w, r, &websocket.AcceptOptions{
		InsecureSkipVerify: true, // Allow connections from any origin
	})
	if err != nil {
		log.Printf("WebSocket accept error: %v", err)
		return
	}
	defer wsConn.CloseNow()

	ctx := r.Context()

	var open openMessage
	if err := wsjson.Read(ctx, wsConn, &open); err != nil {
		log.Printf("WebSocket read open message: %v", err)
		return
	}

	switch open.Type {
	case "connect":
		s.proxyToServer(ctx, wsConn, open)
	case "play_ai":
		s.playAgainstAI(ctx, wsConn, open)
	default:
		wsConn.Close(websocket.StatusPolicyViolation, "expected connect or play_ai message")
	}
}

// proxyToServer relays between the browser and a `duckdog-cli host` game.
func (s *Server) proxyToServer(ctx context.Context, wsConn *websocket.Conn, open openMessage) {
	tcpConn, err := net.Dial("tcp", open.Addr)
	if err != nil {
		wsjson.Write(ctx, wsConn, ddnet.ServerMessage{
			Type:   "error",
			Result: fmt.Sprintf("Could not connect to game server at %s: %v", open.Addr, err),
		})
		wsConn.Close(websocket.StatusNormalClosure, "connection failed")
		return
	}
	defer tcpConn.Close()

	if err := json.NewEncoder(tcpConn).Encode(ddnet.ClientMessage{Type: "join", DeckNumber: open.DeckNumber}); err != nil {
		log.Printf("TCP write join: %v", err)
		return
	}

	done := make(chan struct{})

	// TCP → WebSocket (server messages to browser)
	go func() {
		defer close(done)
		dec := json.NewDecoder(tcpConn)
		for {
			var msg json.RawMessage
			if err := dec.Decode(&msg); err != nil {
				if err != io.EOF {
					log.Printf("TCP read error: %v", err)
				}
				return
			}
			if err := wsConn.Write(ctx, websocket.MessageText, msg); err != nil {
				log.Printf("WebSocket write error: %v", err)
				return
			}
		}
	}()

	// WebSocket → TCP (browser responses to server)
	go func() {
		for {
			_, data, err := wsConn.Read(ctx)
			if err != nil {
				return
			}
			data = append(data, '\n')
			if _, err := tcpConn.Write(data); err != nil {
				log.Printf("TCP write error: %v", err)
				return
			}
		}
	}()

	<-done
	wsConn.Close(websocket.StatusNormalClosure, "game ended")
}

// playAgainstAI runs a match in-process with the browser as player 0.
func (s *Server) playAgainstAI(ctx context.Context, wsConn *websocket.Conn, open openMessage) {
	deck := open.DeckNumber
	if deck == 0 {
		deck = 1
	}
	opponentDeck := open.OpponentDeck
	if opponentDeck == 0 {
		opponentDeck = 2
	}

	yourName, yourCards, err := game.DeckByNumber(s.decksFile, deck)
	if err != nil {
		s.rejectDeck(ctx, wsConn, err)
		return
	}
	theirName, theirCards, err := game.DeckByNumber(s.decksFile, opponentDeck)
	if err != nil {
		s.rejectDeck(ctx, wsConn, err)
		return
	}

	s.runAIMatch(ctx, wsConn, open, startMessage{
		Type:      "match_started",
		MatchID:   uuid.NewString(),
		YourDeck:  yourName,
		TheirDeck: theirName,
	}, yourCards, theirCards)
}

func (s *Server) rejectDeck(ctx context.Context, wsConn *websocket.Conn, err error) {
	wsjson.Write(ctx, wsConn, ddnet.ServerMessage{Type: "error", Result: err.Error()})
	wsConn.Close(websocket.StatusNormalClosure, "bad deck")
}

func (s *Server) runAIMatch(ctx context.Context, wsConn *websocket.Conn, open openMessage, start startMessage, deck0, deck1 []*game.Card) {
	if err := wsjson.Write(ctx, wsConn, start); err != nil {
		return
	}
	log.Printf("match %s: %s vs %s", start.MatchID, start.YourDeck, start.TheirDeck)

	player := newSocketController(wsConn, 0)

	cfg := game.MatchConfig{
		Deck0:  deck0,
		Deck1:  deck1,
		Logger: gamelog.NewMemoryLogger(),
	}
	if open.Speed > 0 {
		speed := &effect.Speed{}
		speed.Set(open.Speed)
		cfg.Views = game.TimedViews(speed, func(c *game.Creature) {
			cv := ddnet.NewCreatureView(c)
			player.send(ctx, ddnet.ServerMessage{Type: "update", Creature: &cv})
		})
	}

	match := game.NewMatch(cfg, player, game.AIController{})

	winner, err := match.Run(ctx)
	if err != nil {
		if !errors.Is(err, context.Canceled) {
			log.Printf("match %s: %v", start.MatchID, err)
		}
		return
	}
	log.Printf("match %s: %s", start.MatchID, match.State.Result)

	player.send(ctx, ddnet.ServerMessage{Type: "game_over", Winner: winner, Result: match.State.Result})
	wsConn.Close(websocket.StatusNormalClosure, "game ended")
}

// socketController implements game.PlayerController over a browser
// WebSocket, speaking the same messages as the TCP protocol.
type socketController struct {
	conn   *websocket.Conn
	player int
	mu     sync.Mutex
}

func newSocketController(conn *websocket.Conn, player int) *socketController {
	return &socketController{conn: conn, player: player}
}

func (sc *socketController) send(ctx context.Context, msg ddnet.ServerMessage) error {
	sc.mu.Lock()
	defer sc.mu.Unlock()
	return wsjson.Write(ctx, sc.conn, msg)
}

func (sc *socketController) ConfirmTurn(ctx context.Context, state *game.GameState, player int) error {
	msg := ddnet.ServerMessage{Type: "your_turn", State: ddnet.BuildStateView(state, sc.player)}
	if err := sc.send(ctx, msg); err != nil {
		return fmt.Errorf("send your_turn: %w", err)
	}

	var resp ddnet.ClientMessage
	if err := wsjson.Read(ctx, sc.conn, &resp); err != nil {
		return fmt.Errorf("recv ready: %w", err)
	}
	if resp.Type != "ready" {
		return fmt.Errorf("unexpected message %q, want ready", resp.Type)
	}
	return nil
}

func (sc *socketController) Notify(ctx context.Context, event gamelog.GameEvent) error {
	return sc.send(ctx, ddnet.ServerMessage{Type: "notify", Event: ddnet.NewEventView(event)})
}

// ListenAndServe listens on addr and serves until ctx is done.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return err
	}
	return s.Serve(ctx, ln)
}

// ShutdownTimeout bounds how long Serve waits for open requests after its
// context is done. Hijacked websocket connections are not waited for.
const ShutdownTimeout = 5 * time.Second

// Serve accepts HTTP connections on ln until ctx is done, then shuts down.
// A clean shutdown returns nil.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	hs := &http.Server{Handler: s.mux}

	errCh := make(chan error, 1)
	go func() { errCh <- hs.Serve(ln) }()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), ShutdownTimeout)
	defer cancel()
	if err := hs.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	if err := <-errCh; !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
