package ws

import (
	"context"
	"encoding/json"
	"log/slog"
	"sync"

	"wordduel/internal/model"
	"wordduel/internal/services/match"
	"wordduel/internal/services/registry"
)

// session is a connected client as the gateway sees it. Client satisfies
// it; tests substitute fakes.
type session interface {
	ID() model.ConnID
	Send(msg *ServerMessage) error
}

// Gateway owns the live connections. It decodes commands, dispatches them
// to the registry and match controllers, and fans resulting state out as
// per-role snapshots. Each connection is in at most one match at a time.
type Gateway struct {
	registry registry.ControllerInterface
	matches  match.ControllerInterface
	logger   *slog.Logger

	mu        sync.Mutex
	conns     map[model.ConnID]session
	connMatch map[model.ConnID]model.MatchID
}

// NewGateway creates a new Gateway
func NewGateway(reg registry.ControllerInterface, matches match.ControllerInterface, logger *slog.Logger) *Gateway {
	return &Gateway{
		registry:  reg,
		matches:   matches,
		logger:    logger,
		conns:     make(map[model.ConnID]session),
		connMatch: make(map[model.ConnID]model.MatchID),
	}
}

// Register adds a newly connected session
func (g *Gateway) Register(s session) {
	g.mu.Lock()
	g.conns[s.ID()] = s
	total := len(g.conns)
	g.mu.Unlock()

	g.logger.Info("connection registered",
		slog.String("conn_id", string(s.ID())),
		slog.Int("total", total),
	)
}

// Unregister handles a closed connection. If the session was in a match,
// the match is terminated and the remaining participant notified.
func (g *Gateway) Unregister(ctx context.Context, s session) {
	g.mu.Lock()
	delete(g.conns, s.ID())
	matchID, inMatch := g.connMatch[s.ID()]
	delete(g.connMatch, s.ID())
	g.mu.Unlock()

	g.logger.Info("connection closed", slog.String("conn_id", string(s.ID())))

	if !inMatch {
		return
	}

	m, err := g.matches.HandleDisconnect(ctx, matchID, s.ID())
	if err != nil {
		g.logger.Error("disconnect handling failed",
			slog.String("match_id", string(matchID)),
			slog.String("error", err.Error()),
		)
		return
	}

	g.detachParticipants(m)
	g.fanOutState(m)

	// An abandoned waiting match frees up a lobby slot
	g.broadcastOpenMatches(ctx)
}

// HandleMessage decodes and dispatches a single command from a session.
// Every command produces at least one message back to the sender, either
// the result event or a rejection.
func (g *Gateway) HandleMessage(ctx context.Context, s session, data []byte) {
	var msg ClientMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		g.reject(s, RejectedPayload{CodeInvalidMessage, "Malformed message"})
		return
	}

	switch msg.Type {
	case MsgCreateMatch:
		g.handleCreateMatch(ctx, s)
	case MsgJoinMatch:
		var payload JoinMatchPayload
		if err := json.Unmarshal(msg.Payload, &payload); err != nil || payload.MatchID == "" {
			g.reject(s, RejectedPayload{CodeInvalidMessage, "join_match requires a matchId"})
			return
		}
		g.handleJoinMatch(ctx, s, model.MatchID(payload.MatchID))
	case MsgGetOpenMatches:
		g.handleGetOpenMatches(ctx, s)
	case MsgSetSecret:
		word, ok := g.decodeWord(s, msg.Payload)
		if !ok {
			return
		}
		g.handleSetSecret(ctx, s, word)
	case MsgSubmitGuess:
		word, ok := g.decodeWord(s, msg.Payload)
		if !ok {
			return
		}
		g.handleSubmitGuess(ctx, s, word)
	case MsgPing:
		g.send(s, NewServerMessage(MsgPong, nil))
	default:
		g.reject(s, RejectedPayload{CodeInvalidMessage, "Unknown message type"})
	}
}

func (g *Gateway) decodeWord(s session, raw json.RawMessage) (string, bool) {
	var payload WordPayload
	if err := json.Unmarshal(raw, &payload); err != nil || payload.Word == "" {
		g.reject(s, RejectedPayload{CodeInvalidMessage, "A word is required"})
		return "", false
	}
	return payload.Word, true
}

func (g *Gateway) handleCreateMatch(ctx context.Context, s session) {
	if _, inMatch := g.matchOf(s.ID()); inMatch {
		g.reject(s, rejectionFor(model.ErrAlreadyInMatch))
		return
	}

	m, err := g.registry.Create(ctx, s.ID())
	if err != nil {
		g.reject(s, rejectionFor(err))
		return
	}

	g.mu.Lock()
	g.connMatch[s.ID()] = m.ID
	g.mu.Unlock()

	g.send(s, NewServerMessage(MsgMatchCreated, MatchCreatedPayload{MatchID: m.ID}))
	g.send(s, NewServerMessage(MsgRoleAssigned, RoleAssignedPayload{Role: model.RoleA}))
	g.send(s, NewServerMessage(MsgMatchState, m.SnapshotFor(model.RoleA)))

	g.broadcastOpenMatches(ctx)
}

func (g *Gateway) handleJoinMatch(ctx context.Context, s session, id model.MatchID) {
	if _, inMatch := g.matchOf(s.ID()); inMatch {
		g.reject(s, rejectionFor(model.ErrAlreadyInMatch))
		return
	}

	m, role, err := g.matches.Join(ctx, id, s.ID())
	if err != nil {
		g.reject(s, rejectionFor(err))
		return
	}

	g.mu.Lock()
	g.connMatch[s.ID()] = m.ID
	g.mu.Unlock()

	g.send(s, NewServerMessage(MsgRoleAssigned, RoleAssignedPayload{Role: role}))
	g.fanOutState(m)

	// The match left the open list when it filled
	g.broadcastOpenMatches(ctx)
}

func (g *Gateway) handleGetOpenMatches(ctx context.Context, s session) {
	open, err := g.registry.ListOpen(ctx)
	if err != nil {
		g.reject(s, rejectionFor(err))
		return
	}
	g.send(s, NewServerMessage(MsgOpenMatches, OpenMatchesPayload{Matches: open}))
}

func (g *Gateway) handleSetSecret(ctx context.Context, s session, word string) {
	matchID, inMatch := g.matchOf(s.ID())
	if !inMatch {
		g.reject(s, rejectionFor(model.ErrMatchNotFound))
		return
	}

	m, err := g.matches.SetSecret(ctx, matchID, s.ID(), word)
	if err != nil {
		g.reject(s, rejectionFor(err))
		return
	}

	g.fanOutState(m)
}

func (g *Gateway) handleSubmitGuess(ctx context.Context, s session, word string) {
	matchID, inMatch := g.matchOf(s.ID())
	if !inMatch {
		g.reject(s, rejectionFor(model.ErrMatchNotFound))
		return
	}

	m, err := g.matches.SubmitGuess(ctx, matchID, s.ID(), word)
	if err != nil {
		g.reject(s, rejectionFor(err))
		return
	}

	if m.IsFinished() {
		g.detachParticipants(m)
	}
	g.fanOutState(m)
}

// matchOf reports the match a connection is currently in
func (g *Gateway) matchOf(conn model.ConnID) (model.MatchID, bool) {
	g.mu.Lock()
	defer g.mu.Unlock()
	id, ok := g.connMatch[conn]
	return id, ok
}

// detachParticipants clears the connection-to-match association for every
// participant of a finished match, so they can create or join again.
func (g *Gateway) detachParticipants(m *model.Match) {
	g.mu.Lock()
	defer g.mu.Unlock()
	for conn := range m.Participants {
		delete(g.connMatch, conn)
	}
}

// fanOutState delivers a per-role snapshot to each connected participant
func (g *Gateway) fanOutState(m *model.Match) {
	g.mu.Lock()
	sessions := make(map[session]model.Role, len(m.Participants))
	for conn, role := range m.Participants {
		if s, ok := g.conns[conn]; ok {
			sessions[s] = role
		}
	}
	g.mu.Unlock()

	for s, role := range sessions {
		g.send(s, NewServerMessage(MsgMatchState, m.SnapshotFor(role)))
	}
}

// broadcastOpenMatches pushes the open list to every connection not
// currently in a match.
func (g *Gateway) broadcastOpenMatches(ctx context.Context) {
	open, err := g.registry.ListOpen(ctx)
	if err != nil {
		g.logger.Error("listing open matches failed", slog.String("error", err.Error()))
		return
	}

	g.mu.Lock()
	idle := make([]session, 0, len(g.conns))
	for conn, s := range g.conns {
		if _, inMatch := g.connMatch[conn]; !inMatch {
			idle = append(idle, s)
		}
	}
	g.mu.Unlock()

	msg := NewServerMessage(MsgOpenMatches, OpenMatchesPayload{Matches: open})
	for _, s := range idle {
		g.send(s, msg)
	}
}

func (g *Gateway) reject(s session, payload RejectedPayload) {
	g.send(s, NewServerMessage(MsgCommandRejected, payload))
}

func (g *Gateway) send(s session, msg *ServerMessage) {
	if err := s.Send(msg); err != nil {
		g.logger.Warn("send failed",
			slog.String("conn_id", string(s.ID())),
			slog.String("error", err.Error()),
		)
	}
}
