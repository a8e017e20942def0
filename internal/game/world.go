package game

import (
	"fmt"
	"math"
	"math/rand"
	"sort"
	"sync"
	"time"

	log "github.com/sirupsen/logrus"
)

// ---------------------------------------------------------------------------
// World (MultiPlayerGame)
// ---------------------------------------------------------------------------

const (
	// TickInterval is the fixed simulation cadence. Tick calls arriving
	// earlier than this since the last advance are no-ops.
	TickInterval = 150 * time.Millisecond

	// RestartWindow is how long the "you may restart" signal stays valid
	// after exactly one human is left alive.
	RestartWindow = 5 * time.Second
)

// World owns every player, snake and food item. All access goes through a
// single coarse lock: the food-count and collision invariants span every
// entity, so a consistent view of the whole world is needed anyway.
type World struct {
	mu sync.Mutex

	players map[int]*Player
	bots    map[int]*Bot
	foods   []Coord

	nextID   int
	colorIdx int
	botsInit bool

	lastTick     time.Time
	restartSince time.Time // zero while the one-human-alive condition is false

	rng *rand.Rand

	// Operational counters surfaced by Stats.
	startTime   time.Time
	totalJoins  int64
	totalLeaves int64
	totalDeaths int64
	peakHumans  int
	ticks       int64
}

func NewWorld() *World {
	return &World{
		players:   make(map[int]*Player),
		bots:      make(map[int]*Bot),
		rng:       rand.New(rand.NewSource(time.Now().UnixNano())),
		lastTick:  time.Now(),
		startTime: time.Now(),
	}
}

// ---------------------------------------------------------------------------
// Player lifecycle
// ---------------------------------------------------------------------------

// AddPlayer creates a human player and returns its identity and color.
func (w *World) AddPlayer(letter string) (int, Color) {
	w.mu.Lock()
	defer w.mu.Unlock()
	p := w.addPlayer(letter, false, 0)
	return p.ID, p.Color
}

func (w *World) addPlayer(letter string, isBot bool, level int) *Player {
	id := w.nextID
	w.nextID++
	color := palette[w.colorIdx%len(palette)]
	w.colorIdx++

	start := w.startPosition(id, -1)
	p := newPlayer(id, color, letter, isBot, level, start)
	w.players[id] = p
	if isBot {
		w.bots[id] = NewBot(level, rand.New(rand.NewSource(w.rng.Int63())))
	}
	w.reconcileFood()

	w.totalJoins++
	if humans := w.humanCount(); humans > w.peakHumans {
		w.peakHumans = humans
	}
	w.updateRestartWindow(time.Now())
	log.WithFields(log.Fields{
		"player_id": id,
		"letter":    letter,
		"is_bot":    isBot,
		"players":   len(w.players),
	}).Info("player joined")
	return p
}

// RemovePlayer drops the player and its bot state and shrinks the food set.
func (w *World) RemovePlayer(id int) {
	w.mu.Lock()
	defer w.mu.Unlock()
	p, ok := w.players[id]
	if !ok {
		return
	}
	delete(w.players, id)
	delete(w.bots, id)
	w.reconcileFood()
	w.updateRestartWindow(time.Now())
	w.totalLeaves++
	log.WithFields(log.Fields{
		"player_id": id,
		"letter":    p.Letter,
		"players":   len(w.players),
	}).Info("player left")
}

// InitializeBots populates the bot roster, labeled '0'..'9' cycling.
// Idempotent: only the first call has any effect.
func (w *World) InitializeBots(count, level int) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.botsInit {
		return
	}
	w.botsInit = true
	for i := 0; i < count; i++ {
		label := fmt.Sprintf("%d", i%10)
		w.addPlayer(label, true, level)
	}
}

// startPosition is (5, 5+5*id) nudged rightward until the cell is off
// every snake body. excludeID skips that player's own snake (used by
// reset).
func (w *World) startPosition(id, excludeID int) Coord {
	occupied := make(map[Coord]struct{})
	for pid, p := range w.players {
		if pid == excludeID {
			continue
		}
		for _, c := range p.Snake.Body {
			occupied[c] = struct{}{}
		}
	}
	start := Coord{X: 5, Y: 5 + 5*id}
	for {
		if _, taken := occupied[start]; !taken {
			return start
		}
		start.X++
	}
}

// ---------------------------------------------------------------------------
// Food invariant
// ---------------------------------------------------------------------------

// reconcileFood trims or extends the food set until |food| == |players|.
// New items are placed sequentially so they also avoid each other.
func (w *World) reconcileFood() {
	want := len(w.players)
	for len(w.foods) > want {
		w.foods = w.foods[:len(w.foods)-1]
	}
	if len(w.foods) >= want {
		return
	}
	occupied := w.occupiedCells()
	for len(w.foods) < want {
		c := placeFood(w.rng, occupied)
		w.foods = append(w.foods, c)
		occupied[c] = struct{}{}
	}
}

// occupiedCells is the union of every snake body and every food position.
func (w *World) occupiedCells() map[Coord]struct{} {
	occupied := make(map[Coord]struct{})
	for _, p := range w.players {
		for _, c := range p.Snake.Body {
			occupied[c] = struct{}{}
		}
	}
	for _, f := range w.foods {
		occupied[f] = struct{}{}
	}
	return occupied
}

// ---------------------------------------------------------------------------
// Simulation tick
// ---------------------------------------------------------------------------

// Tick advances the simulation if at least TickInterval has elapsed since
// the previous advance. Returns whether the world actually moved.
func (w *World) Tick() bool {
	return w.step(time.Now())
}

func (w *World) step(now time.Time) bool {
	w.mu.Lock()
	defer w.mu.Unlock()

	elapsed := now.Sub(w.lastTick)
	if elapsed < TickInterval {
		return false
	}

	ids := w.sortedIDs()

	// Bot steering goes through the same no-reverse rule as humans.
	for _, id := range ids {
		p := w.players[id]
		bot, ok := w.bots[id]
		if !ok || !p.Alive {
			continue
		}
		if d, ok := bot.ChooseDirection(p.Snake, w.foods, w.otherLivingSnakes(id)); ok {
			w.applyDirection(p, d)
		}
	}

	// Food is claimed by predicted head position so the growth lands on
	// this tick's move. First claimant wins a contested cell.
	eatenFood := make(map[int]bool) // food index -> claimed
	var eaters []int
	for _, id := range ids {
		p := w.players[id]
		if !p.Alive {
			continue
		}
		next := p.Snake.Head().Add(p.Snake.Dir)
		for i, f := range w.foods {
			if f == next && !eatenFood[i] {
				eatenFood[i] = true
				p.Snake.Grow()
				p.Score++
				eaters = append(eaters, id)
				break
			}
		}
	}

	for _, id := range ids {
		p := w.players[id]
		if !p.Alive {
			continue
		}
		p.Snake.Move()
		p.GameTimer += elapsed
		p.FoodTimer += elapsed
	}
	for _, id := range eaters {
		w.players[id].FoodTimer = 0
	}

	// Eaten food respawns against post-move occupancy, one item at a time.
	for i := range w.foods {
		if eatenFood[i] {
			w.foods[i] = placeFood(w.rng, w.occupiedCells())
		}
	}

	// Collision is judged against the full post-move snake set; dead
	// snakes stay on the field as obstacles.
	all := w.allSnakes()
	for _, id := range ids {
		p := w.players[id]
		if !p.Alive {
			continue
		}
		if reason := p.Snake.Collide(all); reason != DeathNone {
			p.Alive = false
			p.Death = reason
			w.totalDeaths++
			log.WithFields(log.Fields{
				"player_id": p.ID,
				"letter":    p.Letter,
				"is_bot":    p.IsBot,
				"reason":    string(reason),
				"score":     p.Score,
			}).Info("player died")
		}
	}

	w.updateRestartWindow(now)
	w.lastTick = now
	w.ticks++
	return true
}

// updateRestartWindow arms or clears the restart window. Every mutation
// that can change the living-human count calls it, so the window state is
// never stale between ticks.
func (w *World) updateRestartWindow(now time.Time) {
	if w.livingHumans() == 1 {
		if w.restartSince.IsZero() {
			w.restartSince = now
		}
	} else {
		w.restartSince = time.Time{}
	}
}

func (w *World) sortedIDs() []int {
	ids := make([]int, 0, len(w.players))
	for id := range w.players {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	return ids
}

func (w *World) allSnakes() []*Snake {
	snakes := make([]*Snake, 0, len(w.players))
	for _, p := range w.players {
		snakes = append(snakes, p.Snake)
	}
	return snakes
}

// otherLivingSnakes is every living snake except the given player's own.
func (w *World) otherLivingSnakes(id int) []*Snake {
	var snakes []*Snake
	for pid, p := range w.players {
		if pid == id || !p.Alive {
			continue
		}
		snakes = append(snakes, p.Snake)
	}
	return snakes
}

func (w *World) humanCount() int {
	n := 0
	for _, p := range w.players {
		if !p.IsBot {
			n++
		}
	}
	return n
}

func (w *World) livingHumans() int {
	n := 0
	for _, p := range w.players {
		if !p.IsBot && p.Alive {
			n++
		}
	}
	return n
}

// ---------------------------------------------------------------------------
// Intents
// ---------------------------------------------------------------------------

// ChangeDirection applies a direction request. Unknown or dead players and
// exact reversals are ignored.
func (w *World) ChangeDirection(id int, d Direction) {
	w.mu.Lock()
	defer w.mu.Unlock()
	p, ok := w.players[id]
	if !ok || !p.Alive {
		return
	}
	w.applyDirection(p, d)
}

func (w *World) applyDirection(p *Player, d Direction) {
	if d == p.Snake.Dir.Opposite() {
		return
	}
	p.Snake.Dir = d
}

// ResetPlayerAndBots re-spawns the requesting player and every bot with a
// fresh snake, score and timers, all under one lock acquisition so no tick
// can interleave between the player's reset and the bots'. Identity,
// color, letter and bot-ness are untouched.
func (w *World) ResetPlayerAndBots(id int) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.resetPlayer(id)
	for _, pid := range w.sortedIDs() {
		if pid != id && w.players[pid].IsBot {
			w.resetPlayer(pid)
		}
	}
}

// RestartAll re-spawns everyone, humans and bots alike, iff id names the
// sole living human. The gate and the resets share one critical section:
// once the condition is observed, no tick, join or death can invalidate
// it before the resets land. On a refused request the world is untouched.
func (w *World) RestartAll(id int) bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	p, ok := w.players[id]
	if !ok || p.IsBot || !p.Alive || w.livingHumans() != 1 {
		return false
	}
	for _, pid := range w.sortedIDs() {
		w.resetPlayer(pid)
	}
	return true
}

func (w *World) resetPlayer(id int) {
	p, ok := w.players[id]
	if !ok {
		return
	}
	p.reset(w.startPosition(id, id))
	w.updateRestartWindow(time.Now())
	log.WithFields(log.Fields{"player_id": id, "letter": p.Letter}).Info("player reset")
}

// ---------------------------------------------------------------------------
// Snapshots
// ---------------------------------------------------------------------------

// PlayerState is the public projection of one player, shaped for the wire.
type PlayerState struct {
	PlayerID       int         `json:"player_id"`
	Color          Color       `json:"color"`
	Letter         string      `json:"letter"`
	IsBot          bool        `json:"is_bot"`
	SnakePosition  []Coord     `json:"snake_position"`
	SnakeSize      int         `json:"snake_size"`
	Score          int         `json:"score"`
	GameOver       bool        `json:"game_over"`
	GameOverReason DeathReason `json:"game_over_reason"`
	GameTimer      float64     `json:"game_timer"`
	FoodTimer      float64     `json:"food_timer"`
}

// Snapshot is the full read-only world view returned after each request.
type Snapshot struct {
	Players            []PlayerState `json:"players"`
	Foods              []Coord       `json:"foods"`
	YourPlayerID       int           `json:"your_player_id"`
	ShowRestartMessage bool          `json:"show_restart_message"`
}

// Snapshot projects the world for one requesting player. Players come out
// sorted by id so the view is deterministic; internal timestamps never
// leave the lock.
func (w *World) Snapshot(requestingID int) Snapshot {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.snapshotAt(requestingID, time.Now())
}

func (w *World) snapshotAt(requestingID int, now time.Time) Snapshot {
	snap := Snapshot{
		Players:      make([]PlayerState, 0, len(w.players)),
		Foods:        make([]Coord, len(w.foods)),
		YourPlayerID: requestingID,
		ShowRestartMessage: !w.restartSince.IsZero() &&
			now.Sub(w.restartSince) < RestartWindow,
	}
	copy(snap.Foods, w.foods)
	for _, id := range w.sortedIDs() {
		p := w.players[id]
		body := make([]Coord, len(p.Snake.Body))
		copy(body, p.Snake.Body)
		snap.Players = append(snap.Players, PlayerState{
			PlayerID:       p.ID,
			Color:          p.Color,
			Letter:         p.Letter,
			IsBot:          p.IsBot,
			SnakePosition:  body,
			SnakeSize:      len(body),
			Score:          p.Score,
			GameOver:       !p.Alive,
			GameOverReason: p.Death,
			GameTimer:      roundSeconds(p.GameTimer),
			FoodTimer:      roundSeconds(p.FoodTimer),
		})
	}
	return snap
}

func roundSeconds(d time.Duration) float64 {
	return math.Round(d.Seconds()*100) / 100
}

// ---------------------------------------------------------------------------
// Stats
// ---------------------------------------------------------------------------

// StatsSnapshot feeds the operational /stats endpoint. It is not part of
// the game protocol.
type StatsSnapshot struct {
	Uptime        string             `json:"uptime"`
	UptimeSec     int64              `json:"uptimeSec"`
	TotalJoins    int64              `json:"totalJoins"`
	TotalLeaves   int64              `json:"totalLeaves"`
	TotalDeaths   int64              `json:"totalDeaths"`
	PeakHumans    int                `json:"peakHumans"`
	CurrentHumans int                `json:"currentHumans"`
	BotCount      int                `json:"botCount"`
	FoodCount     int                `json:"foodCount"`
	Ticks         int64              `json:"ticks"`
	Leaderboard   []LeaderboardEntry `json:"leaderboard"`
}

type LeaderboardEntry struct {
	Letter  string `json:"letter"`
	Score   int    `json:"score"`
	IsBot   bool   `json:"isBot"`
	IsAlive bool   `json:"alive"`
}

func (w *World) Stats() StatsSnapshot {
	w.mu.Lock()
	defer w.mu.Unlock()

	uptime := time.Since(w.startTime)
	snap := StatsSnapshot{
		Uptime:        formatDuration(uptime),
		UptimeSec:     int64(uptime.Seconds()),
		TotalJoins:    w.totalJoins,
		TotalLeaves:   w.totalLeaves,
		TotalDeaths:   w.totalDeaths,
		PeakHumans:    w.peakHumans,
		CurrentHumans: w.humanCount(),
		BotCount:      len(w.bots),
		FoodCount:     len(w.foods),
		Ticks:         w.ticks,
	}
	for _, id := range w.sortedIDs() {
		p := w.players[id]
		snap.Leaderboard = append(snap.Leaderboard, LeaderboardEntry{
			Letter:  p.Letter,
			Score:   p.Score,
			IsBot:   p.IsBot,
			IsAlive: p.Alive,
		})
	}
	sort.SliceStable(snap.Leaderboard, func(i, j int) bool {
		return snap.Leaderboard[i].Score > snap.Leaderboard[j].Score
	})
	return snap
}

func formatDuration(d time.Duration) string {
	h := int(d.Hours())
	m := int(d.Minutes()) % 60
	s := int(d.Seconds()) % 60
	return fmt.Sprintf("%dh %dm %ds", h, m, s)
}
