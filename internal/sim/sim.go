// Package sim re-expresses the emitted game's update loop as a headless
// state machine over the same SceneConfig, so win/lose behavior can be
// exercised with scripted time deltas and inputs instead of a browser.
package sim

import (
	"math"
	"math/rand"

	"github.com/atelier-ia/server/internal/blueprint"
)

// State is the game phase. Victory and GameOver are terminal.
type State string

const (
	StatePlaying  State = "playing"
	StateVictory  State = "victory"
	StateGameOver State = "gameover"
)

// Geometry mirrors the emitted canvas scene
const (
	CanvasWidth  = 900.0
	CanvasHeight = 560.0

	playerRadius = 14.0
	pickupRadius = 12.0
	enemyRadius  = 15.0
	playerSpeed  = 220.0
)

// Input is the keyboard state for one step
type Input struct {
	Up, Down, Left, Right bool
}

// Pickup is one collectible on the field
type Pickup struct {
	X, Y      float64
	Label     string
	Collected bool
}

// Enemy pursues the player with an individual speed and sway phase
type Enemy struct {
	X, Y  float64
	Speed float64
	Phase float64
	Label string
}

// Simulation advances a single game instance deterministically: the same
// scene, seed, time deltas and inputs always reach the same terminal state.
type Simulation struct {
	state   State
	playerX float64
	playerY float64
	pickups []Pickup
	enemies []Enemy
	elapsed float64
}

// New lays out a simulation from a scene. Pickup jitter and enemy spawn
// positions derive from scene.Seed, one pickup per collectible and one
// enemy per enemy label.
func New(scene blueprint.SceneConfig) *Simulation {
	rng := rand.New(rand.NewSource(scene.Seed))

	total := len(scene.Collectibles)
	cols := 1
	if total > 0 {
		cols = int(math.Ceil(math.Sqrt(float64(total))))
	}
	rows := 1
	if total > 0 {
		rows = (total + cols - 1) / cols
	}

	pickups := make([]Pickup, 0, total)
	for i, label := range scene.Collectibles {
		gx := (float64(i%cols)+0.5)/float64(cols)*(CanvasWidth-140) + 70
		gy := (math.Floor(float64(i)/float64(cols))+0.5)/float64(rows)*(CanvasHeight-240) + 90
		pickups = append(pickups, Pickup{
			X:     gx + (rng.Float64()-0.5)*44,
			Y:     gy + (rng.Float64()-0.5)*44,
			Label: label,
		})
	}

	enemies := make([]Enemy, 0, len(scene.Enemies))
	for i, label := range scene.Enemies {
		x := 46.0
		if rng.Float64() >= 0.5 {
			x = CanvasWidth - 46
		}
		enemies = append(enemies, Enemy{
			X:     x,
			Y:     60 + rng.Float64()*(CanvasHeight-170),
			Speed: 80 + float64(i)*18,
			Phase: rng.Float64() * math.Pi * 2,
			Label: label,
		})
	}

	return &Simulation{
		state:   StatePlaying,
		playerX: CanvasWidth / 2,
		playerY: CanvasHeight - 70,
		pickups: pickups,
		enemies: enemies,
	}
}

// Step advances the simulation by dt seconds with the given input.
// A scene with zero collectibles wins on the first step, since
// collected == total holds trivially. Terminal states only keep the
// enemies drifting; no transition can revert them.
func (s *Simulation) Step(dt float64, in Input) {
	s.elapsed += dt

	if s.state == StatePlaying {
		dx, dy := axis(in)
		s.playerX = clamp(s.playerX+dx*playerSpeed*dt, playerRadius, CanvasWidth-playerRadius)
		s.playerY = clamp(s.playerY+dy*playerSpeed*dt, playerRadius, CanvasHeight-playerRadius)

		for i := range s.pickups {
			p := &s.pickups[i]
			if !p.Collected && math.Hypot(s.playerX-p.X, s.playerY-p.Y) < playerRadius+pickupRadius {
				p.Collected = true
			}
		}
		if s.CollectedCount() == len(s.pickups) {
			s.state = StateVictory
		}
	}

	for i := range s.enemies {
		enemy := &s.enemies[i]
		dx := s.playerX - enemy.X
		dy := s.playerY - enemy.Y
		dist := math.Hypot(dx, dy)
		if dist == 0 {
			dist = 1
		}
		ux, uy := dx/dist, dy/dist

		pursuit := 1.0
		if s.state == StateVictory {
			pursuit = -0.4
		}
		sway := math.Sin(s.elapsed*2+enemy.Phase) * 36

		enemy.X = clamp(enemy.X+(ux*enemy.Speed*pursuit-uy*sway)*dt, enemyRadius, CanvasWidth-enemyRadius)
		enemy.Y = clamp(enemy.Y+(uy*enemy.Speed*pursuit+ux*sway)*dt, enemyRadius, CanvasHeight-enemyRadius)

		if s.state == StatePlaying && dist < playerRadius+enemyRadius {
			s.state = StateGameOver
		}
	}
}

// SetPlayerPos teleports the player, clamped to the canvas. Test harness
// hook for driving pickups and collisions directly.
func (s *Simulation) SetPlayerPos(x, y float64) {
	s.playerX = clamp(x, playerRadius, CanvasWidth-playerRadius)
	s.playerY = clamp(y, playerRadius, CanvasHeight-playerRadius)
}

// State returns the current game phase
func (s *Simulation) State() State {
	return s.state
}

// PlayerPos returns the player's position
func (s *Simulation) PlayerPos() (float64, float64) {
	return s.playerX, s.playerY
}

// Pickups returns a copy of the pickup set
func (s *Simulation) Pickups() []Pickup {
	pickups := make([]Pickup, len(s.pickups))
	copy(pickups, s.pickups)
	return pickups
}

// Enemies returns a copy of the enemy set
func (s *Simulation) Enemies() []Enemy {
	enemies := make([]Enemy, len(s.enemies))
	copy(enemies, s.enemies)
	return enemies
}

// CollectedCount returns how many pickups have been collected
func (s *Simulation) CollectedCount() int {
	count := 0
	for _, p := range s.pickups {
		if p.Collected {
			count++
		}
	}
	return count
}

func axis(in Input) (float64, float64) {
	var dx, dy float64
	if in.Left {
		dx--
	}
	if in.Right {
		dx++
	}
	if in.Up {
		dy--
	}
	if in.Down {
		dy++
	}
	if length := math.Hypot(dx, dy); length > 0 {
		dx /= length
		dy /= length
	}
	return dx, dy
}

func clamp(value, lo, hi float64) float64 {
	return math.Min(hi, math.Max(lo, value))
}
