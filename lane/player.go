package lane

import (
	"time"

	"github.com/lixenwraith/chronodash/config"
	"github.com/lixenwraith/chronodash/world"
)

// PlayerPositionProvider reports the player's current world position
type PlayerPositionProvider interface {
	PlayerPosition() world.Point
}

// FieldOwner is implemented by players that carry their own dilation field
type FieldOwner interface {
	Field() *world.DilationField
}

// Player is the lane's reference point: crossing, overlap and the dilation field center
type Player struct {
	position world.Point
	ground   float64
	field    *world.DilationField

	jumpHeight   float64
	jumpDuration time.Duration
	airborne     time.Duration
}

// NewPlayer places a grounded player on the lane with an inactive dilation field
func NewPlayer(cfg config.Config) *Player {
	pos := world.Point{X: cfg.Player.X, Y: cfg.Lane.Y}
	return &Player{
		position:     pos,
		ground:       cfg.Lane.Y,
		field:        world.NewDilationField(pos, cfg.Dilation.Radius, cfg.Dilation.SlowFactor),
		jumpHeight:   cfg.Player.JumpHeight,
		jumpDuration: cfg.Player.JumpDuration,
	}
}

func (p *Player) PlayerPosition() world.Point { return p.position }

func (p *Player) Field() *world.DilationField { return p.field }

// MoveTo moves the player horizontally; the field follows
func (p *Player) MoveTo(x float64) {
	p.position.X = x
	p.field.MoveTo(p.position)
}

// Jump lifts the player off the lane; ignored while already airborne
func (p *Player) Jump() bool {
	if p.airborne > 0 || p.jumpDuration <= 0 {
		return false
	}
	p.airborne = p.jumpDuration
	p.position.Y = p.ground + p.jumpHeight
	p.field.MoveTo(p.position)
	return true
}

// Airborne reports whether the player is mid-jump
func (p *Player) Airborne() bool { return p.airborne > 0 }

// Advance runs the player's own timers: jump landing and a timed field
// Call between lane ticks, never during one
func (p *Player) Advance(dt time.Duration) {
	if p.airborne > 0 {
		p.airborne -= dt
		if p.airborne <= 0 {
			p.airborne = 0
			p.position.Y = p.ground
			p.field.MoveTo(p.position)
		}
	}
	p.field.Advance(dt)
}
