// Package render draws a lane onto a tcell screen.
package render

import (
	"fmt"
	"math"
	"strconv"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/chronodash/core"
	"github.com/lixenwraith/chronodash/lane"
	"github.com/lixenwraith/chronodash/parameter"
	"github.com/lixenwraith/chronodash/status"
	"github.com/lixenwraith/chronodash/world"
)

// Hazard glyphs indexed by species
var speciesRunes = [core.SpeciesCount]rune{
	core.SpeciesSpike: '▲',
	core.SpeciesSaw:   '✱',
	core.SpeciesDrone: '◇',
	core.SpeciesCrate: '▣',
}

// Collectible glyphs and colors indexed by rarity
var (
	rarityRunes = [core.RarityCount]rune{
		core.RarityCommon:   parameter.CollectibleRuneBase,
		core.RarityUncommon: 'O',
		core.RarityRare:     '◆',
	}
	rarityColors = [core.RarityCount]tcell.Color{
		core.RarityCommon:   tcell.ColorSilver,
		core.RarityUncommon: tcell.ColorAqua,
		core.RarityRare:     tcell.ColorGold,
	}
)

var (
	styleHUD      = tcell.StyleDefault.Foreground(tcell.ColorWhite)
	styleFloor    = tcell.StyleDefault.Foreground(tcell.ColorGray)
	styleBoundary = tcell.StyleDefault.Foreground(tcell.ColorRed)
	styleField    = tcell.StyleDefault.Foreground(tcell.ColorTeal).Background(tcell.ColorNavy)
	styleHazard   = tcell.StyleDefault.Foreground(tcell.ColorOrangeRed)
	styleHit      = tcell.StyleDefault.Foreground(tcell.ColorDarkRed)
	stylePlayer   = tcell.StyleDefault.Foreground(tcell.ColorLime).Bold(true)
)

// LaneView renders one lane: HUD, floor, boundary, field, entities, player
// Under flipped orientation the floor is drawn above the lane
type LaneView struct {
	screen tcell.Screen
	reg    *status.Registry

	// World X at the left screen edge
	viewLeft float64
}

// NewLaneView creates a view; the left edge sits one unit past the flipped boundary
func NewLaneView(screen tcell.Screen, l *lane.Lane) *LaneView {
	return &LaneView{
		screen:   screen,
		reg:      l.Status(),
		viewLeft: l.Bounds().Flipped - 1,
	}
}

// Column maps a world X to a screen column
func (v *LaneView) Column(x float64) int {
	return parameter.LeftMargin + int(math.Floor((x-v.viewLeft)*parameter.CellsPerUnit))
}

// Row returns the screen row the lane is drawn on
func (v *LaneView) Row() int {
	_, h := v.screen.Size()
	return parameter.TopMargin + (h-parameter.TopMargin)/2
}

// Draw renders the lane and shows the frame
func (v *LaneView) Draw(l *lane.Lane) {
	v.screen.Clear()

	flipped := l.Flipped()
	row := v.Row()
	floorRow, airRow := row+1, row-1
	if flipped {
		floorRow, airRow = row-1, row+1
	}

	v.drawFloor(floorRow, l.Bounds().For(flipped))
	v.drawField(row, l.Field(), l.Config().Lane.Y)

	for _, h := range l.Hazards() {
		style := styleHazard
		if h.PlayerHit() {
			style = styleHit
		}
		v.set(v.Column(h.Position()), row, speciesRunes[h.Species], style)
	}
	for _, c := range l.Collectibles() {
		k := c.Kind()
		v.set(v.Column(c.Position()), row, rarityRunes[k], tcell.StyleDefault.Foreground(rarityColors[k]))
	}

	p := l.Player()
	playerRow, glyph := row, rune(parameter.PlayerRune)
	if p.Y != l.Config().Lane.Y {
		playerRow, glyph = airRow, parameter.PlayerAirborneRune
	}
	v.set(v.Column(p.X), playerRow, glyph, stylePlayer)

	v.drawHUD(flipped)
	v.screen.Show()
}

func (v *LaneView) drawFloor(row int, boundary float64) {
	w, _ := v.screen.Size()
	for x := 0; x < w; x++ {
		v.set(x, row, parameter.LaneFloorRune, styleFloor)
	}
	v.set(v.Column(boundary), row, parameter.BoundaryRune, styleBoundary)
}

func (v *LaneView) drawField(row int, field world.FieldProvider, laneY float64) {
	if field == nil || !field.IsActive() {
		return
	}
	w, _ := v.screen.Size()
	for col := 0; col < w; col++ {
		x := v.viewLeft + float64(col-parameter.LeftMargin)/parameter.CellsPerUnit
		if field.Contains(world.Point{X: x, Y: laneY}) {
			v.set(col, row, parameter.DilationFieldRune, styleField)
		}
	}
}

func (v *LaneView) drawHUD(flipped bool) {
	snap := v.reg.Snapshot()
	line := fmt.Sprintf(" score %s  health %s  streak %s  frame %s  speed x%s",
		orDash(snap["score.total"]), orDash(snap["score.health"]), orDash(snap["score.streak"]),
		orDash(snap["lane.frame"]), orDash(snap["lane.multiplier"]))
	if flipped {
		line += "  [FLIP]"
	}
	if snap["lane.field_active"] == "true" {
		if rem := snap["field.remaining"]; rem != "" && rem != "0.00" {
			line += "  [FIELD " + rem + "s]"
		} else {
			line += "  [FIELD]"
		}
	}
	if snap["boost.active"] == "true" {
		line += "  [BOOST " + percent(snap["boost.progress"]) + "]"
	}
	if snap["player.airborne"] == "true" {
		line += "  [AIR]"
	}
	if snap["audio.muted"] == "true" {
		line += "  [MUTE]"
	}
	if snap["score.dead"] == "true" {
		line += "  GAME OVER"
	}
	v.text(0, 0, line, styleHUD)
}

func (v *LaneView) text(x, y int, s string, style tcell.Style) {
	for _, r := range s {
		v.set(x, y, r, style)
		x++
	}
}

// set draws a single cell, clipped to the screen
func (v *LaneView) set(x, y int, r rune, style tcell.Style) {
	w, h := v.screen.Size()
	if x < 0 || y < 0 || x >= w || y >= h {
		return
	}
	v.screen.SetContent(x, y, r, nil, style)
}

// percent renders a 0..1 gauge snapshot as a whole percentage
func percent(s string) string {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return "-"
	}
	return strconv.Itoa(int(math.Round(v*100))) + "%"
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
