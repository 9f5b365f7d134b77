package system

import (
	"image/color"
	"sort"

	"github.com/hajimehoshi/ebiten/v2"
	ebtext "github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/milk9111/cityrun/common"
	"github.com/milk9111/cityrun/ecs"
	"github.com/milk9111/cityrun/ecs/component"
	"golang.org/x/image/font/basicfont"
)

// Viewport maps Y-up world units onto the screen, centred on the origin.
type Viewport struct {
	PixelsPerUnit float64
	Width         int
	Height        int
}

func (v Viewport) ToScreen(x, y float64) (float64, float64) {
	return common.WorldToScreen(x, y, v.PixelsPerUnit, v.Width, v.Height)
}

// RenderSystem draws every entity with a Render component as a filled shape
// the size of its physics body. There are no sprites.
type RenderSystem struct {
	face ebtext.Face
}

func NewRenderSystem() *RenderSystem {
	return &RenderSystem{face: ebtext.NewGoXFace(basicfont.Face7x13)}
}

type drawable struct {
	e      ecs.Entity
	layer  int
	render *component.Render
	tr     *component.Transform
	body   *component.PhysicsBody
}

func (r *RenderSystem) Draw(w *ecs.World, screen *ebiten.Image, view Viewport) {
	if r == nil || w == nil || screen == nil {
		return
	}

	var items []drawable
	ecs.ForEach3(w, component.RenderComponent.Kind(), component.TransformComponent.Kind(), component.PhysicsBodyComponent.Kind(), func(e ecs.Entity, rc *component.Render, t *component.Transform, b *component.PhysicsBody) {
		items = append(items, drawable{e: e, layer: rc.Layer, render: rc, tr: t, body: b})
	})
	sort.SliceStable(items, func(i, j int) bool {
		if items[i].layer != items[j].layer {
			return items[i].layer < items[j].layer
		}
		return items[i].e < items[j].e
	})

	ppu := view.PixelsPerUnit
	for _, it := range items {
		cx, cy := view.ToScreen(it.tr.X, it.tr.Y)
		clr := it.render.Color
		if clr == nil {
			clr = color.White
		}

		if it.body.Radius > 0 {
			vector.DrawFilledCircle(screen, float32(cx), float32(cy), float32(it.body.Radius*ppu), clr, true)
		} else {
			wpx, hpx := it.body.Width*ppu, it.body.Height*ppu
			vector.DrawFilledRect(screen, float32(cx-wpx/2), float32(cy-hpx/2), float32(wpx), float32(hpx), clr, false)
		}

		if f, ok := ecs.Get(w, it.e, component.FacingComponent.Kind()); ok {
			r.drawFacing(screen, cx, cy, it.body, f, ppu)
		}
		if it.render.Label != "" {
			op := &ebtext.DrawOptions{}
			op.GeoM.Translate(cx, cy)
			op.ColorScale.ScaleWithColor(color.Black)
			op.PrimaryAlign = ebtext.AlignCenter
			op.SecondaryAlign = ebtext.AlignCenter
			ebtext.Draw(screen, it.render.Label, r.face, op)
		}
	}
}

// drawFacing marks the side an entity is looking at.
func (r *RenderSystem) drawFacing(screen *ebiten.Image, cx, cy float64, body *component.PhysicsBody, f *component.Facing, ppu float64) {
	half := body.Width / 2
	if body.Radius > 0 {
		half = body.Radius
	}
	x := cx + half*ppu*0.6
	if f.Left {
		x = cx - half*ppu*0.6
	}
	vector.DrawFilledCircle(screen, float32(x), float32(cy-ppu*0.5), float32(ppu*0.2), color.White, true)
}
