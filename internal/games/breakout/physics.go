package breakout

import (
	"math"

	"github.com/vovakirdan/canvas-arcade/internal/core"
)

// Ball is the circular projectile. Velocity is in pixels per 60 Hz tick.
type Ball struct {
	Pos    core.Vec2
	Vel    core.Vec2
	Radius float64
}

// Circle returns the ball body.
func (b Ball) Circle() core.Circle {
	return core.Circle{X: b.Pos.X, Y: b.Pos.Y, Radius: b.Radius}
}

// Speed returns the velocity magnitude.
func (b Ball) Speed() float64 {
	return b.Vel.Len()
}

// Paddle is the player-controlled rectangle.
type Paddle struct {
	Body  core.RectF
	Speed float64
}

// MoveBy shifts the paddle horizontally, clamped to [0, width-paddleWidth].
func (p *Paddle) MoveBy(dx, width float64) {
	p.MoveTo(p.Body.X+dx, width)
}

// MoveTo places the paddle's left edge, clamped to the canvas.
func (p *Paddle) MoveTo(x, width float64) {
	p.Body.X = core.ClampF(x, 0, width-p.Body.W)
}

// CheckWallCollision reflects the ball off the side and top walls.
// The axes are handled independently; the outgoing sign is forced so a ball
// still overlapping the wall next tick is not flipped back into it.
func CheckWallCollision(b *Ball, width float64) bool {
	hit := false
	switch {
	case b.Pos.X+b.Radius > width:
		b.Vel.X = -math.Abs(b.Vel.X)
		b.Pos.X = width - b.Radius
		hit = true
	case b.Pos.X-b.Radius < 0:
		b.Vel.X = math.Abs(b.Vel.X)
		b.Pos.X = b.Radius
		hit = true
	}
	if b.Pos.Y-b.Radius < 0 {
		b.Vel.Y = math.Abs(b.Vel.Y)
		b.Pos.Y = b.Radius
		hit = true
	}
	return hit
}

// PaddleOverlap compares the ball's vertical extent with the paddle's top and
// bottom, and the ball's center with the paddle's left and right edges.
func PaddleOverlap(b Ball, p core.RectF) bool {
	return b.Pos.Y+b.Radius > p.Y &&
		b.Pos.Y-b.Radius < p.Bottom() &&
		b.Pos.X > p.X &&
		b.Pos.X < p.Right()
}

// CheckPaddleCollision deflects the ball by where it struck the paddle.
// hit 0 is the left edge and 1 the right; the outgoing angle from vertical
// is (hit-0.5)*2*maxAngle. Speed is preserved and the ball always leaves upward.
func CheckPaddleCollision(b *Ball, p core.RectF, maxAngle float64) bool {
	if !PaddleOverlap(*b, p) {
		return false
	}
	hit := (b.Pos.X - p.X) / p.W
	angle := (hit - 0.5) * 2 * maxAngle
	speed := b.Speed()
	b.Vel.X = speed * math.Sin(angle)
	b.Vel.Y = -math.Abs(speed * math.Cos(angle))
	return true
}

// CheckBrickCollision destroys the first visible brick overlapping the ball's
// bounding box and flips vertical velocity. At most one brick per call.
func CheckBrickCollision(b *Ball, bricks []Brick) (int, bool) {
	bounds := b.Circle().Bounds()
	for i := range bricks {
		if !bricks[i].Visible {
			continue
		}
		if bounds.Intersects(bricks[i].Body) {
			bricks[i].Visible = false
			b.Vel.Y = -b.Vel.Y
			return i, true
		}
	}
	return -1, false
}
