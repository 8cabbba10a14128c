package svgdoc

import (
	"fmt"
	"math"
	"strconv"

	"github.com/gogpu/gg"
)

// ParsePathData converts SVG path data (the "d" attribute) into a gg.Path.
//
// All commands are supported in absolute and relative form:
// M L H V C S Q T A Z. Elliptical arcs are converted to cubic Bezier segments.
// Z appends an explicit line back to the subpath start before closing, so that
// the path length matches the SVG total length of a closed subpath.
//
// On malformed data the returned path holds every segment completed before the
// first error, alongside the error, as SVG renderers draw up to the bad token.
func ParsePathData(d string) (*gg.Path, error) {
	p := &pathParser{
		scanner: pathScanner{s: d},
		path:    gg.NewPath(),
	}
	if err := p.parse(); err != nil {
		return p.path, fmt.Errorf("invalid path data %q: %w", truncate(d, 32), err)
	}
	return p.path, nil
}

type pathParser struct {
	scanner pathScanner
	path    *gg.Path

	cur, start gg.Point
	// lastCtrl is the last control point of the previous C/S or Q/T segment,
	// used to reflect the first control point of a smooth curve.
	lastCtrl gg.Point
	lastCmd  byte
}

func (p *pathParser) parse() error {
	sc := &p.scanner
	var cmd byte
	for {
		sc.skipSeparators()
		if sc.done() {
			return nil
		}

		c := sc.peek()
		if isCommand(c) {
			cmd = c
			sc.pos++
		} else if cmd == 0 {
			return fmt.Errorf("expected command at offset %d, got %q", sc.pos, c)
		} else if cmd == 'Z' || cmd == 'z' {
			return fmt.Errorf("unexpected number after closepath at offset %d", sc.pos)
		} else {
			// 隐式重复上一个命令；moveto 之后的坐标视为 lineto
			switch cmd {
			case 'M':
				cmd = 'L'
			case 'm':
				cmd = 'l'
			}
		}

		if p.lastCmd == 0 && cmd != 'M' && cmd != 'm' {
			return fmt.Errorf("path data must begin with moveto, got %q", cmd)
		}

		if err := p.command(cmd); err != nil {
			return err
		}
	}
}

func (p *pathParser) command(cmd byte) error {
	sc := &p.scanner
	rel := cmd >= 'a' && cmd <= 'z'
	var base gg.Point
	if rel {
		base = p.cur
	}

	switch cmd {
	case 'M', 'm':
		pt, err := sc.point(base)
		if err != nil {
			return err
		}
		p.path.MoveTo(pt.X, pt.Y)
		p.cur, p.start = pt, pt

	case 'L', 'l':
		pt, err := sc.point(base)
		if err != nil {
			return err
		}
		p.lineTo(pt)

	case 'H', 'h':
		x, err := sc.number()
		if err != nil {
			return err
		}
		p.lineTo(gg.Pt(base.X+x, p.cur.Y))

	case 'V', 'v':
		y, err := sc.number()
		if err != nil {
			return err
		}
		p.lineTo(gg.Pt(p.cur.X, base.Y+y))

	case 'C', 'c':
		pts, err := sc.points(base, 3)
		if err != nil {
			return err
		}
		p.cubicTo(pts[0], pts[1], pts[2])

	case 'S', 's':
		pts, err := sc.points(base, 2)
		if err != nil {
			return err
		}
		c1 := p.cur
		if isCubic(p.lastCmd) {
			c1 = reflect(p.lastCtrl, p.cur)
		}
		p.cubicTo(c1, pts[0], pts[1])

	case 'Q', 'q':
		pts, err := sc.points(base, 2)
		if err != nil {
			return err
		}
		p.quadTo(pts[0], pts[1])

	case 'T', 't':
		pt, err := sc.point(base)
		if err != nil {
			return err
		}
		ctrl := p.cur
		if isQuad(p.lastCmd) {
			ctrl = reflect(p.lastCtrl, p.cur)
		}
		p.quadTo(ctrl, pt)

	case 'A', 'a':
		if err := p.arc(base); err != nil {
			return err
		}

	case 'Z', 'z':
		if p.cur != p.start {
			p.path.LineTo(p.start.X, p.start.Y)
		}
		p.path.Close()
		p.cur = p.start
	}

	p.lastCmd = toUpper(cmd)
	return nil
}

func (p *pathParser) lineTo(pt gg.Point) {
	p.path.LineTo(pt.X, pt.Y)
	p.cur = pt
}

func (p *pathParser) cubicTo(c1, c2, pt gg.Point) {
	p.path.CubicTo(c1.X, c1.Y, c2.X, c2.Y, pt.X, pt.Y)
	p.lastCtrl = c2
	p.cur = pt
}

func (p *pathParser) quadTo(ctrl, pt gg.Point) {
	p.path.QuadraticTo(ctrl.X, ctrl.Y, pt.X, pt.Y)
	p.lastCtrl = ctrl
	p.cur = pt
}

func (p *pathParser) arc(base gg.Point) error {
	sc := &p.scanner
	rx, err := sc.number()
	if err != nil {
		return err
	}
	ry, err := sc.number()
	if err != nil {
		return err
	}
	rotation, err := sc.number()
	if err != nil {
		return err
	}
	largeArc, err := sc.flag()
	if err != nil {
		return err
	}
	sweep, err := sc.flag()
	if err != nil {
		return err
	}
	end, err := sc.point(base)
	if err != nil {
		return err
	}

	appendArc(p.path, p.cur, end, rx, ry, rotation, largeArc, sweep)
	p.cur = end
	return nil
}

// appendArc converts an SVG endpoint-parameterized elliptical arc to cubic
// Bezier segments of at most 90 degrees each.
func appendArc(path *gg.Path, from, to gg.Point, rx, ry, rotation float64, largeArc, sweep bool) {
	if from == to {
		return
	}
	rx, ry = math.Abs(rx), math.Abs(ry)
	if rx == 0 || ry == 0 {
		path.LineTo(to.X, to.Y)
		return
	}

	sinPhi, cosPhi := math.Sincos(rotation * math.Pi / 180)
	dx, dy := (from.X-to.X)/2, (from.Y-to.Y)/2
	x1p := cosPhi*dx + sinPhi*dy
	y1p := -sinPhi*dx + cosPhi*dy

	// 半径不足以连接两端点时按比例放大
	if lambda := (x1p*x1p)/(rx*rx) + (y1p*y1p)/(ry*ry); lambda > 1 {
		s := math.Sqrt(lambda)
		rx *= s
		ry *= s
	}

	num := rx*rx*ry*ry - rx*rx*y1p*y1p - ry*ry*x1p*x1p
	den := rx*rx*y1p*y1p + ry*ry*x1p*x1p
	var coef float64
	if den != 0 && num > 0 {
		coef = math.Sqrt(num / den)
	}
	if largeArc == sweep {
		coef = -coef
	}
	cxp := coef * rx * y1p / ry
	cyp := -coef * ry * x1p / rx
	cx := cosPhi*cxp - sinPhi*cyp + (from.X+to.X)/2
	cy := sinPhi*cxp + cosPhi*cyp + (from.Y+to.Y)/2

	ux, uy := (x1p-cxp)/rx, (y1p-cyp)/ry
	vx, vy := (-x1p-cxp)/rx, (-y1p-cyp)/ry
	theta := vectorAngle(1, 0, ux, uy)
	delta := vectorAngle(ux, uy, vx, vy)
	if !sweep && delta > 0 {
		delta -= 2 * math.Pi
	} else if sweep && delta < 0 {
		delta += 2 * math.Pi
	}

	segments := int(math.Ceil(math.Abs(delta) / (math.Pi / 2)))
	if segments == 0 {
		path.LineTo(to.X, to.Y)
		return
	}
	step := delta / float64(segments)
	k := 4.0 / 3.0 * math.Tan(step/4)

	mapPoint := func(x, y float64) gg.Point {
		return gg.Pt(
			cx+rx*x*cosPhi-ry*y*sinPhi,
			cy+rx*x*sinPhi+ry*y*cosPhi,
		)
	}

	for i := 0; i < segments; i++ {
		a1 := theta + float64(i)*step
		a2 := a1 + step
		s1, c1 := math.Sincos(a1)
		s2, c2 := math.Sincos(a2)

		p1 := mapPoint(c1-k*s1, s1+k*c1)
		p2 := mapPoint(c2+k*s2, s2-k*c2)
		p3 := mapPoint(c2, s2)
		if i == segments-1 {
			p3 = to
		}
		path.CubicTo(p1.X, p1.Y, p2.X, p2.Y, p3.X, p3.Y)
	}
}

func vectorAngle(ux, uy, vx, vy float64) float64 {
	return math.Atan2(ux*vy-uy*vx, ux*vx+uy*vy)
}

func reflect(ctrl, about gg.Point) gg.Point {
	return gg.Pt(2*about.X-ctrl.X, 2*about.Y-ctrl.Y)
}

func isCommand(c byte) bool {
	switch toUpper(c) {
	case 'M', 'L', 'H', 'V', 'C', 'S', 'Q', 'T', 'A', 'Z':
		return true
	}
	return false
}

func isCubic(cmd byte) bool { return cmd == 'C' || cmd == 'S' }

func isQuad(cmd byte) bool { return cmd == 'Q' || cmd == 'T' }

func toUpper(c byte) byte {
	if c >= 'a' && c <= 'z' {
		return c - 'a' + 'A'
	}
	return c
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}

// pathScanner tokenizes numbers and flags of SVG path data.
type pathScanner struct {
	s   string
	pos int
}

func (sc *pathScanner) done() bool { return sc.pos >= len(sc.s) }

func (sc *pathScanner) peek() byte { return sc.s[sc.pos] }

func (sc *pathScanner) skipSeparators() {
	for !sc.done() {
		switch sc.peek() {
		case ' ', '\t', '\n', '\r', '\f', ',':
			sc.pos++
		default:
			return
		}
	}
}

func (sc *pathScanner) number() (float64, error) {
	sc.skipSeparators()
	start := sc.pos
	if !sc.done() && (sc.peek() == '+' || sc.peek() == '-') {
		sc.pos++
	}
	digits := sc.digits()
	if !sc.done() && sc.peek() == '.' {
		sc.pos++
		digits += sc.digits()
	}
	if digits == 0 {
		sc.pos = start
		return 0, fmt.Errorf("expected number at offset %d", start)
	}
	// 指数部分必须带数字，否则 "e" 不属于该数字
	if !sc.done() && (sc.peek() == 'e' || sc.peek() == 'E') {
		mark := sc.pos
		sc.pos++
		if !sc.done() && (sc.peek() == '+' || sc.peek() == '-') {
			sc.pos++
		}
		if sc.digits() == 0 {
			sc.pos = mark
		}
	}

	v, err := strconv.ParseFloat(sc.s[start:sc.pos], 64)
	if err != nil {
		return 0, fmt.Errorf("bad number at offset %d: %w", start, err)
	}
	return v, nil
}

func (sc *pathScanner) digits() int {
	n := 0
	for !sc.done() && sc.peek() >= '0' && sc.peek() <= '9' {
		sc.pos++
		n++
	}
	return n
}

// flag reads an arc flag, which may be packed without separators ("a1 1 0 011 1").
func (sc *pathScanner) flag() (bool, error) {
	sc.skipSeparators()
	if sc.done() {
		return false, fmt.Errorf("expected flag at offset %d", sc.pos)
	}
	switch sc.peek() {
	case '0':
		sc.pos++
		return false, nil
	case '1':
		sc.pos++
		return true, nil
	}
	return false, fmt.Errorf("expected flag at offset %d, got %q", sc.pos, sc.peek())
}

func (sc *pathScanner) point(base gg.Point) (gg.Point, error) {
	x, err := sc.number()
	if err != nil {
		return gg.Point{}, err
	}
	y, err := sc.number()
	if err != nil {
		return gg.Point{}, err
	}
	return gg.Pt(base.X+x, base.Y+y), nil
}

func (sc *pathScanner) points(base gg.Point, n int) ([]gg.Point, error) {
	pts := make([]gg.Point, n)
	for i := range pts {
		pt, err := sc.point(base)
		if err != nil {
			return nil, err
		}
		pts[i] = pt
	}
	return pts, nil
}
