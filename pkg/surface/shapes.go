package surface

import "math"

// RoundRect 以当前路径追加圆角矩形子路径
//
// 半径超过短边一半时被截断。
func RoundRect(s Surface, x, y, w, h, r float64) {
	if w <= 0 || h <= 0 {
		return
	}
	r = math.Min(r, math.Min(w, h)/2)
	if r <= 0 {
		s.MoveTo(x, y)
		s.LineTo(x+w, y)
		s.LineTo(x+w, y+h)
		s.LineTo(x, y+h)
		s.ClosePath()
		return
	}
	s.MoveTo(x+r, y)
	s.LineTo(x+w-r, y)
	s.Arc(x+w-r, y+r, r, -math.Pi/2, 0, false)
	s.LineTo(x+w, y+h-r)
	s.Arc(x+w-r, y+h-r, r, 0, math.Pi/2, false)
	s.LineTo(x+r, y+h)
	s.Arc(x+r, y+h-r, r, math.Pi/2, math.Pi, false)
	s.LineTo(x, y+r)
	s.Arc(x+r, y+r, r, math.Pi, 3*math.Pi/2, false)
	s.ClosePath()
}

// Circle 以当前路径追加整圆子路径
func Circle(s Surface, cx, cy, r float64) {
	s.MoveTo(cx+r, cy)
	s.Arc(cx, cy, r, 0, 2*math.Pi, false)
	s.ClosePath()
}
