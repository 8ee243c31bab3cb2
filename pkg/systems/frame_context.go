package systems

// ReferenceFPS is the frame rate every per-frame constant in FieldConfig is
// tuned for. A frame of dt seconds advances motion by dt*ReferenceFPS "frames".
const ReferenceFPS = 60.0

// Pointer is the last known pointer position in surface coordinates.
// Present is false until the first pointer event arrives.
type Pointer struct {
	X, Y    float64
	Present bool
}

// FrameContext carries the per-frame inputs shared by MotionSystem and
// RenderSystem.
type FrameContext struct {
	// ElapsedMs is the time since the engine's first frame, in milliseconds.
	ElapsedMs float64
	// K is the frame-rate scale factor: dt * ReferenceFPS.
	K float64
	// Width, Height is the current viewport size.
	Width, Height float64
	Pointer       Pointer
}

// FrameScale converts a delta time in seconds into the motion scale factor,
// clamping dt to [0, maxDelta].
func FrameScale(dt, maxDelta float64) float64 {
	if dt < 0 {
		dt = 0
	}
	if maxDelta > 0 && dt > maxDelta {
		dt = maxDelta
	}
	return dt * ReferenceFPS
}
