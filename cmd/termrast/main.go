// termrast - spin a 3D model in your terminal as shaded ASCII.
//
// Controls:
//
//	W/S    - Pitch impulse
//	A/D    - Yaw impulse
//	Space  - Random spin impulse
//	X      - Toggle wireframe mode
//	+/-    - Zoom in/out
//	R      - Reset view
//	Esc/Q  - Quit
package main

import (
	"context"
	"flag"
	"fmt"
	"math"
	"math/rand"
	"os"
	"os/signal"
	"path/filepath"
	"runtime"
	"strings"
	"syscall"
	"time"

	"github.com/charmbracelet/harmonica"
	uv "github.com/charmbracelet/ultraviolet"

	"github.com/quells/termrast/pkg/math3d"
	"github.com/quells/termrast/pkg/models"
	"github.com/quells/termrast/pkg/render"
)

var (
	targetFPS  = flag.Int("fps", 30, "Target frames per second")
	fov        = flag.Float64("fov", 60, "Vertical field of view in degrees")
	spinRate   = flag.Float64("spin", 1.0, "Auto-rotation speed in radians/second (0 disables)")
	rampFlag   = flag.String("ramp", string(render.DefaultRamp), "Glyph ramp, sparse to dense")
	lightFlag  = flag.String("light", "0,0,-1", "Light direction (X,Y,Z)")
	wireframe  = flag.Bool("wireframe", false, "Start in wireframe mode")
	workers    = flag.Int("workers", runtime.NumCPU(), "Rasterizer worker count")
	cellAspect = flag.Float64("cell-aspect", 0.5, "Terminal cell width/height ratio")
)

func main() {
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "termrast - terminal ASCII 3D model viewer\n\n")
		fmt.Fprintf(os.Stderr, "Usage: termrast [options] <model.obj|model.glb>\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nControls:\n")
		fmt.Fprintf(os.Stderr, "  W/S/A/D  - Pitch and yaw impulses\n")
		fmt.Fprintf(os.Stderr, "  Space    - Random spin\n")
		fmt.Fprintf(os.Stderr, "  X        - Toggle wireframe\n")
		fmt.Fprintf(os.Stderr, "  +/-      - Zoom in/out\n")
		fmt.Fprintf(os.Stderr, "  R        - Reset view\n")
		fmt.Fprintf(os.Stderr, "  Esc/Q    - Quit\n")
	}
	flag.Parse()

	if flag.NArg() < 1 {
		flag.Usage()
		os.Exit(1)
	}

	if err := run(flag.Arg(0)); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// SpinAxis tracks one rotation axis: an accumulating angle plus an
// impulse velocity that a harmonica spring decays smoothly back to zero.
type SpinAxis struct {
	Angle    float64
	Velocity float64

	spring harmonica.Spring
	accel  float64
}

// NewSpinAxis creates a critically damped axis for the given frame rate.
func NewSpinAxis(fps int) SpinAxis {
	return SpinAxis{
		spring: harmonica.NewSpring(harmonica.FPS(fps), 4.0, 1.0),
	}
}

// Update advances the angle by the current velocity and relaxes the
// velocity toward zero.
func (a *SpinAxis) Update() {
	a.Angle += a.Velocity
	a.Velocity, a.accel = a.spring.Update(a.Velocity, a.accel, 0)
}

// SpinState is the animation state carried across frames: the auto-spin
// angle and the interactive pitch/yaw axes.
type SpinState struct {
	Auto  float64 // accumulated auto-rotation about the vertical axis
	Pitch SpinAxis
	Yaw   SpinAxis
	fps   int
}

func NewSpinState(fps int) *SpinState {
	return &SpinState{
		Pitch: NewSpinAxis(fps),
		Yaw:   NewSpinAxis(fps),
		fps:   fps,
	}
}

func (s *SpinState) Update(dt float64, autoRate float64) {
	s.Auto += autoRate * dt
	s.Pitch.Update()
	s.Yaw.Update()
}

func (s *SpinState) Reset() {
	s.Auto = 0
	s.Pitch = NewSpinAxis(s.fps)
	s.Yaw = NewSpinAxis(s.fps)
}

// Model returns this frame's object-to-world matrix.
func (s *SpinState) Model() math3d.Mat4 {
	return math3d.RotateY(s.Auto + s.Yaw.Angle).Mul(math3d.RotateX(s.Pitch.Angle))
}

// viewer is the whole interactive state. All of it is owned by the frame
// loop goroutine: terminal events arrive over a channel and are applied
// between frames, never during rasterization.
type viewer struct {
	term   *uv.Terminal
	buf    *render.CharBuffer
	rast   *render.Rasterizer
	camera *render.Camera
	spin   *SpinState

	cellAspect float64
	wire       bool
	cameraZ    float64
	quit       bool
}

// handleEvent applies one terminal event to the viewer state.
func (v *viewer) handleEvent(ev uv.Event) {
	switch ev := ev.(type) {
	case uv.WindowSizeEvent:
		if v.term != nil {
			v.term.Erase()
			v.term.Resize(ev.Width, ev.Height)
		}
		v.resize(ev.Width, ev.Height)
	case uv.KeyPressEvent:
		v.handleKey(ev)
	}
}

// resize swaps in a fresh grid and keeps the projection matched to it.
func (v *viewer) resize(width, height int) {
	v.buf = render.NewCharBuffer(width, height)
	v.rast.SetBuffer(v.buf)
	v.camera.SetAspect(float64(width) * v.cellAspect / float64(height))
}

func (v *viewer) handleKey(ev uv.KeyPressEvent) {
	switch {
	case ev.MatchString("escape"), ev.MatchString("ctrl+c"), ev.MatchString("q"):
		v.quit = true
	case ev.MatchString("w", "up"):
		v.spin.Pitch.Velocity -= 0.05
	case ev.MatchString("s", "down"):
		v.spin.Pitch.Velocity += 0.05
	case ev.MatchString("a", "left"):
		v.spin.Yaw.Velocity -= 0.05
	case ev.MatchString("d", "right"):
		v.spin.Yaw.Velocity += 0.05
	case ev.MatchString("space"):
		v.spin.Pitch.Velocity += (rand.Float64() - 0.5) * 0.4
		v.spin.Yaw.Velocity += (rand.Float64() - 0.5) * 0.4
	case ev.MatchString("x"):
		v.wire = !v.wire
	case ev.MatchString("+", "="):
		v.setZoom(v.cameraZ - 0.5)
	case ev.MatchString("-", "_"):
		v.setZoom(v.cameraZ + 0.5)
	case ev.MatchString("r"):
		v.spin.Reset()
		v.setZoom(5.0)
	}
}

// setZoom moves the eye along the view axis, clamped to a sane range.
func (v *viewer) setZoom(z float64) {
	v.cameraZ = math.Min(20, math.Max(1, z))
	v.camera.SetEye(math3d.V3(0, 0, -v.cameraZ))
}

// drawHUD writes a status line into the top row of the grid. The +Inf
// depth keeps geometry from overwriting it.
func drawHUD(buf *render.CharBuffer, text string) {
	col := 0
	for _, g := range text {
		buf.Set(col, 0, g, math.Inf(1))
		col++
	}
}

func parseLight(s string) (math3d.Vec3, error) {
	var x, y, z float64
	if _, err := fmt.Sscanf(s, "%f,%f,%f", &x, &y, &z); err != nil {
		return math3d.Vec3{}, fmt.Errorf("light direction %q: want X,Y,Z", s)
	}
	return math3d.V3(x, y, z), nil
}

func loadMesh(path string) (*models.Mesh, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".obj":
		return models.LoadOBJ(path)
	case ".glb", ".gltf":
		return models.LoadGLTF(path)
	default:
		return nil, fmt.Errorf("unsupported format %q (use .obj or .glb)", filepath.Ext(path))
	}
}

func run(modelPath string) error {
	ramp, err := render.NewRamp(*rampFlag)
	if err != nil {
		return err
	}
	light, err := parseLight(*lightFlag)
	if err != nil {
		return err
	}

	mesh, err := loadMesh(modelPath)
	if err != nil {
		return fmt.Errorf("load model: %w", err)
	}
	mesh.Normalize(2.0)

	term := uv.DefaultTerminal()
	width, height, err := term.GetSize()
	if err != nil {
		return fmt.Errorf("get terminal size: %w", err)
	}
	if err := term.Start(); err != nil {
		return fmt.Errorf("start terminal: %w", err)
	}
	term.EnterAltScreen()
	term.HideCursor()
	term.Resize(width, height)

	camera := render.NewCamera()
	camera.SetFOV(*fov)
	camera.SetClipPlanes(0.1, 100)
	camera.SetTarget(math3d.Zero3())

	buf := render.NewCharBuffer(width, height)
	rast := render.NewRasterizer(camera, buf)
	rast.Ramp = ramp
	rast.Light = light
	rast.Workers = *workers
	presenter := render.NewTerminalPresenter(term)

	v := &viewer{
		term:       term,
		buf:        buf,
		rast:       rast,
		camera:     camera,
		spin:       NewSpinState(*targetFPS),
		cellAspect: *cellAspect,
		wire:       *wireframe,
	}
	v.setZoom(5.0)
	v.camera.SetAspect(float64(width) * v.cellAspect / float64(height))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigChan
		cancel()
	}()

	// The goroutine only forwards; the frame loop owns all state and
	// applies events between frames.
	events := make(chan uv.Event, 64)
	go func() {
		for ev := range term.Events() {
			select {
			case events <- ev:
			case <-ctx.Done():
				return
			}
		}
	}()

	cleanup := func() {
		term.ExitAltScreen()
		term.ShowCursor()
		term.Shutdown(context.Background())
	}

	targetDuration := time.Second / time.Duration(*targetFPS)
	lastFrame := time.Now()
	var fps float64
	fpsFrames := 0
	fpsTime := time.Now()

	for {
		select {
		case <-ctx.Done():
			cleanup()
			return nil
		default:
		}

		drained := false
		for !drained {
			select {
			case ev := <-events:
				v.handleEvent(ev)
			default:
				drained = true
			}
		}
		if v.quit {
			cleanup()
			return nil
		}

		now := time.Now()
		dt := now.Sub(lastFrame).Seconds()
		lastFrame = now
		if dt > 0.1 {
			dt = 0.1
		}

		v.spin.Update(dt, *spinRate)
		frame := render.Frame{Model: v.spin.Model()}

		if v.wire {
			v.rast.RenderWireframe(mesh, frame)
		} else {
			v.rast.Render(mesh, frame)
		}

		fpsFrames++
		if elapsed := time.Since(fpsTime); elapsed >= time.Second {
			fps = float64(fpsFrames) / elapsed.Seconds()
			fpsFrames = 0
			fpsTime = time.Now()
		}
		drawHUD(v.buf, fmt.Sprintf(" %s | %d tris | %.0f fps ",
			filepath.Base(modelPath), mesh.TriangleCount(), fps))

		if err := presenter.Present(v.buf); err != nil {
			cleanup()
			return fmt.Errorf("present: %w", err)
		}

		if elapsed := time.Since(now); elapsed < targetDuration {
			time.Sleep(targetDuration - elapsed)
		}
	}
}
