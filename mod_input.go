package orbitcam

import (
	"github.com/go-gl/glfw/v3.3/glfw"
)

const (
	KeyA int = iota
	KeyB
	KeyC
	KeyD
	KeyE
	KeyF
	KeyG
	KeyH
	KeyI
	KeyJ
	KeyK
	KeyL
	KeyM
	KeyN
	KeyO
	KeyP
	KeyQ
	KeyR
	KeyS
	KeyT
	KeyU
	KeyV
	KeyW
	KeyX
	KeyY
	KeyZ
	KeySpace
	KeyEnter
	KeyEscape
	KeyTab
	KeyRight
	KeyLeft
	KeyDown
	KeyUp
	KeyShift
	KeyControl
	KeyLeftAlt
	MouseButtonLeft
	MouseButtonRight
	MouseButtonMiddle
)

type ScrollUnit int

const (
	// ScrollLine is a discrete wheel notch; values are taken as-is.
	ScrollLine ScrollUnit = iota
	// ScrollPixel is smooth touchpad scrolling; values are scaled down
	// by the translators.
	ScrollPixel
)

type ScrollEvent struct {
	Unit ScrollUnit
	X    float32
	Y    float32
}

// Input is the per-frame input snapshot translators read. A host fills
// it once per frame, either through InputModule's GLFW poll or by hand
// in headless setups and tests.
type Input struct {
	Pressed [256]bool

	JustPressed  [256]bool
	JustReleased [256]bool

	MouseX, MouseY           float64
	MouseDeltaX, MouseDeltaY float64

	Scroll []ScrollEvent

	WindowWidth, WindowHeight int
}

// PushScroll buffers a scroll event for this frame.
func (input *Input) PushScroll(unit ScrollUnit, x, y float32) {
	input.Scroll = append(input.Scroll, ScrollEvent{Unit: unit, X: x, Y: y})
}

// DrainScroll empties the scroll buffer. Gated-off translators call
// this so stale events cannot leak into a later-enabled frame.
func (input *Input) DrainScroll() {
	input.Scroll = input.Scroll[:0]
}

// InputModule polls a GLFW window into the Input resource every
// PreUpdate. Scroll offsets arrive via callback between polls and get
// drained by whichever translator consumes them.
type InputModule struct {
	Window *glfw.Window
}

func (mod InputModule) Install(app *App, cmd *Commands) {
	input := &Input{}
	cmd.AddResources(input)

	mod.Window.SetScrollCallback(func(w *glfw.Window, xoff, yoff float64) {
		input.PushScroll(ScrollLine, float32(xoff), float32(yoff))
	})

	app.UseSystem(
		System(func(input *Input) {
			pollInput(mod.Window, input)
		}).InStage(PreUpdate),
	)
}

func pollInput(window *glfw.Window, input *Input) {
	glfw.PollEvents()

	for key, glfwKey := range keyToGlfw {
		action := window.GetKey(glfwKey)
		updateButton(input, key, glfw.Press == action)
	}

	for btn, glfwBtn := range buttonToGlfw {
		action := window.GetMouseButton(glfwBtn)
		updateButton(input, btn, glfw.Press == action)
	}

	mx, my := window.GetCursorPos()
	input.MouseDeltaX = mx - input.MouseX
	input.MouseDeltaY = my - input.MouseY
	input.MouseX = mx
	input.MouseY = my

	input.WindowWidth, input.WindowHeight = window.GetSize()
}

func updateButton(input *Input, key int, pressed bool) {
	input.JustPressed[key] = false
	input.JustReleased[key] = false

	if pressed {
		if !input.Pressed[key] {
			input.JustPressed[key] = true
		}
		input.Pressed[key] = true
	} else {
		if input.Pressed[key] {
			input.JustReleased[key] = true
		}
		input.Pressed[key] = false
	}
}

var keyToGlfw = map[int]glfw.Key{
	KeyA:       glfw.KeyA,
	KeyB:       glfw.KeyB,
	KeyC:       glfw.KeyC,
	KeyD:       glfw.KeyD,
	KeyE:       glfw.KeyE,
	KeyF:       glfw.KeyF,
	KeyG:       glfw.KeyG,
	KeyH:       glfw.KeyH,
	KeyI:       glfw.KeyI,
	KeyJ:       glfw.KeyJ,
	KeyK:       glfw.KeyK,
	KeyL:       glfw.KeyL,
	KeyM:       glfw.KeyM,
	KeyN:       glfw.KeyN,
	KeyO:       glfw.KeyO,
	KeyP:       glfw.KeyP,
	KeyQ:       glfw.KeyQ,
	KeyR:       glfw.KeyR,
	KeyS:       glfw.KeyS,
	KeyT:       glfw.KeyT,
	KeyU:       glfw.KeyU,
	KeyV:       glfw.KeyV,
	KeyW:       glfw.KeyW,
	KeyX:       glfw.KeyX,
	KeyY:       glfw.KeyY,
	KeyZ:       glfw.KeyZ,
	KeySpace:   glfw.KeySpace,
	KeyEnter:   glfw.KeyEnter,
	KeyEscape:  glfw.KeyEscape,
	KeyTab:     glfw.KeyTab,
	KeyRight:   glfw.KeyRight,
	KeyLeft:    glfw.KeyLeft,
	KeyDown:    glfw.KeyDown,
	KeyUp:      glfw.KeyUp,
	KeyShift:   glfw.KeyLeftShift,
	KeyControl: glfw.KeyLeftControl,
	KeyLeftAlt: glfw.KeyLeftAlt,
}

var buttonToGlfw = map[int]glfw.MouseButton{
	MouseButtonLeft:   glfw.MouseButtonLeft,
	MouseButtonRight:  glfw.MouseButtonRight,
	MouseButtonMiddle: glfw.MouseButtonMiddle,
}
