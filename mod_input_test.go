package orbitcam

import (
	"testing"
)

func TestInput_ButtonEdgeTransitions(t *testing.T) {
	input := &Input{}

	updateButton(input, KeyR, true)
	if !input.Pressed[KeyR] || !input.JustPressed[KeyR] {
		t.Errorf("first press should set Pressed and JustPressed")
	}

	updateButton(input, KeyR, true)
	if input.JustPressed[KeyR] {
		t.Errorf("held key should not report JustPressed again")
	}

	updateButton(input, KeyR, false)
	if input.Pressed[KeyR] || !input.JustReleased[KeyR] {
		t.Errorf("release should clear Pressed and set JustReleased")
	}

	updateButton(input, KeyR, false)
	if input.JustReleased[KeyR] {
		t.Errorf("idle key should not report JustReleased again")
	}
}

func TestInput_ScrollBuffer(t *testing.T) {
	input := &Input{}

	input.PushScroll(ScrollLine, 0, 1)
	input.PushScroll(ScrollPixel, 0, -40)
	if len(input.Scroll) != 2 {
		t.Fatalf("expected 2 buffered events, got %d", len(input.Scroll))
	}
	if input.Scroll[1].Unit != ScrollPixel || input.Scroll[1].Y != -40 {
		t.Errorf("event order or payload lost: %v", input.Scroll)
	}

	input.DrainScroll()
	if len(input.Scroll) != 0 {
		t.Errorf("drain should empty the buffer")
	}
}
