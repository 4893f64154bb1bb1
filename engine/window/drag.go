package window

// dragTracker turns button presses and cursor moves into drag deltas for one button at a time.
type dragTracker struct {
	button   uint32
	active   bool
	lastX    float32
	lastY    float32
	hasFirst bool
}

// press starts a drag unless another button is already dragging.
func (d *dragTracker) press(button uint32, x, y float32) {
	if d.active {
		return
	}
	d.button = button
	d.active = true
	d.lastX, d.lastY = x, y
	d.hasFirst = true
}

// release ends the drag if button is the dragging button.
func (d *dragTracker) release(button uint32) {
	if d.active && d.button == button {
		d.active = false
		d.hasFirst = false
	}
}

// move returns the cursor delta since the last event while a drag is active.
func (d *dragTracker) move(x, y float32) (button uint32, dx, dy float32, ok bool) {
	if !d.active {
		return 0, 0, 0, false
	}
	if !d.hasFirst {
		d.lastX, d.lastY, d.hasFirst = x, y, true
		return d.button, 0, 0, false
	}
	dx, dy = x-d.lastX, y-d.lastY
	d.lastX, d.lastY = x, y
	return d.button, dx, dy, dx != 0 || dy != 0
}
