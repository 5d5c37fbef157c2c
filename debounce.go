package snapsheet

import "time"

// Debouncer delays a notification until its trigger has been quiet for a
// fixed delay. It is driven by the host's frame clock through Update rather
// than timers, so it fires on the UI loop and tests stay deterministic.
type Debouncer struct {
	delay   time.Duration
	elapsed time.Duration
	pending bool
	fire    func()
}

// NewDebouncer creates a debouncer that calls fire once delay has passed
// since the last Trigger. A zero delay fires synchronously inside Trigger.
func NewDebouncer(delay time.Duration, fire func()) *Debouncer {
	return &Debouncer{delay: delay, fire: fire}
}

// Trigger (re)starts the quiet period.
func (d *Debouncer) Trigger() {
	if d.delay <= 0 {
		d.pending = false
		d.fire()
		return
	}
	d.pending = true
	d.elapsed = 0
}

// Update advances the clock by dt seconds and fires if the quiet period has
// elapsed.
func (d *Debouncer) Update(dt float64) {
	if !d.pending {
		return
	}
	d.elapsed += time.Duration(dt * float64(time.Second))
	if d.elapsed >= d.delay {
		d.pending = false
		d.fire()
	}
}

// Flush fires a pending notification immediately.
func (d *Debouncer) Flush() {
	if d.pending {
		d.pending = false
		d.fire()
	}
}

// Cancel drops a pending notification.
func (d *Debouncer) Cancel() {
	d.pending = false
	d.elapsed = 0
}

// Pending reports whether a notification is waiting.
func (d *Debouncer) Pending() bool {
	return d.pending
}

// SetDelay changes the quiet period for future triggers.
func (d *Debouncer) SetDelay(delay time.Duration) {
	d.delay = delay
}
