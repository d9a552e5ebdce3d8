// Package gpio provides the power-button input with hardware abstraction.
// The real implementation uses the Linux GPIO character device.
// The fake implementation allows testing without hardware.
package gpio

// Reader reads the power-button input state.
type Reader interface {
	// Read returns the logical button level. The raw GPIO line is
	// active-low (the button shorts it to ground): raw low = pressed.
	// Returns (pressed, error).
	Read() (bool, error)

	// Close releases GPIO resources.
	Close() error
}

// DefaultPinButton is the default power-button pin (BCM numbering).
const DefaultPinButton = 17
