package transport

import (
	"errors"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/fxamacker/cbor/v2"
	"periph.io/x/devices/v3/st7032/register"
)

// Frame is one transfer seen by a Capture. CBOR encoding uses integer keys.
type Frame struct {
	Time    time.Time    `cbor:"1,keyasint"`
	Tag     register.Tag `cbor:"2,keyasint"`
	Payload []byte       `cbor:"3,keyasint"`
	Err     string       `cbor:"4,keyasint,omitempty"`
}

func (f Frame) String() string {
	s := fmt.Sprintf("%s % X", f.Tag, f.Payload)
	if f.Err != "" {
		s += " (" + f.Err + ")"
	}
	return s
}

var (
	captureEncMode cbor.EncMode
	captureDecMode cbor.DecMode
)

func init() {
	var err error
	captureEncMode, err = cbor.EncOptions{
		Sort:        cbor.SortCanonical,
		IndefLength: cbor.IndefLengthForbidden,
		Time:        cbor.TimeRFC3339Nano,
	}.EncMode()
	if err != nil {
		panic(fmt.Sprintf("transport: capture encoder mode: %v", err))
	}
	captureDecMode, err = cbor.DecOptions{
		DupMapKey: cbor.DupMapKeyQuiet,
	}.DecMode()
	if err != nil {
		panic(fmt.Sprintf("transport: capture decoder mode: %v", err))
	}
}

// Capture is a Transport that forwards to another Transport and records every
// transfer, failed ones included, as a CBOR stream.
//
// Encoding errors never fail a transfer; the first one is kept and reported
// by Err.
type Capture struct {
	next Transport
	enc  *cbor.Encoder
	now  func() time.Time

	mu     sync.Mutex
	encErr error
}

// NewCapture wraps next and writes frames to w.
func NewCapture(next Transport, w io.Writer) *Capture {
	return &Capture{next: next, enc: captureEncMode.NewEncoder(w), now: time.Now}
}

// Send implements Transport.
func (c *Capture) Send(tag register.Tag, b byte) (int, error) {
	n, err := c.next.Send(tag, b)
	c.record(tag, []byte{b}, err)
	return n, err
}

// SendBurst implements Transport.
func (c *Capture) SendBurst(tag register.Tag, p []byte) (int, error) {
	n, err := c.next.SendBurst(tag, p)
	c.record(tag, p, err)
	return n, err
}

// Err returns the first encoding error, if any.
func (c *Capture) Err() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.encErr
}

func (c *Capture) record(tag register.Tag, p []byte, err error) {
	f := Frame{Time: c.now(), Tag: tag, Payload: append([]byte(nil), p...)}
	if err != nil {
		f.Err = err.Error()
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if e := c.enc.Encode(f); e != nil && c.encErr == nil {
		c.encErr = e
	}
}

// ReadCapture decodes all frames written by a Capture.
func ReadCapture(r io.Reader) ([]Frame, error) {
	dec := captureDecMode.NewDecoder(r)
	var frames []Frame
	for {
		var f Frame
		if err := dec.Decode(&f); err != nil {
			if errors.Is(err, io.EOF) {
				return frames, nil
			}
			return frames, fmt.Errorf("transport: frame %d: %w", len(frames), err)
		}
		frames = append(frames, f)
	}
}

var _ Transport = &Capture{}
