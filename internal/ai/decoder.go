package ai

import (
	"bytes"
	"io"
	"strings"
	"unicode/utf8"
)

// frameFunc interprets one extracted `data: ` payload for a specific
// provider. It returns the event to emit (when emit is true) and whether the
// payload terminates the stream.
type frameFunc func(payload string) (event StreamEvent, emit bool, done bool)

// streamDecoder incrementally converts raw transport bytes into
// StreamEvents. One decoder serves exactly one response body; it is
// single-use and owns its buffer for the lifetime of that body.
type streamDecoder struct {
	buf   []byte
	frame frameFunc
	done  bool
}

func newStreamDecoder(frame frameFunc) *streamDecoder {
	return &streamDecoder{frame: frame}
}

// feed appends one incoming chunk and extracts every complete line. A
// trailing partial line stays buffered for the next chunk, so a data record
// split across chunk boundaries reassembles correctly. After the terminal
// event the decoder discards its buffer and ignores further input.
func (d *streamDecoder) feed(chunk []byte) []StreamEvent {
	if d.done || len(chunk) == 0 {
		return nil
	}
	d.buf = append(d.buf, chunk...)

	var events []StreamEvent
	for {
		idx := bytes.IndexByte(d.buf, '\n')
		if idx < 0 {
			return events
		}
		line := strings.TrimSpace(lossyString(d.buf[:idx]))
		d.buf = d.buf[idx+1:]

		if line == "" {
			continue
		}
		payload, found := strings.CutPrefix(line, "data: ")
		if !found {
			// event:, id:, and comment lines are not data records.
			continue
		}

		event, emit, done := d.frame(payload)
		if done {
			d.done = true
			d.buf = nil
			return append(events, StreamEvent{Type: EventDone})
		}
		if emit {
			events = append(events, event)
		}
	}
}

// finish handles transport EOF: a stream that ends without an explicit
// terminal payload still yields exactly one Done.
func (d *streamDecoder) finish() []StreamEvent {
	if d.done {
		return nil
	}
	d.done = true
	d.buf = nil
	return []StreamEvent{{Type: EventDone}}
}

// lossyString decodes bytes as UTF-8, replacing invalid sequences instead of
// failing, mirroring how the wire payload is treated as opaque text.
func lossyString(b []byte) string {
	if utf8.Valid(b) {
		return string(b)
	}
	return strings.ToValidUTF8(string(b), string(utf8.RuneError))
}

// readChunkSize is the transport read granularity. Event boundaries never
// align with it; the decoder's buffering handles the splits.
const readChunkSize = 4096

// stream adapts one open response body plus its decoder into an
// EventStream. The constructor queues the Start event; Recv then drains
// decoded events, reading more chunks from the body as needed.
type stream struct {
	body    io.ReadCloser
	dec     *streamDecoder
	pending []StreamEvent
	chunk   []byte
	err     error
	closed  bool
}

func newStream(body io.ReadCloser, frame frameFunc) *stream {
	return &stream{
		body:    body,
		dec:     newStreamDecoder(frame),
		pending: []StreamEvent{{Type: EventStart}},
		chunk:   make([]byte, readChunkSize),
	}
}

func (s *stream) Recv() (StreamEvent, error) {
	for {
		if len(s.pending) > 0 {
			event := s.pending[0]
			s.pending = s.pending[1:]
			if event.Type == EventDone {
				s.Close()
			}
			return event, nil
		}
		// A decoder that saw its terminal event makes the stream complete;
		// a read error arriving in the same call as the terminal bytes is
		// irrelevant by then and must not surface after Done.
		if s.dec.done {
			return StreamEvent{}, io.EOF
		}
		if s.err != nil {
			return StreamEvent{}, s.err
		}

		n, err := s.body.Read(s.chunk)
		if n > 0 {
			s.pending = s.dec.feed(s.chunk[:n])
		}
		if err == io.EOF {
			s.pending = append(s.pending, s.dec.finish()...)
			continue
		}
		if err != nil {
			// Deliver any events decoded from the final partial read
			// first; the error surfaces on the next call.
			s.err = err
			s.Close()
		}
	}
}

func (s *stream) Close() error {
	if s.closed {
		return nil
	}
	s.closed = true
	return s.body.Close()
}
