// Package input defines the raw input stream consumed by the recorder.
//
// The input package is the boundary between the operating system's global
// input listener and the macro core. A Source delivers RawEvent values in
// the order the operating system produced them, regardless of which window
// has focus:
//
//	events, err := source.Start(ctx)
//	if err != nil {
//	    return err // the process cannot function without a listener
//	}
//	for ev := range events {
//	    recorder.Handle(ev)
//	}
//
// # Event Kinds
//
// Six kinds of raw events exist:
//
//   - KeyPress / KeyRelease: carry a key.Key
//   - PointerMove: carries an absolute mouse.Position
//   - ButtonPress / ButtonRelease: carry a mouse.Button and position
//   - Wheel: carries a mouse.Wheel delta
//
// # Metrics
//
// Metrics counts handled events by kind and tracks handling latency. It is
// safe for concurrent use.
package input
