package macro

import (
	"context"
	"errors"

	"github.com/dshills/macrorec/internal/feedback"
)

// Stop halts playback and waits for the scheduler to exit.
// No Sink call happens after Stop returns. Returns false if the session
// was not playing or paused.
func (p *Player) Stop() bool {
	stopped, _ := p.StopContext(context.Background())
	return stopped
}

// StopContext is Stop with a bound on the wait. The session is idle on
// return either way; a context error means the scheduler may still be
// finishing its current sink call.
func (p *Player) StopContext(ctx context.Context) (bool, error) {
	pb := p.session.haltPlayback()
	if pb == nil {
		return false, nil
	}
	p.opts.reporter.Report(feedback.Message{Kind: feedback.KindPlaybackStopping})

	select {
	case <-pb.done:
		return true, nil
	case <-ctx.Done():
		p.opts.logger.Warn("playback did not stop in time", "id", pb.ID, "error", ctx.Err())
		return true, ctx.Err()
	}
}

// dispatch runs the transition bound to a control key press.
func (r *Recorder) dispatch(c Control) {
	r.opts.logger.Debug("control key", "control", c.String())

	switch c {
	case ControlStartRecord:
		r.startRecording()
	case ControlStop:
		r.stop()
	case ControlToggleLoop:
		r.toggleLoop()
	case ControlPlayPause:
		r.playPause()
	}
}

func (r *Recorder) startRecording() {
	if r.session.StartRecording() {
		r.opts.logger.Debug("playback detached by new recording")
	}
	r.opts.reporter.Report(feedback.Message{Kind: feedback.KindRecordingStarted})
}

func (r *Recorder) stopRecording() {
	events, length, ok := r.session.StopRecording()
	if !ok {
		return
	}
	r.opts.reporter.Report(feedback.Message{Kind: feedback.KindRecordingStopped, Events: events, Length: length})
	r.opts.logger.Info("recording stopped", "events", events, "length_ms", length.Milliseconds())
}

func (r *Recorder) stop() {
	req := r.session.RequestStop()
	r.opts.reporter.Report(feedback.Message{Kind: feedback.KindStopRequested})

	// Both run after the session lock is released.
	if req.Playback {
		r.player.Stop()
	}
	if req.Recording {
		r.stopRecording()
	}
}

func (r *Recorder) toggleLoop() {
	on := r.session.ToggleLoop()
	r.opts.reporter.Report(feedback.Message{Kind: feedback.KindLoopToggled, Looping: on})
}

func (r *Recorder) playPause() {
	result, st := r.session.TogglePlayPause()

	switch result {
	case PlayPauseStopRecording:
		r.stopRecording()
	case PlayPauseStart:
		r.startPlayback()
	case PlayPausePaused:
		r.opts.reporter.Report(feedback.Message{Kind: feedback.KindPlaybackPaused, Length: st.Length, Simulated: st.Simulated})
	case PlayPauseResumed:
		r.opts.reporter.Report(feedback.Message{Kind: feedback.KindPlaybackResumed, Length: st.Length, Simulated: st.Simulated})
	}
}

func (r *Recorder) startPlayback() {
	err := r.player.Start()
	switch {
	case err == nil:
	case errors.Is(err, ErrNothingToPlay):
		r.opts.reporter.Report(feedback.Message{Kind: feedback.KindNothingToPlay})
	case errors.Is(err, ErrAlreadyPlaying):
		r.opts.reporter.Report(feedback.Message{Kind: feedback.KindAlreadyPlaying})
	default:
		r.opts.logger.Warn("playback not started", "error", err)
	}
}
