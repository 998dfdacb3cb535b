// SPDX-License-Identifier: EPL-2.0

// Package ambience is a dual-mode ambient audio engine.
//
// An Engine plays a continuous background soundscape either from a
// pre-recorded track or, when no track is given or it cannot be loaded, from
// a procedural pad synthesized on the fly. The surrounding application only
// toggles it and reads its state:
//
//	engine := ambience.New("https://example.com/rain.ogg")
//	defer engine.Close()
//
//	engine.Toggle()            // fade in
//	fmt.Println(engine.IsPlaying())
//	engine.Toggle()            // fade out
//
// # Modes
//
// Without a locator the engine is in ModeSynth from the start. With one,
// the track is fetched, decoded and buffered in the background; Prepared is
// closed when that finishes. On success the engine moves to ModeFile, but
// never in the middle of a session: a track that becomes ready while the
// pad plays is picked up by the next start. On failure the engine stays on
// the pad and the error is only logged.
//
// # Fades
//
// The pad fades its master gain from 0 to 0.15 over two seconds and back to
// 0 over one second, after which its oscillators are released. The track
// steps its volume by +0.012 every 50ms up to 0.25 and by -0.015 down to 0,
// then pauses; the loop resumes where it stopped.
//
// # Errors
//
// Nothing is returned to the caller. IsPlaying is the intended state and
// flips on every Toggle, even when the output refuses to play; Audible
// reports what the backend actually does. Close is the only way to stop
// without a fade.
//
// # Logging
//
// The engine and its packages log through github.com/decred/slog and are
// silent until UseLogger is called.
package ambience
