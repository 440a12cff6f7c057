// Package assets loads audio cues from the configured directory.
package assets

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/hajimehoshi/ebiten/v2/audio"
	"github.com/hajimehoshi/ebiten/v2/audio/wav"
)

const SampleRate = 44100

// LoadAudioPlayer reads dir/name and creates a player on ctx. WAV files are
// decoded; anything else is treated as raw PCM in ebiten's native format.
func LoadAudioPlayer(ctx *audio.Context, dir, name string) (*audio.Player, error) {
	path := filepath.Join(dir, filepath.FromSlash(name))
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	if strings.HasSuffix(strings.ToLower(name), ".wav") {
		stream, err := wav.DecodeWithSampleRate(ctx.SampleRate(), bytes.NewReader(b))
		if err != nil {
			return nil, fmt.Errorf("decode wav %q: %w", path, err)
		}
		return ctx.NewPlayer(stream)
	}

	return ctx.NewPlayerFromBytes(b), nil
}

// LoadLoopingPlayer is LoadAudioPlayer for music that repeats forever.
func LoadLoopingPlayer(ctx *audio.Context, dir, name string) (*audio.Player, error) {
	path := filepath.Join(dir, filepath.FromSlash(name))
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	stream, err := wav.DecodeWithSampleRate(ctx.SampleRate(), bytes.NewReader(b))
	if err != nil {
		return nil, fmt.Errorf("decode wav %q: %w", path, err)
	}
	loop := audio.NewInfiniteLoop(stream, stream.Length())
	return ctx.NewPlayer(loop)
}
