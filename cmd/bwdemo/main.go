// Command bwdemo renders or plays a small gain -> SVF -> compressor ->
// reverb chain of bw primitives driven by a synthetic test tone.
package main

import (
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/pflag"

	"github.com/brickworks-dsp/bw/internal/harness"
)

func main() {
	var (
		sampleRate = pflag.Int("sample-rate", 48000, "sample rate in Hz")
		duration   = pflag.Float64("duration", 3.0, "render/playback duration in seconds")
		configPath = pflag.String("config", "", "path to a YAML config patch")
		outPath    = pflag.String("out", "out.wav", "output WAV path (ignored with --live)")
		live       = pflag.Bool("live", false, "play live through the system audio device instead of rendering a file")
		toneHz     = pflag.Float64("tone-hz", 0, "override the configured tone frequency (0 = use config)")
	)
	pflag.Parse()

	logger := log.NewWithOptions(os.Stderr, log.Options{ReportTimestamp: true})

	cfg, err := LoadConfig(*configPath)
	if err != nil {
		logger.Fatal("loading config", "err", err)
	}
	if *toneHz > 0 {
		cfg.ToneHz = *toneHz
	}

	fs := float32(*sampleRate)
	chain := NewChain(cfg, fs)
	tone := harness.NewToneSource(cfg.ToneHz, float64(*sampleRate), cfg.ToneAmplitude, *duration)

	logger.Info("chain voiced", "tone_hz", cfg.ToneHz, "sample_rate", *sampleRate, "duration_s", *duration)

	if *live {
		runLive(logger, chain, tone, *sampleRate)
		return
	}
	runRender(logger, chain, tone, *sampleRate, *outPath)
}

// chainSource adapts a mono dry ToneSource plus a Chain into a
// harness.FinishingSource producing the chain's stereo wet output.
type chainSource struct {
	tone  *harness.ToneSource
	chain *Chain
	dry   []float32
}

func newChainSource(tone *harness.ToneSource, chain *Chain) *chainSource {
	return &chainSource{tone: tone, chain: chain}
}

func (s *chainSource) Process(dst []float32) {
	frames := len(dst) / 2
	if cap(s.dry) < frames {
		s.dry = make([]float32, frames)
	}
	s.dry = s.dry[:frames]
	s.tone.FillMono(s.dry)
	for i := 0; i < frames; i++ {
		l, r := s.chain.Process1(s.dry[i])
		dst[i*2] = l
		dst[i*2+1] = r
	}
}

func (s *chainSource) Finished() bool { return s.tone.Finished() }

func runLive(logger *log.Logger, chain *Chain, tone *harness.ToneSource, sampleRate int) {
	source := newChainSource(tone, chain)
	player, err := harness.NewPlayer(sampleRate, source)
	if err != nil {
		logger.Fatal("opening audio player", "err", err)
	}
	defer player.Stop()

	logger.Info("playing live")
	player.Play()
	for player.IsPlaying() {
		time.Sleep(50 * time.Millisecond)
	}
	logger.Info("playback finished", "position", player.Position())
}

func runRender(logger *log.Logger, chain *Chain, tone *harness.ToneSource, sampleRate int, outPath string) {
	pool := harness.NewBufferPool(1024)
	var interleaved []float32

	dry := pool.Get()
	for !tone.Finished() {
		dry = dry[:cap(dry)]
		tone.FillMono(dry)
		for _, x := range dry {
			l, r := chain.Process1(x)
			interleaved = append(interleaved, l, r)
		}
	}
	pool.Put(dry)

	if err := writeWAVFloat32(outPath, sampleRate, 2, interleaved); err != nil {
		logger.Fatal("writing WAV", "err", err)
	}
	logger.Info("rendered", "path", outPath, "frames", len(interleaved)/2)
}
