package main

import (
	"os"

	"gopkg.in/yaml.v3"
)

// Config describes the demo's synthetic input tone and the gain -> SVF ->
// compressor -> reverb chain it runs that tone through. Loaded from an
// optional YAML patch file; any field the file does not set keeps
// DefaultConfig's value.
type Config struct {
	ToneHz        float64 `yaml:"tone_hz"`
	ToneAmplitude float64 `yaml:"tone_amplitude"`

	Gain struct {
		GainDB float32 `yaml:"gain_db"`
	} `yaml:"gain"`

	Filter struct {
		CutoffHz float32 `yaml:"cutoff_hz"`
		Q        float32 `yaml:"q"`
	} `yaml:"filter"`

	Compressor struct {
		ThreshDBFS float32 `yaml:"thresh_dbfs"`
		Ratio      float32 `yaml:"ratio"`
		AttackMs   float32 `yaml:"attack_ms"`
		ReleaseMs  float32 `yaml:"release_ms"`
		MakeupDB   float32 `yaml:"makeup_db"`
	} `yaml:"compressor"`

	Reverb struct {
		PredelayMs  float32 `yaml:"predelay_ms"`
		BandwidthHz float32 `yaml:"bandwidth_hz"`
		DampingHz   float32 `yaml:"damping_hz"`
		Decay       float32 `yaml:"decay"`
		Wet         float32 `yaml:"wet"`
	} `yaml:"reverb"`
}

// DefaultConfig is the chain's voicing when no YAML patch is given.
func DefaultConfig() Config {
	var c Config
	c.ToneHz = 220
	c.ToneAmplitude = 0.5
	c.Gain.GainDB = 0
	c.Filter.CutoffHz = 4000
	c.Filter.Q = 0.707
	c.Compressor.ThreshDBFS = -18
	c.Compressor.Ratio = 0.25
	c.Compressor.AttackMs = 5
	c.Compressor.ReleaseMs = 80
	c.Compressor.MakeupDB = 6
	c.Reverb.PredelayMs = 20
	c.Reverb.BandwidthHz = 8000
	c.Reverb.DampingHz = 6000
	c.Reverb.Decay = 0.6
	c.Reverb.Wet = 0.25
	return c
}

// LoadConfig starts from DefaultConfig and overlays path's YAML content,
// if path is non-empty.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}
