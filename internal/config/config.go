package config

import (
	"encoding/json"
	"fmt"
	"image/color"
	"os"
	"strconv"
	"strings"

	"floatscene/internal/motion"
	"floatscene/internal/utils"
)

// Config is the scene file. Every field is optional; zero values keep the
// defaults.
type Config struct {
	Count          int           `json:"count"`
	Depth          float64       `json:"depth"`
	Speed          float64       `json:"speed"`
	Easing         string        `json:"easing"`
	Seed           int64         `json:"seed"`
	FovY           float64       `json:"fov"`
	Background     string        `json:"background"`
	Model          string        `json:"model"`
	ModelScale     float64       `json:"modelScale"`
	Backdrop       string        `json:"backdrop"`
	Ambient        string        `json:"ambient"`
	Volume         float64       `json:"volume"`
	LightColor     string        `json:"lightColor"`
	LightIntensity float64       `json:"lightIntensity"`
	Tuning         motion.Tuning `json:"tuning"`
}

func Default() Config {
	return Config{
		Count:          80,
		Depth:          80,
		Speed:          1,
		Easing:         "quartercircle",
		FovY:           10,
		Background:     "#212121",
		Model:          "arkanlogo.glb",
		ModelScale:     10,
		Volume:         0.5,
		LightColor:     "#ffa500",
		LightIntensity: 3,
		Tuning:         motion.DefaultTuning(),
	}
}

// Load reads a JSON scene file on top of the defaults. The path is resolved
// against the asset roots.
func Load(path string) (Config, error) {
	cfg := Default()

	fullPath := utils.ResolveAssetPath(path)
	if fullPath == "" {
		return cfg, fmt.Errorf("scene config not found: %s", path)
	}

	data, err := os.ReadFile(fullPath)
	if err != nil {
		return cfg, fmt.Errorf("read scene config %s: %w", fullPath, err)
	}

	// Fields missing from the file keep their defaults, tuning included.
	if err := json.Unmarshal(data, &cfg); err != nil {
		return Default(), fmt.Errorf("parse scene config %s: %w", fullPath, err)
	}

	utils.Info("Scene config loaded from %s", fullPath)
	return cfg.Normalize(), nil
}

// Normalize clamps values that would break the scene. A negative count
// becomes an empty scene rather than an error.
func (c Config) Normalize() Config {
	d := Default()
	if c.Count < 0 {
		utils.Warn("Config: count %d is negative, using 0", c.Count)
		c.Count = 0
	}
	if c.Depth <= 0 {
		c.Depth = d.Depth
	}
	if c.FovY <= 0 || c.FovY >= 180 {
		c.FovY = d.FovY
	}
	if c.ModelScale <= 0 {
		c.ModelScale = d.ModelScale
	}
	if c.Volume < 0 || c.Volume > 1 {
		c.Volume = d.Volume
	}
	if c.LightIntensity < 0 {
		c.LightIntensity = d.LightIntensity
	}
	if _, err := ParseHexColor(c.Background); err != nil {
		utils.Warn("Config: %v, using %s", err, d.Background)
		c.Background = d.Background
	}
	if _, err := ParseHexColor(c.LightColor); err != nil {
		utils.Warn("Config: %v, using %s", err, d.LightColor)
		c.LightColor = d.LightColor
	}
	c.Tuning = c.Tuning.Sanitize()
	return c
}

// ParseHexColor accepts "#rrggbb" or "rrggbb".
func ParseHexColor(s string) (color.RGBA, error) {
	hex := strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(hex) != 6 {
		return color.RGBA{}, fmt.Errorf("invalid color %q", s)
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return color.RGBA{}, fmt.Errorf("invalid color %q: %w", s, err)
	}
	return color.RGBA{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 255}, nil
}
