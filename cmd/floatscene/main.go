package main

import (
	"flag"
	"fmt"
	"image/png"
	"os"
	"path/filepath"
	"strings"

	"floatscene/internal/config"
	"floatscene/internal/convert"
	"floatscene/internal/utils"

	rl "github.com/gen2brain/raylib-go/raylib"
)

type options struct {
	configPath string
	pkgPath    string
	wallpaper  bool
	width      int
	height     int
	overrides  config.Config
	set        map[string]bool
}

func main() {
	configPath := flag.String("config", "scene.json", "Path to the scene config (JSON)")
	pkgPath := flag.String("pkg", "", "Path to a scene.pkg bundle to unpack before loading")
	packDir := flag.String("pack", "", "Pack a directory into a bundle and exit")
	outPath := flag.String("out", "scene.pkg", "Output path for -pack")
	decodeMode := flag.Bool("decode", false, "Convert a single .tex to .png and exit")
	texToDecode := flag.String("tex", "", "Path to the .tex file to decode (used with -decode)")
	assetsDir := flag.String("assets", "", "Extra directory to search for assets")
	logLevel := flag.String("log", "warn", "Log level: debug, info, warn, error")
	debugFlag := flag.Bool("debug", false, "Enable debug logging and the F8 overlay")
	raylibInfo := flag.Bool("raylib-info", false, "Forward raylib info messages to the log")
	silent := flag.Bool("silent", false, "Disable audio")
	wallpaperMode := flag.Bool("wallpaper", false, "Run as an undecorated desktop window following the global pointer")
	width := flag.Int("width", 1280, "Window width")
	height := flag.Int("height", 720, "Window height")
	count := flag.Int("count", 0, "Override the object count")
	speed := flag.Float64("speed", 0, "Override the idle speed")
	depth := flag.Float64("depth", 0, "Override the field depth")
	seed := flag.Int64("seed", 0, "Override the random seed")
	flag.Parse()

	utils.CurrentLevel = utils.ParseLevel(*logLevel)
	utils.DebugMode = *debugFlag
	if utils.DebugMode {
		utils.CurrentLevel = utils.LevelDebug
		utils.ShowDebugUI = true
	}
	utils.ShowRaylibInfo = *raylibInfo
	utils.SilentMode = *silent
	utils.AssetsDir = *assetsDir

	if *decodeMode {
		if *texToDecode == "" {
			utils.Error("-decode needs -tex")
			os.Exit(1)
		}
		if err := runDecode(*texToDecode); err != nil {
			utils.Error("Decode failed: %v", err)
			os.Exit(1)
		}
		return
	}

	if *packDir != "" {
		if err := convert.WritePkg(*packDir, *outPath); err != nil {
			utils.Error("Failed to pack %s: %v", *packDir, err)
			os.Exit(1)
		}
		utils.Info("Packed %s into %s", *packDir, *outPath)
		return
	}

	set := map[string]bool{}
	flag.Visit(func(f *flag.Flag) { set[f.Name] = true })

	opts := options{
		configPath: *configPath,
		pkgPath:    *pkgPath,
		wallpaper:  *wallpaperMode,
		width:      *width,
		height:     *height,
		overrides:  config.Config{Count: *count, Speed: *speed, Depth: *depth, Seed: *seed},
		set:        set,
	}

	if err := run(opts); err != nil {
		utils.Error("%v", err)
		os.Exit(1)
	}
}

func run(opts options) error {
	utils.Info("--- floatscene start ---")

	if opts.pkgPath != "" {
		if _, err := os.Stat(utils.UnpackDir); os.IsNotExist(err) {
			utils.Info("Unpacking %s...", opts.pkgPath)
			if err := convert.ExtractPkg(opts.pkgPath, utils.UnpackDir); err != nil {
				return fmt.Errorf("extract pkg: %w", err)
			}
		} else {
			utils.Debug("Using existing %s directory", utils.UnpackDir)
		}
	}

	cfg := loadSceneConfig(opts.configPath)
	cfg = applyOverrides(cfg, opts.overrides, opts.set)

	rl.SetTraceLogCallback(utils.RaylibLogCallback)

	flags := uint32(rl.FlagWindowResizable | rl.FlagWindowHidden | rl.FlagMsaa4xHint)
	if opts.wallpaper {
		flags |= rl.FlagWindowUndecorated | rl.FlagWindowMousePassthrough
	}
	rl.SetConfigFlags(flags)
	rl.InitWindow(int32(opts.width), int32(opts.height), "floatscene")
	if !rl.IsWindowReady() {
		return fmt.Errorf("could not create window")
	}

	if opts.wallpaper {
		monitor := rl.GetCurrentMonitor()
		rl.SetWindowPosition(0, 0)
		rl.SetWindowSize(rl.GetMonitorWidth(monitor), rl.GetMonitorHeight(monitor))
	}

	window := NewWindow(cfg, opts.wallpaper)
	defer window.Close()

	utils.Info("Starting render loop...")
	window.Run()
	return nil
}

// applyOverrides lets command line flags win over the scene file.
func applyOverrides(cfg, flags config.Config, set map[string]bool) config.Config {
	if set["count"] {
		cfg.Count = flags.Count
	}
	if set["speed"] {
		cfg.Speed = flags.Speed
	}
	if set["depth"] {
		cfg.Depth = flags.Depth
	}
	if set["seed"] {
		cfg.Seed = flags.Seed
	}
	return cfg.Normalize()
}

func runDecode(texPath string) error {
	utils.Info("Decoding %s", texPath)
	img, err := convert.LoadImage(texPath)
	if err != nil {
		return err
	}

	if err := os.MkdirAll("test_out", 0755); err != nil {
		return fmt.Errorf("create test_out: %w", err)
	}

	baseName := strings.TrimSuffix(filepath.Base(texPath), filepath.Ext(texPath))
	outPath := filepath.Join("test_out", baseName+".png")

	f, err := os.Create(outPath)
	if err != nil {
		return fmt.Errorf("create %s: %w", outPath, err)
	}
	defer f.Close()

	if err := png.Encode(f, img); err != nil {
		return fmt.Errorf("encode png: %w", err)
	}

	utils.Info("Decode successful, saved to %s", outPath)
	return nil
}
