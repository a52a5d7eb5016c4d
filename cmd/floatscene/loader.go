package main

import (
	"floatscene/internal/config"
	"floatscene/internal/utils"
)

var (
	modelExtensions    = []string{".glb", ".gltf", ".obj"}
	backdropExtensions = []string{".tex", ".png", ".jpg", ".jpeg"}
	soundExtensions    = []string{".ogg", ".mp3", ".wav"}
)

type sceneAssets struct {
	model    string
	backdrop string
	ambient  string
}

// loadSceneConfig reads the scene file, falling back to a scene.json anywhere
// in the unpacked bundle and then to the built-in defaults.
func loadSceneConfig(path string) config.Config {
	cfg, err := config.Load(path)
	if err == nil {
		return cfg
	}

	if found := utils.FindAssetFile("scene", []string{".json"}); found != "" && found != path {
		utils.Debug("Config %s unavailable (%v), trying %s", path, err, found)
		if cfg, err := config.Load(found); err == nil {
			return cfg
		}
	}

	utils.Warn("Using default scene: %v", err)
	return config.Default()
}

func resolveAssets(cfg config.Config) sceneAssets {
	assets := sceneAssets{
		model:    utils.FindAssetFile(cfg.Model, modelExtensions),
		backdrop: utils.FindAssetFile(cfg.Backdrop, backdropExtensions),
		ambient:  utils.FindAssetFile(cfg.Ambient, soundExtensions),
	}

	if assets.model == "" {
		utils.Warn("Model %q not found, a placeholder will be drawn", cfg.Model)
	}
	if cfg.Backdrop != "" && assets.backdrop == "" {
		utils.Warn("Backdrop %q not found", cfg.Backdrop)
	}
	if cfg.Ambient != "" && assets.ambient == "" {
		utils.Warn("Ambient sound %q not found", cfg.Ambient)
	}

	utils.Debug("Assets: model=%q backdrop=%q ambient=%q", assets.model, assets.backdrop, assets.ambient)
	return assets
}
