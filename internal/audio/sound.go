package audio

import (
	"floatscene/internal/utils"

	rl "github.com/gen2brain/raylib-go/raylib"
)

type AudioStream struct {
	music  rl.Music
	active bool
}

// AudioManager plays the optional ambient loop behind the scene.
type AudioManager struct {
	streams []*AudioStream
}

func NewAudioManager() *AudioManager {
	if !utils.SilentMode && !rl.IsAudioDeviceReady() {
		rl.InitAudioDevice()
	}
	return &AudioManager{}
}

func (am *AudioManager) PlayLoop(soundPath string, vol float64) {
	if utils.SilentMode || soundPath == "" {
		return
	}
	music := rl.LoadMusicStream(soundPath)
	if music.FrameCount == 0 {
		utils.Error("Audio: could not load %s", soundPath)
		return
	}

	music.Looping = true
	rl.SetMusicVolume(music, float32(vol))
	rl.PlayMusicStream(music)

	am.streams = append(am.streams, &AudioStream{music: music, active: true})
	utils.Info("Audio: playing %s (Vol: %.2f)", soundPath, vol)
}

func (am *AudioManager) Update() {
	for _, stream := range am.streams {
		if stream.active {
			rl.UpdateMusicStream(stream.music)
		}
	}
}

func (am *AudioManager) Close() {
	for _, stream := range am.streams {
		if stream.active {
			rl.StopMusicStream(stream.music)
			rl.UnloadMusicStream(stream.music)
			stream.active = false
		}
	}
	if rl.IsAudioDeviceReady() {
		rl.CloseAudioDevice()
	}
}
