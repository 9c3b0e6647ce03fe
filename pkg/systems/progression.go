package systems

import (
	"github.com/decker502/feverdream/pkg/config"
	"github.com/decker502/feverdream/pkg/game"
)

// AdvanceProgression 计入本帧击杀并推进波次/关卡
//
// 击杀数达到 KillsPerWaveBase+wave 时：wave+1，TotalWaves+1，进度清零（多余击杀不结转）。
// wave 超过 WavesPerLevelBase+floor(level/2) 时回到第 1 波并升级。
func AdvanceProgression(s game.GameState, kills int, cfg *config.ProgressionConfig) game.GameState {
	if kills <= 0 {
		return s
	}
	s.WaveProgress += kills
	if s.WaveProgress < s.KillsForWave(cfg) {
		return s
	}

	s.Wave++
	s.TotalWaves++
	s.WaveProgress = 0

	if s.Wave > s.WavesForLevel(cfg) {
		s.Wave = 1
		s.Level++
	}
	return s
}
