package constraint

// Weights is the fitness weight table. Pair scores are measured in APCA Lc units; WCAG ratios
// are multiplied by WCAGScale first so both metrics share one scale.
type Weights struct {
	PassBonus        float64 `json:"pass_bonus" yaml:"pass_bonus" toml:"pass_bonus"`
	ExcessReward     float64 `json:"excess_reward" yaml:"excess_reward" toml:"excess_reward"`
	ShortfallPenalty float64 `json:"shortfall_penalty" yaml:"shortfall_penalty" toml:"shortfall_penalty"`
	TargetUnder      float64 `json:"target_under" yaml:"target_under" toml:"target_under"`
	TargetOver       float64 `json:"target_over" yaml:"target_over" toml:"target_over"`
	WCAGScale        float64 `json:"wcag_scale" yaml:"wcag_scale" toml:"wcag_scale"`

	DriftBonus   float64 `json:"drift_bonus" yaml:"drift_bonus" toml:"drift_bonus"`
	DriftPenalty float64 `json:"drift_penalty" yaml:"drift_penalty" toml:"drift_penalty"`
	GamutPenalty float64 `json:"gamut_penalty" yaml:"gamut_penalty" toml:"gamut_penalty"`

	HueSpacingFloor   float64 `json:"hue_spacing_floor" yaml:"hue_spacing_floor" toml:"hue_spacing_floor"`
	HueSpacingReward  float64 `json:"hue_spacing_reward" yaml:"hue_spacing_reward" toml:"hue_spacing_reward"`
	HueSpacingPenalty float64 `json:"hue_spacing_penalty" yaml:"hue_spacing_penalty" toml:"hue_spacing_penalty"`

	ChromaReward float64 `json:"chroma_reward" yaml:"chroma_reward" toml:"chroma_reward"`

	DistinctFloor   float64 `json:"distinct_floor" yaml:"distinct_floor" toml:"distinct_floor"`
	DistinctReward  float64 `json:"distinct_reward" yaml:"distinct_reward" toml:"distinct_reward"`
	DistinctPenalty float64 `json:"distinct_penalty" yaml:"distinct_penalty" toml:"distinct_penalty"`

	ReadableBonus float64 `json:"readable_bonus" yaml:"readable_bonus" toml:"readable_bonus"`
	ReadableAPCA  float64 `json:"readable_apca" yaml:"readable_apca" toml:"readable_apca"`
	ReadableWCAG  float64 `json:"readable_wcag" yaml:"readable_wcag" toml:"readable_wcag"`
}

// DefaultWeights returns the canonical weight table.
func DefaultWeights() Weights {
	return Weights{
		PassBonus:        100,
		ExcessReward:     1,
		ShortfallPenalty: 60,
		TargetUnder:      3,
		TargetOver:       1,
		WCAGScale:        10,

		DriftBonus:   20,
		DriftPenalty: 5,
		GamutPenalty: 10000,

		HueSpacingFloor:   40,
		HueSpacingReward:  4,
		HueSpacingPenalty: 20,

		ChromaReward: 150,

		DistinctFloor:   0.08,
		DistinctReward:  400,
		DistinctPenalty: 4000,

		ReadableBonus: 2,
		ReadableAPCA:  45,
		ReadableWCAG:  3,
	}
}
