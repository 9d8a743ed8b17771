package battlesim

import (
	"fmt"
	"math"
	"math/rand"
	"sort"

	"github.com/ballclash/ballclash-sim/internal/physics"
	"github.com/ballclash/ballclash-sim/internal/scenario"
)

// ScenarioSummary aggregates every seeded run of one profile matchup.
type ScenarioSummary struct {
	ScenarioName string  `json:"scenario_name"`
	LeftProfile  Profile `json:"left_profile"`
	RightProfile Profile `json:"right_profile"`
	RunCount     int     `json:"run_count"`
	Score        float64 `json:"score"`
	WinRateLeft  float64 `json:"win_rate_left"`

	AvgDuration            float64 `json:"avg_duration"`
	AvgFightEndTime        float64 `json:"avg_fight_end_time"`
	AvgCollisionsPerSecond float64 `json:"avg_collisions_per_second"`
	AvgDamagePerSecond     float64 `json:"avg_damage_per_second"`
	AvgDamagePerCollision  float64 `json:"avg_damage_per_collision"`
	AvgAirRatio            float64 `json:"avg_air_ratio"`
	AvgLeadChanges         float64 `json:"avg_lead_changes"`
	AvgCollisionBursts     float64 `json:"avg_collision_bursts"`
	AvgPeakSpeed           float64 `json:"avg_peak_speed"`
}

// SweepResult is the full outcome of a sweep, ranked best-first.
type SweepResult struct {
	SettingsLabel   string            `json:"settings_path"`
	Seeds           int               `json:"seeds"`
	Duration        float64           `json:"duration"`
	DT              float64           `json:"dt"`
	ScenarioCount   int               `json:"scenario_count"`
	TopScenarios    []ScenarioSummary `json:"top_scenarios"`
	AllScenarios    []ScenarioSummary `json:"-"`
	Recommendations []string          `json:"recommendations"`
}

// SweepConfig drives a profile sweep over a settings document.
type SweepConfig struct {
	Settings scenario.Settings
	Label    string

	// Profiles is the matchup pool; empty means DefaultProfiles.
	Profiles []Profile

	Seeds       int
	Duration    float64
	DT          float64
	TopK        int
	SpeedJitter float64

	// Arena size for sweep runs; the wider stock arena gives the
	// profile extremes room to develop.
	Width, Height float64
}

// DefaultSweepConfig returns the stock sweep parameters.
func DefaultSweepConfig() SweepConfig {
	return SweepConfig{
		Seeds:       6,
		Duration:    24.0,
		DT:          1.0 / 120.0,
		TopK:        10,
		SpeedJitter: 12.0,
		Width:       1460.0,
		Height:      520.0,
	}
}

func (cfg SweepConfig) validate() error {
	if cfg.Seeds <= 0 {
		return fmt.Errorf("battlesim: seeds must be > 0, got %d", cfg.Seeds)
	}
	if cfg.Duration <= 0 {
		return fmt.Errorf("battlesim: duration must be > 0, got %g", cfg.Duration)
	}
	if cfg.DT <= 0 {
		return fmt.Errorf("battlesim: dt must be > 0, got %g", cfg.DT)
	}
	if cfg.TopK <= 0 {
		return fmt.Errorf("battlesim: top_k must be > 0, got %d", cfg.TopK)
	}
	if cfg.SpeedJitter < 0 {
		return fmt.Errorf("battlesim: speed_jitter must be >= 0, got %g", cfg.SpeedJitter)
	}
	if cfg.Width <= 0 || cfg.Height <= 0 {
		return fmt.Errorf("battlesim: world size must be > 0, got %gx%g", cfg.Width, cfg.Height)
	}
	return nil
}

// sweepBase is the per-sweep constant state extracted from the settings
// document: validated tuning and the resolved, unshaped specs.
type sweepBase struct {
	tuning     physics.Tuning
	specs      []scenario.ResolvedSpec
	sideMargin float64
	invincible []string
}

func prepareSweep(cfg SweepConfig) (sweepBase, error) {
	if err := cfg.validate(); err != nil {
		return sweepBase{}, err
	}
	if len(cfg.Settings.BallSpecs) == 0 {
		return sweepBase{}, fmt.Errorf("battlesim: settings must declare at least one ball spec")
	}

	tuning, err := cfg.Settings.Tuning()
	if err != nil {
		return sweepBase{}, err
	}

	specs := make([]scenario.ResolvedSpec, len(cfg.Settings.BallSpecs))
	for i, raw := range cfg.Settings.BallSpecs {
		specs[i] = raw.Resolve(cfg.Settings.LeftSpeed, cfg.Settings.RightSpeed)
	}

	sideMargin := cfg.Settings.SideMargin
	if sideMargin <= 0 {
		sideMargin = 120.0
	}

	return sweepBase{
		tuning:     tuning,
		specs:      specs,
		sideMargin: sideMargin,
		invincible: cfg.Settings.InvincibleTeams,
	}, nil
}

// runMatchup simulates one profile pair across all seeds. The seed maps
// through seedFor so grid and random sweeps can use different seeding
// schemes while staying reproducible.
func runMatchup(cfg SweepConfig, base sweepBase, left, right Profile, seedFor func(seed int) int64) (ScenarioSummary, error) {
	runs := make([]RunMetrics, 0, cfg.Seeds)
	for seed := 0; seed < cfg.Seeds; seed++ {
		rng := rand.New(rand.NewSource(seedFor(seed)))

		shaped := make([]scenario.ResolvedSpec, len(base.specs))
		for i, spec := range base.specs {
			profile := right
			if spec.Team == "left" {
				profile = left
			}
			shaped[i] = profile.apply(spec, rng, cfg.SpeedJitter)
		}

		world, err := scenario.BuildResolvedWorld(cfg.Width, cfg.Height, base.sideMargin, base.tuning, shaped, base.invincible)
		if err != nil {
			return ScenarioSummary{}, err
		}
		metrics, err := SimulateRun(world, cfg.Duration, cfg.DT)
		if err != nil {
			return ScenarioSummary{}, err
		}
		runs = append(runs, metrics)
	}

	return aggregateRuns(fmt.Sprintf("L:%s vs R:%s", left.Name, right.Name), left, right, runs), nil
}

func aggregateRuns(name string, left, right Profile, runs []RunMetrics) ScenarioSummary {
	n := float64(len(runs))
	s := ScenarioSummary{
		ScenarioName: name,
		LeftProfile:  left,
		RightProfile: right,
		RunCount:     len(runs),
	}
	score := 0.0
	for _, run := range runs {
		score += Score(run)
		if run.Winner == WinnerLeft {
			s.WinRateLeft++
		}
		s.AvgDuration += run.Duration
		s.AvgFightEndTime += run.FightEndTime
		s.AvgCollisionsPerSecond += run.CollisionsPerSecond
		s.AvgDamagePerSecond += run.DamagePerSecond
		s.AvgDamagePerCollision += run.DamagePerCollision
		s.AvgAirRatio += run.AirRatio
		s.AvgLeadChanges += float64(run.LeadChanges)
		s.AvgCollisionBursts += float64(run.CollisionBursts)
		s.AvgPeakSpeed += run.PeakSpeed
	}
	s.Score = math.Round(score/n*100.0) / 100.0
	s.WinRateLeft /= n
	s.AvgDuration /= n
	s.AvgFightEndTime /= n
	s.AvgCollisionsPerSecond /= n
	s.AvgDamagePerSecond /= n
	s.AvgDamagePerCollision /= n
	s.AvgAirRatio /= n
	s.AvgLeadChanges /= n
	s.AvgCollisionBursts /= n
	s.AvgPeakSpeed /= n
	return s
}

func finishSweep(cfg SweepConfig, scenarios []ScenarioSummary) *SweepResult {
	sort.SliceStable(scenarios, func(i, j int) bool {
		return scenarios[i].Score > scenarios[j].Score
	})
	topK := cfg.TopK
	if topK > len(scenarios) {
		topK = len(scenarios)
	}
	return &SweepResult{
		SettingsLabel:   cfg.Label,
		Seeds:           cfg.Seeds,
		Duration:        cfg.Duration,
		DT:              cfg.DT,
		ScenarioCount:   len(scenarios),
		TopScenarios:    scenarios[:topK],
		AllScenarios:    scenarios,
		Recommendations: Recommendations(scenarios),
	}
}

// RunProfileSweep plays every ordered profile pair from the pool against
// each other and ranks the matchups by combat-feel score.
func RunProfileSweep(cfg SweepConfig) (*SweepResult, error) {
	base, err := prepareSweep(cfg)
	if err != nil {
		return nil, err
	}

	pool := cfg.Profiles
	if len(pool) == 0 {
		pool = DefaultProfiles()
	}

	scenarios := make([]ScenarioSummary, 0, len(pool)*len(pool))
	for _, left := range pool {
		for _, right := range pool {
			summary, err := runMatchup(cfg, base, left, right, func(seed int) int64 {
				return int64(seed)
			})
			if err != nil {
				return nil, err
			}
			scenarios = append(scenarios, summary)
		}
	}

	return finishSweep(cfg, scenarios), nil
}

// RandomSweepConfig drives a randomized matchup sweep.
type RandomSweepConfig struct {
	SweepConfig
	ScenarioCount int
	ProfileSeed   int64
}

// DefaultRandomSweepConfig returns the stock randomized sweep parameters.
func DefaultRandomSweepConfig() RandomSweepConfig {
	return RandomSweepConfig{
		SweepConfig:   DefaultSweepConfig(),
		ScenarioCount: 80,
		ProfileSeed:   2026,
	}
}

// RunRandomProfileSweep samples matchups with randomly drawn profile
// multipliers. Both the profile draw and each run's speed jitter derive
// from ProfileSeed, so results reproduce exactly.
func RunRandomProfileSweep(cfg RandomSweepConfig) (*SweepResult, error) {
	if cfg.ScenarioCount <= 0 {
		return nil, fmt.Errorf("battlesim: scenario_count must be > 0, got %d", cfg.ScenarioCount)
	}
	base, err := prepareSweep(cfg.SweepConfig)
	if err != nil {
		return nil, err
	}

	profileRng := rand.New(rand.NewSource(cfg.ProfileSeed))
	scenarios := make([]ScenarioSummary, 0, cfg.ScenarioCount)
	for idx := 0; idx < cfg.ScenarioCount; idx++ {
		left := RandomProfile(profileRng, fmt.Sprintf("randL-%03d", idx+1))
		right := RandomProfile(profileRng, fmt.Sprintf("randR-%03d", idx+1))

		summary, err := runMatchup(cfg.SweepConfig, base, left, right, func(seed int) int64 {
			return cfg.ProfileSeed*100003 + int64(idx)*997 + int64(seed)
		})
		if err != nil {
			return nil, err
		}
		scenarios = append(scenarios, summary)
	}

	return finishSweep(cfg.SweepConfig, scenarios), nil
}

// Recommendations turns aggregate sweep telemetry into tuning advice for
// whoever runs the next balancing pass.
func Recommendations(scenarios []ScenarioSummary) []string {
	if len(scenarios) == 0 {
		return []string{"No simulation results; nothing to recommend."}
	}

	n := float64(len(scenarios))
	avgCollision := 0.0
	avgDamageRate := 0.0
	avgAir := 0.0
	avgSwings := 0.0
	for _, s := range scenarios {
		avgCollision += s.AvgCollisionsPerSecond
		avgDamageRate += s.AvgDamagePerSecond
		avgAir += s.AvgAirRatio
		avgSwings += s.AvgLeadChanges
	}
	avgCollision /= n
	avgDamageRate /= n
	avgAir /= n
	avgSwings /= n

	var recs []string
	if avgDamageRate < 0.5 {
		recs = append(recs, "Damage per second is extremely low. Increase the share of power_scale >= 1.2 combinations and low-hp profiles.")
	}
	if avgCollision < 1.4 {
		recs = append(recs, "Collision rate is low. Sample more speed_scale values in 1.10-1.25 and add matchups whose radius_scale differs by 0.1 or more.")
	}
	if avgDamageRate < 12.0 {
		recs = append(recs, "Combat tempo is slow. Mix in more power_scale >= 1.2 with hp_scale 0.8-1.0 to sharpen the hits.")
	}
	if avgAir < 0.12 {
		recs = append(recs, "Airtime ratio is low, so impacts may read flat. Sample more light (mass 0.8x) high-power (1.25x) fighters.")
	}
	if avgSwings < 1.0 {
		recs = append(recs, "Few lead reversals. Add more extreme matchups such as bruiser vs striker or juggernaut vs duelist.")
	}

	recs = append(recs,
		"Also consider: a 0.03-0.06s hit-stop on collision makes impacts land harder.",
		"Also consider: track consecutive-collision combos and scale effect intensity per combo step.",
		"Also consider: a per-fighter poise stat would differentiate fighters of equal mass.",
	)
	return recs
}
