package scheduler

// Params defines all configurable parameters for session scheduling.
// They exist as named, injectable values so the components can be tested
// with varied thresholds instead of scattered literals.
type Params struct {
	// DefaultPriority is used when neither admin nor learner set a
	// category priority. Mid-scale on the 1-10 range.
	DefaultPriority int

	// DueThresholdRatio controls the blended default mode: when fewer than
	// ceil(limit*ratio) cards are due and unstudied cards exist, the whole
	// pool becomes eligible so a short session is not starved of content.
	DueThresholdRatio float64

	// WeakMasteryCeiling is the mastery score below which a card counts as
	// needing attention.
	WeakMasteryCeiling float64

	// MinExposures is the minimum number of reviews before a weak card is
	// considered "needs attention" rather than simply new.
	MinExposures int

	// MasteryBoost scales how strongly low mastery inflates sampling
	// weight relative to the base priority.
	MasteryBoost float64
}

// ParamsConfig allows overriding defaults when constructing Params.
// Zero values leave the corresponding default untouched.
type ParamsConfig struct {
	DefaultPriority    int
	DueThresholdRatio  float64
	WeakMasteryCeiling float64
	MinExposures       int
	MasteryBoost       float64
}

// NewDefaultParams creates a new Params instance with default values.
func NewDefaultParams() *Params {
	return &Params{
		DefaultPriority:    5,
		DueThresholdRatio:  0.6,
		WeakMasteryCeiling: 0.4,
		MinExposures:       2,
		MasteryBoost:       2.0,
	}
}

// NewParams creates a new Params instance with custom configuration.
func NewParams(config ParamsConfig) *Params {
	params := NewDefaultParams()

	if config.DefaultPriority > 0 {
		params.DefaultPriority = config.DefaultPriority
	}
	if config.DueThresholdRatio > 0 {
		params.DueThresholdRatio = config.DueThresholdRatio
	}
	if config.WeakMasteryCeiling > 0 {
		params.WeakMasteryCeiling = config.WeakMasteryCeiling
	}
	if config.MinExposures > 0 {
		params.MinExposures = config.MinExposures
	}
	if config.MasteryBoost > 0 {
		params.MasteryBoost = config.MasteryBoost
	}

	return params
}
