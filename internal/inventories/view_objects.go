package inventories

// Presentation is the display structure produced by Inventory.Present.
// Variants populate the fields that apply to them: the single-score
// scales fill Slider, CareerCommitment fills SliderContainers, BigFive
// fills Traits, and Via fills Strengths.
type Presentation struct {
	Slider           *Slider                    `json:"slider,omitempty"`
	SliderContainers map[string]SliderContainer `json:"slider_containers,omitempty"`
	Traits           map[string]TraitScale      `json:"traits,omitempty"`
	Scores           []MetricValue              `json:"scores,omitempty"`
	Strengths        []Strength                 `json:"strengths,omitempty"`
}

// MetricValue is a plain key/value row for inventories whose results
// page lists scores directly.
type MetricValue struct {
	Key   string  `json:"key"`
	Value float64 `json:"value"`
}

// SliderMarker is a labelled point on a slider.
type SliderMarker struct {
	Key   string  `json:"key"`
	Label string  `json:"label"`
	Value float64 `json:"value"`
}

// Slider is a bounded scale with zero or more markers.
type Slider struct {
	Minimum int            `json:"minimum"`
	Maximum int            `json:"maximum"`
	Markers []SliderMarker `json:"markers"`
}

// SliderContainer pairs a slider with its endpoint labels.
type SliderContainer struct {
	Labels [2]string `json:"labels"`
	Slider Slider    `json:"slider"`
}

// TraitScale positions a score between two opposing trait labels along
// with the population norm for the trait.
type TraitScale struct {
	Value          float64   `json:"value"`
	PopulationNorm float64   `json:"population_norm"`
	Labels         [2]string `json:"labels"`
}

// Strength is one scored VIA category. IsSignature marks membership in
// the user's top-scoring categories.
type Strength struct {
	Key         string  `json:"key"`
	Label       string  `json:"label"`
	Category    string  `json:"category"`
	Value       float64 `json:"value"`
	IsSignature bool    `json:"is_signature"`
}
