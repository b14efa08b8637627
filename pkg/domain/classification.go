package domain

// Classification is the validated output of the classifier stage.
// Category and Confidence are always set together.
type Classification struct {
	Category   Category `json:"category" mapstructure:"category"`
	Confidence float64  `json:"confidence" mapstructure:"confidence"`
	Reasoning  string   `json:"reasoning" mapstructure:"reasoning"`
}

// Unhandled builds the forced fallback classification used when the
// completion service fails or returns something that does not validate.
func Unhandled(reasoning string) Classification {
	return Classification{
		Category:   CategoryUnhandled,
		Confidence: 0.0,
		Reasoning:  reasoning,
	}
}
