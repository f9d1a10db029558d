package disease

import (
	"fmt"
	"math"
	"strings"
	"unicode"

	"github.com/rotisserie/eris"
)

// Interpret converts raw classifier logits into a Diagnosis.
func Interpret(logits []float64, labels []string) (Diagnosis, error) {
	if len(logits) == 0 {
		return Diagnosis{}, eris.New("empty logits")
	}
	if len(logits) != len(labels) {
		return Diagnosis{}, eris.Errorf("got %d logits for %d labels", len(logits), len(labels))
	}

	probs, err := softmax(logits)
	if err != nil {
		return Diagnosis{}, err
	}

	best := 0
	for i, p := range probs {
		if p > probs[best] {
			best = i
		}
	}

	cropName, status, err := splitLabel(labels[best])
	if err != nil {
		return Diagnosis{}, err
	}

	return Diagnosis{
		Crop:       cropName,
		Status:     status,
		Confidence: fmt.Sprintf("%.2f%%", probs[best]*100),
	}, nil
}

func softmax(logits []float64) ([]float64, error) {
	maxLogit := math.Inf(-1)
	for _, v := range logits {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return nil, eris.New("non-finite logit")
		}
		maxLogit = math.Max(maxLogit, v)
	}

	probs := make([]float64, len(logits))
	var sum float64
	for i, v := range logits {
		probs[i] = math.Exp(v - maxLogit)
		sum += probs[i]
	}
	for i := range probs {
		probs[i] /= sum
	}
	return probs, nil
}

// splitLabel turns "Tomato___Early_blight" into ("Tomato", "Early Blight").
// Labels without a crop part report an unknown crop.
func splitLabel(label string) (string, string, error) {
	cropName, status, ok := strings.Cut(label, labelSeparator)
	if !ok {
		return unknownCrop, titleCase(strings.ReplaceAll(label, "_", " ")), nil
	}
	if strings.Contains(status, labelSeparator) {
		return "", "", eris.Errorf("malformed label %q", label)
	}
	return strings.ReplaceAll(cropName, "_", " "), titleCase(strings.ReplaceAll(status, "_", " ")), nil
}

// titleCase upper-cases letters that follow a non-letter and lower-cases the rest.
func titleCase(s string) string {
	out := []rune(s)
	prevLetter := false
	for i, r := range out {
		if unicode.IsLetter(r) {
			if prevLetter {
				out[i] = unicode.ToLower(r)
			} else {
				out[i] = unicode.ToUpper(r)
			}
			prevLetter = true
		} else {
			prevLetter = false
		}
	}
	return string(out)
}
