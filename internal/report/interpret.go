package report

import (
	"fmt"
	"strings"

	"github.com/evalforge/mlreport/internal/metrics"
)

// InterpretAUC returns a plain-language label for a ROC AUC value.
func InterpretAUC(auc float64) string {
	switch {
	case auc >= 0.9:
		return "Excellent discrimination (AUC >= 0.9)"
	case auc >= 0.8:
		return "Good discrimination (AUC 0.8-0.9)"
	case auc >= 0.7:
		return "Fair discrimination (AUC 0.7-0.8)"
	case auc > 0.5:
		return "Weak discrimination (AUC 0.5-0.7)"
	default:
		return "No better than chance (AUC <= 0.5)"
	}
}

// InterpretMCC returns a plain-language label for a Matthews correlation
// coefficient.
func InterpretMCC(mcc float64) string {
	switch {
	case mcc >= 0.7:
		return "Strong agreement with the true labels"
	case mcc >= 0.4:
		return "Moderate agreement with the true labels"
	case mcc > 0:
		return "Weak agreement with the true labels"
	case mcc == 0:
		return "No agreement beyond chance"
	default:
		return "Predictions are inversely related to the true labels"
	}
}

// InterpretBalance explains the class balance percentage.
func InterpretBalance(balancePct float64) string {
	switch {
	case balancePct >= 40 && balancePct <= 60:
		return fmt.Sprintf("Classes are roughly balanced (%.1f%% positive).", balancePct)
	case balancePct < 10 || balancePct > 90:
		return fmt.Sprintf("Classes are heavily imbalanced (%.1f%% positive) — accuracy alone is misleading.", balancePct)
	default:
		return fmt.Sprintf("Classes are moderately imbalanced (%.1f%% positive).", balancePct)
	}
}

// FormatInterpretation produces a plain-language reading of a classification
// metric set.
func FormatInterpretation(set *metrics.ClassificationSet, samples metrics.Samples) string {
	var b strings.Builder

	b.WriteString("=== Interpretation ===\n\n")
	b.WriteString(fmt.Sprintf("AUC:       %.4f — %s\n", set.AUC, InterpretAUC(set.AUC)))
	b.WriteString(fmt.Sprintf("MCC:       %.4f — %s\n", set.MCC, InterpretMCC(set.MCC)))
	b.WriteString(fmt.Sprintf("Accuracy:  %.4f at threshold %g\n", set.Accuracy, set.Threshold))

	if n := len(samples); n > 0 {
		balance := float64(samples.Positives()) / float64(n) * 100
		b.WriteString(InterpretBalance(balance))
		b.WriteString("\n")
	}

	if set.Precision < set.Recall {
		b.WriteString("Precision trails recall — raising the threshold trades coverage for cleaner positives.\n")
	} else if set.Recall < set.Precision {
		b.WriteString("Recall trails precision — lowering the threshold captures more positives at the cost of false alarms.\n")
	}

	return b.String()
}
