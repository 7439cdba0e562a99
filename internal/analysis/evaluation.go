package analysis

import (
	"fmt"
	"sort"

	"edakit/domain/core"
)

// ClassMetrics holds precision, recall and F1 for one label
type ClassMetrics struct {
	Label     string  `json:"label"`
	Precision float64 `json:"precision"`
	Recall    float64 `json:"recall"`
	F1        float64 `json:"f1"`
	Support   int     `json:"support"`
}

// Evaluation is a confusion matrix with a classification report.
// Confusion[i][j] counts rows whose actual label is Labels[i] and predicted
// label is Labels[j].
type Evaluation struct {
	Labels    []string       `json:"labels"`
	Confusion [][]int        `json:"confusion"`
	Classes   []ClassMetrics `json:"classes"`
	Accuracy  float64        `json:"accuracy"`
	Macro     ClassMetrics   `json:"macro_avg"`
	Weighted  ClassMetrics   `json:"weighted_avg"`
}

// Evaluate scores predicted labels against actual ones. Labels are the sorted
// union of both sequences; undefined ratios are 0.
func Evaluate(actual, predicted []string) (*Evaluation, error) {
	if len(actual) != len(predicted) {
		return nil, fmt.Errorf("%w: %d actual, %d predicted", core.ErrLabelsMismatched, len(actual), len(predicted))
	}
	if len(actual) == 0 {
		return nil, core.ErrInsufficientData
	}

	seen := make(map[string]struct{})
	for _, l := range append(append([]string{}, actual...), predicted...) {
		seen[l] = struct{}{}
	}
	labels := make([]string, 0, len(seen))
	for l := range seen {
		labels = append(labels, l)
	}
	sort.Strings(labels)
	index := make(map[string]int, len(labels))
	for i, l := range labels {
		index[l] = i
	}

	k := len(labels)
	confusion := make([][]int, k)
	for i := range confusion {
		confusion[i] = make([]int, k)
	}
	correct := 0
	for i := range actual {
		confusion[index[actual[i]]][index[predicted[i]]]++
		if actual[i] == predicted[i] {
			correct++
		}
	}

	eval := &Evaluation{
		Labels:    labels,
		Confusion: confusion,
		Classes:   make([]ClassMetrics, k),
		Accuracy:  float64(correct) / float64(len(actual)),
		Macro:     ClassMetrics{Label: "macro avg", Support: len(actual)},
		Weighted:  ClassMetrics{Label: "weighted avg", Support: len(actual)},
	}

	for c := 0; c < k; c++ {
		tp := confusion[c][c]
		predictedC, support := 0, 0
		for r := 0; r < k; r++ {
			predictedC += confusion[r][c]
			support += confusion[c][r]
		}
		m := ClassMetrics{
			Label:     labels[c],
			Precision: ratio(tp, predictedC),
			Recall:    ratio(tp, support),
			Support:   support,
		}
		if m.Precision+m.Recall > 0 {
			m.F1 = 2 * m.Precision * m.Recall / (m.Precision + m.Recall)
		}
		eval.Classes[c] = m

		w := float64(support) / float64(len(actual))
		eval.Macro.Precision += m.Precision / float64(k)
		eval.Macro.Recall += m.Recall / float64(k)
		eval.Macro.F1 += m.F1 / float64(k)
		eval.Weighted.Precision += m.Precision * w
		eval.Weighted.Recall += m.Recall * w
		eval.Weighted.F1 += m.F1 * w
	}

	return eval, nil
}

func ratio(a, b int) float64 {
	if b == 0 {
		return 0
	}
	return float64(a) / float64(b)
}
