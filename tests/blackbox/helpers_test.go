//go:build blackbox

package blackbox

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func contains(s, sub string) bool { return strings.Contains(s, sub) }

// writePortfolio writes n loans and their scores, with PDs spread across
// every risk tier.
func writePortfolio(t *testing.T, dir string, n int) (loansPath, scoresPath string) {
	t.Helper()

	var loans, scores strings.Builder
	loans.WriteString("id,loan_amnt,home_ownership,loan_status\n")
	scores.WriteString("id,pd\n")
	pds := []float64{0.01, 0.04, 0.07, 0.15, 0.25, 0.4}
	for i := 0; i < n; i++ {
		home := "RENT"
		if i%3 == 0 {
			home = "OWN"
		}
		fmt.Fprintf(&loans, "L%03d,%d,%s,Current\n", i, 1000+i*250, home)
		fmt.Fprintf(&scores, "L%03d,%s\n", i, f64(pds[i%len(pds)]))
	}

	loansPath = filepath.Join(dir, "loans.csv")
	scoresPath = filepath.Join(dir, "scores.csv")
	if err := os.WriteFile(loansPath, []byte(loans.String()), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(scoresPath, []byte(scores.String()), 0o644); err != nil {
		t.Fatal(err)
	}
	return loansPath, scoresPath
}

func f64(x float64) string {
	return fmt.Sprintf("%.6f", x)
}
