package schedule

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/example/daytimetable/internal/catalog"
)

// signature builds a deterministic cache key from a raw catalog and
// its solve parameters. Solving is a pure function of its inputs, so
// two calls with the same signature always yield the same table.
func signature(events []catalog.Event, p Params) string {
	var b strings.Builder
	fmt.Fprintf(&b, "strategy=%s|day=%d-%d|penalty=%g|windows=%s\n",
		p.Strategy, p.DayStart, p.DayEnd, p.PenaltyWeight, strings.Join(p.GlobalWindows, ","))
	for _, e := range events {
		amount := "nil"
		if e.Amount != nil {
			amount = fmt.Sprintf("%g", *e.Amount)
		}
		divisor := "nil"
		if e.Divisor != nil {
			divisor = fmt.Sprintf("%d", *e.Divisor)
		}
		fmt.Fprintf(&b, "event=%s|category=%s|unit=%s|amount=%s|divisor=%s|freq=%s|constraints=%s|windows=%s\n",
			e.Name, e.Category, e.Unit, amount, divisor, e.Frequency,
			strings.Join(e.Constraints, ";"), strings.Join(e.Windows, ";"))
	}

	sum := sha256.Sum256([]byte(b.String()))
	return hex.EncodeToString(sum[:])
}
