package debug

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/signadot/zparse/ir"
)

// Logf writes to stderr.  *ir.Value and plain Go container arguments are
// rendered as indented JSON.
func Logf(msg string, args ...any) {
	for i := range args {
		a := args[i]
		switch x := a.(type) {
		case map[string]any, []any:
			args[i] = indented(a)
		case *ir.Value:
			if x == nil {
				args[i] = "<nil>"
				continue
			}
			args[i] = indented(x.Interface())
		case bool, string, float64, int:

		default:
		}
	}
	fmt.Fprintf(os.Stderr, msg, args...)
}

func indented(a any) string {
	d, err := json.MarshalIndent(a, "   |", "  ")
	if err != nil {
		return fmt.Sprintf("%v", a)
	}
	return string(d)
}
