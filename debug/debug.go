package debug

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
)

type debug struct {
	JSON    bool
	TOML    bool
	YAML    bool
	XML     bool
	Convert bool
	Eval    bool
}

var d *debug

func init() {
	d = &debug{}
	d.JSON = boolEnv("ZPARSE_DEBUG_JSON")
	d.TOML = boolEnv("ZPARSE_DEBUG_TOML")
	d.YAML = boolEnv("ZPARSE_DEBUG_YAML")
	d.XML = boolEnv("ZPARSE_DEBUG_XML")
	d.Convert = boolEnv("ZPARSE_DEBUG_CONVERT")
	d.Eval = boolEnv("ZPARSE_DEBUG_EVAL")
}

func boolEnv(v string) bool {
	x := os.Getenv(v)
	if x == "" {
		return false
	}
	b, _ := strconv.ParseBool(x)
	return b
}

func JSON() bool {
	return d.JSON
}
func TOML() bool {
	return d.TOML
}
func YAML() bool {
	return d.YAML
}
func XML() bool {
	return d.XML
}
func Convert() bool {
	return d.Convert
}
func Eval() bool {
	return d.Eval
}

func LogAny(v any) {
	d, err := json.Marshal(v)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", v)
		return
	}
	os.Stderr.Write(d)
}
