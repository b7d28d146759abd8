package vars

import (
	"fmt"
	"strings"
)

// ParseBool reads the boolean spellings accepted on the command line and in file options.
func ParseBool(str string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(str)) {
	case "true", "t", "yes", "y", "on", "1":
		return true, nil
	case "false", "f", "no", "n", "off", "0", "":
		return false, nil
	}
	return false, fmt.Errorf("not a boolean: %q", str)
}
