package display

import (
	"fmt"
	"os"

	"github.com/backmassage/rankmaster/internal/term"
)

// PrintBanner prints the ASCII art banner; uses Magenta if colors are enabled.
func PrintBanner() {
	if term.Magenta != "" {
		fmt.Fprint(os.Stdout, term.Magenta)
	}
	fmt.Fprint(os.Stdout, ` ____             _    __  __           _
|  _ \ __ _ _ __ | | _|  \/  | __ _ ___| |_ ___ _ __
| |_) / _`+"`"+` | '_ \| |/ / |\/| |/ _`+"`"+` / __| __/ _ \ '__|
|  _ < (_| | | | |   <| |  | | (_| \__ \ ||  __/ |
|_| \_\__,_|_| |_|_|\_\_|  |_|\__,_|___/\__\___|_|
`)
	if term.Magenta != "" {
		fmt.Fprintln(os.Stdout, term.NC)
	}
}
