/*package error contains simple functions for reporting fatal harmio errors.
*/
package error

import (
	"fmt"
	"os"
	"runtime/debug"

	"github.com/rs/zerolog/log"
)

// exit is swapped out by tests.
var exit = os.Exit

// External reports an error and kills the program. It should be used when an
// error is something a user could reasonably be expected to fix through
// changes in configuration/data/environment. It has the same signature as the
// standard fmt.*printf() functions.
func External(format string, a ...interface{}) {
	log.Error().Msgf("harmio exited early with the following error: "+format, a...)
	exit(1)
}

// Internal reports an error along with a stack trace and kills the program.
// It should be used when the error requires a code dive to fix.
func Internal(format string, a ...interface{}) {
	log.Error().
		Str("stack", string(debug.Stack())).
		Msg(fmt.Sprintf("harmio exited early with the following internal "+
			"error: "+format, a...))
	exit(1)
}
