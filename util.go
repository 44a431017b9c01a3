package ccg

import (
	"github.com/tliron/commonlog"
)

// log is the logger of the parser. Nothing is printed unless the program
// selects a commonlog backend
var log = commonlog.GetLogger("ccg")

// DebugMode enables the debug output of the parser, like the rows of the
// chart after each span length
func DebugMode() {
	commonlog.SetMaxLevel(commonlog.Debug, "ccg")
}

// assert check exp, if exp == false, panic with message
func assert(exp bool, message string) {
	if !exp {
		panic(message)
	}
}
