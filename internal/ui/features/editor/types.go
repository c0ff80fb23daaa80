package editor

import "strconv"

// addSignals carries the add-expectation form state. Parameter inputs bind to
// dynamically named signals (param_<name>) and are read from the raw signal
// map instead.
type addSignals struct {
	Check  string `json:"newcheck"`
	Column string `json:"newcolumn"`
}

// paramSignalPrefix is the signal-name prefix for check parameter inputs.
const paramSignalPrefix = "param_"

// cellSignal is the signal name bound to the cell input at (row, col).
func cellSignal(row, col int) string {
	return "cell_" + strconv.Itoa(row) + "_" + strconv.Itoa(col)
}
