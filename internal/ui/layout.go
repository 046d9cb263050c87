package ui

// Fixed row heights used to size the log viewport.
const (
	headerHeight = 1
	statusHeight = 1

	// panelRowHeight covers the bordered counter, meter and stats boxes.
	panelRowHeight = 8

	// logsChrome is the border plus title line of the logs box.
	logsChrome = 3

	minLogLines = 3
	minLogWidth = 10
)
