// Atlas turns the bracketed annotations of a systematic literature review
// spreadsheet into structured data.
//
// Review cells look like "[Quantum gates: X, H], [Shots: 200]" or
// "[Simulator], [Hardware]". Atlas parses them into key/value mappings or
// tag lists, reports malformed annotations and computes the statistics
// used in the review write-up.
//
// Usage:
//
//	# Parse one column and print the structured values
//	atlas parse --column rq1_gates
//
//	# Lint every configured column, failing on warnings
//	atlas lint --strict
//
//	# Frequencies of one key, folding rare values into "Others"
//	atlas stats --column rq1_gates --key "Quantum gates" --others 1
//
//	# Which research questions each paper answers
//	atlas overlap rq1_gates rq2_tools rq3_oracles
//
//	# Store parse runs and re-ingest whenever the spreadsheet changes
//	atlas ingest
//	atlas watch
package main

func main() {
	Execute()
}
