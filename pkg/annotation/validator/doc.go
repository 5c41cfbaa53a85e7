// Package validator lints annotation columns.
//
// The validator runs three passes over a column:
//
// 1. Cell pass: every diagnostic the parser produced (unterminated blocks,
// dropped sentinels, bare blocks lost in keyed cells, open comments)
//
// 2. Vocabulary pass: keys that differ from a more frequent key only by case,
// spacing or a small typo ("Ouput probability oracle" next to "Output
// probability oracle")
//
// 3. Shape pass: columns where some cells are keyed and others are bare
//
// # Basic Usage
//
//	v := validator.NewValidator(parser.NewParser())
//	report := v.Validate("rq7_oracles", cells)
//	for _, d := range report.Diagnostics.Errors {
//	    fmt.Println(d.Error())
//	}
//	if report.Failed(strict) {
//	    os.Exit(1)
//	}
package validator
