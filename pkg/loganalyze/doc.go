// Package loganalyze parses delimited log lines against a field schema and
// aggregates them into a single JSON-ready report.
//
// Quick start:
//
//	a, err := loganalyze.New(
//	    loganalyze.WithOperations("mostfreqip", "totalbytes"),
//	)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	report, err := a.Analyze("access.log", "access.log.1.gz")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(report["mostfrequentip"], report["total_bytes"])
//
// Every Analyze call starts from fresh operation state, so an Analyzer
// can be reused. It is not safe for concurrent use.
package loganalyze
