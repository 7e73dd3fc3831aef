// Package report persists search matches.
//
// Open picks a sink from the target string: a local file (JSON, or YAML for
// .yaml and .yml names), an S3 object or a Redis list.
//
//	sink, err := report.Open(ctx, "results.json")
//	if err != nil {
//		return err
//	}
//	defer report.Close(sink)
//	err = sink.Write(ctx, report.Report{RunID: res.RunID, Matches: res.Matches})
package report
