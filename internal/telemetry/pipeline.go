package telemetry

// Options configures one pipeline run.
type Options struct {
	Fill   bool
	Method Method // ignored unless Fill is set
}

// Analysis is the outcome of a completed run: the final table and the three
// condition results in fixed order.
type Analysis struct {
	Records []RawRecord
	Table   *Table
	Results []Result
}

// Run executes the pipeline for one export file: parse, align, derive,
// optionally fill, evaluate. The table is exclusively owned by the pipeline
// through these stages. Either the whole run completes or an error is
// returned before any result exists; there is no partial success.
func Run(path string, opts Options) (*Analysis, error) {
	records, err := ParseFile(path)
	if err != nil {
		return nil, err
	}
	return analyze(records, opts), nil
}

func analyze(records []RawRecord, opts Options) *Analysis {
	table := Align(records)
	table.Derive()
	if opts.Fill {
		table.Fill(opts.Method)
	}
	return &Analysis{
		Records: records,
		Table:   table,
		Results: Evaluate(table),
	}
}
