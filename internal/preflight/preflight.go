package preflight

import "path/filepath"

// Result reports the outcome of a single preflight check.
type Result struct {
	Name   string
	Passed bool
	Detail string
}

// Paths lists what a conversion reads and writes. Update is optional.
type Paths struct {
	Source string
	Update string
	Output string
}

// RunAll executes every applicable check for paths.
func RunAll(paths Paths) []Result {
	results := []Result{CheckFile("Source file", paths.Source)}

	if paths.Update != "" {
		results = append(results, CheckFile("Update base", paths.Update))
	}

	if paths.Output != "" {
		results = append(results, CheckDirectoryAccess("Output directory", outputDir(paths.Output)))
	}

	return results
}

// Failed reports whether any result did not pass.
func Failed(results []Result) bool {
	for _, r := range results {
		if !r.Passed {
			return true
		}
	}
	return false
}

func outputDir(path string) string {
	dir := filepath.Dir(path)
	if dir == "" {
		return "."
	}
	return dir
}
