// Command relevance scores resumes against role specifications from
// the command line, producing JSON evaluation results.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
