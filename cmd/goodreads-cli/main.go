package main

import (
	"github.com/katzenj/goodreads-analytics/cmd/goodreads-cli/cmd"
	"github.com/katzenj/goodreads-analytics/lib/serviceutil"
)

func main() {
	cmd.ExecuteContext(serviceutil.SignalContext())
}
