package fixture

import "github.com/zkrollup/fixturegen/metrics"

const subsystem = "fixture"

var (
	filesWritten = metrics.NewCounter("files_written", subsystem, "fixture files written", []string{"kind"})
	bytesWritten = metrics.NewCounter("bytes_written", subsystem, "fixture bytes written", []string{"kind"})
)
