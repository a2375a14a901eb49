package restyutil

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync/atomic"

	"github.com/go-resty/resty/v2"
)

// InstrumentOutput receives a dump of every request/response pair made
// by an instrumented client, identified by a monotonic message id.
type InstrumentOutput interface {
	Write(id string, contents string)
}

type FilesystemOutput struct {
	directory string
}

func NewFilesystemOutput(dir string) FilesystemOutput {
	os.RemoveAll(dir)
	err := os.MkdirAll(dir, 0777)
	if err != nil {
		panic(err)
	}
	return FilesystemOutput{directory: dir}
}

func (o FilesystemOutput) Write(id string, contents string) {
	err := os.WriteFile(filepath.Join(o.directory, id), []byte(contents), 0600)
	if err != nil {
		slog.Warn("failed to write message info file", "id", id, "err", err)
	}
}

type dumpCtx struct {
	output    InstrumentOutput
	idcounter *uint64
}

type messageIdKey struct{}

// DumpMessages writes every http exchange the client makes to `output`.
// `output` can be nil, in which case the function is a no-op.
func DumpMessages(client *resty.Client, output InstrumentOutput) {
	if output == nil {
		return
	}

	var idcounter uint64
	d := dumpCtx{output: output, idcounter: &idcounter}
	client.OnBeforeRequest(d.onBeforeRequest)
	client.OnAfterResponse(d.onAfterResponse)
}

func (d dumpCtx) onBeforeRequest(_ *resty.Client, req *resty.Request) error {
	messageId := strconv.FormatUint(atomic.AddUint64(d.idcounter, 1), 10)
	slog.DebugContext(
		req.Context(), "start request",
		"method", req.Method,
		"url", req.URL,
		"message_id", messageId,
	)
	req.SetContext(context.WithValue(req.Context(), messageIdKey{}, messageId))
	return nil
}

func (d dumpCtx) onAfterResponse(_ *resty.Client, res *resty.Response) error {
	messageId, ok := res.Request.Context().Value(messageIdKey{}).(string)
	if !ok {
		return nil
	}
	d.output.Write(messageId, formatHttpMessage(res))
	slog.DebugContext(
		res.Request.Context(), "request finished",
		"method", res.Request.Method,
		"url", res.Request.URL,
		"status", res.StatusCode(),
		"message_id", messageId,
	)
	return nil
}

func formatHttpMessage(res *resty.Response) string {
	out := strings.Builder{}

	fmt.Fprintf(&out, "%s %s\n", res.Request.Method, res.Request.URL)
	if res.Request.RawRequest != nil {
		for header, values := range res.Request.RawRequest.Header {
			fmt.Fprintf(&out, "%s: %s\n", header, strings.Join(values, "; "))
		}
	}
	fmt.Fprintf(&out, "\n%s\n\n", res.Status())
	for header, values := range res.Header() {
		fmt.Fprintf(&out, "%s: %s\n", header, strings.Join(values, "; "))
	}
	out.WriteString("\n")
	out.Write(res.Body())

	return out.String()
}
