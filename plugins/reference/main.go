package main

import (
	"context"
	"fmt"
	"os"
	"sort"
	"strings"

	notifyrpc "pomo/internal/modules/notify/adapter/out/rpc"

	"github.com/hashicorp/go-plugin"
)

// Reference notifier: prints every event it receives to stderr so it
// shows up in the plugin's log stream.
type server struct{}

func (s *server) GetMetadata(_ context.Context, _ *notifyrpc.Empty) (*notifyrpc.Metadata, error) {
	return &notifyrpc.Metadata{
		Name:    "reference",
		Version: "1.0.0",
		Events:  []string{},
	}, nil
}

func (s *server) Notify(_ context.Context, in *notifyrpc.NotifyRequest) (*notifyrpc.NotifyResponse, error) {
	keys := make([]string, 0, len(in.Payload))
	for key := range in.Payload {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	pairs := make([]string, 0, len(keys))
	for _, key := range keys {
		pairs = append(pairs, fmt.Sprintf("%s=%s", key, in.Payload[key]))
	}
	fmt.Fprintf(os.Stderr, "[pomo] %s %s\n", in.Event, strings.Join(pairs, " "))
	return &notifyrpc.NotifyResponse{Accepted: true}, nil
}

func main() {
	plugin.Serve(&plugin.ServeConfig{
		HandshakeConfig: notifyrpc.HandshakeConfig,
		Plugins:         notifyrpc.PluginMap(&server{}),
		GRPCServer:      plugin.DefaultGRPCServer,
	})
}
