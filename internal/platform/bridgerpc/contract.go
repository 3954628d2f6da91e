package bridgerpc

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/hashicorp/go-plugin"
	"google.golang.org/grpc"
	"google.golang.org/grpc/encoding"
)

const (
	PluginMapKey      = "obsidian-wakatime"
	serviceName       = "obsidianwakatime.bridge.v1.EditorBridge"
	jsonCodecName     = "json"
	methodGetMetadata = "/" + serviceName + "/GetMetadata"
	methodRecordEvent = "/" + serviceName + "/RecordEvent"
	methodGetStatus   = "/" + serviceName + "/GetStatus"
	methodSetEnabled  = "/" + serviceName + "/SetEnabled"
)

var HandshakeConfig = plugin.HandshakeConfig{
	ProtocolVersion:  1,
	MagicCookieKey:   "OBSIDIAN_WAKATIME_BRIDGE",
	MagicCookieValue: "obsidian-wakatime",
}

type jsonCodec struct{}

func (jsonCodec) Marshal(v any) ([]byte, error) {
	return json.Marshal(v)
}

func (jsonCodec) Unmarshal(data []byte, v any) error {
	return json.Unmarshal(data, v)
}

func (jsonCodec) Name() string {
	return jsonCodecName
}

func init() {
	encoding.RegisterCodec(jsonCodec{})
}

type Empty struct{}

type Metadata struct {
	Name    string `json:"name"`
	Version string `json:"version"`
}

// EventRequest is one raw input event from the host editor. Kind is
// "pointer", "keyboard", or "save"; Path is vault-relative and empty when
// no document view is active.
type EventRequest struct {
	Kind      string `json:"kind"`
	Path      string `json:"path"`
	Line      int    `json:"line"`
	Column    int    `json:"column"`
	HasCursor bool   `json:"has_cursor"`
}

type EventResponse struct {
	Emitted bool   `json:"emitted"`
	Reason  string `json:"reason"`
}

// StatusResponse carries the status-bar text and at most one pending
// notice; returning a notice clears it on the bridge side.
type StatusResponse struct {
	Enabled    bool   `json:"enabled"`
	StatusText string `json:"status_text"`
	Notice     string `json:"notice"`
}

type SetEnabledRequest struct {
	Enabled bool `json:"enabled"`
}

type EditorBridgeServer interface {
	GetMetadata(ctx context.Context, in *Empty) (*Metadata, error)
	RecordEvent(ctx context.Context, in *EventRequest) (*EventResponse, error)
	GetStatus(ctx context.Context, in *Empty) (*StatusResponse, error)
	SetEnabled(ctx context.Context, in *SetEnabledRequest) (*StatusResponse, error)
}

type EditorBridgeClient interface {
	GetMetadata(ctx context.Context) (*Metadata, error)
	RecordEvent(ctx context.Context, in *EventRequest) (*EventResponse, error)
	GetStatus(ctx context.Context) (*StatusResponse, error)
	SetEnabled(ctx context.Context, in *SetEnabledRequest) (*StatusResponse, error)
}

type editorBridgeClient struct {
	conn *grpc.ClientConn
}

func NewEditorBridgeClient(conn *grpc.ClientConn) EditorBridgeClient {
	return &editorBridgeClient{conn: conn}
}

func (c *editorBridgeClient) GetMetadata(ctx context.Context) (*Metadata, error) {
	out := &Metadata{}
	if err := c.conn.Invoke(ctx, methodGetMetadata, &Empty{}, out, grpc.CallContentSubtype(jsonCodecName)); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *editorBridgeClient) RecordEvent(ctx context.Context, in *EventRequest) (*EventResponse, error) {
	out := &EventResponse{}
	if err := c.conn.Invoke(ctx, methodRecordEvent, in, out, grpc.CallContentSubtype(jsonCodecName)); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *editorBridgeClient) GetStatus(ctx context.Context) (*StatusResponse, error) {
	out := &StatusResponse{}
	if err := c.conn.Invoke(ctx, methodGetStatus, &Empty{}, out, grpc.CallContentSubtype(jsonCodecName)); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *editorBridgeClient) SetEnabled(ctx context.Context, in *SetEnabledRequest) (*StatusResponse, error) {
	out := &StatusResponse{}
	if err := c.conn.Invoke(ctx, methodSetEnabled, in, out, grpc.CallContentSubtype(jsonCodecName)); err != nil {
		return nil, err
	}
	return out, nil
}

func RegisterEditorBridgeServer(server grpc.ServiceRegistrar, impl EditorBridgeServer) {
	server.RegisterService(&grpc.ServiceDesc{
		ServiceName: serviceName,
		HandlerType: (*EditorBridgeServer)(nil),
		Methods: []grpc.MethodDesc{
			{
				MethodName: "GetMetadata",
				Handler: func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
					in := &Empty{}
					if err := dec(in); err != nil {
						return nil, err
					}
					if interceptor == nil {
						return impl.GetMetadata(ctx, in)
					}
					info := &grpc.UnaryServerInfo{Server: srv, FullMethod: methodGetMetadata}
					handler := func(ctx context.Context, req any) (any, error) {
						empty, ok := req.(*Empty)
						if !ok {
							return nil, fmt.Errorf("invalid request type")
						}
						return impl.GetMetadata(ctx, empty)
					}
					return interceptor(ctx, in, info, handler)
				},
			},
			{
				MethodName: "RecordEvent",
				Handler: func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
					in := &EventRequest{}
					if err := dec(in); err != nil {
						return nil, err
					}
					if interceptor == nil {
						return impl.RecordEvent(ctx, in)
					}
					info := &grpc.UnaryServerInfo{Server: srv, FullMethod: methodRecordEvent}
					handler := func(ctx context.Context, req any) (any, error) {
						inReq, ok := req.(*EventRequest)
						if !ok {
							return nil, fmt.Errorf("invalid request type")
						}
						return impl.RecordEvent(ctx, inReq)
					}
					return interceptor(ctx, in, info, handler)
				},
			},
			{
				MethodName: "GetStatus",
				Handler: func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
					in := &Empty{}
					if err := dec(in); err != nil {
						return nil, err
					}
					if interceptor == nil {
						return impl.GetStatus(ctx, in)
					}
					info := &grpc.UnaryServerInfo{Server: srv, FullMethod: methodGetStatus}
					handler := func(ctx context.Context, req any) (any, error) {
						empty, ok := req.(*Empty)
						if !ok {
							return nil, fmt.Errorf("invalid request type")
						}
						return impl.GetStatus(ctx, empty)
					}
					return interceptor(ctx, in, info, handler)
				},
			},
			{
				MethodName: "SetEnabled",
				Handler: func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
					in := &SetEnabledRequest{}
					if err := dec(in); err != nil {
						return nil, err
					}
					if interceptor == nil {
						return impl.SetEnabled(ctx, in)
					}
					info := &grpc.UnaryServerInfo{Server: srv, FullMethod: methodSetEnabled}
					handler := func(ctx context.Context, req any) (any, error) {
						inReq, ok := req.(*SetEnabledRequest)
						if !ok {
							return nil, fmt.Errorf("invalid request type")
						}
						return impl.SetEnabled(ctx, inReq)
					}
					return interceptor(ctx, in, info, handler)
				},
			},
		},
		Streams:  []grpc.StreamDesc{},
		Metadata: "schemas/bridge-rpc-v1.proto",
	}, impl)
}

type GRPCBridgePlugin struct {
	plugin.NetRPCUnsupportedPlugin
	Impl EditorBridgeServer
}

func (p *GRPCBridgePlugin) GRPCServer(_ *plugin.GRPCBroker, server *grpc.Server) error {
	RegisterEditorBridgeServer(server, p.Impl)
	return nil
}

func (p *GRPCBridgePlugin) GRPCClient(_ context.Context, _ *plugin.GRPCBroker, conn *grpc.ClientConn) (any, error) {
	return NewEditorBridgeClient(conn), nil
}

func PluginMap(impl EditorBridgeServer) map[string]plugin.Plugin {
	return map[string]plugin.Plugin{
		PluginMapKey: &GRPCBridgePlugin{Impl: impl},
	}
}
