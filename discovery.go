package opcua

import (
	"context"
	"fmt"
	"net/url"
	"time"

	"github.com/backkem/go-opcua/pkg/securechannel"
	"github.com/backkem/go-opcua/pkg/transport"
	"github.com/backkem/go-opcua/pkg/ua"
	"github.com/pion/logging"
)

// GetEndpoints asks serverURL's discovery endpoint which endpoints it
// exposes, dialing a throwaway SecurityPolicyNone channel the way
// every OPC UA client does before it knows which policy the server
// actually wants (spec.md §9 supplement).
func GetEndpoints(ctx context.Context, serverURL string, logFactory logging.LoggerFactory) ([]ua.EndpointDescription, error) {
	sc, conn, err := dialNoneChannel(ctx, serverURL, logFactory)
	if err != nil {
		return nil, err
	}
	defer func() {
		sc.Close(ctx)
		conn.Close()
	}()
	return getEndpointsOn(ctx, sc, serverURL)
}

// FindServers asks discoveryURL which server applications it knows
// about, the step that usually precedes GetEndpoints in full
// discovery (spec.md §9 supplement).
func FindServers(ctx context.Context, discoveryURL string, logFactory logging.LoggerFactory) ([]ua.ApplicationDescription, error) {
	sc, conn, err := dialNoneChannel(ctx, discoveryURL, logFactory)
	if err != nil {
		return nil, err
	}
	defer func() {
		sc.Close(ctx)
		conn.Close()
	}()

	req := ua.FindServersRequest{
		RequestHeader: anonymousRequestHeader(sc),
		EndpointURL:   discoveryURL,
	}
	v, err := sc.SendRequest(ctx, ua.ServiceIDFindServersRequest, func(e *ua.Encoder) {
		e.FindServersRequest(req)
	})
	if err != nil {
		return nil, err
	}
	resp, ok := v.(ua.FindServersResponse)
	if !ok {
		return nil, fmt.Errorf("opcua: unexpected response to FindServers")
	}
	if !resp.ResponseHeader.ServiceResult.IsGood() {
		return nil, resp.ResponseHeader.ServiceResult
	}
	return resp.Servers, nil
}

func dialNoneChannel(ctx context.Context, serverURL string, logFactory logging.LoggerFactory) (*securechannel.SecureChannel, *transport.Conn, error) {
	conn, err := transport.Dial(ctx, endpointAddr(serverURL), serverURL, logFactory)
	if err != nil {
		return nil, nil, err
	}
	sc, err := securechannel.New(noneChannelConfig(0, logFactory), conn)
	if err != nil {
		conn.Close()
		return nil, nil, err
	}
	if err := sc.Open(ctx); err != nil {
		conn.Close()
		return nil, nil, err
	}
	return sc, conn, nil
}

func getEndpointsOn(ctx context.Context, sc *securechannel.SecureChannel, endpointURL string) ([]ua.EndpointDescription, error) {
	req := ua.GetEndpointsRequest{
		RequestHeader: anonymousRequestHeader(sc),
		EndpointURL:   endpointURL,
	}
	v, err := sc.SendRequest(ctx, ua.ServiceIDGetEndpointsRequest, func(e *ua.Encoder) {
		e.GetEndpointsRequest(req)
	})
	if err != nil {
		return nil, err
	}
	resp, ok := v.(ua.GetEndpointsResponse)
	if !ok {
		return nil, fmt.Errorf("opcua: unexpected response to GetEndpoints")
	}
	if !resp.ResponseHeader.ServiceResult.IsGood() {
		return nil, resp.ResponseHeader.ServiceResult
	}
	return resp.Endpoints, nil
}

func anonymousRequestHeader(sc *securechannel.SecureChannel) ua.RequestHeader {
	return ua.RequestHeader{
		Timestamp:     ua.NewDateTime(time.Now()),
		RequestHandle: sc.NextRequestHandle(),
	}
}

// endpointAddr extracts the host:port dial address from an
// opc.tcp://host:port/path endpoint URL.
func endpointAddr(endpointURL string) string {
	u, err := url.Parse(endpointURL)
	if err != nil {
		return endpointURL
	}
	return u.Host
}
